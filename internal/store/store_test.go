package store

import (
	"testing"

	"user-directory/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(
		&domain.Account{},
		&domain.UserProfile{},
		&domain.Address{},
		&domain.Company{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(gdb)
}
