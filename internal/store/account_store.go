package store

import (
	"context"

	"user-directory/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountStore struct{ db *gorm.DB }

func (s *Store) Accounts() *AccountStore { return &AccountStore{db: s.DB} }

// Create inserts a new account. The unique index on email is the authoritative
// guard against concurrent duplicate registrations: a racing insert comes back
// as ErrDuplicateKey, never as a silent overwrite.
func (a *AccountStore) Create(ctx context.Context, acct *domain.Account) error {
	if acct.ID == uuid.Nil {
		acct.ID = uuid.New()
	}
	return mapGormError(a.db.WithContext(ctx).Create(acct).Error)
}

func (a *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var acct domain.Account
	if err := a.db.WithContext(ctx).First(&acct, "email = ?", email).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &acct, nil
}

func (a *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var acct domain.Account
	if err := a.db.WithContext(ctx).First(&acct, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &acct, nil
}
