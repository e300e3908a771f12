package store

import (
	"context"

	"user-directory/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddressStore struct{ db *gorm.DB }

func (s *Store) Addresses() *AddressStore { return &AddressStore{db: s.DB} }

// Upsert inserts the address, or overwrites the existing row for the same
// profile. Requires the unique index on addresses.user_id.
func (a *AddressStore) Upsert(ctx context.Context, addr *domain.Address) error {
	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}
	return mapGormError(a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"street", "suite", "city", "zipcode", "lat", "lng"}),
	}).Create(addr).Error)
}

func (a *AddressStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Address, error) {
	var addr domain.Address
	if err := a.db.WithContext(ctx).First(&addr, "user_id = ?", userID).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &addr, nil
}

func (a *AddressStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return mapGormError(a.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Address{}).Error)
}

type CompanyStore struct{ db *gorm.DB }

func (s *Store) Companies() *CompanyStore { return &CompanyStore{db: s.DB} }

func (c *CompanyStore) Upsert(ctx context.Context, comp *domain.Company) error {
	if comp.ID == uuid.Nil {
		comp.ID = uuid.New()
	}
	return mapGormError(c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "catch_phrase", "bs"}),
	}).Create(comp).Error)
}

func (c *CompanyStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Company, error) {
	var comp domain.Company
	if err := c.db.WithContext(ctx).First(&comp, "user_id = ?", userID).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &comp, nil
}

func (c *CompanyStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return mapGormError(c.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Company{}).Error)
}
