package store

import (
	"context"
	"time"

	"user-directory/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileStore struct{ db *gorm.DB }

func (s *Store) Profiles() *ProfileStore { return &ProfileStore{db: s.DB} }

func (p *ProfileStore) Create(ctx context.Context, profile *domain.UserProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return mapGormError(p.db.WithContext(ctx).Create(profile).Error)
}

func (p *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := p.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &profile, nil
}

// UpdateColumns overwrites the named scalar columns only. Callers build the
// column set from the fields actually present in the request, so omitted
// fields keep their stored values.
func (p *ProfileStore) UpdateColumns(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	cols["updated_at"] = time.Now().UTC()
	res := p.db.WithContext(ctx).Model(&domain.UserProfile{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (p *ProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.UserProfile{})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// AggregateRow is one row of the profiles/addresses/companies left join,
// projected by column name. Child columns are nullable; a nil address_id or
// company_id means the profile has no such child.
type AggregateRow struct {
	ProfileID uuid.UUID  `gorm:"column:profile_id"`
	Name      string     `gorm:"column:name"`
	Username  string     `gorm:"column:username"`
	Email     string     `gorm:"column:email"`
	Phone     *string    `gorm:"column:phone"`
	Website   *string    `gorm:"column:website"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
	AddressID *uuid.UUID `gorm:"column:address_id"`
	Street    *string    `gorm:"column:street"`
	Suite     *string    `gorm:"column:suite"`
	City      *string    `gorm:"column:city"`
	Zipcode   *string    `gorm:"column:zipcode"`
	Lat       *float64   `gorm:"column:lat"`
	Lng       *float64   `gorm:"column:lng"`
	CompanyID *uuid.UUID `gorm:"column:company_id"`
	CompName  *string    `gorm:"column:company_name"`
	CompCatch *string    `gorm:"column:catch_phrase"`
	CompBS    *string    `gorm:"column:bs"`
}

// ListJoined fetches every profile with its optional children in one query.
// Row order is whatever the store returns; callers fold by profile id.
func (p *ProfileStore) ListJoined(ctx context.Context) ([]AggregateRow, error) {
	var rows []AggregateRow
	err := p.db.WithContext(ctx).
		Table("user_profiles").
		Select(`user_profiles.id AS profile_id,
			user_profiles.name,
			user_profiles.username,
			user_profiles.email,
			user_profiles.phone,
			user_profiles.website,
			user_profiles.created_at,
			user_profiles.updated_at,
			addresses.id AS address_id,
			addresses.street,
			addresses.suite,
			addresses.city,
			addresses.zipcode,
			addresses.lat,
			addresses.lng,
			companies.id AS company_id,
			companies.name AS company_name,
			companies.catch_phrase,
			companies.bs`).
		Joins("LEFT JOIN addresses ON addresses.user_id = user_profiles.id").
		Joins("LEFT JOIN companies ON companies.user_id = user_profiles.id").
		Scan(&rows).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return rows, nil
}
