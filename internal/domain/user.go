package domain

import "time"

type UserProfile struct {
	ID        ProfileID `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	Name      string    `gorm:"type:text;not null" db:"name" json:"name"`
	Username  string    `gorm:"type:text;not null" db:"username" json:"username"`
	Email     string    `gorm:"type:text;not null" db:"email" json:"email"`
	Phone     *string   `gorm:"type:text" db:"phone" json:"phone,omitempty"`
	Website   *string   `gorm:"type:text" db:"website" json:"website,omitempty"`
	CreatedAt time.Time `gorm:"not null" db:"created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" db:"updated_at" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// Address is an owned child of UserProfile: at most one per profile,
// written and removed only through profile operations.
type Address struct {
	ID      AddressID `gorm:"type:uuid;primaryKey" db:"id"`
	UserID  ProfileID `gorm:"type:uuid;not null;uniqueIndex:ux_addresses_user" db:"user_id"`
	Street  string    `gorm:"type:text;not null" db:"street"`
	Suite   *string   `gorm:"type:text" db:"suite"`
	City    string    `gorm:"type:text;not null" db:"city"`
	Zipcode string    `gorm:"type:text;not null" db:"zipcode"`
	// Geo coordinates are stored as two independently-nullable columns;
	// a Geo value is exposed only when both are present.
	Lat *float64 `gorm:"column:lat" db:"lat"`
	Lng *float64 `gorm:"column:lng" db:"lng"`
}

func (Address) TableName() string { return "addresses" }

// Geo returns the embedded coordinate pair, or nil unless both are set.
func (a *Address) Geo() *Geo {
	if a.Lat == nil || a.Lng == nil {
		return nil
	}
	return &Geo{Lat: *a.Lat, Lng: *a.Lng}
}

type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Company is an owned child of UserProfile, same ownership rules as Address.
type Company struct {
	ID          CompanyID `gorm:"type:uuid;primaryKey" db:"id"`
	UserID      ProfileID `gorm:"type:uuid;not null;uniqueIndex:ux_companies_user" db:"user_id"`
	Name        string    `gorm:"type:text;not null" db:"name"`
	CatchPhrase *string   `gorm:"column:catch_phrase" db:"catch_phrase"`
	BS          *string   `gorm:"column:bs" db:"bs"`
}

func (Company) TableName() string { return "companies" }
