package domain

import "time"

// Account is the credential record used for login. It is distinct from
// UserProfile: accounts authenticate, profiles are directory entries.
type Account struct {
	ID           AccountID `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	Name         string    `gorm:"type:text;not null" db:"name" json:"name"`
	Email        string    `gorm:"type:text;not null;uniqueIndex:ux_accounts_email" db:"email" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" db:"password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"not null" db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" db:"updated_at" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
