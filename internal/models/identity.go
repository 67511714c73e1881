package models

import "time"

// Identity represents a credential record owned by the local identity
// provider. It only proves who someone is; administrative capability comes
// from a matching AdminProfile.
type Identity struct {
	ID string `gorm:"type:uuid;primaryKey"` // Provider user id.

	Email    string `gorm:"type:text;not null;uniqueIndex"` // Login address.
	Password string `gorm:"type:text;not null"`             // Hashed password.

	EmailConfirmed bool `gorm:"not null;default:false"` // Whether the address was confirmed.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName maps Identity to the identities table.
func (Identity) TableName() string { return "identities" }
