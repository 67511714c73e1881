package models

import "time"

// Administrative roles. The set is closed; unknown values carry no permissions.
const (
	// RoleSuperAdmin grants every permission.
	RoleSuperAdmin = "super_admin"
	// RoleContentManager manages site content and inquiries.
	RoleContentManager = "content_manager"
	// RoleStaff handles inquiries and PDF exports only.
	RoleStaff = "staff"
)

// AdminProfile represents an administrative account stored in the directory.
// It is distinct from the identity-provider credential record; holding valid
// provider credentials grants nothing without an active profile row.
type AdminProfile struct {
	ID string `gorm:"type:uuid;primaryKey"` // Primary key.

	ProviderUserID string `gorm:"type:uuid;not null;uniqueIndex"` // Identity-provider user id, one-to-one.

	Email     string `gorm:"type:text;not null;uniqueIndex"` // Contact address.
	FirstName string `gorm:"type:text;not null"`             // Display first name.
	LastName  string `gorm:"type:text"`                      // Display last name.

	Role string `gorm:"type:text;not null;default:'staff'"` // One of the role constants.

	IsActive bool `gorm:"not null;default:true"` // Inactive profiles are treated as absent.

	LastLogin *time.Time `gorm:"type:timestamp"` // Updated on every successful login.

	CreatedBy *string `gorm:"type:uuid"` // Profile id of the provisioning admin.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName maps AdminProfile to the admin_profiles table.
func (AdminProfile) TableName() string { return "admin_profiles" }
