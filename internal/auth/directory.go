package auth

import (
	"context"
	"errors"
	"time"

	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	"gorm.io/gorm"
)

// Directory is the admin directory: the table deciding which identities are
// administrators. Lookups return (nil, nil) on a clean miss.
type Directory interface {
	// FindActiveByProviderUserID returns the active profile linked to a
	// provider identity. Inactive profiles are treated as absent.
	FindActiveByProviderUserID(ctx context.Context, providerUserID string) (*models.AdminProfile, error)
	// GetByID returns a profile regardless of its active flag.
	GetByID(ctx context.Context, id string) (*models.AdminProfile, error)
	// TouchLastLogin sets the profile's last_login timestamp.
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// Insert adds a new profile row.
	Insert(ctx context.Context, profile *models.AdminProfile) error
}

// GormDirectory implements Directory over the admin_profiles table.
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory constructs a GormDirectory.
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// FindActiveByProviderUserID returns the active profile for a provider user id.
func (d *GormDirectory) FindActiveByProviderUserID(ctx context.Context, providerUserID string) (*models.AdminProfile, error) {
	var profile models.AdminProfile
	errFind := d.db.WithContext(ctx).
		Where("provider_user_id = ? AND is_active = ?", providerUserID, true).
		First(&profile).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errFind
	}
	return &profile, nil
}

// GetByID returns a profile by primary key.
func (d *GormDirectory) GetByID(ctx context.Context, id string) (*models.AdminProfile, error) {
	var profile models.AdminProfile
	errFind := d.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errFind
	}
	return &profile, nil
}

// TouchLastLogin sets last_login on the profile row.
func (d *GormDirectory) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return d.db.WithContext(ctx).
		Model(&models.AdminProfile{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

// Insert adds a new profile row.
func (d *GormDirectory) Insert(ctx context.Context, profile *models.AdminProfile) error {
	return d.db.WithContext(ctx).Create(profile).Error
}
