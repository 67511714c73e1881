package db

import (
	"fmt"

	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all persistent models.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.Identity{},
		&models.AdminProfile{},
		&models.ActivityLog{},
		&models.Setting{},
	)
}
