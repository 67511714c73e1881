package settings

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	"gorm.io/gorm"
)

// RefreshDBConfigSnapshot reloads all settings from the database and updates
// the in-memory snapshot.
//
// This is required at process startup; otherwise DBConfigValue() will return
// empty values until an admin updates settings via the API (which triggers
// refresh).
func RefreshDBConfigSnapshot(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("settings: nil db")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var rows []models.Setting
	if errFind := db.WithContext(ctx).
		Select("key", "value", "updated_at").
		Order("key ASC").
		Find(&rows).Error; errFind != nil {
		return errFind
	}

	values := make(map[string]json.RawMessage, len(rows))
	maxUpdatedAt := time.Time{}
	for _, row := range rows {
		key := strings.TrimSpace(row.Key)
		if key == "" {
			continue
		}
		values[key] = row.Value
		if rowUpdatedAt := row.UpdatedAt.UTC(); rowUpdatedAt.After(maxUpdatedAt) {
			maxUpdatedAt = rowUpdatedAt
		}
	}

	StoreDBConfig(maxUpdatedAt, values)
	return nil
}
