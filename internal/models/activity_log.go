package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only audit record for administrative actions.
// Writes are best-effort everywhere; a failed insert never fails the
// operation that triggered it.
type ActivityLog struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	AdminProfileID string `gorm:"type:uuid;not null;index"` // Acting admin profile.

	Action string `gorm:"type:text;not null"` // Free-form tag, e.g. "login", "create_user".

	Table    string         `gorm:"column:table_name;type:text"` // Mutated table, when attributable.
	RecordID string         `gorm:"type:text"`                   // Mutated record id, when attributable.
	Changes  datatypes.JSON `gorm:"type:jsonb"`                  // Change payload in JSON.

	UserAgent string `gorm:"type:text"` // Client user agent.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Append timestamp.
}

// TableName maps ActivityLog to the activity_logs table.
func (ActivityLog) TableName() string { return "activity_logs" }
