package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityEntry describes one auditable action.
type ActivityEntry struct {
	AdminProfileID string         // Acting admin.
	Action         string         // Free-form tag, e.g. "login".
	Table          string         // Mutated table, when attributable.
	RecordID       string         // Mutated record id, when attributable.
	Changes        map[string]any // Change payload.
	UserAgent      string         // Client user agent.
}

// ActivityRecorder appends audit entries. Implementations are best-effort:
// Record never returns an error and must never panic into the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry)
}

// GormActivityRecorder appends entries to the activity_logs table.
type GormActivityRecorder struct {
	db *gorm.DB
}

// NewGormActivityRecorder constructs a GormActivityRecorder.
func NewGormActivityRecorder(db *gorm.DB) *GormActivityRecorder {
	return &GormActivityRecorder{db: db}
}

// Record appends an entry. Failures are logged and swallowed so an audit
// problem can never fail the operation being audited.
func (r *GormActivityRecorder) Record(_ context.Context, entry ActivityEntry) {
	if r == nil || r.db == nil {
		return
	}

	// The triggering request may already be done; give the insert its own
	// deadline instead of inheriting a cancelled context.
	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	row := models.ActivityLog{
		AdminProfileID: entry.AdminProfileID,
		Action:         entry.Action,
		Table:          entry.Table,
		RecordID:       entry.RecordID,
		UserAgent:      entry.UserAgent,
	}
	if len(entry.Changes) > 0 {
		payload, errMarshal := json.Marshal(entry.Changes)
		if errMarshal != nil {
			log.Warnf("activity: marshal changes for %s: %v", entry.Action, errMarshal)
		} else {
			row.Changes = datatypes.JSON(payload)
		}
	}

	if errCreate := r.db.WithContext(dbCtx).Create(&row).Error; errCreate != nil {
		log.Warnf("activity: append %s failed: %v", entry.Action, errCreate)
	}
}
