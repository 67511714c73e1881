package handlers

import (
	"net/http"

	"github.com/RommelSharma23/travel-admin-sub001/internal/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db    *gorm.DB
	store session.Store
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *gorm.DB, store session.Store) *HealthHandler {
	return &HealthHandler{db: db, store: store}
}

// Healthz checks database and session store connectivity and returns status.
func (h *HealthHandler) Healthz(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
		return
	}
	if errPing := sqlDB.PingContext(c.Request.Context()); errPing != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
		return
	}
	if h.store != nil && !h.store.Available(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "sessions": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
