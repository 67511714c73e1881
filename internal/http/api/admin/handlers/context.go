package handlers

import (
	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

// Gin context keys shared between the session middleware and the handlers.
const (
	// ContextProfileKey holds the *models.AdminProfile of the caller.
	ContextProfileKey = "adminProfile"
	// ContextSessionIDKey holds the opaque session id the caller presented.
	ContextSessionIDKey = "adminSessionID"
)

// ProfileFromContext extracts the authenticated admin profile from the gin
// context.
func ProfileFromContext(c *gin.Context) (*models.AdminProfile, bool) {
	value, ok := c.Get(ContextProfileKey)
	if !ok {
		return nil, false
	}
	profile, ok := value.(*models.AdminProfile)
	if !ok || profile == nil {
		return nil, false
	}
	return profile, true
}

// SessionIDFromContext extracts the caller's session id from the gin context.
func SessionIDFromContext(c *gin.Context) (string, bool) {
	value, ok := c.Get(ContextSessionIDKey)
	if !ok {
		return "", false
	}
	sessionID, ok := value.(string)
	return sessionID, ok && sessionID != ""
}

// profileJSON renders an admin profile for API responses.
func profileJSON(profile *models.AdminProfile) gin.H {
	return gin.H{
		"id":         profile.ID,
		"email":      profile.Email,
		"first_name": profile.FirstName,
		"last_name":  profile.LastName,
		"role":       profile.Role,
		"is_active":  profile.IsActive,
		"last_login": profile.LastLogin,
		"created_at": profile.CreatedAt,
	}
}
