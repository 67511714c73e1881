package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/RommelSharma23/travel-admin-sub001/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// loginRequest defines the request body for admin login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an admin and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	email := strings.TrimSpace(body.Email)
	if email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	profile, sessionID, errLogin := h.svc.Login(c.Request.Context(), email, body.Password, auth.RequestMeta{
		UserAgent: c.Request.UserAgent(),
	})
	if errLogin != nil {
		switch {
		case errors.Is(errLogin, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": errLogin.Error()})
		case errors.Is(errLogin, auth.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": errLogin.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": auth.ErrInternal.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"user":       profileJSON(profile),
	})
}

// Logout closes the caller's session. The local session is removed even when
// the identity provider cannot be reached.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, ok := SessionIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	h.svc.Logout(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me returns the caller's profile snapshot and effective permissions.
func (h *AuthHandler) Me(c *gin.Context) {
	profile, ok := ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":        profileJSON(profile),
		"permissions": auth.RolePermissions(profile.Role),
	})
}
