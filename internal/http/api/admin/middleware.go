package admin

import (
	"net/http"
	"strings"

	"github.com/RommelSharma23/travel-admin-sub001/internal/auth"
	"github.com/RommelSharma23/travel-admin-sub001/internal/http/api/admin/handlers"
	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

// adminSessionMiddleware resolves the bearer session id to the profile
// snapshot taken at login. Expired and revoked sessions are indistinguishable
// from absent ones: both end in 401.
func adminSessionMiddleware(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		sessionID := extractBearer(c.GetHeader("Authorization"))
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}

		profile := svc.CurrentUser(c.Request.Context(), sessionID)
		if profile == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or invalid"})
			return
		}

		c.Set(handlers.ContextProfileKey, profile)
		c.Set(handlers.ContextSessionIDKey, sessionID)
		c.Next()
	}
}

// requirePermission gates a route on one permission tag.
func requirePermission(svc *auth.Service, tag string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := handlers.ProfileFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		if !svc.HasPermission(profile, tag) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": auth.ErrAccessDenied.Error()})
			return
		}
		c.Next()
	}
}

// requireSuperAdmin gates a route on the super_admin role itself. There is no
// permission tag for this; the role is the gate.
func requireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := handlers.ProfileFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		if profile.Role != models.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": auth.ErrAccessDenied.Error()})
			return
		}
		c.Next()
	}
}

// extractBearer returns the token part of an "Authorization: Bearer x" header.
func extractBearer(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
