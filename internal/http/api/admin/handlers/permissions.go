package handlers

import (
	"net/http"

	"github.com/RommelSharma23/travel-admin-sub001/internal/auth"
	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

// PermissionHandler serves the permission catalog.
type PermissionHandler struct{}

// NewPermissionHandler constructs a PermissionHandler.
func NewPermissionHandler() *PermissionHandler {
	return &PermissionHandler{}
}

// List returns every permission definition plus the per-role allow-lists.
func (h *PermissionHandler) List(c *gin.Context) {
	defs := auth.Definitions()
	out := make([]gin.H, 0, len(defs))
	for _, def := range defs {
		out = append(out, gin.H{
			"tag":    def.Tag,
			"module": def.Module,
			"label":  def.Label,
		})
	}

	roles := gin.H{}
	for _, role := range []string{models.RoleSuperAdmin, models.RoleContentManager, models.RoleStaff} {
		roles[role] = auth.RolePermissions(role)
	}

	c.JSON(http.StatusOK, gin.H{
		"permissions": out,
		"roles":       roles,
	})
}
