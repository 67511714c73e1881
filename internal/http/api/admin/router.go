// Package admin wires the admin dashboard API: session middleware, permission
// gates, and the route table under /v0/admin.
package admin

import (
	"github.com/RommelSharma23/travel-admin-sub001/internal/auth"
	"github.com/RommelSharma23/travel-admin-sub001/internal/http/api/admin/handlers"
	"github.com/RommelSharma23/travel-admin-sub001/internal/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes mounts the admin dashboard API on the engine.
func RegisterRoutes(engine *gin.Engine, db *gorm.DB, store session.Store, svc *auth.Service) {
	authHandler := handlers.NewAuthHandler(svc)
	adminHandler := handlers.NewAdminHandler(db, svc)
	permissionHandler := handlers.NewPermissionHandler()
	healthHandler := handlers.NewHealthHandler(db, store)

	engine.GET("/healthz", healthHandler.Healthz)

	group := engine.Group("/v0/admin")
	group.POST("/auth/login", authHandler.Login)

	authed := group.Group("")
	authed.Use(adminSessionMiddleware(svc))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/permissions", permissionHandler.List)
	authed.GET("/admins", requirePermission(svc, auth.PermAdminsRead), adminHandler.List)
	authed.POST("/admins", requireSuperAdmin(), adminHandler.Create)
}
