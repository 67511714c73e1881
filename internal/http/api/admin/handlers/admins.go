package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/RommelSharma23/travel-admin-sub001/internal/auth"
	dbutil "github.com/RommelSharma23/travel-admin-sub001/internal/db"
	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler manages admin account endpoints.
type AdminHandler struct {
	db  *gorm.DB
	svc *auth.Service
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *gorm.DB, svc *auth.Service) *AdminHandler {
	return &AdminHandler{db: db, svc: svc}
}

// createAdminRequest defines the request body for admin creation.
type createAdminRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Create provisions a new admin account. The route is restricted to super
// admins by the router.
func (h *AdminHandler) Create(c *gin.Context) {
	var body createAdminRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.TrimSpace(body.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing email"})
		return
	}
	if strings.TrimSpace(body.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing password"})
		return
	}

	creator, ok := ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	profile, errCreate := h.svc.CreateAdminUser(c.Request.Context(), auth.CreateAdminInput{
		Email:     email,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Role:      body.Role,
	}, creator.ID, auth.RequestMeta{UserAgent: c.Request.UserAgent()})
	if errCreate != nil {
		if errors.Is(errCreate, auth.ErrProvisioningFailed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errCreate.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create admin failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": profileJSON(profile)})
}

// List returns admin accounts with optional filters.
func (h *AdminHandler) List(c *gin.Context) {
	var (
		emailQ = strings.TrimSpace(c.Query("email"))
		roleQ  = strings.TrimSpace(c.Query("role"))
	)

	q := h.db.WithContext(c.Request.Context()).Model(&models.AdminProfile{})
	if emailQ != "" {
		pattern := dbutil.NormalizeLikePattern(h.db, "%"+emailQ+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(h.db, "email"), pattern)
	}
	if roleQ != "" {
		q = q.Where("role = ?", roleQ)
	}

	var rows []models.AdminProfile
	if errFind := q.Order("created_at DESC").Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list admins failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileJSON(&row))
	}
	c.JSON(http.StatusOK, gin.H{"admins": out})
}
