package admin

import (
	"fmt"
	"net/http"

	"corporate-site/database"
	"corporate-site/internal/domain/admins"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AccountDTO struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	AuthProvider string `json:"auth_provider"`
	Active       bool   `json:"active"`
}

func toAccountDTO(a admins.Admin) AccountDTO {
	return AccountDTO{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role, AuthProvider: a.AuthProvider, Active: a.Active}
}

// GET /admin/accounts
func ListAccounts(c *gin.Context) {
	var rows []admins.Admin
	if err := database.DB.Order("id ASC").Find(&rows).Error; err != nil {
		respondError(c, "load accounts", err)
		return
	}
	out := make([]AccountDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAccountDTO(a))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

// POST /admin/accounts
// An empty password creates a Google-only account.
func CreateAccount(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !admins.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown role %q", req.Role)})
		return
	}

	a := admins.Admin{
		Name:         req.Name,
		Email:        admins.NormalizeEmail(req.Email),
		AuthProvider: admins.ProviderGoogle,
		Role:         req.Role,
		Active:       true,
	}
	if req.Password != "" {
		if !admins.IsPasswordStrong(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": admins.ErrWeakPassword.Error()})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		h := string(hashed)
		a.Password = &h
		a.AuthProvider = admins.ProviderLocal
	}

	var count int64
	if err := database.DB.Model(&admins.Admin{}).Where("email = ?", a.Email).Count(&count).Error; err != nil {
		respondError(c, "create account", err)
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	}
	if err := database.DB.Create(&a).Error; err != nil {
		respondError(c, "create account", err)
		return
	}
	c.JSON(http.StatusCreated, toAccountDTO(a))
}

// POST /admin/accounts/:id/deactivate
func DeactivateAccount(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if id == c.GetUint("admin_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot deactivate your own account"})
		return
	}
	res := database.DB.Model(&admins.Admin{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		respondError(c, "deactivate account", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
