package auth

import (
	"net/http"
	"time"

	"corporate-site/database"
	"corporate-site/internal/app/http/middleware"
	"corporate-site/internal/domain/admins"
	"corporate-site/internal/infra/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AdminDTO struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	AuthProvider string     `json:"auth_provider"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

func toAdminDTO(a admins.Admin) AdminDTO {
	return AdminDTO{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		Role:         a.Role,
		AuthProvider: a.AuthProvider,
		LastLoginAt:  a.LastLoginAt,
	}
}

// POST /auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var admin admins.Admin
	err := database.DB.Where("email = ?", admins.NormalizeEmail(input.Email)).First(&admin).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !admin.Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is disabled"})
		return
	}

	if admin.Password == nil || *admin.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This account uses Google sign-in"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*admin.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := middleware.IssueToken(&admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}
	touchLastLogin(c, &admin)

	c.JSON(http.StatusOK, gin.H{"token": tokenString, "admin": toAdminDTO(admin)})
}

// GET /admin/me
func Me(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toAdminDTO(*admin))
}

// POST /admin/change-password
func ChangePassword(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if !admins.IsPasswordStrong(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 8 characters with letters and numbers"})
		return
	}

	if admin.Password == nil || *admin.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "This account does not have a password. Sign in with Google instead.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*admin.Password), []byte(body.OldPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
		return
	}

	hashedNew, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := database.DB.Model(admin).Update("password", string(hashedNew)).Error; err != nil {
		logging.From(c).Error("update password failed", zap.Error(err), zap.Uint("admin_id", admin.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func currentAdmin(c *gin.Context) (*admins.Admin, bool) {
	adminID := c.GetUint("admin_id")
	if adminID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	var admin admins.Admin
	if err := database.DB.First(&admin, adminID).Error; err != nil || !admin.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not found"})
		return nil, false
	}
	return &admin, true
}

func touchLastLogin(c *gin.Context, admin *admins.Admin) {
	now := time.Now()
	admin.LastLoginAt = &now
	if err := database.DB.Model(admin).Update("last_login_at", now).Error; err != nil {
		logging.From(c).Warn("record last login failed", zap.Error(err), zap.Uint("admin_id", admin.ID))
	}
}
