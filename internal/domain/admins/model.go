package admins

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"

	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

var ErrWeakPassword = errors.New("password must be at least 8 characters long and contain both letters and numbers")

// Admin is an account allowed into the editing API.
type Admin struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"size:255;not null;default:''"`
	Email        string  `gorm:"not null;uniqueIndex:idx_admins_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_admins_google_sub"`
	Role         string  `gorm:"type:varchar(20);not null;default:'editor'"`
	Active       bool    `gorm:"not null"`

	LastLoginAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Admin) TableName() string { return "admins" }

// ValidRole reports whether role is one of the known admin roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// NormalizeEmail lower-cases and trims an address before lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsPasswordStrong requires 8+ characters with at least one letter and one digit.
func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
