package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"

	"corporate-site/config"
	"corporate-site/database"
	"corporate-site/internal/app/http/middleware"
	"corporate-site/internal/domain/admins"
	"corporate-site/internal/infra/logging"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var errUnknownAdmin = errors.New("no admin account for this google identity")

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes: []string{
			"openid",
			"email",
			"profile",
		},
		Endpoint: google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func GoogleStart(c *gin.Context) {
	if !config.GoogleSignInEnabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	c.SetCookie("oauth_state", state, 300, "/", "", false, true)

	c.Redirect(http.StatusFound, googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
	if !config.GoogleSignInEnabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}

	tok, err := googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	claims, err := verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	admin, err := linkGoogleAdmin(database.DB, claims)
	if errors.Is(err, errUnknownAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This Google account has no admin access"})
		return
	}
	if err != nil {
		logging.From(c).Error("link google admin failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		return
	}

	tokenString, err := middleware.IssueToken(admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}
	touchLastLogin(c, admin)

	redirect := config.GOOGLE_FRONTEND_REDIRECT
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+url.QueryEscape(tokenString))
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

func verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.GOOGLE_CLIENT_ID,
	})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	if !claims.EmailVerified {
		return nil, errors.New("google email is not verified")
	}
	return &claims, nil
}

// linkGoogleAdmin finds the active admin for a Google identity, first by
// subject and then by email, recording the subject on first use. Accounts
// are never created here.
func linkGoogleAdmin(db *gorm.DB, gc *googleIDClaims) (*admins.Admin, error) {
	var admin admins.Admin

	err := db.Where("google_sub = ?", gc.Sub).First(&admin).Error
	if err == nil {
		if !admin.Active {
			return nil, errUnknownAdmin
		}
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.Where("email = ?", admins.NormalizeEmail(gc.Email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errUnknownAdmin
	}
	if err != nil {
		return nil, err
	}
	if !admin.Active {
		return nil, errUnknownAdmin
	}
	if admin.GoogleSub != nil && *admin.GoogleSub != gc.Sub {
		return nil, errUnknownAdmin
	}

	if admin.GoogleSub == nil {
		sub := gc.Sub
		admin.GoogleSub = &sub
		if admin.Password == nil {
			admin.AuthProvider = admins.ProviderGoogle
		}
		if err := db.Model(&admin).Updates(map[string]interface{}{
			"google_sub":    sub,
			"auth_provider": admin.AuthProvider,
		}).Error; err != nil {
			return nil, err
		}
	}
	return &admin, nil
}
