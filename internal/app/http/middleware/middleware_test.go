package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"corporate-site/config"
	"corporate-site/internal/domain/admins"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSecret(t *testing.T) {
	t.Helper()
	prev := config.Current
	config.Set(config.Settings{JWTSecret: "test-secret"})
	t.Cleanup(func() { config.Set(prev) })
}

func TestAuthAndRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	withSecret(t)

	r := gin.New()
	r.GET("/editor", AuthMiddleware(), RequireRole(admins.RoleEditor, admins.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetUint("admin_id")})
	})
	r.GET("/admin", AuthMiddleware(), RequireRole(admins.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	token, err := IssueToken(&admins.Admin{ID: 7, Email: "ed@example.com", Role: admins.RoleEditor})
	require.NoError(t, err)

	do := func(path, auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do("/editor", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin_id":7}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, do("/admin", "Bearer "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, do("/editor", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do("/editor", token).Code)
	assert.Equal(t, http.StatusUnauthorized, do("/editor", "Bearer nope").Code)
}

func TestSanitizeInput(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got map[string]interface{}
	r := gin.New()
	r.POST("/", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		require.NoError(t, json.Unmarshal(raw, &got))
		c.Status(http.StatusNoContent)
	})

	body := `{"title":"<b>R&D</b>","content":"<p>kept</p>","password":"a<b>c","contact":{"city":"<i>Beijing</i>"},"tags":["<u>x</u>"],"type":2}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "R&D", got["title"])
	assert.Equal(t, "<p>kept</p>", got["content"])
	assert.Equal(t, "a<b>c", got["password"])
	assert.Equal(t, "Beijing", got["contact"].(map[string]interface{})["city"])
	assert.Equal(t, []interface{}{"x"}, got["tags"])
	assert.EqualValues(t, 2, got["type"])
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
