package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtpkg "github.com/bookhaven/backend/pkg/jwt"
)

const testSecret = "test-secret"

func newAuthRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/admin")
	group.Use(Auth(testSecret))
	if len(roles) > 0 {
		group.Use(RoleRequired(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	w := doRequest(newAuthRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	router := newAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsBadToken(t *testing.T) {
	w := doRequest(newAuthRouter(), "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	token, err := jwtpkg.GenerateToken("u1", "Eve", "admin", "other-secret", time.Hour)
	require.NoError(t, err)

	w := doRequest(newAuthRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthPassesValidToken(t *testing.T) {
	token, err := jwtpkg.GenerateToken("u1", "Admin", "admin", testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(newAuthRouter(), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
}

func TestRoleRequiredRejectsWrongRole(t *testing.T) {
	token, err := jwtpkg.GenerateToken("u1", "Reader", "reader", testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(newAuthRouter("admin"), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleRequiredAllowsMatchingRole(t *testing.T) {
	token, err := jwtpkg.GenerateToken("u1", "Admin", "admin", testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(newAuthRouter("admin"), token)
	assert.Equal(t, http.StatusOK, w.Code)
}
