package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devHarshShah/itinerary/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/protected", RequireAuth(jwtService), func(c *gin.Context) {
		userID, _ := GetAuthUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/admin", RequireAuth(jwtService), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/public", OptionalAuth(jwtService), func(c *gin.Context) {
		_, authenticated := GetAuthClaims(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "itinerary-api")
	r := newTestRouter(jwtService)

	token, err := jwtService.GenerateToken(12, "user@example.com", "user")
	require.NoError(t, err)

	w := doRequest(r, "/protected", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":12`)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "itinerary-api")
	r := newTestRouter(jwtService)

	w := doRequest(r, "/protected", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BadFormat(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "itinerary-api")
	r := newTestRouter(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "itinerary-api")
	r := newTestRouter(jwtService)

	w := doRequest(r, "/protected", "garbage")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "itinerary-api")
	r := newTestRouter(jwtService)

	adminToken, err := jwtService.GenerateToken(1, "admin@example.com", "admin")
	require.NoError(t, err)
	userToken, err := jwtService.GenerateToken(2, "user@example.com", "user")
	require.NoError(t, err)

	w := doRequest(r, "/admin", adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, "/admin", userToken)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "itinerary-api")
	r := newTestRouter(jwtService)

	w := doRequest(r, "/public", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"authenticated":false`)

	token, err := jwtService.GenerateToken(3, "user@example.com", "user")
	require.NoError(t, err)

	w = doRequest(r, "/public", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"authenticated":true`)

	// A bad token on an optional route falls through as anonymous
	w = doRequest(r, "/public", "garbage")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"authenticated":false`)
}
