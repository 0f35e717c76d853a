package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/devHarshShah/itinerary/internal/auth"
	"github.com/gin-gonic/gin"
)

const authClaimsKey = "auth_claims"

// RequireAuth validates the bearer token and stores the claims in context
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtService)
		if err != nil {
			status := http.StatusUnauthorized
			c.JSON(status, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth stores claims when a valid token is present but lets
// unauthenticated requests through. Used by the public read endpoints.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, err := claimsFromHeader(c, jwtService); err == nil {
				c.Set(authClaimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin ensures the authenticated user holds the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("Authorization header required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("Invalid authorization format. Use: Bearer <token>")
	}

	claims, err := jwtService.ValidateToken(parts[1])
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, errors.New("Token has expired")
		}
		return nil, errors.New("Invalid token")
	}

	return claims, nil
}

// GetAuthClaims retrieves the authenticated user's claims from context
func GetAuthClaims(c *gin.Context) (*auth.Claims, bool) {
	val, exists := c.Get(authClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*auth.Claims)
	return claims, ok
}

// GetAuthUserID retrieves the authenticated user ID from context
func GetAuthUserID(c *gin.Context) (int64, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
