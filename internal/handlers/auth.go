package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/devHarshShah/itinerary/internal/auth"
	"github.com/devHarshShah/itinerary/internal/middleware"
	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new user account with the default role
func Register(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		var exists bool
		err := db.QueryRow(c.Request.Context(),
			`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = $1)`, email).Scan(&exists)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
			return
		}
		if exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		var user models.User
		err = db.QueryRow(c.Request.Context(), `
			INSERT INTO users (email, first_name, last_name, hashed_password, role)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, email, first_name, last_name, role, is_active, created_at, updated_at
		`, email, req.FirstName, req.LastName, string(hash), models.RoleUser).Scan(
			&user.ID, &user.Email, &user.FirstName, &user.LastName,
			&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, user.ToResponse())
	}
}

// Login authenticates a user and returns a JWT token
func Login(db *pgxpool.Pool, jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		query := `
			SELECT id, email, hashed_password, role, is_active
			FROM users
			WHERE LOWER(email) = $1
		`

		var userID int64
		var dbEmail, passwordHash, role string
		var isActive bool

		err := db.QueryRow(c.Request.Context(), query, email).Scan(
			&userID, &dbEmail, &passwordHash, &role, &isActive,
		)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}

		if !isActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "User account is inactive"})
			return
		}

		token, err := jwtService.GenerateToken(userID, dbEmail, role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// GetMe returns the authenticated user's account
func GetMe(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := getUserByID(c, db, claims.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
			}
			return
		}

		c.JSON(http.StatusOK, user.ToResponse())
	}
}

// UpdateMe updates the authenticated user's profile fields
func UpdateMe(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var req models.UserUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			var taken bool
			err := db.QueryRow(c.Request.Context(),
				`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = $1 AND id != $2)`,
				email, claims.UserID).Scan(&taken)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
				return
			}
			if taken {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
				return
			}
			if _, err := db.Exec(c.Request.Context(),
				`UPDATE users SET email = $1, updated_at = NOW() WHERE id = $2`, email, claims.UserID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}

		if req.FirstName != nil {
			if _, err := db.Exec(c.Request.Context(),
				`UPDATE users SET first_name = $1, updated_at = NOW() WHERE id = $2`, *req.FirstName, claims.UserID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}

		if req.LastName != nil {
			if _, err := db.Exec(c.Request.Context(),
				`UPDATE users SET last_name = $1, updated_at = NOW() WHERE id = $2`, *req.LastName, claims.UserID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}

		user, err := getUserByID(c, db, claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
			return
		}

		c.JSON(http.StatusOK, user.ToResponse())
	}
}

func getUserByID(c *gin.Context, db *pgxpool.Pool, id int64) (*models.User, error) {
	var user models.User
	err := db.QueryRow(c.Request.Context(), `
		SELECT id, email, first_name, last_name, hashed_password, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.HashedPassword, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
