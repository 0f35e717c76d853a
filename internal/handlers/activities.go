package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const activityColumns = `id, name, destination_id, category, description, duration_hours,
	price_range, is_must_see, location, latitude, longitude, image_url`

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var a models.Activity
	err := row.Scan(&a.ID, &a.Name, &a.DestinationID, &a.Category, &a.Description, &a.DurationHours,
		&a.PriceRange, &a.IsMustSee, &a.Location, &a.Latitude, &a.Longitude, &a.ImageURL)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateActivity adds an activity to the catalog (admin only)
func CreateActivity(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ActivityCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if !models.ValidActivityCategory(req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid activity category: %s", req.Category)})
			return
		}

		var destinationOK bool
		err := db.QueryRow(c.Request.Context(),
			`SELECT EXISTS(SELECT 1 FROM destinations WHERE id = $1)`, req.DestinationID).Scan(&destinationOK)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query destinations"})
			return
		}
		if !destinationOK {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
			return
		}

		row := db.QueryRow(c.Request.Context(), `
			INSERT INTO activities (name, destination_id, category, description, duration_hours, price_range, is_must_see, location, latitude, longitude, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING `+activityColumns,
			req.Name, req.DestinationID, req.Category, req.Description, req.DurationHours,
			req.PriceRange, req.IsMustSee, req.Location, req.Latitude, req.Longitude, req.ImageURL)

		activity, err := scanActivity(row)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Activity already exists at this destination"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
			return
		}

		c.JSON(http.StatusCreated, activity)
	}
}

// ListActivities returns activities with optional filters
func ListActivities(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := paginationParams(c)

		query := `SELECT ` + activityColumns + ` FROM activities WHERE 1=1`
		params := []interface{}{}
		paramCount := 0

		if destination := c.Query("destination_id"); destination != "" {
			paramCount++
			query += fmt.Sprintf(" AND destination_id = $%d", paramCount)
			params = append(params, destination)
		}
		if category := c.Query("category"); category != "" {
			paramCount++
			query += fmt.Sprintf(" AND category = $%d", paramCount)
			params = append(params, category)
		}
		if mustSee := c.Query("is_must_see"); mustSee != "" {
			paramCount++
			query += fmt.Sprintf(" AND is_must_see = $%d", paramCount)
			params = append(params, mustSee == "true")
		}

		paramCount++
		query += fmt.Sprintf(" ORDER BY id OFFSET $%d", paramCount)
		params = append(params, skip)
		paramCount++
		query += fmt.Sprintf(" LIMIT $%d", paramCount)
		params = append(params, limit)

		rows, err := db.Query(c.Request.Context(), query, params...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query activities"})
			return
		}
		defer rows.Close()

		activities := []models.Activity{}
		for rows.Next() {
			a, err := scanActivity(rows)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse activity data"})
				return
			}
			activities = append(activities, *a)
		}

		c.JSON(http.StatusOK, activities)
	}
}

// GetActivity returns one activity by ID
func GetActivity(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		row := db.QueryRow(c.Request.Context(),
			`SELECT `+activityColumns+` FROM activities WHERE id = $1`, id)
		activity, err := scanActivity(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query activity"})
			}
			return
		}

		c.JSON(http.StatusOK, activity)
	}
}

// UpdateActivity updates catalog fields on an activity (admin only)
func UpdateActivity(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		var req models.ActivityUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if req.Category != nil && !models.ValidActivityCategory(*req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid activity category: %s", *req.Category)})
			return
		}

		query := `UPDATE activities SET id = id`
		params := []interface{}{}
		paramCount := 0

		setField := func(column string, value interface{}) {
			paramCount++
			query += fmt.Sprintf(", %s = $%d", column, paramCount)
			params = append(params, value)
		}

		if req.Name != nil {
			setField("name", *req.Name)
		}
		if req.DestinationID != nil {
			setField("destination_id", *req.DestinationID)
		}
		if req.Category != nil {
			setField("category", *req.Category)
		}
		if req.Description != nil {
			setField("description", *req.Description)
		}
		if req.DurationHours != nil {
			setField("duration_hours", *req.DurationHours)
		}
		if req.PriceRange != nil {
			setField("price_range", *req.PriceRange)
		}
		if req.IsMustSee != nil {
			setField("is_must_see", *req.IsMustSee)
		}
		if req.Location != nil {
			setField("location", *req.Location)
		}
		if req.Latitude != nil {
			setField("latitude", *req.Latitude)
		}
		if req.Longitude != nil {
			setField("longitude", *req.Longitude)
		}
		if req.ImageURL != nil {
			setField("image_url", *req.ImageURL)
		}

		paramCount++
		query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", paramCount, activityColumns)
		params = append(params, id)

		activity, err := scanActivity(db.QueryRow(c.Request.Context(), query, params...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
				return
			}
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23503") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity data"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
			return
		}

		c.JSON(http.StatusOK, activity)
	}
}

// DeleteActivity removes an activity from the catalog (admin only)
func DeleteActivity(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		tag, err := db.Exec(c.Request.Context(), `DELETE FROM activities WHERE id = $1`, id)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Activity is referenced by an itinerary and cannot be deleted"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
