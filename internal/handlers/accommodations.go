package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accommodationColumns = `id, name, destination_id, type, description, address,
	stars, price_category, latitude, longitude, amenities::text, image_url`

func scanAccommodation(row pgx.Row) (*models.Accommodation, error) {
	var a models.Accommodation
	var amenities *string
	err := row.Scan(&a.ID, &a.Name, &a.DestinationID, &a.Type, &a.Description, &a.Address,
		&a.Stars, &a.PriceCategory, &a.Latitude, &a.Longitude, &amenities, &a.ImageURL)
	if err != nil {
		return nil, err
	}
	if amenities != nil {
		a.Amenities = json.RawMessage(*amenities)
	}
	return &a, nil
}

func amenitiesParam(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	return &s
}

// CreateAccommodation adds an accommodation to the catalog (admin only)
func CreateAccommodation(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AccommodationCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if !models.ValidAccommodationType(req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid accommodation type: %s", req.Type)})
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
			INSERT INTO accommodations (name, destination_id, type, description, address, stars, price_category, latitude, longitude, amenities, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11)
			RETURNING `+accommodationColumns,
			req.Name, req.DestinationID, req.Type, req.Description, req.Address,
			req.Stars, req.PriceCategory, req.Latitude, req.Longitude,
			amenitiesParam(req.Amenities), req.ImageURL)

		accommodation, err := scanAccommodation(row)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case "23505":
					c.JSON(http.StatusBadRequest, gin.H{"error": "Accommodation already exists at this destination"})
					return
				case "23514":
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stars or price category"})
					return
				}
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create accommodation"})
			return
		}

		c.JSON(http.StatusCreated, accommodation)
	}
}

// ListAccommodations returns accommodations with optional filters
func ListAccommodations(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := paginationParams(c)

		query := `SELECT ` + accommodationColumns + ` FROM accommodations WHERE 1=1`
		params := []interface{}{}
		paramCount := 0

		if destination := c.Query("destination_id"); destination != "" {
			paramCount++
			query += fmt.Sprintf(" AND destination_id = $%d", paramCount)
			params = append(params, destination)
		}
		if accType := c.Query("type"); accType != "" {
			paramCount++
			query += fmt.Sprintf(" AND type = $%d", paramCount)
			params = append(params, accType)
		}
		if minPrice := c.Query("min_price_category"); minPrice != "" {
			paramCount++
			query += fmt.Sprintf(" AND price_category >= $%d", paramCount)
			params = append(params, minPrice)
		}
		if maxPrice := c.Query("max_price_category"); maxPrice != "" {
			paramCount++
			query += fmt.Sprintf(" AND price_category <= $%d", paramCount)
			params = append(params, maxPrice)
		}
		if minStars := c.Query("min_stars"); minStars != "" {
			paramCount++
			query += fmt.Sprintf(" AND stars >= $%d", paramCount)
			params = append(params, minStars)
		}

		paramCount++
		query += fmt.Sprintf(" ORDER BY id OFFSET $%d", paramCount)
		params = append(params, skip)
		paramCount++
		query += fmt.Sprintf(" LIMIT $%d", paramCount)
		params = append(params, limit)

		rows, err := db.Query(c.Request.Context(), query, params...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query accommodations"})
			return
		}
		defer rows.Close()

		accommodations := []models.Accommodation{}
		for rows.Next() {
			a, err := scanAccommodation(rows)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse accommodation data"})
				return
			}
			accommodations = append(accommodations, *a)
		}

		c.JSON(http.StatusOK, accommodations)
	}
}

// GetAccommodation returns one accommodation by ID
func GetAccommodation(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		row := db.QueryRow(c.Request.Context(),
			`SELECT `+accommodationColumns+` FROM accommodations WHERE id = $1`, id)
		accommodation, err := scanAccommodation(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query accommodation"})
			}
			return
		}

		c.JSON(http.StatusOK, accommodation)
	}
}

// UpdateAccommodation updates catalog fields on an accommodation (admin only)
func UpdateAccommodation(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		var req models.AccommodationUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if req.Type != nil && !models.ValidAccommodationType(*req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid accommodation type: %s", *req.Type)})
			return
		}

		query := `UPDATE accommodations SET id = id`
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
		if req.Type != nil {
			setField("type", *req.Type)
		}
		if req.Description != nil {
			setField("description", *req.Description)
		}
		if req.Address != nil {
			setField("address", *req.Address)
		}
		if req.Stars != nil {
			setField("stars", *req.Stars)
		}
		if req.PriceCategory != nil {
			setField("price_category", *req.PriceCategory)
		}
		if req.Latitude != nil {
			setField("latitude", *req.Latitude)
		}
		if req.Longitude != nil {
			setField("longitude", *req.Longitude)
		}
		if len(req.Amenities) > 0 {
			paramCount++
			query += fmt.Sprintf(", amenities = $%d::jsonb", paramCount)
			params = append(params, string(req.Amenities))
		}
		if req.ImageURL != nil {
			setField("image_url", *req.ImageURL)
		}

		paramCount++
		query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", paramCount, accommodationColumns)
		params = append(params, id)

		accommodation, err := scanAccommodation(db.QueryRow(c.Request.Context(), query, params...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
				return
			}
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23514" || pgErr.Code == "23503") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid accommodation data"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update accommodation"})
			return
		}

		c.JSON(http.StatusOK, accommodation)
	}
}

// DeleteAccommodation removes an accommodation from the catalog (admin only)
func DeleteAccommodation(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		tag, err := db.Exec(c.Request.Context(), `DELETE FROM accommodations WHERE id = $1`, id)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Accommodation is referenced by an itinerary and cannot be deleted"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete accommodation"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
