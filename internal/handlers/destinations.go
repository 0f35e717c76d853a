package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const destinationColumns = `id, name, region, country, description, latitude, longitude, image_url`

func scanDestination(row pgx.Row) (*models.Destination, error) {
	var d models.Destination
	err := row.Scan(&d.ID, &d.Name, &d.Region, &d.Country, &d.Description,
		&d.Latitude, &d.Longitude, &d.ImageURL)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDestination adds a destination to the catalog (admin only)
func CreateDestination(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DestinationCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if req.Country == "" {
			req.Country = "Thailand"
		}

		row := db.QueryRow(c.Request.Context(), `
			INSERT INTO destinations (name, region, country, description, latitude, longitude, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+destinationColumns,
			req.Name, req.Region, req.Country, req.Description, req.Latitude, req.Longitude, req.ImageURL)

		destination, err := scanDestination(row)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Destination already exists in this region"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create destination"})
			return
		}

		c.JSON(http.StatusCreated, destination)
	}
}

// ListDestinations returns destinations with optional filters
func ListDestinations(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := paginationParams(c)

		query := `SELECT ` + destinationColumns + ` FROM destinations WHERE 1=1`
		params := []interface{}{}
		paramCount := 0

		if region := c.Query("region"); region != "" {
			paramCount++
			query += fmt.Sprintf(" AND LOWER(region) = LOWER($%d)", paramCount)
			params = append(params, region)
		}
		if country := c.Query("country"); country != "" {
			paramCount++
			query += fmt.Sprintf(" AND LOWER(country) = LOWER($%d)", paramCount)
			params = append(params, country)
		}
		if search := c.Query("search"); search != "" {
			paramCount++
			query += fmt.Sprintf(" AND (name ILIKE $%d OR region ILIKE $%d OR description ILIKE $%d)",
				paramCount, paramCount, paramCount)
			params = append(params, "%"+search+"%")
		}

		paramCount++
		query += fmt.Sprintf(" ORDER BY id OFFSET $%d", paramCount)
		params = append(params, skip)
		paramCount++
		query += fmt.Sprintf(" LIMIT $%d", paramCount)
		params = append(params, limit)

		rows, err := db.Query(c.Request.Context(), query, params...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query destinations"})
			return
		}
		defer rows.Close()

		destinations := []models.Destination{}
		for rows.Next() {
			d, err := scanDestination(rows)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse destination data"})
				return
			}
			destinations = append(destinations, *d)
		}

		c.JSON(http.StatusOK, destinations)
	}
}

// GetDestination returns one destination by ID
func GetDestination(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		row := db.QueryRow(c.Request.Context(),
			`SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id)
		destination, err := scanDestination(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query destination"})
			}
			return
		}

		c.JSON(http.StatusOK, destination)
	}
}

// UpdateDestination updates catalog fields on a destination (admin only)
func UpdateDestination(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		var req models.DestinationUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		query := `UPDATE destinations SET id = id`
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
		if req.Region != nil {
			setField("region", *req.Region)
		}
		if req.Country != nil {
			setField("country", *req.Country)
		}
		if req.Description != nil {
			setField("description", *req.Description)
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
		query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", paramCount, destinationColumns)
		params = append(params, id)

		destination, err := scanDestination(db.QueryRow(c.Request.Context(), query, params...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
				return
			}
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Destination already exists in this region"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update destination"})
			return
		}

		c.JSON(http.StatusOK, destination)
	}
}

// DeleteDestination removes a destination unless an itinerary day still
// references it (admin only)
func DeleteDestination(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		var inUse bool
		err := db.QueryRow(c.Request.Context(),
			`SELECT EXISTS(SELECT 1 FROM itinerary_days WHERE main_destination_id = $1)`, id).Scan(&inUse)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query destination usage"})
			return
		}
		if inUse {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Destination is referenced by an itinerary and cannot be deleted"})
			return
		}

		tag, err := db.Exec(c.Request.Context(), `DELETE FROM destinations WHERE id = $1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete destination"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// idParam parses a positive integer path parameter, responding 400 itself
// when the value is malformed.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s format", name)})
		return 0, false
	}
	return id, true
}

// paginationParams reads skip/limit query values with the API defaults.
func paginationParams(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return skip, limit
}
