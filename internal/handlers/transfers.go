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

const transferColumns = `id, name, origin_id, destination_id, type, duration_hours, description, price_range`

func scanTransfer(row pgx.Row) (*models.Transfer, error) {
	var t models.Transfer
	err := row.Scan(&t.ID, &t.Name, &t.OriginID, &t.DestinationID, &t.Type,
		&t.DurationHours, &t.Description, &t.PriceRange)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTransfer adds a transfer route to the catalog (admin only)
func CreateTransfer(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TransferCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if !models.ValidTransportType(req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid transport type: %s", req.Type)})
			return
		}
		if req.OriginID == req.DestinationID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Origin and destination must differ"})
			return
		}

		row := db.QueryRow(c.Request.Context(), `
			INSERT INTO transfers (name, origin_id, destination_id, type, duration_hours, description, price_range)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+transferColumns,
			req.Name, req.OriginID, req.DestinationID, req.Type,
			req.DurationHours, req.Description, req.PriceRange)

		transfer, err := scanTransfer(row)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case "23503":
					c.JSON(http.StatusNotFound, gin.H{"error": "Origin or destination not found"})
					return
				case "23505":
					c.JSON(http.StatusBadRequest, gin.H{"error": "Transfer already exists for this route"})
					return
				}
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transfer"})
			return
		}

		c.JSON(http.StatusCreated, transfer)
	}
}

// ListTransfers returns transfers with optional route filters
func ListTransfers(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := paginationParams(c)

		query := `SELECT ` + transferColumns + ` FROM transfers WHERE 1=1`
		params := []interface{}{}
		paramCount := 0

		if origin := c.Query("origin_id"); origin != "" {
			paramCount++
			query += fmt.Sprintf(" AND origin_id = $%d", paramCount)
			params = append(params, origin)
		}
		if destination := c.Query("destination_id"); destination != "" {
			paramCount++
			query += fmt.Sprintf(" AND destination_id = $%d", paramCount)
			params = append(params, destination)
		}
		if transportType := c.Query("type"); transportType != "" {
			paramCount++
			query += fmt.Sprintf(" AND type = $%d", paramCount)
			params = append(params, transportType)
		}

		paramCount++
		query += fmt.Sprintf(" ORDER BY id OFFSET $%d", paramCount)
		params = append(params, skip)
		paramCount++
		query += fmt.Sprintf(" LIMIT $%d", paramCount)
		params = append(params, limit)

		rows, err := db.Query(c.Request.Context(), query, params...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query transfers"})
			return
		}
		defer rows.Close()

		transfers := []models.Transfer{}
		for rows.Next() {
			t, err := scanTransfer(rows)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse transfer data"})
				return
			}
			transfers = append(transfers, *t)
		}

		c.JSON(http.StatusOK, transfers)
	}
}

// GetTransfer returns one transfer by ID
func GetTransfer(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		row := db.QueryRow(c.Request.Context(),
			`SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
		transfer, err := scanTransfer(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query transfer"})
			}
			return
		}

		c.JSON(http.StatusOK, transfer)
	}
}

// UpdateTransfer updates catalog fields on a transfer (admin only)
func UpdateTransfer(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		var req models.TransferUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if req.Type != nil && !models.ValidTransportType(*req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid transport type: %s", *req.Type)})
			return
		}

		query := `UPDATE transfers SET id = id`
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
		if req.OriginID != nil {
			setField("origin_id", *req.OriginID)
		}
		if req.DestinationID != nil {
			setField("destination_id", *req.DestinationID)
		}
		if req.Type != nil {
			setField("type", *req.Type)
		}
		if req.DurationHours != nil {
			setField("duration_hours", *req.DurationHours)
		}
		if req.Description != nil {
			setField("description", *req.Description)
		}
		if req.PriceRange != nil {
			setField("price_range", *req.PriceRange)
		}

		paramCount++
		query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", paramCount, transferColumns)
		params = append(params, id)

		transfer, err := scanTransfer(db.QueryRow(c.Request.Context(), query, params...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
				return
			}
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23503") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transfer data"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transfer"})
			return
		}

		c.JSON(http.StatusOK, transfer)
	}
}

// DeleteTransfer removes a transfer from the catalog (admin only)
func DeleteTransfer(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		tag, err := db.Exec(c.Request.Context(), `DELETE FROM transfers WHERE id = $1`, id)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Transfer is referenced by an itinerary and cannot be deleted"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transfer"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
