package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/devHarshShah/itinerary/internal/auth"
	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// ItineraryRepository owns the itinerary aggregate: the itinerary row, its
// days, and their association rows. Every mutation runs in one transaction;
// a partially written aggregate is never visible.
type ItineraryRepository struct {
	db *pgxpool.Pool
}

func NewItineraryRepository(db *pgxpool.Pool) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// canModify applies the ownership policy. A nil actor means a trusted
// internal caller (seeding) and skips the check entirely.
func canModify(ownerID *int64, actor *auth.Claims) bool {
	if actor == nil {
		return true
	}
	return auth.CanModifyItinerary(ownerID, actor)
}

func marshalPreferences(prefs map[string]interface{}) (*string, error) {
	if prefs == nil {
		return nil, nil
	}
	b, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preferences: %w", err)
	}
	s := string(b)
	return &s, nil
}

// Create inserts an itinerary together with all of its days and association
// rows. The whole payload commits atomically: any failed day or catalog
// lookup rolls everything back.
func (r *ItineraryRepository) Create(ctx context.Context, req models.ItineraryCreateRequest, actor *auth.Claims) (*models.Itinerary, error) {
	if err := ValidateDayCount(req.DurationNights, len(req.Days)); err != nil {
		return nil, err
	}

	prefs, err := marshalPreferences(req.Preferences)
	if err != nil {
		return nil, err
	}

	var ownerID *int64
	if actor != nil {
		id := actor.UserID
		ownerID = &id
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var itineraryID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO itineraries (uuid, title, duration_nights, description, preferences, total_estimated_cost, user_id)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
		RETURNING id
	`, uuid.New(), req.Title, req.DurationNights, req.Description, prefs, req.TotalEstimatedCost, ownerID).Scan(&itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert itinerary: %w", err)
	}

	for _, day := range req.Days {
		if _, err := createDay(ctx, tx, itineraryID, day); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetByID(ctx, itineraryID)
}

// GetByID loads the full aggregate by internal id.
func (r *ItineraryRepository) GetByID(ctx context.Context, id int64) (*models.Itinerary, error) {
	return loadItinerary(ctx, r.db, "id = $1", id)
}

// GetByUUID loads the full aggregate by its shareable identifier. The UUID
// is the only lookup key here so public links never carry internal ids.
func (r *ItineraryRepository) GetByUUID(ctx context.Context, u uuid.UUID) (*models.Itinerary, error) {
	return loadItinerary(ctx, r.db, "uuid = $1", u)
}

// List returns itinerary summaries without nested days. An itinerary
// matches the destination filter if any of its days targets that
// destination, not just the first one.
func (r *ItineraryRepository) List(ctx context.Context, skip, limit int, filter models.ItineraryFilter) ([]models.Itinerary, error) {
	query := `
		SELECT DISTINCT i.id, i.uuid, i.title, i.duration_nights, i.is_recommended,
			i.description, i.preferences::text, i.total_estimated_cost, i.user_id,
			i.created_at, i.updated_at
		FROM itineraries i
	`
	if filter.DestinationID != nil {
		query += ` JOIN itinerary_days d ON d.itinerary_id = i.id`
	}
	query += ` WHERE 1=1`

	params := []interface{}{}
	paramCount := 0

	if filter.IsRecommended != nil {
		paramCount++
		query += fmt.Sprintf(" AND i.is_recommended = $%d", paramCount)
		params = append(params, *filter.IsRecommended)
	}
	if filter.MinNights != nil {
		paramCount++
		query += fmt.Sprintf(" AND i.duration_nights >= $%d", paramCount)
		params = append(params, *filter.MinNights)
	}
	if filter.MaxNights != nil {
		paramCount++
		query += fmt.Sprintf(" AND i.duration_nights <= $%d", paramCount)
		params = append(params, *filter.MaxNights)
	}
	if filter.DestinationID != nil {
		paramCount++
		query += fmt.Sprintf(" AND d.main_destination_id = $%d", paramCount)
		params = append(params, *filter.DestinationID)
	}
	if filter.UserID != nil {
		paramCount++
		query += fmt.Sprintf(" AND i.user_id = $%d", paramCount)
		params = append(params, *filter.UserID)
	}

	paramCount++
	query += fmt.Sprintf(" ORDER BY i.id OFFSET $%d", paramCount)
	params = append(params, skip)
	paramCount++
	query += fmt.Sprintf(" LIMIT $%d", paramCount)
	params = append(params, limit)

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	itineraries := []models.Itinerary{}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, *it)
	}
	return itineraries, rows.Err()
}

// Update modifies top-level scalar fields only; days and associations are
// never touched here.
func (r *ItineraryRepository) Update(ctx context.Context, id int64, req models.ItineraryUpdateRequest, actor *auth.Claims) (*models.Itinerary, error) {
	var ownerID *int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM itineraries WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItineraryNotFound
		}
		return nil, err
	}
	if !canModify(ownerID, actor) {
		return nil, ErrNotAuthorized
	}

	query := `UPDATE itineraries SET updated_at = NOW()`
	params := []interface{}{}
	paramCount := 0

	if req.Title != nil {
		paramCount++
		query += fmt.Sprintf(", title = $%d", paramCount)
		params = append(params, *req.Title)
	}
	if req.Description != nil {
		paramCount++
		query += fmt.Sprintf(", description = $%d", paramCount)
		params = append(params, *req.Description)
	}
	if req.IsRecommended != nil {
		paramCount++
		query += fmt.Sprintf(", is_recommended = $%d", paramCount)
		params = append(params, *req.IsRecommended)
	}
	if req.Preferences != nil {
		prefs, err := marshalPreferences(req.Preferences)
		if err != nil {
			return nil, err
		}
		paramCount++
		query += fmt.Sprintf(", preferences = $%d::jsonb", paramCount)
		params = append(params, prefs)
	}
	if req.TotalEstimatedCost != nil {
		paramCount++
		query += fmt.Sprintf(", total_estimated_cost = $%d", paramCount)
		params = append(params, *req.TotalEstimatedCost)
	}

	paramCount++
	query += fmt.Sprintf(" WHERE id = $%d", paramCount)
	params = append(params, id)

	if _, err := r.db.Exec(ctx, query, params...); err != nil {
		return nil, fmt.Errorf("failed to update itinerary: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the itinerary; days and association rows go with it
// through the schema's ON DELETE CASCADE.
func (r *ItineraryRepository) Delete(ctx context.Context, id int64, actor *auth.Claims) error {
	var ownerID *int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM itineraries WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrItineraryNotFound
		}
		return err
	}
	if !canModify(ownerID, actor) {
		return ErrNotAuthorized
	}

	_, err = r.db.Exec(ctx, `DELETE FROM itineraries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	return nil
}

// createDay validates and persists one day with its association rows inside
// the caller's transaction. Duplicate activity/transfer references within
// one payload are silently deduplicated by the association primary key.
func createDay(ctx context.Context, tx pgx.Tx, itineraryID int64, req models.ItineraryDayCreateRequest) (int64, error) {
	if err := destinationExists(ctx, tx, req.MainDestinationID); err != nil {
		return 0, err
	}

	var dayID int64
	err := tx.QueryRow(ctx, `
		INSERT INTO itinerary_days (itinerary_id, day_number, main_destination_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, itineraryID, req.DayNumber, req.MainDestinationID, req.Description).Scan(&dayID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ErrDayAlreadyExists
		}
		return 0, fmt.Errorf("failed to insert itinerary day: %w", err)
	}

	if err := attachAccommodations(ctx, tx, dayID, req.Accommodations); err != nil {
		return 0, err
	}
	if err := attachActivities(ctx, tx, dayID, req.Activities); err != nil {
		return 0, err
	}
	if err := attachTransfers(ctx, tx, dayID, req.Transfers); err != nil {
		return 0, err
	}

	return dayID, nil
}

func attachAccommodations(ctx context.Context, tx pgx.Tx, dayID int64, ids []int64) error {
	for _, id := range ids {
		if err := accommodationExists(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO itinerary_accommodation (itinerary_day_id, accommodation_id)
			VALUES ($1, $2)
			ON CONFLICT (itinerary_day_id, accommodation_id) DO NOTHING
		`, dayID, id)
		if err != nil {
			return fmt.Errorf("failed to attach accommodation: %w", err)
		}
	}
	return nil
}

func attachActivities(ctx context.Context, tx pgx.Tx, dayID int64, entries []models.DayActivityInput) error {
	for _, entry := range entries {
		if err := activityExists(ctx, tx, entry.ID); err != nil {
			return err
		}
		// Time values are stored verbatim; start after end is accepted.
		_, err := tx.Exec(ctx, `
			INSERT INTO itinerary_activity (itinerary_day_id, activity_id, start_time, end_time, sort_order)
			VALUES ($1, $2, $3::time, $4::time, $5)
			ON CONFLICT (itinerary_day_id, activity_id) DO NOTHING
		`, dayID, entry.ID, entry.StartTime, entry.EndTime, entry.Order)
		if err != nil {
			return fmt.Errorf("failed to attach activity: %w", err)
		}
	}
	return nil
}

func attachTransfers(ctx context.Context, tx pgx.Tx, dayID int64, entries []models.DayTransferInput) error {
	for _, entry := range entries {
		if err := transferExists(ctx, tx, entry.ID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO itinerary_transfer (itinerary_day_id, transfer_id, sort_order)
			VALUES ($1, $2, $3)
			ON CONFLICT (itinerary_day_id, transfer_id) DO NOTHING
		`, dayID, entry.ID, entry.Order)
		if err != nil {
			return fmt.Errorf("failed to attach transfer: %w", err)
		}
	}
	return nil
}
