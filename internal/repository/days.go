package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/devHarshShah/itinerary/internal/auth"
	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/jackc/pgx/v5"
)

// lockItinerary takes a row-level lock on the itinerary for the duration of
// the transaction. Every day-mutating operation goes through this so
// concurrent add/delete calls on the same itinerary serialize instead of
// interleaving their read-then-write steps.
func lockItinerary(ctx context.Context, tx pgx.Tx, itineraryID int64) (durationNights int, ownerID *int64, err error) {
	err = tx.QueryRow(ctx, `
		SELECT duration_nights, user_id
		FROM itineraries
		WHERE id = $1
		FOR UPDATE
	`, itineraryID).Scan(&durationNights, &ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, ErrItineraryNotFound
		}
		return 0, nil, fmt.Errorf("failed to lock itinerary: %w", err)
	}
	return durationNights, ownerID, nil
}

// AddDay appends a day to an existing itinerary. If the new day's number
// exceeds duration_nights+1 the itinerary's duration is extended so a trip
// can grow without a separate call.
func (r *ItineraryRepository) AddDay(ctx context.Context, itineraryID int64, req models.ItineraryDayCreateRequest, actor *auth.Claims) (*models.ItineraryDay, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	durationNights, ownerID, err := lockItinerary(ctx, tx, itineraryID)
	if err != nil {
		return nil, err
	}
	if !canModify(ownerID, actor) {
		return nil, ErrNotAuthorized
	}

	// Pre-check for a friendly error; the unique constraint on
	// (itinerary_id, day_number) remains the authoritative guard.
	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM itinerary_days WHERE itinerary_id = $1 AND day_number = $2)
	`, itineraryID, req.DayNumber).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDayAlreadyExists
	}

	dayID, err := createDay(ctx, tx, itineraryID, req)
	if err != nil {
		return nil, err
	}

	if req.DayNumber > durationNights+1 {
		_, err = tx.Exec(ctx, `
			UPDATE itineraries SET duration_nights = $1, updated_at = NOW() WHERE id = $2
		`, req.DayNumber-1, itineraryID)
		if err != nil {
			return nil, fmt.Errorf("failed to extend itinerary duration: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return loadDay(ctx, r.db, dayID)
}

// UpdateDay applies partial updates to one day. Nil fields stay untouched;
// each provided list fully replaces the day's prior set for that relation.
func (r *ItineraryRepository) UpdateDay(ctx context.Context, itineraryID int64, dayNumber int, req models.ItineraryDayUpdateRequest, actor *auth.Claims) (*models.ItineraryDay, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, ownerID, err := lockItinerary(ctx, tx, itineraryID)
	if err != nil {
		return nil, err
	}
	if !canModify(ownerID, actor) {
		return nil, ErrNotAuthorized
	}

	var dayID int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM itinerary_days WHERE itinerary_id = $1 AND day_number = $2
	`, itineraryID, dayNumber).Scan(&dayID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}

	if req.MainDestinationID != nil {
		if err := destinationExists(ctx, tx, *req.MainDestinationID); err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, `UPDATE itinerary_days SET main_destination_id = $1 WHERE id = $2`, *req.MainDestinationID, dayID)
		if err != nil {
			return nil, fmt.Errorf("failed to update day destination: %w", err)
		}
	}

	if req.Description != nil {
		_, err = tx.Exec(ctx, `UPDATE itinerary_days SET description = $1 WHERE id = $2`, *req.Description, dayID)
		if err != nil {
			return nil, fmt.Errorf("failed to update day description: %w", err)
		}
	}

	if req.Accommodations != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM itinerary_accommodation WHERE itinerary_day_id = $1`, dayID); err != nil {
			return nil, fmt.Errorf("failed to clear day accommodations: %w", err)
		}
		if err := attachAccommodations(ctx, tx, dayID, *req.Accommodations); err != nil {
			return nil, err
		}
	}

	if req.Activities != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM itinerary_activity WHERE itinerary_day_id = $1`, dayID); err != nil {
			return nil, fmt.Errorf("failed to clear day activities: %w", err)
		}
		if err := attachActivities(ctx, tx, dayID, *req.Activities); err != nil {
			return nil, err
		}
	}

	if req.Transfers != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM itinerary_transfer WHERE itinerary_day_id = $1`, dayID); err != nil {
			return nil, fmt.Errorf("failed to clear day transfers: %w", err)
		}
		if err := attachTransfers(ctx, tx, dayID, *req.Transfers); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return loadDay(ctx, r.db, dayID)
}

// DeleteDay removes a day, shifts every later day down by one, and
// decrements duration_nights. All of it commits atomically so a partially
// renumbered itinerary is never observable.
func (r *ItineraryRepository) DeleteDay(ctx context.Context, itineraryID int64, dayNumber int, actor *auth.Claims) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, ownerID, err := lockItinerary(ctx, tx, itineraryID)
	if err != nil {
		return err
	}
	if !canModify(ownerID, actor) {
		return ErrNotAuthorized
	}

	var dayID int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM itinerary_days WHERE itinerary_id = $1 AND day_number = $2
	`, itineraryID, dayNumber).Scan(&dayID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDayNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM itinerary_days WHERE id = $1`, dayID); err != nil {
		return fmt.Errorf("failed to delete itinerary day: %w", err)
	}

	// Renumber later days one at a time in ascending order so the unique
	// constraint on (itinerary_id, day_number) holds at every step.
	rows, err := tx.Query(ctx, `
		SELECT id FROM itinerary_days
		WHERE itinerary_id = $1 AND day_number > $2
		ORDER BY day_number ASC
	`, itineraryID, dayNumber)
	if err != nil {
		return fmt.Errorf("failed to query days to renumber: %w", err)
	}

	laterDayIDs := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan day id: %w", err)
		}
		laterDayIDs = append(laterDayIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range laterDayIDs {
		if _, err := tx.Exec(ctx, `UPDATE itinerary_days SET day_number = day_number - 1 WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to renumber day: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE itineraries SET duration_nights = duration_nights - 1, updated_at = NOW() WHERE id = $1
	`, itineraryID)
	if err != nil {
		return fmt.Errorf("failed to update itinerary duration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
