package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/jackc/pgx/v5"
)

const itinerarySelectColumns = `id, uuid, title, duration_nights, is_recommended,
	description, preferences::text, total_estimated_cost, user_id, created_at, updated_at`

// scanItinerary reads one itinerary row from a pgx.Row or pgx.Rows.
func scanItinerary(row pgx.Row) (*models.Itinerary, error) {
	var it models.Itinerary
	var prefs *string

	err := row.Scan(
		&it.ID, &it.UUID, &it.Title, &it.DurationNights, &it.IsRecommended,
		&it.Description, &prefs, &it.TotalEstimatedCost, &it.UserID,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if prefs != nil {
		if err := json.Unmarshal([]byte(*prefs), &it.Preferences); err != nil {
			return nil, fmt.Errorf("failed to decode preferences: %w", err)
		}
	}
	return &it, nil
}

// loadItinerary loads the full aggregate: the itinerary row plus every day
// with its resolved accommodations, activities, and transfers.
func loadItinerary(ctx context.Context, q querier, where string, arg interface{}) (*models.Itinerary, error) {
	it, err := scanItinerary(q.QueryRow(ctx, `SELECT `+itinerarySelectColumns+` FROM itineraries WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItineraryNotFound
		}
		return nil, fmt.Errorf("failed to query itinerary: %w", err)
	}

	days, err := loadDays(ctx, q, it.ID)
	if err != nil {
		return nil, err
	}
	it.Days = days
	return it, nil
}

func loadDays(ctx context.Context, q querier, itineraryID int64) ([]models.ItineraryDay, error) {
	rows, err := q.Query(ctx, `
		SELECT id, itinerary_id, day_number, main_destination_id, description
		FROM itinerary_days
		WHERE itinerary_id = $1
		ORDER BY day_number
	`, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query itinerary days: %w", err)
	}
	defer rows.Close()

	days := []models.ItineraryDay{}
	for rows.Next() {
		var d models.ItineraryDay
		if err := rows.Scan(&d.ID, &d.ItineraryID, &d.DayNumber, &d.MainDestinationID, &d.Description); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range days {
		if err := loadDayAssociations(ctx, q, &days[i]); err != nil {
			return nil, err
		}
	}
	return days, nil
}

// loadDay loads a single day with its associations.
func loadDay(ctx context.Context, q querier, dayID int64) (*models.ItineraryDay, error) {
	var d models.ItineraryDay
	err := q.QueryRow(ctx, `
		SELECT id, itinerary_id, day_number, main_destination_id, description
		FROM itinerary_days
		WHERE id = $1
	`, dayID).Scan(&d.ID, &d.ItineraryID, &d.DayNumber, &d.MainDestinationID, &d.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("failed to query itinerary day: %w", err)
	}

	if err := loadDayAssociations(ctx, q, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// loadDayAssociations resolves the day's catalog records. Activities and
// transfers come back in sort_order; equal orders keep insertion order.
func loadDayAssociations(ctx context.Context, q querier, day *models.ItineraryDay) error {
	accommodations, err := loadDayAccommodations(ctx, q, day.ID)
	if err != nil {
		return err
	}
	day.Accommodations = accommodations

	activities, err := loadDayActivities(ctx, q, day.ID)
	if err != nil {
		return err
	}
	day.Activities = activities

	transfers, err := loadDayTransfers(ctx, q, day.ID)
	if err != nil {
		return err
	}
	day.Transfers = transfers

	return nil
}

func loadDayAccommodations(ctx context.Context, q querier, dayID int64) ([]models.Accommodation, error) {
	rows, err := q.Query(ctx, `
		SELECT a.id, a.name, a.destination_id, a.type, a.description, a.address,
			a.stars, a.price_category, a.latitude, a.longitude, a.amenities::text, a.image_url
		FROM itinerary_accommodation ia
		JOIN accommodations a ON a.id = ia.accommodation_id
		WHERE ia.itinerary_day_id = $1
		ORDER BY a.id
	`, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to query day accommodations: %w", err)
	}
	defer rows.Close()

	accommodations := []models.Accommodation{}
	for rows.Next() {
		var a models.Accommodation
		var amenities *string
		err := rows.Scan(
			&a.ID, &a.Name, &a.DestinationID, &a.Type, &a.Description, &a.Address,
			&a.Stars, &a.PriceCategory, &a.Latitude, &a.Longitude, &amenities, &a.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan accommodation: %w", err)
		}
		if amenities != nil {
			a.Amenities = json.RawMessage(*amenities)
		}
		accommodations = append(accommodations, a)
	}
	return accommodations, rows.Err()
}

func loadDayActivities(ctx context.Context, q querier, dayID int64) ([]models.DayActivity, error) {
	rows, err := q.Query(ctx, `
		SELECT a.id, a.name, a.destination_id, a.category, a.description,
			a.duration_hours, a.price_range, a.is_must_see, a.location,
			a.latitude, a.longitude, a.image_url,
			to_char(ia.start_time, 'HH24:MI:SS'), to_char(ia.end_time, 'HH24:MI:SS'), ia.sort_order
		FROM itinerary_activity ia
		JOIN activities a ON a.id = ia.activity_id
		WHERE ia.itinerary_day_id = $1
		ORDER BY ia.sort_order, ia.seq
	`, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to query day activities: %w", err)
	}
	defer rows.Close()

	activities := []models.DayActivity{}
	for rows.Next() {
		var a models.DayActivity
		err := rows.Scan(
			&a.ID, &a.Name, &a.DestinationID, &a.Category, &a.Description,
			&a.DurationHours, &a.PriceRange, &a.IsMustSee, &a.Location,
			&a.Latitude, &a.Longitude, &a.ImageURL,
			&a.StartTime, &a.EndTime, &a.Order,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func loadDayTransfers(ctx context.Context, q querier, dayID int64) ([]models.DayTransfer, error) {
	rows, err := q.Query(ctx, `
		SELECT t.id, t.name, t.origin_id, t.destination_id, t.type,
			t.duration_hours, t.description, t.price_range, it.sort_order
		FROM itinerary_transfer it
		JOIN transfers t ON t.id = it.transfer_id
		WHERE it.itinerary_day_id = $1
		ORDER BY it.sort_order, it.seq
	`, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to query day transfers: %w", err)
	}
	defer rows.Close()

	transfers := []models.DayTransfer{}
	for rows.Next() {
		var t models.DayTransfer
		err := rows.Scan(
			&t.ID, &t.Name, &t.OriginID, &t.DestinationID, &t.Type,
			&t.DurationHours, &t.Description, &t.PriceRange, &t.Order,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day transfer: %w", err)
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}
