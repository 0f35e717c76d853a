package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements creates every table the API relies on. Statements are
// idempotent so running them on every startup is safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		first_name VARCHAR(100),
		last_name VARCHAR(100),
		hashed_password VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS destinations (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		region VARCHAR(100) NOT NULL,
		country VARCHAR(100) NOT NULL DEFAULT 'Thailand',
		description TEXT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		image_url VARCHAR(255),
		CONSTRAINT uq_destination_name_region UNIQUE (name, region)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_destination_region ON destinations (region)`,

	`CREATE TABLE IF NOT EXISTS accommodations (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		destination_id BIGINT NOT NULL REFERENCES destinations(id),
		type VARCHAR(20) NOT NULL,
		description TEXT,
		address VARCHAR(255),
		stars DOUBLE PRECISION,
		price_category INTEGER NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		amenities JSONB,
		image_url VARCHAR(255),
		CONSTRAINT uq_accommodation_name_destination UNIQUE (name, destination_id),
		CONSTRAINT check_valid_stars CHECK (stars >= 0 AND stars <= 5),
		CONSTRAINT check_valid_price_category CHECK (price_category >= 1 AND price_category <= 5)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accommodation_destination ON accommodations (destination_id)`,
	`CREATE INDEX IF NOT EXISTS idx_accommodation_type ON accommodations (type)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		destination_id BIGINT NOT NULL REFERENCES destinations(id),
		category VARCHAR(30) NOT NULL,
		description TEXT,
		duration_hours DOUBLE PRECISION NOT NULL,
		price_range VARCHAR(50),
		is_must_see BOOLEAN NOT NULL DEFAULT false,
		location VARCHAR(255),
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		image_url VARCHAR(255)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_destination ON activities (destination_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_category ON activities (category)`,

	`CREATE TABLE IF NOT EXISTS transfers (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		origin_id BIGINT NOT NULL REFERENCES destinations(id),
		destination_id BIGINT NOT NULL REFERENCES destinations(id),
		type VARCHAR(20) NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		description TEXT,
		price_range VARCHAR(50),
		CONSTRAINT check_different_locations CHECK (origin_id != destination_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transfer_origin ON transfers (origin_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transfer_destination ON transfers (destination_id)`,

	`CREATE TABLE IF NOT EXISTS itineraries (
		id BIGSERIAL PRIMARY KEY,
		uuid UUID NOT NULL UNIQUE,
		title VARCHAR(100) NOT NULL,
		duration_nights INTEGER NOT NULL,
		is_recommended BOOLEAN NOT NULL DEFAULT false,
		description TEXT,
		preferences JSONB,
		total_estimated_cost DOUBLE PRECISION,
		user_id BIGINT REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT check_valid_duration CHECK (duration_nights > 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_itinerary_recommended ON itineraries (is_recommended)`,
	`CREATE INDEX IF NOT EXISTS idx_itinerary_duration ON itineraries (duration_nights)`,

	`CREATE TABLE IF NOT EXISTS itinerary_days (
		id BIGSERIAL PRIMARY KEY,
		itinerary_id BIGINT NOT NULL REFERENCES itineraries(id) ON DELETE CASCADE,
		day_number INTEGER NOT NULL,
		main_destination_id BIGINT NOT NULL REFERENCES destinations(id),
		description TEXT,
		CONSTRAINT uq_itinerary_day_number UNIQUE (itinerary_id, day_number)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_itinerary_day_itinerary ON itinerary_days (itinerary_id)`,

	`CREATE TABLE IF NOT EXISTS itinerary_accommodation (
		itinerary_day_id BIGINT NOT NULL REFERENCES itinerary_days(id) ON DELETE CASCADE,
		accommodation_id BIGINT NOT NULL REFERENCES accommodations(id),
		PRIMARY KEY (itinerary_day_id, accommodation_id)
	)`,

	// seq is not part of the key; it records insertion order so duplicate
	// sort_order values resolve to the order the client sent them in.
	`CREATE TABLE IF NOT EXISTS itinerary_activity (
		itinerary_day_id BIGINT NOT NULL REFERENCES itinerary_days(id) ON DELETE CASCADE,
		activity_id BIGINT NOT NULL REFERENCES activities(id),
		start_time TIME,
		end_time TIME,
		sort_order INTEGER NOT NULL,
		seq BIGSERIAL,
		PRIMARY KEY (itinerary_day_id, activity_id)
	)`,

	`CREATE TABLE IF NOT EXISTS itinerary_transfer (
		itinerary_day_id BIGINT NOT NULL REFERENCES itinerary_days(id) ON DELETE CASCADE,
		transfer_id BIGINT NOT NULL REFERENCES transfers(id),
		sort_order INTEGER NOT NULL,
		seq BIGSERIAL,
		PRIMARY KEY (itinerary_day_id, transfer_id)
	)`,
}

// InitSchema creates all tables and indexes if they do not exist yet.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
