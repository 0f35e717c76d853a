package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/devHarshShah/itinerary/internal/auth"
	"github.com/devHarshShah/itinerary/internal/database"
	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// These tests need a real PostgreSQL instance. Set TEST_DATABASE_URL to run
// them; they wipe every table first.

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.InitSchema(ctx, pool))

	tables := []string{
		"itinerary_transfer", "itinerary_activity", "itinerary_accommodation",
		"itinerary_days", "itineraries",
		"transfers", "activities", "accommodations", "destinations", "users",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}
	return pool
}

type catalogIDs struct {
	phuket, krabi        int64
	hotel, hostel        int64
	snorkeling, climbing int64
	ferry                int64
}

func seedCatalog(t *testing.T, pool *pgxpool.Pool) catalogIDs {
	t.Helper()
	ctx := context.Background()
	var ids catalogIDs

	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO destinations (name, region, country) VALUES ('Patong Beach', 'Phuket', 'Thailand') RETURNING id
	`).Scan(&ids.phuket))
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO destinations (name, region, country) VALUES ('Railay Beach', 'Krabi', 'Thailand') RETURNING id
	`).Scan(&ids.krabi))

	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO accommodations (name, destination_id, type, price_category)
		VALUES ('Bay Hotel', $1, 'hotel', 3) RETURNING id
	`, ids.phuket).Scan(&ids.hotel))
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO accommodations (name, destination_id, type, price_category)
		VALUES ('Beach Hostel', $1, 'hostel', 1) RETURNING id
	`, ids.krabi).Scan(&ids.hostel))

	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO activities (name, destination_id, category, duration_hours)
		VALUES ('Snorkeling Trip', $1, 'water_activity', 4) RETURNING id
	`, ids.phuket).Scan(&ids.snorkeling))
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO activities (name, destination_id, category, duration_hours)
		VALUES ('Rock Climbing', $1, 'adventure', 4) RETURNING id
	`, ids.krabi).Scan(&ids.climbing))

	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO transfers (name, origin_id, destination_id, type, duration_hours)
		VALUES ('Island Ferry', $1, $2, 'ferry', 2) RETURNING id
	`, ids.phuket, ids.krabi).Scan(&ids.ferry))

	return ids
}

func strp(s string) *string { return &s }

func twoNightRequest(ids catalogIDs) models.ItineraryCreateRequest {
	return models.ItineraryCreateRequest{
		Title:          "Test Trip",
		DurationNights: 2,
		Days: []models.ItineraryDayCreateRequest{
			{
				DayNumber:         1,
				MainDestinationID: ids.phuket,
				Accommodations:    []int64{ids.hotel},
				Activities: []models.DayActivityInput{
					{ID: ids.snorkeling, StartTime: strp("09:00:00"), EndTime: strp("13:00:00"), Order: 1},
				},
			},
			{
				DayNumber:         2,
				MainDestinationID: ids.krabi,
				Accommodations:    []int64{ids.hostel},
				Transfers: []models.DayTransferInput{
					{ID: ids.ferry, Order: 1},
				},
			},
			{
				DayNumber:         3,
				MainDestinationID: ids.krabi,
				Activities: []models.DayActivityInput{
					{ID: ids.climbing, Order: 1},
				},
			},
		},
	}
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestCreate_DaysMismatch(t *testing.T) {
	pool := testPool(t)
	ids := seedCatalog(t, pool)
	repo := NewItineraryRepository(pool)

	req := twoNightRequest(ids)
	req.Days = req.Days[:2] // 2 nights needs 3 days

	_, err := repo.Create(context.Background(), req, nil)
	require.ErrorIs(t, err, ErrDaysMismatch)
	require.Zero(t, countRows(t, pool, "itineraries"))
}

func TestCreate_UnknownDestinationRollsBack(t *testing.T) {
	pool := testPool(t)
	ids := seedCatalog(t, pool)
	repo := NewItineraryRepository(pool)

	req := twoNightRequest(ids)
	req.Days[2].MainDestinationID = 999999

	_, err := repo.Create(context.Background(), req, nil)
	require.ErrorIs(t, err, ErrDestinationNotFound)

	// Nothing from the failed payload may survive, including earlier days
	require.Zero(t, countRows(t, pool, "itineraries"))
	require.Zero(t, countRows(t, pool, "itinerary_days"))
	require.Zero(t, countRows(t, pool, "itinerary_accommodation"))
}

func TestCreateAndGet_Roundtrip(t *testing.T) {
	pool := testPool(t)
	ids := seedCatalog(t, pool)
	repo := NewItineraryRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, twoNightRequest(ids), nil)
	require.NoError(t, err)
	require.Equal(t, 2, created.DurationNights)
	require.Len(t, created.Days, 3)
	require.Equal(t, 1, created.Days[0].DayNumber)
	require.Len(t, created.Days[0].Accommodations, 1)
	require.Len(t, created.Days[0].Activities, 1)
	require.Equal(t, "09:00:00", *created.Days[0].Activities[0].StartTime)
	require.Len(t, created.Days[1].Transfers, 1)

	// Fetching twice returns identical aggregates
	first, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)

	byUUID, err := repo.GetByUUID(ctx, created.UUID)
	require.NoError(t, err)
	require.Equal(t, created.ID, byUUID.ID)
}

func TestCreate_DuplicateAttachDeduplicated(t *testing.T) {
	pool := testPool(t)
	ids := seedCatalog(t, pool)
	repo := NewItineraryRepository(pool)

	req := twoNightRequest(ids)
	req.Days[0].Activities = append(req.Days[0].Activities,
		models.DayActivityInput{ID: ids.snorkeling, Order: 5})

	created, err := repo.Create(context.Background(), req, nil)
	require.NoError(t, err)
	require.Len(t, created.Days[0].Activities, 1)
}

func TestAddDay_ExtendsDuration(t *testing.T) {
	pool := testPool(t)
	ids := seedCatalog(t, pool)
	repo := NewItineraryRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, twoNightRequest(ids), nil)
	require.NoError(t, err)

	day, err := repo.AddDay(ctx, created.ID, models.ItineraryDayCreateRequest{
		DayNumber:         4,
		MainDestinationID: ids.krabi,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 4, day.DayNumber)

	updated, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 3, updated.DurationNights)
	require.Len(t, updated.Days, 4)
	require.True(t, DayNumbersContiguous(updated.Days))
}

func TestAddDay_DuplicateNumber(t *testing.T) {
	pool := testPool(t)
	ids := seedCatalog(t, pool)
	repo := NewItineraryRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, twoNightRequest(ids), nil)
	require.NoError(t, err)

	_, err = repo.AddDay(ctx, created.ID, models.ItineraryDayCreateRequest{
		DayNumber:         2,
		MainDestinationID: ids.phuket,
	}, nil)
	require.ErrorIs(t, err, ErrDayAlreadyExists)
}

func TestDeleteDay_RenumbersAndShrinks(t *testing.T) {
	pool := testPool(t)
	ids := seedCatalog(t, pool)
	repo := NewItineraryRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, twoNightRequest(ids), nil)
	require.NoError(t, err)

	// Delete the middle day; day 3 becomes day 2
	require.NoError(t, repo.DeleteDay(ctx, created.ID, 2, nil))

	updated, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 1, updated.DurationNights)
	require.Len(t, updated.Days, 2)
	require.True(t, DayNumbersContiguous(updated.Days))
	// The former day 3 kept its content
	require.Len(t, updated.Days[1].Activities, 1)
	require.Equal(t, ids.climbing, updated.Days[1].Activities[0].ID)

	require.ErrorIs(t, repo.DeleteDay(ctx, created.ID, 5, nil), ErrDayNotFound)
}

func TestUpdateDay_PartialSemantics(t *testing.T) {
	pool := testPool(t)
	ids := seedCatalog(t, pool)
	repo := NewItineraryRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, twoNightRequest(ids), nil)
	require.NoError(t, err)

	// Description only: association lists stay untouched
	day, err := repo.UpdateDay(ctx, created.ID, 1, models.ItineraryDayUpdateRequest{
		Description: strp("updated"),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "updated", *day.Description)
	require.Len(t, day.Accommodations, 1)
	require.Len(t, day.Activities, 1)

	// An empty provided list clears the relation
	empty := []models.DayActivityInput{}
	day, err = repo.UpdateDay(ctx, created.ID, 1, models.ItineraryDayUpdateRequest{
		Activities: &empty,
	}, nil)
	require.NoError(t, err)
	require.Empty(t, day.Activities)
	require.Len(t, day.Accommodations, 1)

	// A provided list replaces the prior set wholesale
	replacement := []models.DayActivityInput{
		{ID: ids.climbing, StartTime: strp("14:00:00"), Order: 1},
	}
	day, err = repo.UpdateDay(ctx, created.ID, 1, models.ItineraryDayUpdateRequest{
		Activities: &replacement,
	}, nil)
	require.NoError(t, err)
	require.Len(t, day.Activities, 1)
	require.Equal(t, ids.climbing, day.Activities[0].ID)
	require.Equal(t, "14:00:00", *day.Activities[0].StartTime)

	_, err = repo.UpdateDay(ctx, created.ID, 9, models.ItineraryDayUpdateRequest{}, nil)
	require.ErrorIs(t, err, ErrDayNotFound)
}

func TestOwnership(t *testing.T) {
	pool := testPool(t)
	ids := seedCatalog(t, pool)
	repo := NewItineraryRepository(pool)
	ctx := context.Background()

	var ownerID int64
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO users (email, hashed_password, role) VALUES ('owner@example.com', 'x', 'user') RETURNING id
	`).Scan(&ownerID))

	owner := &auth.Claims{UserID: ownerID, Role: "user"}
	created, err := repo.Create(ctx, twoNightRequest(ids), owner)
	require.NoError(t, err)
	require.NotNil(t, created.UserID)
	require.Equal(t, ownerID, *created.UserID)

	stranger := &auth.Claims{UserID: ownerID + 1, Role: "user"}
	admin := &auth.Claims{UserID: ownerID + 2, Role: "admin"}
	title := "renamed"

	_, err = repo.Update(ctx, created.ID, models.ItineraryUpdateRequest{Title: &title}, stranger)
	require.ErrorIs(t, err, ErrNotAuthorized)

	_, err = repo.AddDay(ctx, created.ID, models.ItineraryDayCreateRequest{
		DayNumber: 4, MainDestinationID: ids.krabi,
	}, stranger)
	require.ErrorIs(t, err, ErrNotAuthorized)

	require.ErrorIs(t, repo.Delete(ctx, created.ID, stranger), ErrNotAuthorized)

	updated, err := repo.Update(ctx, created.ID, models.ItineraryUpdateRequest{Title: &title}, admin)
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Title)
}

func TestList_Filters(t *testing.T) {
	pool := testPool(t)
	ids := seedCatalog(t, pool)
	repo := NewItineraryRepository(pool)
	ctx := context.Background()

	first, err := repo.Create(ctx, twoNightRequest(ids), nil)
	require.NoError(t, err)

	phuketOnly := models.ItineraryCreateRequest{
		Title:          "Phuket Weekend",
		DurationNights: 1,
		Days: []models.ItineraryDayCreateRequest{
			{DayNumber: 1, MainDestinationID: ids.phuket},
			{DayNumber: 2, MainDestinationID: ids.phuket},
		},
	}
	second, err := repo.Create(ctx, phuketOnly, nil)
	require.NoError(t, err)

	recommended := true
	_, err = repo.Update(ctx, second.ID, models.ItineraryUpdateRequest{IsRecommended: &recommended}, nil)
	require.NoError(t, err)

	all, err := repo.List(ctx, 0, 100, models.ItineraryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	rec, err := repo.List(ctx, 0, 100, models.ItineraryFilter{IsRecommended: &recommended})
	require.NoError(t, err)
	require.Len(t, rec, 1)
	require.Equal(t, second.ID, rec[0].ID)

	min := 2
	long, err := repo.List(ctx, 0, 100, models.ItineraryFilter{MinNights: &min})
	require.NoError(t, err)
	require.Len(t, long, 1)
	require.Equal(t, first.ID, long[0].ID)

	// Krabi matches through any day, and each itinerary appears once
	krabi, err := repo.List(ctx, 0, 100, models.ItineraryFilter{DestinationID: &ids.krabi})
	require.NoError(t, err)
	require.Len(t, krabi, 1)
	require.Equal(t, first.ID, krabi[0].ID)

	phuket, err := repo.List(ctx, 0, 100, models.ItineraryFilter{DestinationID: &ids.phuket})
	require.NoError(t, err)
	require.Len(t, phuket, 2)
}
