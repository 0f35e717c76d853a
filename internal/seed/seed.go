// Package seed populates a database with sample catalog data and curated
// itineraries for the Phuket and Krabi regions.
package seed

import (
	"context"
	"fmt"

	"github.com/devHarshShah/itinerary/internal/logger"
	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/devHarshShah/itinerary/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// Run clears all tables and reseeds them. Itineraries are composed through
// the repository so the same invariants hold as for API-created ones.
func Run(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	if err := clearTables(ctx, pool); err != nil {
		return fmt.Errorf("clearing tables: %w", err)
	}
	log.Info("Cleared existing data")

	if err := createUsers(ctx, pool); err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	log.Info("Created user accounts")

	destinations, err := createDestinations(ctx, pool)
	if err != nil {
		return fmt.Errorf("seeding destinations: %w", err)
	}
	log.Info("Created destinations", "count", len(destinations))

	accommodations, err := createAccommodations(ctx, pool, destinations)
	if err != nil {
		return fmt.Errorf("seeding accommodations: %w", err)
	}
	activities, err := createActivities(ctx, pool, destinations)
	if err != nil {
		return fmt.Errorf("seeding activities: %w", err)
	}
	transfers, err := createTransfers(ctx, pool, destinations)
	if err != nil {
		return fmt.Errorf("seeding transfers: %w", err)
	}
	log.Info("Created catalog entries",
		"accommodations", len(accommodations),
		"activities", len(activities),
		"transfers", len(transfers))

	count, err := createItineraries(ctx, pool, destinations, accommodations, activities, transfers)
	if err != nil {
		return fmt.Errorf("seeding itineraries: %w", err)
	}
	log.Info("Created recommended itineraries", "count", count)

	return nil
}

func clearTables(ctx context.Context, pool *pgxpool.Pool) error {
	// Junction and dependent tables first
	tables := []string{
		"itinerary_transfer", "itinerary_activity", "itinerary_accommodation",
		"itinerary_days", "itineraries",
		"transfers", "activities", "accommodations", "destinations", "users",
	}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func createUsers(ctx context.Context, pool *pgxpool.Pool) error {
	users := []struct {
		email, password, firstName, lastName, role string
	}{
		{"admin@travelthailand.com", "Admin123!", "Admin", "User", models.RoleAdmin},
		{"john.doe@example.com", "Thailand2025!", "John", "Doe", models.RoleUser},
	}
	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO users (email, first_name, last_name, hashed_password, role, is_active)
			VALUES ($1, $2, $3, $4, $5, true)`,
			u.email, u.firstName, u.lastName, string(hashed), u.role)
		if err != nil {
			return err
		}
	}
	return nil
}

func createDestinations(ctx context.Context, pool *pgxpool.Pool) (map[string]int64, error) {
	destinations := []struct {
		name, region, description string
		lat, lng                  float64
	}{
		{"Patong Beach", "Phuket", "Phuket's most famous beach resort, a wide sandy beach lined with hotels, restaurants, and vendors.", 7.9016, 98.2987},
		{"Kata Beach", "Phuket", "A relaxed beach destination with white sand and clear water, popular for swimming and snorkeling.", 7.8206, 98.2987},
		{"Phuket Old Town", "Phuket", "The historical center of Phuket with Sino-Portuguese architecture, colorful buildings, and street art.", 7.8853, 98.3876},
		{"Karon Beach", "Phuket", "One of the longest beaches in Phuket with fine white sand and excellent swimming in the high season.", 7.8425, 98.2940},
		{"Ao Nang", "Krabi", "The main tourist hub of Krabi, with a beautiful beach lined with restaurants, shops, and accommodation.", 8.0317, 98.8220},
		{"Railay Beach", "Krabi", "A stunning peninsula accessible only by boat, famous for limestone cliffs, clear waters, and rock climbing.", 8.0119, 98.8372},
		{"Koh Phi Phi", "Krabi", "An archipelago of six islands with stunning beaches, coral reefs, and the famous Maya Bay.", 7.7407, 98.7784},
		{"Krabi Town", "Krabi", "The provincial capital with riverside views and markets, a gateway to Krabi's coastal attractions.", 8.0862, 98.9062},
	}

	ids := make(map[string]int64, len(destinations))
	for _, d := range destinations {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO destinations (name, region, country, description, latitude, longitude)
			VALUES ($1, $2, 'Thailand', $3, $4, $5)
			RETURNING id`,
			d.name, d.region, d.description, d.lat, d.lng).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[d.name] = id
	}
	return ids, nil
}

func createAccommodations(ctx context.Context, pool *pgxpool.Pool, destinations map[string]int64) (map[string]int64, error) {
	accommodations := []struct {
		name, destination, accType string
		stars                      float64
		priceCategory              int
		amenities                  string
	}{
		{"Patong Bay Resort", "Patong Beach", models.AccommodationResort, 4.5, 3, `["pool", "spa", "beach access", "wifi"]`},
		{"Patong Backpacker Hostel", "Patong Beach", models.AccommodationHostel, 3.0, 1, `["wifi", "shared kitchen"]`},
		{"Kata Palm Villa", "Kata Beach", models.AccommodationVilla, 5.0, 5, `["private pool", "butler", "wifi"]`},
		{"Kata Sea Breeze Hotel", "Kata Beach", models.AccommodationHotel, 4.0, 3, `["pool", "restaurant", "wifi"]`},
		{"Old Town Heritage Guesthouse", "Phuket Old Town", models.AccommodationGuesthouse, 3.5, 2, `["wifi", "breakfast"]`},
		{"Karon Sands Resort", "Karon Beach", models.AccommodationResort, 4.0, 4, `["pool", "kids club", "wifi"]`},
		{"Ao Nang Cliff View Hotel", "Ao Nang", models.AccommodationHotel, 4.0, 3, `["pool", "sea view", "wifi"]`},
		{"Railay Bay Bungalows", "Railay Beach", models.AccommodationResort, 4.5, 4, `["beachfront", "restaurant", "wifi"]`},
		{"Phi Phi Island Village", "Koh Phi Phi", models.AccommodationResort, 4.5, 4, `["pool", "dive center", "wifi"]`},
		{"Krabi River Guesthouse", "Krabi Town", models.AccommodationGuesthouse, 3.0, 1, `["wifi", "river view"]`},
	}

	ids := make(map[string]int64, len(accommodations))
	for _, a := range accommodations {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO accommodations (name, destination_id, type, stars, price_category, amenities)
			VALUES ($1, $2, $3, $4, $5, $6::jsonb)
			RETURNING id`,
			a.name, destinations[a.destination], a.accType, a.stars, a.priceCategory, a.amenities).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[a.name] = id
	}
	return ids, nil
}

func createActivities(ctx context.Context, pool *pgxpool.Pool, destinations map[string]int64) (map[string]int64, error) {
	activities := []struct {
		name, destination, category string
		durationHours               float64
		priceRange                  string
		mustSee                     bool
	}{
		{"Bangla Road Night Walk", "Patong Beach", models.ActivityEntertainment, 3, "free", false},
		{"Patong Surf Lesson", "Patong Beach", models.ActivityWaterActivity, 2, "1000-1500 THB", false},
		{"Kata Snorkeling Trip", "Kata Beach", models.ActivityWaterActivity, 4, "800-1200 THB", true},
		{"Big Buddha Viewpoint", "Kata Beach", models.ActivitySightseeing, 2, "free", true},
		{"Old Town Walking Tour", "Phuket Old Town", models.ActivityCultural, 3, "500 THB", true},
		{"Sunday Night Market", "Phuket Old Town", models.ActivityFoodDrink, 2, "free", false},
		{"Karon Beach Massage", "Karon Beach", models.ActivityRelaxation, 1.5, "300-500 THB", false},
		{"Four Islands Speedboat Tour", "Ao Nang", models.ActivityWaterActivity, 7, "1200-1800 THB", true},
		{"Railay Rock Climbing", "Railay Beach", models.ActivityAdventure, 4, "1500-2500 THB", true},
		{"Phra Nang Cave Beach", "Railay Beach", models.ActivityNature, 2, "free", true},
		{"Maya Bay Tour", "Koh Phi Phi", models.ActivityWaterActivity, 6, "1500-2500 THB", true},
		{"Phi Phi Viewpoint Hike", "Koh Phi Phi", models.ActivityAdventure, 2, "30 THB", true},
		{"Tiger Cave Temple", "Krabi Town", models.ActivityCultural, 3, "free", true},
		{"Krabi Night Market", "Krabi Town", models.ActivityFoodDrink, 2, "free", false},
	}

	ids := make(map[string]int64, len(activities))
	for _, a := range activities {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO activities (name, destination_id, category, duration_hours, price_range, is_must_see)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			a.name, destinations[a.destination], a.category, a.durationHours, a.priceRange, a.mustSee).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[a.name] = id
	}
	return ids, nil
}

func createTransfers(ctx context.Context, pool *pgxpool.Pool, destinations map[string]int64) (map[string]int64, error) {
	transfers := []struct {
		name, origin, destination, transport string
		durationHours                        float64
		priceRange                           string
	}{
		{"Patong to Kata Taxi", "Patong Beach", "Kata Beach", models.TransportTaxi, 0.5, "300-400 THB"},
		{"Patong to Old Town Taxi", "Patong Beach", "Phuket Old Town", models.TransportTaxi, 0.75, "400-500 THB"},
		{"Kata to Karon Taxi", "Kata Beach", "Karon Beach", models.TransportTaxi, 0.25, "200-300 THB"},
		{"Phuket to Ao Nang Van", "Phuket Old Town", "Ao Nang", models.TransportSharedVan, 3, "350-500 THB"},
		{"Ao Nang to Railay Longtail", "Ao Nang", "Railay Beach", models.TransportFerry, 0.25, "100-200 THB"},
		{"Ao Nang to Phi Phi Ferry", "Ao Nang", "Koh Phi Phi", models.TransportFerry, 2, "400-600 THB"},
		{"Phi Phi to Phuket Ferry", "Koh Phi Phi", "Patong Beach", models.TransportFerry, 2, "400-600 THB"},
		{"Krabi Town to Ao Nang Bus", "Krabi Town", "Ao Nang", models.TransportBus, 0.75, "60-100 THB"},
	}

	ids := make(map[string]int64, len(transfers))
	for _, t := range transfers {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO transfers (name, origin_id, destination_id, type, duration_hours, price_range)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			t.name, destinations[t.origin], destinations[t.destination], t.transport,
			t.durationHours, t.priceRange).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[t.name] = id
	}
	return ids, nil
}

func createItineraries(ctx context.Context, pool *pgxpool.Pool, destinations, accommodations, activities, transfers map[string]int64) (int, error) {
	repo := repository.NewItineraryRepository(pool)

	requests := []models.ItineraryCreateRequest{
		{
			Title:              "Phuket Beach Highlights",
			DurationNights:     3,
			Description:        strPtr("Four days across Phuket's best beaches and the old town."),
			Preferences:        map[string]interface{}{"pace": "relaxed", "style": "beach"},
			TotalEstimatedCost: floatPtr(18500),
			Days: []models.ItineraryDayCreateRequest{
				{
					DayNumber:         1,
					MainDestinationID: destinations["Patong Beach"],
					Description:       strPtr("Arrive and settle in at Patong."),
					Accommodations:    []int64{accommodations["Patong Bay Resort"]},
					Activities: []models.DayActivityInput{
						{ID: activities["Bangla Road Night Walk"], StartTime: strPtr("19:00:00"), EndTime: strPtr("22:00:00"), Order: 1},
					},
				},
				{
					DayNumber:         2,
					MainDestinationID: destinations["Kata Beach"],
					Description:       strPtr("Snorkeling and the Big Buddha viewpoint."),
					Accommodations:    []int64{accommodations["Kata Sea Breeze Hotel"]},
					Activities: []models.DayActivityInput{
						{ID: activities["Kata Snorkeling Trip"], StartTime: strPtr("09:00:00"), EndTime: strPtr("13:00:00"), Order: 1},
						{ID: activities["Big Buddha Viewpoint"], StartTime: strPtr("16:00:00"), EndTime: strPtr("18:00:00"), Order: 2},
					},
					Transfers: []models.DayTransferInput{
						{ID: transfers["Patong to Kata Taxi"], Order: 1},
					},
				},
				{
					DayNumber:         3,
					MainDestinationID: destinations["Phuket Old Town"],
					Description:       strPtr("Culture and street food in the old town."),
					Accommodations:    []int64{accommodations["Old Town Heritage Guesthouse"]},
					Activities: []models.DayActivityInput{
						{ID: activities["Old Town Walking Tour"], StartTime: strPtr("10:00:00"), EndTime: strPtr("13:00:00"), Order: 1},
						{ID: activities["Sunday Night Market"], StartTime: strPtr("18:00:00"), EndTime: strPtr("20:00:00"), Order: 2},
					},
					Transfers: []models.DayTransferInput{
						{ID: transfers["Patong to Old Town Taxi"], Order: 1},
					},
				},
				{
					DayNumber:         4,
					MainDestinationID: destinations["Karon Beach"],
					Description:       strPtr("A final morning at Karon before departure."),
					Activities: []models.DayActivityInput{
						{ID: activities["Karon Beach Massage"], StartTime: strPtr("10:00:00"), EndTime: strPtr("11:30:00"), Order: 1},
					},
				},
			},
		},
		{
			Title:              "Krabi Island Escape",
			DurationNights:     4,
			Description:        strPtr("Five days of islands, cliffs, and beaches around Krabi."),
			Preferences:        map[string]interface{}{"pace": "active", "style": "adventure"},
			TotalEstimatedCost: floatPtr(24000),
			Days: []models.ItineraryDayCreateRequest{
				{
					DayNumber:         1,
					MainDestinationID: destinations["Krabi Town"],
					Description:       strPtr("Arrive in Krabi Town, evening at the night market."),
					Accommodations:    []int64{accommodations["Krabi River Guesthouse"]},
					Activities: []models.DayActivityInput{
						{ID: activities["Krabi Night Market"], StartTime: strPtr("18:00:00"), EndTime: strPtr("20:00:00"), Order: 1},
					},
				},
				{
					DayNumber:         2,
					MainDestinationID: destinations["Ao Nang"],
					Description:       strPtr("Four islands speedboat tour from Ao Nang."),
					Accommodations:    []int64{accommodations["Ao Nang Cliff View Hotel"]},
					Activities: []models.DayActivityInput{
						{ID: activities["Four Islands Speedboat Tour"], StartTime: strPtr("08:00:00"), EndTime: strPtr("15:00:00"), Order: 1},
					},
					Transfers: []models.DayTransferInput{
						{ID: transfers["Krabi Town to Ao Nang Bus"], Order: 1},
					},
				},
				{
					DayNumber:         3,
					MainDestinationID: destinations["Railay Beach"],
					Description:       strPtr("Rock climbing and Phra Nang cave beach."),
					Accommodations:    []int64{accommodations["Railay Bay Bungalows"]},
					Activities: []models.DayActivityInput{
						{ID: activities["Railay Rock Climbing"], StartTime: strPtr("09:00:00"), EndTime: strPtr("13:00:00"), Order: 1},
						{ID: activities["Phra Nang Cave Beach"], StartTime: strPtr("15:00:00"), EndTime: strPtr("17:00:00"), Order: 2},
					},
					Transfers: []models.DayTransferInput{
						{ID: transfers["Ao Nang to Railay Longtail"], Order: 1},
					},
				},
				{
					DayNumber:         4,
					MainDestinationID: destinations["Koh Phi Phi"],
					Description:       strPtr("Ferry to Phi Phi, Maya Bay tour."),
					Accommodations:    []int64{accommodations["Phi Phi Island Village"]},
					Activities: []models.DayActivityInput{
						{ID: activities["Maya Bay Tour"], StartTime: strPtr("10:00:00"), EndTime: strPtr("16:00:00"), Order: 1},
					},
					Transfers: []models.DayTransferInput{
						{ID: transfers["Ao Nang to Phi Phi Ferry"], Order: 1},
					},
				},
				{
					DayNumber:         5,
					MainDestinationID: destinations["Koh Phi Phi"],
					Description:       strPtr("Viewpoint hike before heading home."),
					Activities: []models.DayActivityInput{
						{ID: activities["Phi Phi Viewpoint Hike"], StartTime: strPtr("07:00:00"), EndTime: strPtr("09:00:00"), Order: 1},
					},
				},
			},
		},
	}

	for _, req := range requests {
		itinerary, err := repo.Create(ctx, req, nil)
		if err != nil {
			return 0, err
		}
		// Created through the public path; promote to recommended afterwards
		_, err = pool.Exec(ctx, `UPDATE itineraries SET is_recommended = true WHERE id = $1`, itinerary.ID)
		if err != nil {
			return 0, err
		}
	}
	return len(requests), nil
}
