package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestItineraryToDetailResponse(t *testing.T) {
	desc := "Island hopping"
	cost := 12000.0
	owner := int64(3)
	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	itinerary := Itinerary{
		ID:                 1,
		UUID:               uuid.MustParse("0d5a97b4-33a1-4f2c-8a4b-9f2c1d3e4a5b"),
		Title:              "Krabi Escape",
		DurationNights:     2,
		Description:        &desc,
		TotalEstimatedCost: &cost,
		UserID:             &owner,
		CreatedAt:          created,
		UpdatedAt:          created,
		Days: []ItineraryDay{
			{ID: 10, ItineraryID: 1, DayNumber: 1, MainDestinationID: 5},
			{ID: 11, ItineraryID: 1, DayNumber: 2, MainDestinationID: 5},
			{ID: 12, ItineraryID: 1, DayNumber: 3, MainDestinationID: 6},
		},
	}

	resp := itinerary.ToDetailResponse()
	require.Equal(t, "Krabi Escape", resp.Title)
	require.Equal(t, 2, resp.DurationNights)
	require.Equal(t, "2025-06-01T12:30:00Z", resp.CreatedAt)
	require.Len(t, resp.Days, 3)
	require.Equal(t, 1, resp.Days[0].DayNumber)
	require.Equal(t, 3, resp.Days[2].DayNumber)
}

func TestItineraryDayToResponse_EmptyAssociations(t *testing.T) {
	day := ItineraryDay{ID: 1, ItineraryID: 2, DayNumber: 1, MainDestinationID: 3}

	resp := day.ToResponse()
	require.NotNil(t, resp.Accommodations)
	require.NotNil(t, resp.Activities)
	require.NotNil(t, resp.Transfers)
	require.Empty(t, resp.Accommodations)
	require.Empty(t, resp.Activities)
	require.Empty(t, resp.Transfers)
}

func TestItineraryDayToResponse_PreservesOrder(t *testing.T) {
	start := "09:00:00"
	day := ItineraryDay{
		ID: 1, ItineraryID: 2, DayNumber: 1, MainDestinationID: 3,
		Activities: []DayActivity{
			{Activity: Activity{ID: 7, Name: "Snorkeling"}, StartTime: &start, Order: 1},
			{Activity: Activity{ID: 8, Name: "Viewpoint"}, Order: 2},
		},
		Transfers: []DayTransfer{
			{Transfer: Transfer{ID: 4, Name: "Ferry"}, Order: 1},
		},
	}

	resp := day.ToResponse()
	require.Len(t, resp.Activities, 2)
	require.Equal(t, "Snorkeling", resp.Activities[0].Name)
	require.Equal(t, 1, resp.Activities[0].Order)
	require.Equal(t, 2, resp.Activities[1].Order)
	require.Len(t, resp.Transfers, 1)
}

func TestValidCatalogEnums(t *testing.T) {
	require.True(t, ValidAccommodationType("hotel"))
	require.False(t, ValidAccommodationType("castle"))

	require.True(t, ValidActivityCategory("water_activity"))
	require.False(t, ValidActivityCategory("shopping"))

	require.True(t, ValidTransportType("ferry"))
	require.False(t, ValidTransportType("teleport"))
}
