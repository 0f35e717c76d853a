package repository

import (
	"testing"

	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/stretchr/testify/require"
)

func TestValidateDayCount(t *testing.T) {
	require.NoError(t, ValidateDayCount(3, 4))
	require.NoError(t, ValidateDayCount(1, 2))

	require.ErrorIs(t, ValidateDayCount(3, 3), ErrDaysMismatch)
	require.ErrorIs(t, ValidateDayCount(3, 5), ErrDaysMismatch)
	require.ErrorIs(t, ValidateDayCount(1, 0), ErrDaysMismatch)
}

func TestDayNumbersContiguous(t *testing.T) {
	mk := func(numbers ...int) []models.ItineraryDay {
		days := make([]models.ItineraryDay, 0, len(numbers))
		for _, n := range numbers {
			days = append(days, models.ItineraryDay{DayNumber: n})
		}
		return days
	}

	require.True(t, DayNumbersContiguous(mk()))
	require.True(t, DayNumbersContiguous(mk(1)))
	require.True(t, DayNumbersContiguous(mk(1, 2, 3, 4)))

	require.False(t, DayNumbersContiguous(mk(2, 3)))
	require.False(t, DayNumbersContiguous(mk(1, 3)))
	require.False(t, DayNumbersContiguous(mk(1, 1, 2)))
}
