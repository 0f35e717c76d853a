package repository

import "github.com/devHarshShah/itinerary/internal/models"

// ValidateDayCount enforces the creation invariant: an N-night trip has
// exactly N+1 calendar days.
func ValidateDayCount(durationNights, dayCount int) error {
	if dayCount != durationNights+1 {
		return ErrDaysMismatch
	}
	return nil
}

// DayNumbersContiguous reports whether the days form a contiguous run
// 1..K with no gaps or duplicates. Days must be sorted by day number.
func DayNumbersContiguous(days []models.ItineraryDay) bool {
	for i := range days {
		if days[i].DayNumber != i+1 {
			return false
		}
	}
	return true
}
