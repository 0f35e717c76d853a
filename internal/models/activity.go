package models

// Activity categories accepted by the catalog
const (
	ActivityNature        = "nature"
	ActivityAdventure     = "adventure"
	ActivityCultural      = "cultural"
	ActivityRelaxation    = "relaxation"
	ActivityFoodDrink     = "food_drink"
	ActivityEntertainment = "entertainment"
	ActivitySightseeing   = "sightseeing"
	ActivityWaterActivity = "water_activity"
)

// Activity represents a tour, excursion, or other bookable activity
type Activity struct {
	ID            int64    `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	DestinationID int64    `json:"destination_id" db:"destination_id"`
	Category      string   `json:"category" db:"category"`
	Description   *string  `json:"description,omitempty" db:"description"`
	DurationHours float64  `json:"duration_hours" db:"duration_hours"`
	PriceRange    *string  `json:"price_range,omitempty" db:"price_range"`
	IsMustSee     bool     `json:"is_must_see" db:"is_must_see"`
	Location      *string  `json:"location,omitempty" db:"location"`
	Latitude      *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude     *float64 `json:"longitude,omitempty" db:"longitude"`
	ImageURL      *string  `json:"image_url,omitempty" db:"image_url"`
}

// ActivityCreateRequest is the request body for POST /activities
type ActivityCreateRequest struct {
	Name          string   `json:"name" binding:"required"`
	DestinationID int64    `json:"destination_id" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	Description   *string  `json:"description,omitempty"`
	DurationHours float64  `json:"duration_hours" binding:"required"`
	PriceRange    *string  `json:"price_range,omitempty"`
	IsMustSee     bool     `json:"is_must_see"`
	Location      *string  `json:"location,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
}

// ActivityUpdateRequest is the request body for PUT/PATCH /activities/:id
type ActivityUpdateRequest struct {
	Name          *string  `json:"name,omitempty"`
	DestinationID *int64   `json:"destination_id,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Description   *string  `json:"description,omitempty"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
	PriceRange    *string  `json:"price_range,omitempty"`
	IsMustSee     *bool    `json:"is_must_see,omitempty"`
	Location      *string  `json:"location,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
}

// ValidActivityCategory reports whether c is a known activity category.
func ValidActivityCategory(c string) bool {
	switch c {
	case ActivityNature, ActivityAdventure, ActivityCultural, ActivityRelaxation,
		ActivityFoodDrink, ActivityEntertainment, ActivitySightseeing, ActivityWaterActivity:
		return true
	}
	return false
}
