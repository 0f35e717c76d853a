package models

import "encoding/json"

// Accommodation types accepted by the catalog
const (
	AccommodationHotel      = "hotel"
	AccommodationResort     = "resort"
	AccommodationVilla      = "villa"
	AccommodationGuesthouse = "guesthouse"
	AccommodationHostel     = "hostel"
)

// Accommodation represents a hotel, resort, or other place to stay
type Accommodation struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	DestinationID int64           `json:"destination_id" db:"destination_id"`
	Type          string          `json:"type" db:"type"`
	Description   *string         `json:"description,omitempty" db:"description"`
	Address       *string         `json:"address,omitempty" db:"address"`
	Stars         *float64        `json:"stars,omitempty" db:"stars"`
	PriceCategory int             `json:"price_category" db:"price_category"`
	Latitude      *float64        `json:"latitude,omitempty" db:"latitude"`
	Longitude     *float64        `json:"longitude,omitempty" db:"longitude"`
	Amenities     json.RawMessage `json:"amenities,omitempty" db:"amenities"`
	ImageURL      *string         `json:"image_url,omitempty" db:"image_url"`
}

// AccommodationCreateRequest is the request body for POST /accommodations
type AccommodationCreateRequest struct {
	Name          string          `json:"name" binding:"required"`
	DestinationID int64           `json:"destination_id" binding:"required"`
	Type          string          `json:"type" binding:"required"`
	Description   *string         `json:"description,omitempty"`
	Address       *string         `json:"address,omitempty"`
	Stars         *float64        `json:"stars,omitempty"`
	PriceCategory int             `json:"price_category" binding:"required"`
	Latitude      *float64        `json:"latitude,omitempty"`
	Longitude     *float64        `json:"longitude,omitempty"`
	Amenities     json.RawMessage `json:"amenities,omitempty"`
	ImageURL      *string         `json:"image_url,omitempty"`
}

// AccommodationUpdateRequest is the request body for PUT/PATCH /accommodations/:id
type AccommodationUpdateRequest struct {
	Name          *string         `json:"name,omitempty"`
	DestinationID *int64          `json:"destination_id,omitempty"`
	Type          *string         `json:"type,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Address       *string         `json:"address,omitempty"`
	Stars         *float64        `json:"stars,omitempty"`
	PriceCategory *int            `json:"price_category,omitempty"`
	Latitude      *float64        `json:"latitude,omitempty"`
	Longitude     *float64        `json:"longitude,omitempty"`
	Amenities     json.RawMessage `json:"amenities,omitempty"`
	ImageURL      *string         `json:"image_url,omitempty"`
}

// ValidAccommodationType reports whether t is a known accommodation type.
func ValidAccommodationType(t string) bool {
	switch t {
	case AccommodationHotel, AccommodationResort, AccommodationVilla,
		AccommodationGuesthouse, AccommodationHostel:
		return true
	}
	return false
}
