package models

// Destination represents a geographic location available in the catalog
type Destination struct {
	ID          int64    `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Region      string   `json:"region" db:"region"`
	Country     string   `json:"country" db:"country"`
	Description *string  `json:"description,omitempty" db:"description"`
	Latitude    *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64 `json:"longitude,omitempty" db:"longitude"`
	ImageURL    *string  `json:"image_url,omitempty" db:"image_url"`
}

// DestinationCreateRequest is the request body for POST /destinations
type DestinationCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Region      string   `json:"region" binding:"required"`
	Country     string   `json:"country"`
	Description *string  `json:"description,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// DestinationUpdateRequest is the request body for PUT/PATCH /destinations/:id
type DestinationUpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Region      *string  `json:"region,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Description *string  `json:"description,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}
