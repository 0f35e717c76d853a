package models

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is a named trip plan owning an ordered set of days. The UUID is
// the shareable identifier for public links; the integer ID stays internal.
type Itinerary struct {
	ID                 int64                  `json:"id" db:"id"`
	UUID               uuid.UUID              `json:"uuid" db:"uuid"`
	Title              string                 `json:"title" db:"title"`
	DurationNights     int                    `json:"duration_nights" db:"duration_nights"`
	IsRecommended      bool                   `json:"is_recommended" db:"is_recommended"`
	Description        *string                `json:"description,omitempty" db:"description"`
	Preferences        map[string]interface{} `json:"preferences,omitempty" db:"preferences"`
	TotalEstimatedCost *float64               `json:"total_estimated_cost,omitempty" db:"total_estimated_cost"`
	UserID             *int64                 `json:"user_id,omitempty" db:"user_id"`
	CreatedAt          time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at" db:"updated_at"`
	Days               []ItineraryDay         `json:"days,omitempty"`
}

// ItineraryDay is one calendar day within an itinerary. Day numbers form a
// contiguous run starting at 1 with no gaps.
type ItineraryDay struct {
	ID                int64           `json:"id" db:"id"`
	ItineraryID       int64           `json:"itinerary_id" db:"itinerary_id"`
	DayNumber         int             `json:"day_number" db:"day_number"`
	MainDestinationID int64           `json:"main_destination_id" db:"main_destination_id"`
	Description       *string         `json:"description,omitempty" db:"description"`
	Accommodations    []Accommodation `json:"accommodations"`
	Activities        []DayActivity   `json:"activities"`
	Transfers         []DayTransfer   `json:"transfers"`
}

// DayActivity is an activity attached to a day together with its
// per-association time slot and display order.
type DayActivity struct {
	Activity
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Order     int     `json:"order"`
}

// DayTransfer is a transfer attached to a day with its display order.
type DayTransfer struct {
	Transfer
	Order int `json:"order"`
}

// ========== Request shapes ==========

// DayActivityInput references an activity with its time slot and order
type DayActivityInput struct {
	ID        int64   `json:"id" binding:"required"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Order     int     `json:"order"`
}

// DayTransferInput references a transfer with its order
type DayTransferInput struct {
	ID    int64 `json:"id" binding:"required"`
	Order int   `json:"order"`
}

// ItineraryDayCreateRequest is one day of a creation payload, or the body
// for POST /itineraries/:id/days
type ItineraryDayCreateRequest struct {
	DayNumber         int                `json:"day_number" binding:"required,min=1"`
	MainDestinationID int64              `json:"main_destination_id" binding:"required"`
	Description       *string            `json:"description,omitempty"`
	Accommodations    []int64            `json:"accommodations"`
	Activities        []DayActivityInput `json:"activities"`
	Transfers         []DayTransferInput `json:"transfers"`
}

// ItineraryDayUpdateRequest is the body for PUT /itineraries/:id/days/:day_number.
// Nil fields are left untouched; a provided list fully replaces the prior set.
type ItineraryDayUpdateRequest struct {
	MainDestinationID *int64              `json:"main_destination_id,omitempty"`
	Description       *string             `json:"description,omitempty"`
	Accommodations    *[]int64            `json:"accommodations,omitempty"`
	Activities        *[]DayActivityInput `json:"activities,omitempty"`
	Transfers         *[]DayTransferInput `json:"transfers,omitempty"`
}

// ItineraryCreateRequest is the body for POST /itineraries
type ItineraryCreateRequest struct {
	Title              string                      `json:"title" binding:"required"`
	DurationNights     int                         `json:"duration_nights" binding:"required,min=1"`
	Description        *string                     `json:"description,omitempty"`
	Preferences        map[string]interface{}      `json:"preferences,omitempty"`
	TotalEstimatedCost *float64                    `json:"total_estimated_cost,omitempty"`
	Days               []ItineraryDayCreateRequest `json:"days" binding:"required"`
}

// ItineraryUpdateRequest is the body for PUT/PATCH /itineraries/:id.
// Only top-level scalar fields; days are managed through the day endpoints.
type ItineraryUpdateRequest struct {
	Title              *string                `json:"title,omitempty"`
	Description        *string                `json:"description,omitempty"`
	IsRecommended      *bool                  `json:"is_recommended,omitempty"`
	Preferences        map[string]interface{} `json:"preferences,omitempty"`
	TotalEstimatedCost *float64               `json:"total_estimated_cost,omitempty"`
}

// ItineraryFilter captures the supported list filters
type ItineraryFilter struct {
	DestinationID *int64
	MinNights     *int
	MaxNights     *int
	IsRecommended *bool
	UserID        *int64
}

// ========== Response shapes ==========

// ItineraryResponse is the lightweight summary used by list endpoints
type ItineraryResponse struct {
	ID                 int64                  `json:"id"`
	UUID               uuid.UUID              `json:"uuid"`
	Title              string                 `json:"title"`
	DurationNights     int                    `json:"duration_nights"`
	IsRecommended      bool                   `json:"is_recommended"`
	Description        *string                `json:"description,omitempty"`
	Preferences        map[string]interface{} `json:"preferences,omitempty"`
	TotalEstimatedCost *float64               `json:"total_estimated_cost,omitempty"`
	UserID             *int64                 `json:"user_id,omitempty"`
	CreatedAt          string                 `json:"created_at"`
	UpdatedAt          string                 `json:"updated_at"`
}

// ItineraryDayResponse carries the resolved catalog records for one day,
// each activity/transfer with its per-association metadata.
type ItineraryDayResponse struct {
	ID                int64           `json:"id"`
	ItineraryID       int64           `json:"itinerary_id"`
	DayNumber         int             `json:"day_number"`
	MainDestinationID int64           `json:"main_destination_id"`
	Description       *string         `json:"description,omitempty"`
	Accommodations    []Accommodation `json:"accommodations"`
	Activities        []DayActivity   `json:"activities"`
	Transfers         []DayTransfer   `json:"transfers"`
}

// ItineraryDetailResponse is the full aggregate with nested days
type ItineraryDetailResponse struct {
	ItineraryResponse
	Days []ItineraryDayResponse `json:"days"`
}

// ToResponse projects an itinerary into its summary response shape.
func (i *Itinerary) ToResponse() ItineraryResponse {
	return ItineraryResponse{
		ID:                 i.ID,
		UUID:               i.UUID,
		Title:              i.Title,
		DurationNights:     i.DurationNights,
		IsRecommended:      i.IsRecommended,
		Description:        i.Description,
		Preferences:        i.Preferences,
		TotalEstimatedCost: i.TotalEstimatedCost,
		UserID:             i.UserID,
		CreatedAt:          i.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          i.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ToDetailResponse projects the full aggregate, days in day-number order.
// It is a pure mapping: no lookups, no persistence.
func (i *Itinerary) ToDetailResponse() ItineraryDetailResponse {
	days := make([]ItineraryDayResponse, 0, len(i.Days))
	for idx := range i.Days {
		days = append(days, i.Days[idx].ToResponse())
	}
	return ItineraryDetailResponse{
		ItineraryResponse: i.ToResponse(),
		Days:              days,
	}
}

// ToResponse projects a single day with its resolved associations.
func (d *ItineraryDay) ToResponse() ItineraryDayResponse {
	accommodations := d.Accommodations
	if accommodations == nil {
		accommodations = []Accommodation{}
	}
	activities := d.Activities
	if activities == nil {
		activities = []DayActivity{}
	}
	transfers := d.Transfers
	if transfers == nil {
		transfers = []DayTransfer{}
	}
	return ItineraryDayResponse{
		ID:                d.ID,
		ItineraryID:       d.ItineraryID,
		DayNumber:         d.DayNumber,
		MainDestinationID: d.MainDestinationID,
		Description:       d.Description,
		Accommodations:    accommodations,
		Activities:        activities,
		Transfers:         transfers,
	}
}
