package models

// Transport types accepted by the catalog
const (
	TransportFlight     = "flight"
	TransportFerry      = "ferry"
	TransportBus        = "bus"
	TransportPrivateCar = "private_car"
	TransportSharedVan  = "shared_van"
	TransportTaxi       = "taxi"
)

// Transfer represents transportation between two destinations
type Transfer struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	OriginID      int64   `json:"origin_id" db:"origin_id"`
	DestinationID int64   `json:"destination_id" db:"destination_id"`
	Type          string  `json:"type" db:"type"`
	DurationHours float64 `json:"duration_hours" db:"duration_hours"`
	Description   *string `json:"description,omitempty" db:"description"`
	PriceRange    *string `json:"price_range,omitempty" db:"price_range"`
}

// TransferCreateRequest is the request body for POST /transfers
type TransferCreateRequest struct {
	Name          string  `json:"name" binding:"required"`
	OriginID      int64   `json:"origin_id" binding:"required"`
	DestinationID int64   `json:"destination_id" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	DurationHours float64 `json:"duration_hours" binding:"required"`
	Description   *string `json:"description,omitempty"`
	PriceRange    *string `json:"price_range,omitempty"`
}

// TransferUpdateRequest is the request body for PUT/PATCH /transfers/:id
type TransferUpdateRequest struct {
	Name          *string  `json:"name,omitempty"`
	OriginID      *int64   `json:"origin_id,omitempty"`
	DestinationID *int64   `json:"destination_id,omitempty"`
	Type          *string  `json:"type,omitempty"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
	Description   *string  `json:"description,omitempty"`
	PriceRange    *string  `json:"price_range,omitempty"`
}

// ValidTransportType reports whether t is a known transport type.
func ValidTransportType(t string) bool {
	switch t {
	case TransportFlight, TransportFerry, TransportBus,
		TransportPrivateCar, TransportSharedVan, TransportTaxi:
		return true
	}
	return false
}
