package repository

import "errors"

// Domain errors surfaced by the itinerary repository. Handlers translate
// these into HTTP statuses; storage-level details never cross this boundary.
var (
	ErrItineraryNotFound     = errors.New("itinerary not found")
	ErrDayNotFound           = errors.New("invalid day number for this itinerary")
	ErrDayAlreadyExists      = errors.New("day already exists for this itinerary")
	ErrDaysMismatch          = errors.New("number of days does not match the duration nights")
	ErrDestinationNotFound   = errors.New("destination not found")
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrActivityNotFound      = errors.New("activity not found")
	ErrTransferNotFound      = errors.New("transfer not found")
	ErrNotAuthorized         = errors.New("you are not authorized to perform this action")
)
