package auth

// CanModifyItinerary decides whether the actor may mutate an itinerary.
// Admins may modify anything; owned itineraries are restricted to their
// owner; itineraries without an owner are open to any authenticated caller.
func CanModifyItinerary(ownerID *int64, actor *Claims) bool {
	if actor == nil {
		return false
	}
	if actor.Role == "admin" {
		return true
	}
	if ownerID == nil {
		return true
	}
	return *ownerID == actor.UserID
}
