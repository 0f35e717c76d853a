package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/devHarshShah/itinerary/internal/middleware"
	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/devHarshShah/itinerary/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// repoError translates repository sentinels into HTTP responses. Catalog
// references that do not resolve are the client's fault, not ours.
func repoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrItineraryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
	case errors.Is(err, repository.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to modify this itinerary"})
	case errors.Is(err, repository.ErrDaysMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDayAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDayNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDestinationNotFound),
		errors.Is(err, repository.ErrAccommodationNotFound),
		errors.Is(err, repository.ErrActivityNotFound),
		errors.Is(err, repository.ErrTransferNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// CreateItinerary composes an itinerary with its full set of days in one
// transaction
func CreateItinerary(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ItineraryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		claims, _ := middleware.GetAuthClaims(c)
		itinerary, err := repo.Create(c.Request.Context(), req, claims)
		if err != nil {
			repoError(c, err)
			return
		}

		c.JSON(http.StatusCreated, itinerary.ToDetailResponse())
	}
}

// ListItineraries returns itinerary summaries with optional filters
func ListItineraries(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := paginationParams(c)

		var filter models.ItineraryFilter
		if v := c.Query("destination_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid destination_id"})
				return
			}
			filter.DestinationID = &id
		}
		if v := c.Query("min_nights"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_nights"})
				return
			}
			filter.MinNights = &n
		}
		if v := c.Query("max_nights"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_nights"})
				return
			}
			filter.MaxNights = &n
		}
		if v := c.Query("is_recommended"); v != "" {
			recommended := v == "true"
			filter.IsRecommended = &recommended
		}

		itineraries, err := repo.List(c.Request.Context(), skip, limit, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query itineraries"})
			return
		}

		responses := make([]models.ItineraryResponse, 0, len(itineraries))
		for i := range itineraries {
			responses = append(responses, itineraries[i].ToResponse())
		}
		c.JSON(http.StatusOK, responses)
	}
}

// GetRecommendedItineraries returns curated itineraries only
func GetRecommendedItineraries(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := paginationParams(c)

		recommended := true
		itineraries, err := repo.List(c.Request.Context(), skip, limit,
			models.ItineraryFilter{IsRecommended: &recommended})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query itineraries"})
			return
		}

		responses := make([]models.ItineraryResponse, 0, len(itineraries))
		for i := range itineraries {
			responses = append(responses, itineraries[i].ToResponse())
		}
		c.JSON(http.StatusOK, responses)
	}
}

// GetMyItineraries returns itineraries owned by the authenticated user
func GetMyItineraries(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetAuthUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		skip, limit := paginationParams(c)

		itineraries, err := repo.List(c.Request.Context(), skip, limit,
			models.ItineraryFilter{UserID: &userID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query itineraries"})
			return
		}

		responses := make([]models.ItineraryResponse, 0, len(itineraries))
		for i := range itineraries {
			responses = append(responses, itineraries[i].ToResponse())
		}
		c.JSON(http.StatusOK, responses)
	}
}

// GetItinerary returns the full aggregate by internal ID
func GetItinerary(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		itinerary, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			repoError(c, err)
			return
		}

		c.JSON(http.StatusOK, itinerary.ToDetailResponse())
	}
}

// GetItineraryByUUID resolves a shared itinerary link
func GetItineraryByUUID(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := uuid.Parse(c.Param("uuid"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid itinerary UUID"})
			return
		}

		itinerary, err := repo.GetByUUID(c.Request.Context(), u)
		if err != nil {
			repoError(c, err)
			return
		}

		c.JSON(http.StatusOK, itinerary.ToDetailResponse())
	}
}

// UpdateItinerary updates top-level itinerary fields. Days are managed
// through the day endpoints.
func UpdateItinerary(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		var req models.ItineraryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		claims, _ := middleware.GetAuthClaims(c)
		itinerary, err := repo.Update(c.Request.Context(), id, req, claims)
		if err != nil {
			repoError(c, err)
			return
		}

		c.JSON(http.StatusOK, itinerary.ToDetailResponse())
	}
}

// DeleteItinerary removes an itinerary and all of its days
func DeleteItinerary(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		claims, _ := middleware.GetAuthClaims(c)
		if err := repo.Delete(c.Request.Context(), id, claims); err != nil {
			repoError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
