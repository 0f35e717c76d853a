package handlers

import (
	"net/http"
	"strconv"

	"github.com/devHarshShah/itinerary/internal/middleware"
	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/devHarshShah/itinerary/internal/repository"
	"github.com/gin-gonic/gin"
)

func dayNumberParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("day_number"))
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day number"})
		return 0, false
	}
	return n, true
}

// AddItineraryDay appends or inserts a day; adding past the current end
// extends the itinerary's duration
func AddItineraryDay(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		var req models.ItineraryDayCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		claims, _ := middleware.GetAuthClaims(c)
		day, err := repo.AddDay(c.Request.Context(), id, req, claims)
		if err != nil {
			repoError(c, err)
			return
		}

		c.JSON(http.StatusCreated, day.ToResponse())
	}
}

// UpdateItineraryDay updates one day addressed by day number. Omitted
// association lists are left untouched; a provided list replaces the prior
// set.
func UpdateItineraryDay(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		dayNumber, ok := dayNumberParam(c)
		if !ok {
			return
		}

		var req models.ItineraryDayUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		claims, _ := middleware.GetAuthClaims(c)
		day, err := repo.UpdateDay(c.Request.Context(), id, dayNumber, req, claims)
		if err != nil {
			repoError(c, err)
			return
		}

		c.JSON(http.StatusOK, day.ToResponse())
	}
}

// DeleteItineraryDay removes a day and renumbers the days after it
func DeleteItineraryDay(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		dayNumber, ok := dayNumberParam(c)
		if !ok {
			return
		}

		claims, _ := middleware.GetAuthClaims(c)
		if err := repo.DeleteDay(c.Request.Context(), id, dayNumber, claims); err != nil {
			repoError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
