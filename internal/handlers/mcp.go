package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/devHarshShah/itinerary/internal/models"
	"github.com/devHarshShah/itinerary/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const mcpModelID = "itinerary-recommender"
const defaultNights = 3

// MCPMessage is one chat message; content may be a plain string or a list
// of typed content blocks.
type MCPMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// MCPGenerateRequest is the body for POST /mcp/generate
type MCPGenerateRequest struct {
	Model       string       `json:"model" binding:"required"`
	Messages    []MCPMessage `json:"messages" binding:"required"`
	Temperature *float64     `json:"temperature,omitempty"`
	MaxTokens   *int         `json:"max_tokens,omitempty"`
	Stream      bool         `json:"stream,omitempty"`
}

// travelQuery holds the parameters extracted from a free-text request
type travelQuery struct {
	Nights      *int
	Destination *string
	Budget      *string
}

var nightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)[- ]night`),
	regexp.MustCompile(`(?i)(\d+) days`),
	regexp.MustCompile(`(?i)for (\d+) nights`),
	regexp.MustCompile(`(?i)(\d+)[- ]day trip`),
}

var destinationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)to ([A-Za-z\s]+?)(?:\.|,|\?|$)`),
	regexp.MustCompile(`(?i)in ([A-Za-z\s]+?)(?:\.|,|\?|$)`),
	regexp.MustCompile(`(?i)visit(?:ing)? ([A-Za-z\s]+?)(?:\.|,|\?|$)`),
}

var budgetKeywords = map[string][]string{
	"low":    {"cheap", "budget", "inexpensive", "affordable", "low cost", "economical"},
	"medium": {"moderate", "mid-range", "reasonable", "standard"},
	"high":   {"luxury", "expensive", "high-end", "premium", "deluxe"},
}

// parseTravelQuery extracts nights, destination, and budget hints from a
// free-text travel request. Day counts are converted to nights (days - 1)
// for the day-trip phrasing.
func parseTravelQuery(text string) travelQuery {
	var q travelQuery

	for i, pattern := range nightPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		// Patterns 1 and 3 are day-based
		if (i == 1 || i == 3) && n > 1 {
			n--
		}
		q.Nights = &n
		break
	}

	for _, pattern := range destinationPatterns {
		match := pattern.FindStringSubmatch(text)
		if match != nil {
			dest := strings.TrimSpace(match[1])
			q.Destination = &dest
			break
		}
	}

	lower := strings.ToLower(text)
	for _, level := range []string{"low", "medium", "high"} {
		for _, keyword := range budgetKeywords[level] {
			if strings.Contains(lower, keyword) {
				l := level
				q.Budget = &l
				break
			}
		}
		if q.Budget != nil {
			break
		}
	}

	return q
}

// lastUserMessageText pulls the text of the most recent user message,
// handling both string content and typed content blocks.
func lastUserMessageText(messages []MCPMessage) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != "user" {
			continue
		}
		switch content := messages[i].Content.(type) {
		case string:
			return content, true
		case []interface{}:
			for _, item := range content {
				block, ok := item.(map[string]interface{})
				if !ok {
					continue
				}
				if block["type"] == "text" {
					if text, ok := block["text"].(string); ok {
						return text, true
					}
				}
			}
			return "", true
		default:
			return "", true
		}
	}
	return "", false
}

// GetMCPModels lists the models this service exposes over MCP
func GetMCPModels() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"object": "list",
			"data": []gin.H{
				{
					"id":       mcpModelID,
					"object":   "model",
					"created":  1682777962,
					"owned_by": "itinerary-app",
					"capabilities": gin.H{
						"completion":      true,
						"chat_completion": true,
						"embeddings":      false,
					},
				},
			},
		})
	}
}

// recommendedWithFallback returns recommended itineraries for the exact
// night count, falling back to the nearest available duration. The second
// return value is the duration actually used when it differs from the
// request.
func recommendedWithFallback(c *gin.Context, repo *repository.ItineraryRepository, nights int) ([]models.Itinerary, *int, error) {
	recommended := true
	exact, err := repo.List(c.Request.Context(), 0, 100, models.ItineraryFilter{
		IsRecommended: &recommended,
		MinNights:     &nights,
		MaxNights:     &nights,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(exact) > 0 {
		return exact, nil, nil
	}

	all, err := repo.List(c.Request.Context(), 0, 100, models.ItineraryFilter{IsRecommended: &recommended})
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, nil
	}

	closest := all[0].DurationNights
	for _, it := range all[1:] {
		if abs(it.DurationNights-nights) < abs(closest-nights) {
			closest = it.DurationNights
		}
	}

	matched := []models.Itinerary{}
	for _, it := range all {
		if it.DurationNights == closest {
			matched = append(matched, it)
		}
	}
	return matched, &closest, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func formatItinerariesText(itineraries []models.Itinerary, requestedNights int, actualNights *int) string {
	if len(itineraries) == 0 {
		return fmt.Sprintf("I'm sorry, but I couldn't find any recommended itineraries for %d nights."+
			" We don't have any recommended itineraries available at the moment.", requestedNights)
	}

	var b strings.Builder
	if actualNights != nil {
		fmt.Fprintf(&b, "I couldn't find itineraries for exactly %d nights, "+
			"but I found some options for %d nights that you might like:", requestedNights, *actualNights)
	} else {
		fmt.Fprintf(&b, "Here are recommended itineraries for %d nights:", requestedNights)
	}

	for idx, it := range itineraries {
		fmt.Fprintf(&b, "\n\n%d. %s", idx+1, it.Title)
		fmt.Fprintf(&b, "\n   Duration: %d nights", it.DurationNights)
		if it.Description != nil {
			fmt.Fprintf(&b, "\n   Description: %s", *it.Description)
		}
		if it.TotalEstimatedCost != nil {
			fmt.Fprintf(&b, "\n   Estimated Cost: $%.2f", *it.TotalEstimatedCost)
		}
	}
	b.WriteString("\n\nYou can view full details of any itinerary by its ID.")
	return b.String()
}

// GenerateMCPCompletion answers an MCP generate request with recommended
// itineraries matched to the parsed travel query
func GenerateMCPCompletion(repo *repository.ItineraryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MCPGenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if req.Model != mcpModelID {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Model not supported: %s", req.Model)})
			return
		}

		text, found := lastUserMessageText(req.Messages)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No user message provided"})
			return
		}

		query := parseTravelQuery(text)
		nights := defaultNights
		if query.Nights != nil {
			nights = *query.Nights
		}

		itineraries, actualNights, err := recommendedWithFallback(c, repo, nights)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query itineraries"})
			return
		}

		textResponse := formatItinerariesText(itineraries, nights, actualNights)

		content := []gin.H{{"type": "text", "text": textResponse}}
		if len(itineraries) > 0 {
			data := make([]gin.H, 0, len(itineraries))
			for i := range itineraries {
				it := &itineraries[i]
				data = append(data, gin.H{
					"id":                   it.ID,
					"uuid":                 it.UUID,
					"title":                it.Title,
					"duration_nights":      it.DurationNights,
					"description":          it.Description,
					"total_estimated_cost": it.TotalEstimatedCost,
					"is_recommended":       it.IsRecommended,
					"preferences":          it.Preferences,
				})
			}
			content = append(content, gin.H{
				"type": "itinerary_data",
				"data": gin.H{
					"itineraries":      data,
					"requested_nights": nights,
					"actual_nights":    actualNights,
					"count":            len(itineraries),
				},
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"id":      fmt.Sprintf("mcp-%s-%s", req.Model, uuid.NewString()[:8]),
			"model":   req.Model,
			"created": time.Now().Unix(),
			"object":  "completion",
			"choices": []gin.H{
				{
					"index": 0,
					"message": gin.H{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
			"usage": gin.H{
				"prompt_tokens":     len(text),
				"completion_tokens": len(textResponse),
				"total_tokens":      len(text) + len(textResponse),
			},
		})
	}
}
