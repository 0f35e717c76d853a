package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTravelQuery_Nights(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"I want a 5-night trip to Phuket", 5},
		{"plan a 4 night stay", 4},
		{"going away for 7 nights", 7},
		{"a 3-day trip around Krabi", 2},
		{"we have 6 days in Thailand", 5},
	}
	for _, tt := range tests {
		q := parseTravelQuery(tt.text)
		require.NotNil(t, q.Nights, tt.text)
		require.Equal(t, tt.want, *q.Nights, tt.text)
	}
}

func TestParseTravelQuery_NoNights(t *testing.T) {
	q := parseTravelQuery("somewhere warm with beaches please")
	require.Nil(t, q.Nights)
}

func TestParseTravelQuery_Destination(t *testing.T) {
	q := parseTravelQuery("plan a trip to Phuket, ideally relaxed")
	require.NotNil(t, q.Destination)
	require.Equal(t, "Phuket", *q.Destination)

	q = parseTravelQuery("thinking of visiting Krabi Town.")
	require.NotNil(t, q.Destination)
	require.Equal(t, "Krabi Town", *q.Destination)
}

func TestParseTravelQuery_Budget(t *testing.T) {
	q := parseTravelQuery("a cheap getaway")
	require.NotNil(t, q.Budget)
	require.Equal(t, "low", *q.Budget)

	q = parseTravelQuery("looking for a luxury resort holiday")
	require.NotNil(t, q.Budget)
	require.Equal(t, "high", *q.Budget)

	q = parseTravelQuery("something mid-range would be fine")
	require.NotNil(t, q.Budget)
	require.Equal(t, "medium", *q.Budget)

	q = parseTravelQuery("whatever works")
	require.Nil(t, q.Budget)
}

func TestLastUserMessageText(t *testing.T) {
	text, ok := lastUserMessageText([]MCPMessage{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "sure"},
		{Role: "user", Content: "3 nights in Krabi"},
	})
	require.True(t, ok)
	require.Equal(t, "3 nights in Krabi", text)
}

func TestLastUserMessageText_ContentBlocks(t *testing.T) {
	text, ok := lastUserMessageText([]MCPMessage{
		{Role: "user", Content: []interface{}{
			map[string]interface{}{"type": "image", "url": "x"},
			map[string]interface{}{"type": "text", "text": "5 nights please"},
		}},
	})
	require.True(t, ok)
	require.Equal(t, "5 nights please", text)
}

func TestLastUserMessageText_NoUserMessage(t *testing.T) {
	_, ok := lastUserMessageText([]MCPMessage{{Role: "system", Content: "hi"}})
	require.False(t, ok)
}

func TestFormatItinerariesText_Empty(t *testing.T) {
	text := formatItinerariesText(nil, 4, nil)
	require.Contains(t, text, "couldn't find any recommended itineraries for 4 nights")
}
