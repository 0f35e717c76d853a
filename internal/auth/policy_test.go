package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanModifyItinerary(t *testing.T) {
	owner := int64(10)
	tests := []struct {
		name    string
		ownerID *int64
		actor   *Claims
		want    bool
	}{
		{"no actor", &owner, nil, false},
		{"owner modifies own", &owner, &Claims{UserID: 10, Role: "user"}, true},
		{"other user denied", &owner, &Claims{UserID: 11, Role: "user"}, false},
		{"admin modifies anything", &owner, &Claims{UserID: 99, Role: "admin"}, true},
		{"unowned open to any user", nil, &Claims{UserID: 5, Role: "user"}, true},
		{"unowned still needs an actor", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanModifyItinerary(tt.ownerID, tt.actor))
		})
	}
}
