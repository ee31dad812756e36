package domain

import (
	"github.com/google/uuid"
)

// Shift is owned by the rota system; the marketplace reads ownership and
// role policy from it and rewrites ownership on settlement. Only published
// shifts with an assigned owner are eligible for exchange.
type Shift struct {
	UUID      uuid.UUID `json:"uuid"`
	RoleID    int32     `json:"role_id"`
	Label     string    `json:"label"`
	Date      string    `json:"date"`
	Start     *string   `json:"start,omitempty"`
	End       *string   `json:"end,omitempty"`
	Published bool      `json:"published"`
	OwnerID   *int32    `json:"user_profile_id,omitempty"`
}
