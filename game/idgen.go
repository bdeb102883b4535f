package game

import "github.com/google/uuid"

// NewPlayerID mints a fresh eight character player id.
func NewPlayerID() string {
	return uuid.NewString()[:8]
}
