package models

import "time"

// RefreshToken is one outstanding renewal credential. A record is consumed
// (deleted) by exactly one rotation or logout.
type RefreshToken struct {
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
