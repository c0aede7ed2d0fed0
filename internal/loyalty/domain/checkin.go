package domain

import "time"

// CheckIn is an immutable record of a user's presence in the cafeteria
// queue. Created exactly once per successful code validation.
type CheckIn struct {
	ID           string
	UserID       string
	PointsEarned int64
	CreatedAt    time.Time
}
