package domain

import "time"

type Reward struct {
	ID          string
	Name        string
	Description string
	PointsCost  int64
	Stock       int64 // never negative
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
