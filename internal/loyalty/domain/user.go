package domain

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string     // argon2 encoded
	Points       int64      // cumulative balance, never negative
	LastCheckin  *time.Time // nil until the first successful check-in
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CheckedInOn reports whether the user's last check-in falls on the given
// UTC calendar date. At most one check-in counts per date.
func (u User) CheckedInOn(day time.Time) bool {
	if u.LastCheckin == nil {
		return false
	}
	y1, m1, d1 := u.LastCheckin.UTC().Date()
	y2, m2, d2 := day.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
