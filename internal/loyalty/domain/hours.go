package domain

import "time"

// The cafeteria clock runs a fixed +8h ahead of the feed's UTC timestamps.
// Kept as a plain offset since the upstream data does the same arithmetic;
// no DST applies.
const cafeteriaUTCOffset = 8 * time.Hour

// Serving window, inclusive on the minute: 11:45 .. 12:50 cafeteria time.
const (
	openHour    = 11
	openMinute  = 45
	closeHour   = 12
	closeMinute = 50
)

// OpenAt reports whether the cafeteria accepts check-ins at the given
// instant. Pure; the caller supplies real or simulated time.
func OpenAt(t time.Time) bool {
	local := t.Add(cafeteriaUTCOffset)
	h, m := local.Hour(), local.Minute()

	switch h {
	case openHour:
		return m >= openMinute
	case closeHour:
		return m <= closeMinute
	default:
		return false
	}
}
