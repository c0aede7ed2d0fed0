package domain

import (
	"math"
	"time"
)

// Queue event actions as they appear in the feed.
const (
	QueueEnter = "enter"
	QueueExit  = "exit"
)

// PerPersonServiceTime is the assumed time to serve one person in the queue.
const PerPersonServiceTime = 2 * time.Minute

// QueueEvent is one row of the external enter/exit feed. Read-only input,
// not owned by this service.
type QueueEvent struct {
	Time   time.Time
	Action string
}

// QueueStatus is the estimator output the clients poll.
type QueueStatus struct {
	Length   int
	WaitTime time.Duration
	Open     bool
}

// EstimatedWaitMinutes reports the wait as fractional minutes, rounded to
// one decimal, matching the feed clients' display contract.
func (s QueueStatus) EstimatedWaitMinutes() float64 {
	return math.Round(s.WaitTime.Minutes()*10) / 10
}

// QueueLength computes the current queue length from a time-ordered event
// sequence: running signed sum of enters (+1) and exits (-1), with the final
// value clamped to zero. Unknown actions contribute nothing.
func QueueLength(events []QueueEvent) int {
	length := 0
	for _, ev := range events {
		switch ev.Action {
		case QueueEnter:
			length++
		case QueueExit:
			length--
		}
	}
	return max(length, 0)
}

// EstimateWait derives the expected time in queue from its length.
func EstimateWait(length int) time.Duration {
	if length <= 0 {
		return 0
	}
	return time.Duration(length) * PerPersonServiceTime
}

// PointsForQueue maps the observed queue length to a check-in reward.
// Non-increasing step function over the length.
func PointsForQueue(length int) int64 {
	switch {
	case length < 5:
		return 10
	case length < 10:
		return 5
	case length < 15:
		return 2
	default:
		return 0
	}
}
