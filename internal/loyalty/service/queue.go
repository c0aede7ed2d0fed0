package service

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	"github.com/opencampus/tally/internal/loyalty/domain"
	"github.com/opencampus/tally/pkg/slogx"
)

// QueueService estimates the live queue from the external enter/exit feed.
// The feed is a CSV (`Time,Action`) appended by the gate counter; it is read
// on every request so the estimate tracks the file with no cache to go
// stale.
type QueueService struct {
	FeedPath string
	Clock    Clock
}

// Snapshot returns the current queue status. Feed errors degrade to a
// zero-length, zero-wait reading rather than failing the request; the
// open/closed verdict is reported regardless.
func (s *QueueService) Snapshot(ctx context.Context) domain.QueueStatus {
	open := domain.OpenAt(s.Clock.Now())

	events, err := s.readFeed()
	if err != nil {
		slogx.FromContext(ctx).Warn("queue feed unreadable, assuming empty", "path", s.FeedPath, "err", err)
		return domain.QueueStatus{Open: open}
	}

	length := domain.QueueLength(events)
	return domain.QueueStatus{
		Length:   length,
		WaitTime: domain.EstimateWait(length),
		Open:     open,
	}
}

func (s *QueueService) readFeed() ([]domain.QueueEvent, error) {
	f, err := os.Open(s.FeedPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseFeed(f)
}

// parseFeed reads the `Time,Action` CSV. The header row is required; rows
// with malformed timestamps fail the whole read (the caller degrades to an
// empty queue) since a corrupt feed is indistinguishable from a wrong file.
func parseFeed(r io.Reader) ([]domain.QueueEvent, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	timeCol, actionCol := 0, 1
	if strings.EqualFold(header[0], "action") {
		timeCol, actionCol = 1, 0
	}

	var events []domain.QueueEvent
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		ts, err := parseFeedTime(record[timeCol])
		if err != nil {
			return nil, err
		}

		events = append(events, domain.QueueEvent{
			Time:   ts,
			Action: strings.ToLower(strings.TrimSpace(record[actionCol])),
		})
	}
	return events, nil
}

// Timestamp formats the gate counter has been seen to emit.
var feedTimeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"15:04:05",
}

func parseFeedTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range feedTimeFormats {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
