package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/opencampus/tally/internal/loyalty/domain"
	"github.com/opencampus/tally/internal/loyalty/store"
	"github.com/opencampus/tally/pkg/idx"
	"github.com/opencampus/tally/pkg/slogx"
)

var ErrAlreadyCheckedIn = errors.New("service: already checked in today")

const checkinDescription = "Cafeteria check-in"

// CheckinResult reports a successful check-in to the caller.
type CheckinResult struct {
	Points      int64
	TotalPoints int64
}

// CheckinService validates submitted codes and awards queue-tiered points.
// Every rejection path leaves the store untouched; the award path writes the
// check-in record, the ledger entry and the balance update as one unit.
type CheckinService struct {
	Store store.Store
	Codes *CodeService
	Queue *QueueService
	Clock Clock
}

func (s *CheckinService) CheckIn(ctx context.Context, userID, code string) (CheckinResult, error) {
	log := slogx.FromContext(ctx)

	// Code gate first: no code issued, mismatch, then expiry.
	if err := s.Codes.Validate(code); err != nil {
		return CheckinResult{}, err
	}

	now := s.Clock.Now().UTC()

	// Reward is a function of how long the queue was when the user joined.
	status := s.Queue.Snapshot(ctx)
	points := domain.PointsForQueue(status.Length)

	var total int64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		// One check-in per UTC calendar day, checked inside the tx so two
		// concurrent submissions cannot both pass.
		if user.CheckedInOn(now) {
			return ErrAlreadyCheckedIn
		}

		checkin := domain.CheckIn{
			ID:           idx.New().String(),
			UserID:       userID,
			PointsEarned: points,
			CreatedAt:    now,
		}
		if err := tx.CheckIns().CreateCheckIn(ctx, checkin); err != nil {
			return fmt.Errorf("record check-in: %w", err)
		}

		entry := domain.PointsTransaction{
			ID:          idx.New().String(),
			UserID:      userID,
			Points:      points,
			Kind:        domain.TransactionEarn,
			Description: checkinDescription,
			CreatedAt:   now,
		}
		if err := tx.Transactions().CreateTransaction(ctx, entry); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}

		if err := tx.Users().AddPoints(ctx, userID, points, now); err != nil {
			return fmt.Errorf("credit points: %w", err)
		}

		total = user.Points + points
		return nil
	})
	if err != nil {
		return CheckinResult{}, err
	}

	log.Info("check-in accepted",
		"user_id", userID,
		"queue_length", status.Length,
		"points", points,
	)

	return CheckinResult{Points: points, TotalPoints: total}, nil
}
