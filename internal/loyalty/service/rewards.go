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

var (
	ErrRewardNotFound     = errors.New("service: reward not found")
	ErrInsufficientPoints = errors.New("service: not enough points")
	ErrOutOfStock         = errors.New("service: out of stock")
)

// RewardService serves the catalog and performs redemptions.
type RewardService struct {
	Store store.Store
	Clock Clock
}

func (s *RewardService) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	return s.Store.Rewards().ListRewards(ctx)
}

// Redeem exchanges points for one unit of a reward. Stock decrement, balance
// debit and ledger entry commit together or not at all; the conditional
// updates turn a lost race into a plain rejection instead of partial state.
func (s *RewardService) Redeem(ctx context.Context, userID, rewardID string) (domain.Reward, error) {
	log := slogx.FromContext(ctx)

	var redeemed domain.Reward
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		reward, err := tx.Rewards().GetRewardByID(ctx, rewardID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRewardNotFound
			}
			return fmt.Errorf("load reward: %w", err)
		}

		spent, err := tx.Users().SpendPoints(ctx, userID, reward.PointsCost)
		if err != nil {
			return fmt.Errorf("debit points: %w", err)
		}
		if !spent {
			return ErrInsufficientPoints
		}

		taken, err := tx.Rewards().DecrementStock(ctx, rewardID)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if !taken {
			return ErrOutOfStock
		}

		entry := domain.PointsTransaction{
			ID:          idx.New().String(),
			UserID:      userID,
			Points:      -reward.PointsCost,
			Kind:        domain.TransactionSpend,
			Description: "Redeemed " + reward.Name,
			CreatedAt:   s.Clock.Now().UTC(),
		}
		if err := tx.Transactions().CreateTransaction(ctx, entry); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}

		redeemed = reward
		return nil
	})
	if err != nil {
		return domain.Reward{}, err
	}

	log.Info("reward redeemed", "user_id", userID, "reward", redeemed.Name, "cost", redeemed.PointsCost)
	return redeemed, nil
}

// EnsureDefaults seeds the stock catalog on first boot. No-op when any
// reward already exists.
func (s *RewardService) EnsureDefaults(ctx context.Context) error {
	empty, err := s.Store.Rewards().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	now := s.Clock.Now().UTC()
	defaults := []domain.Reward{
		{
			Name:        "Study Room Priority Booking",
			Description: "Get priority booking rights for the study room for one week",
			PointsCost:  300,
			Stock:       15,
		},
		{
			Name:        "Cafeteria Skip-the-Line Pass",
			Description: "Skip the line once during lunch time",
			PointsCost:  250,
			Stock:       20,
		},
		{
			Name:        "Snack Pack",
			Description: "A pack of healthy snacks from the school store",
			PointsCost:  100,
			Stock:       30,
		},
		{
			Name:        "School Store Discount",
			Description: "20% off at the school store for one month",
			PointsCost:  400,
			Stock:       10,
		},
	}

	for _, r := range defaults {
		r.ID = idx.New().String()
		r.CreatedAt = now
		r.UpdatedAt = now
		if err := s.Store.Rewards().CreateReward(ctx, r); err != nil {
			return fmt.Errorf("seed reward %q: %w", r.Name, err)
		}
	}
	return nil
}
