package http

import (
	"errors"
	"net/http"

	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/pkg/httpx"
	"github.com/opencampus/tally/pkg/slogx"
)

// RewardsHandler serves the catalog and performs redemptions.
type RewardsHandler struct {
	RewardService *service.RewardService
	UserService   *service.UserService
}

// HandleList returns every reward with its live stock.
func (h *RewardsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rewards, err := h.RewardService.ListRewards(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("list rewards", "err", err)
		errServerError.WriteError(w)
		return
	}

	out := make([]rewardResponse, 0, len(rewards))
	for _, reward := range rewards {
		out = append(out, rewardResponse{
			ID:          reward.ID,
			Name:        reward.Name,
			Description: reward.Description,
			PointsCost:  reward.PointsCost,
			Stock:       reward.Stock,
		})
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRedeem exchanges the caller's points for one unit of the reward
// named in the path.
func (h *RewardsHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		errInvalidToken.WriteError(w)
		return
	}

	rewardID := r.PathValue("id")
	if rewardID == "" {
		errInvalidRequest.WriteError(w)
		return
	}

	redeemed, err := h.RewardService.Redeem(ctx, userID, rewardID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrRewardNotFound):
		writeFailure(w, http.StatusNotFound, "Reward not found")
		return
	case errors.Is(err, service.ErrInsufficientPoints):
		writeFailure(w, http.StatusConflict, "Not enough points")
		return
	case errors.Is(err, service.ErrOutOfStock):
		writeFailure(w, http.StatusConflict, "Reward out of stock")
		return
	default:
		log.Error("redeem failed", "user_id", userID, "reward_id", rewardID, "err", err)
		errServerError.WriteError(w)
		return
	}

	// Re-read post-redemption state so the client can refresh in place.
	profile, err := h.UserService.GetProfile(ctx, userID)
	if err != nil {
		log.Error("load profile after redeem", "user_id", userID, "err", err)
		errServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, redeemResponse{
		Success:         true,
		Message:         "Reward redeemed successfully!",
		RemainingStock:  redeemed.Stock - 1,
		RemainingPoints: profile.User.Points,
	})
}
