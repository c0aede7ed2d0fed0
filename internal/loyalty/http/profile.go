package http

import (
	"errors"
	"net/http"

	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/pkg/httpx"
	"github.com/opencampus/tally/pkg/slogx"
)

// ProfileHandler is the "me" endpoint: balance, last check-in and recent
// ledger activity for the dashboard.
type ProfileHandler struct {
	UserService *service.UserService
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		errInvalidToken.WriteError(w)
		return
	}

	profile, err := h.UserService.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			errInvalidToken.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("load profile", "user_id", userID, "err", err)
		errServerError.WriteError(w)
		return
	}

	transactions := make([]transactionResponse, 0, len(profile.Transactions))
	for _, tx := range profile.Transactions {
		transactions = append(transactions, transactionResponse{
			Points:      tx.Points,
			Kind:        tx.Kind,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		})
	}

	checkins := make([]checkinHistoryResponse, 0, len(profile.CheckIns))
	for _, c := range profile.CheckIns {
		checkins = append(checkins, checkinHistoryResponse{
			PointsEarned: c.PointsEarned,
			CreatedAt:    c.CreatedAt,
		})
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, profileResponse{
		UserID:       profile.User.ID,
		Username:     profile.User.Username,
		Email:        profile.User.Email,
		Points:       profile.User.Points,
		LastCheckin:  profile.User.LastCheckin,
		Transactions: transactions,
		CheckIns:     checkins,
	})
}
