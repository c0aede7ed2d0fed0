package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/pkg/httpx"
	"github.com/opencampus/tally/pkg/slogx"
)

// CheckinHandler accepts a scanned or typed code and credits points.
type CheckinHandler struct {
	CheckinService *service.CheckinService
}

func (h *CheckinHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		errInvalidToken.WriteError(w)
		return
	}

	var req checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		errInvalidRequest.WriteError(w)
		return
	}

	result, err := h.CheckinService.CheckIn(ctx, userID, req.Code)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNoCode), errors.Is(err, service.ErrInvalidCode):
		writeFailure(w, http.StatusBadRequest, "Invalid code")
		return
	case errors.Is(err, service.ErrCodeExpired):
		writeFailure(w, http.StatusBadRequest, "Code expired")
		return
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		writeFailure(w, http.StatusConflict, "Already checked in today")
		return
	default:
		log.Error("check-in failed", "user_id", userID, "err", err)
		errServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, checkinResponse{
		Success:     true,
		Points:      result.Points,
		TotalPoints: result.TotalPoints,
	})
}
