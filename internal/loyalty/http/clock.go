package http

import (
	"net/http"

	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/pkg/httpx"
)

// clockTimeFormat is what the host display renders, wall-clock only.
const clockTimeFormat = "15:04:05"

// TimeHandler exposes the service clock and its simulation controls. The
// host display polls HandleGet once a second; while simulation is active
// each poll moves simulated time forward 30 seconds so a whole lunch window
// can be rehearsed in about two minutes.
type TimeHandler struct {
	Clock *service.SimClock
}

// HandleGet returns the current (possibly simulated) time of day.
func (h *TimeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	now := h.Clock.Poll()
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, timeResponse{
		Time:    now.Format(clockTimeFormat),
		IsDebug: h.Clock.IsDebug(),
	})
}

// HandleEnableDebug pins simulated time to today's opening minute.
func (h *TimeHandler) HandleEnableDebug(w http.ResponseWriter, r *http.Request) {
	base := h.Clock.EnableDebug()
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, debugTimeResponse{
		Success: true,
		Time:    base.Format(clockTimeFormat),
	})
}

// HandleDisableDebug returns the service to the wall clock.
func (h *TimeHandler) HandleDisableDebug(w http.ResponseWriter, r *http.Request) {
	h.Clock.Reset()
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, statusResponse{
		Success: true,
		Message: "Debug mode reset",
	})
}
