package http

import (
	"net/http"

	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/pkg/httpx"
)

// QueueHandler reports the live queue estimate and open/closed status.
type QueueHandler struct {
	QueueService *service.QueueService
}

func (h *QueueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.QueueService.Snapshot(r.Context())

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, queueResponse{
		QueueLength:       status.Length,
		EstimatedWaitTime: status.EstimatedWaitMinutes(),
		IsOpen:            status.Open,
	})
}
