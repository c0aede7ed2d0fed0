package http

import (
	"net/http"

	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/pkg/httpx"
	"github.com/opencampus/tally/pkg/qrx"
	"github.com/opencampus/tally/pkg/slogx"
)

// HostHandler backs the cafeteria host display: the rotating check-in code,
// the queue reading, and the TOTP QR for phones that scan instead of typing.
type HostHandler struct {
	Codes        *service.CodeService
	HostCodes    *service.HostCodeService
	QueueService *service.QueueService
}

// HandleState returns everything the display renders in one poll.
func (h *HostHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code, remaining, err := h.Codes.Current()
	if err != nil {
		slogx.FromContext(ctx).Error("fetch code for host display", "err", err)
		errServerError.WriteError(w)
		return
	}

	status := h.QueueService.Snapshot(ctx)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, hostResponse{
		Code:              code,
		ExpiresIn:         remaining,
		QueueLength:       status.Length,
		EstimatedWaitTime: status.EstimatedWaitMinutes(),
		IsOpen:            status.Open,
	})
}

// HandleQR returns the current TOTP code rendered as a base64 PNG QR.
func (h *HostHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	code, err := h.HostCodes.Code()
	if err != nil {
		log.Error("generate host code", "err", err)
		errServerError.WriteError(w)
		return
	}

	img, err := qrx.EncodePNGBase64(code)
	if err != nil {
		log.Error("encode qr", "err", err)
		errServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, qrResponse{QRCode: img, Code: code})
}
