package http

import (
	"net/http"

	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/pkg/httpx"
	"github.com/opencampus/tally/pkg/slogx"
)

// CodeHandler serves the rotating check-in code to the host display.
type CodeHandler struct {
	Codes *service.CodeService
}

// HandleIssue forces a fresh code, replacing any current one.
func (h *CodeHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	code, ttl, err := h.Codes.Issue()
	if err != nil {
		slogx.FromContext(r.Context()).Error("issue code", "err", err)
		errServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, codeResponse{Code: code, ExpiresIn: ttl})
}

// HandleGet returns the active code and its remaining validity, issuing one
// when none is live.
func (h *CodeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	code, remaining, err := h.Codes.Current()
	if err != nil {
		slogx.FromContext(r.Context()).Error("fetch code", "err", err)
		errServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, codeResponse{Code: code, ExpiresIn: remaining})
}
