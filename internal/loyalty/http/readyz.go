package http

import (
	"net/http"
	"time"

	"github.com/opencampus/tally/internal/loyalty/store"
	"github.com/opencampus/tally/pkg/httpx"
	"github.com/opencampus/tally/pkg/jwtx"
)

// ReadyzHandler checks the critical dependencies: the database and the
// token signer.
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.EdDSAKeypair,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &healthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		status := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !keys.Ready() {
			checks.Signer = "error: no key loaded"
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, healthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
