package http

import (
	"net/http"

	"github.com/opencampus/tally/pkg/httpx"
)

// apiError is a canned failure response. All failures share the
// {success:false, message} shape the kiosk and host-display clients parse.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) WriteError(w http.ResponseWriter) {
	writeFailure(w, e.StatusCode, e.Message)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, status, statusResponse{Success: false, Message: message})
}

var (
	errInvalidRequest = &apiError{
		StatusCode: http.StatusBadRequest,
		Message:    "the request is malformed or missing required fields",
	}
	errInvalidToken = &apiError{
		StatusCode: http.StatusUnauthorized,
		Message:    "invalid or missing access token",
	}
	errServerError = &apiError{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal server error",
	}
)
