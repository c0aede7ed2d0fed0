package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/pkg/httpx"
	"github.com/opencampus/tally/pkg/slogx"
)

// AuthHandler covers registration, login and logout. Tokens are stateless,
// so logout is a courtesy 200 for clients that want a definite endpoint to
// call when discarding their token.
type AuthHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errInvalidRequest.WriteError(w)
		return
	}

	user, err := h.UserService.Register(ctx, req.Username, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUsernameTaken):
		writeFailure(w, http.StatusConflict, "Username or email already taken")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		errInvalidRequest.WriteError(w)
		return
	default:
		log.Error("register failed", "err", err)
		errServerError.WriteError(w)
		return
	}

	// Freshly registered users are logged straight in.
	token, expiresIn, err := h.TokenService.MintAccessToken(user)
	if err != nil {
		log.Error("mint token after register", "user_id", user.ID, "err", err)
		errServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errInvalidRequest.WriteError(w)
		return
	}

	user, err := h.UserService.Authenticate(ctx, req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, "Invalid username or password")
		return
	default:
		log.Error("login failed", "err", err)
		errServerError.WriteError(w)
		return
	}

	token, expiresIn, err := h.TokenService.MintAccessToken(user)
	if err != nil {
		log.Error("mint token", "user_id", user.ID, "err", err)
		errServerError.WriteError(w)
		return
	}

	log.Info("user logged in", "user_id", user.ID)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Logged out"})
}
