package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/internal/loyalty/store/drivers/sqlite"
	"github.com/opencampus/tally/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

// 04:00 UTC is 12:00 at the cafeteria's +8h offset, inside the window.
var testOpenTime = time.Date(2025, 6, 2, 4, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	feed := filepath.Join(t.TempDir(), "queue_data.csv")
	content := "Time,Action\n"
	for i := 0; i < 3; i++ {
		content += "2025-06-02 11:50:00,enter\n"
	}
	require.NoError(t, os.WriteFile(feed, []byte(content), 0o600))

	clock := service.NewSimClock(&stubClock{now: testOpenTime})
	codes := &service.CodeService{Clock: clock}
	queue := &service.QueueService{FeedPath: feed, Clock: clock}

	keys, err := jwtx.NewEphemeralEdDSA("tally-test")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	r := NewRouter(keys, "test", st, logger)
	r.Clock = clock
	r.CodeService = codes
	r.QueueService = queue
	r.CheckinService = &service.CheckinService{Store: st, Codes: codes, Queue: queue, Clock: clock}
	r.RewardService = &service.RewardService{Store: st, Clock: clock}
	r.UserService = &service.UserService{Store: st, Clock: clock}
	r.TokenService = &service.TokenService{Signer: keys, Issuer: "tally-test", Clock: clock}
	r.HostCodeService = &service.HostCodeService{Secret: "JBSWY3DPEHPK3PXP", Clock: clock}
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, r *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, r *Router, username string) string {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/v1/register", "", registerRequest{
		Username: username,
		Email:    username + "@campus.test",
		Password: "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var tok tokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tok))
	require.NotEmpty(t, tok.AccessToken)
	require.Equal(t, "Bearer", tok.TokenType)
	return tok.AccessToken
}

func TestRegisterLoginProfile(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	registerUser(t, r, "alice")

	// Fresh login works and the token reads the profile.
	rec := doJSON(t, r, http.MethodPost, "/v1/login", "", loginRequest{
		Username: "alice",
		Password: "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var tok tokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tok))

	rec = doJSON(t, r, http.MethodGet, "/v1/me", tok.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile profileResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	require.Equal(t, "alice", profile.Username)
	require.EqualValues(t, 0, profile.Points)
	require.Nil(t, profile.LastCheckin)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	registerUser(t, r, "bob")

	rec := doJSON(t, r, http.MethodPost, "/v1/login", "", loginRequest{
		Username: "bob",
		Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
}

func TestCheckinFlow(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	token := registerUser(t, r, "carol")

	// Host display issues a code.
	rec := doJSON(t, r, http.MethodPost, "/v1/code", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var code codeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&code))
	require.Len(t, code.Code, 6)
	require.Equal(t, 10, code.ExpiresIn)

	// Queue of 3 pays the top tier.
	rec = doJSON(t, r, http.MethodPost, "/v1/checkin", token, checkinRequest{Code: code.Code})
	require.Equal(t, http.StatusOK, rec.Code)

	var result checkinResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.True(t, result.Success)
	require.EqualValues(t, 10, result.Points)
	require.EqualValues(t, 10, result.TotalPoints)

	// Same day again, even with a fresh code: conflict.
	rec = doJSON(t, r, http.MethodPost, "/v1/code", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&code))

	rec = doJSON(t, r, http.MethodPost, "/v1/checkin", token, checkinRequest{Code: code.Code})
	require.Equal(t, http.StatusConflict, rec.Code)

	var failure statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&failure))
	require.False(t, failure.Success)
	require.Equal(t, "Already checked in today", failure.Message)
}

func TestCheckinRejectsWrongCode(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	token := registerUser(t, r, "dave")

	rec := doJSON(t, r, http.MethodPost, "/v1/code", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var code codeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&code))

	wrong := "000000"
	if wrong == code.Code {
		wrong = "111111"
	}
	rec = doJSON(t, r, http.MethodPost, "/v1/checkin", token, checkinRequest{Code: wrong})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var failure statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&failure))
	require.Equal(t, "Invalid code", failure.Message)
}

func TestQueueEndpoint(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/queue", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var queue queueResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&queue))
	require.Equal(t, 3, queue.QueueLength)
	require.InDelta(t, 6.0, queue.EstimatedWaitTime, 0.01)
	require.True(t, queue.IsOpen)
}

func TestTimeDebugLifecycle(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	// Real mode first.
	rec := doJSON(t, r, http.MethodGet, "/v1/time", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tm timeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tm))
	require.False(t, tm.IsDebug)
	require.Equal(t, "04:00:00", tm.Time)

	// Enable: pinned to the opening minute, each poll advances 30s.
	rec = doJSON(t, r, http.MethodPost, "/v1/time/debug", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var enabled debugTimeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&enabled))
	require.True(t, enabled.Success)
	require.Equal(t, "11:45:00", enabled.Time)

	rec = doJSON(t, r, http.MethodGet, "/v1/time", "", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tm))
	require.True(t, tm.IsDebug)
	require.Equal(t, "11:45:30", tm.Time)

	rec = doJSON(t, r, http.MethodGet, "/v1/time", "", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tm))
	require.Equal(t, "11:46:00", tm.Time)

	// Reset returns to the wall clock.
	rec = doJSON(t, r, http.MethodDelete, "/v1/time/debug", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/time", "", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tm))
	require.False(t, tm.IsDebug)
	require.Equal(t, "04:00:00", tm.Time)
}

func TestHostEndpoints(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/host", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var host hostResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&host))
	require.Len(t, host.Code, 6)
	require.Equal(t, 3, host.QueueLength)
	require.True(t, host.IsOpen)

	rec = doJSON(t, r, http.MethodGet, "/v1/host/qr", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var qr qrResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&qr))
	require.NotEmpty(t, qr.QRCode)
	require.Len(t, qr.Code, 6)
}

func TestRedeemOverHTTP(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	token := registerUser(t, r, "erin")

	// Seed the catalog and fund the user via a check-in-free path: default
	// rewards cost more than a fresh account holds, so expect a rejection.
	require.NoError(t, r.RewardService.EnsureDefaults(context.Background()))

	rec := doJSON(t, r, http.MethodGet, "/v1/rewards", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rewards []rewardResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rewards))
	require.Len(t, rewards, 4)

	rec = doJSON(t, r, http.MethodPost, "/v1/rewards/"+rewards[0].ID+"/redeem", token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var failure statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&failure))
	require.Equal(t, "Not enough points", failure.Message)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health healthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Checks.Database)
}
