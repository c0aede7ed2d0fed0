package loyalty_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	httpapi "github.com/opencampus/tally/internal/loyalty/http"
	"github.com/opencampus/tally/internal/loyalty/service"
	"github.com/opencampus/tally/internal/loyalty/store"
	"github.com/opencampus/tally/internal/loyalty/store/drivers/sqlite"
	"github.com/opencampus/tally/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end tests for the loyalty service. The full router runs in-process
 * behind an httptest server with a real sqlite database and a real queue
 * feed file; only the wall clock is replaced, via the service's own
 * simulation mode.
 */

const (
	testPassword   = "correct-horse-battery"
	hostCodeSecret = "JBSWY3DPEHPK3PXP"
)

type testEnv struct {
	BaseURL string
	Store   store.Store
	Rewards *service.RewardService
	Clock   *service.SimClock
}

// setupServer boots the whole HTTP surface against a file-backed sqlite
// database in a temp dir and returns the base URL to hit.
func setupServer(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()

	st, err := sqlite.NewStore(filepath.Join(dir, "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	feed := filepath.Join(dir, "queue_data.csv")
	writeFeed(t, feed, 3, 0)

	clock := service.NewSimClock(service.SystemClock{})
	codes := &service.CodeService{Clock: clock}
	queue := &service.QueueService{FeedPath: feed, Clock: clock}

	keys, err := jwtx.NewEphemeralEdDSA("tally-e2e")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rewards := &service.RewardService{Store: st, Clock: clock}

	router := httpapi.NewRouter(keys, "e2e", st, logger)
	router.Clock = clock
	router.CodeService = codes
	router.QueueService = queue
	router.CheckinService = &service.CheckinService{Store: st, Codes: codes, Queue: queue, Clock: clock}
	router.RewardService = rewards
	router.UserService = &service.UserService{Store: st, Clock: clock}
	router.TokenService = &service.TokenService{Signer: keys, Issuer: "tally-e2e", Clock: clock}
	router.HostCodeService = &service.HostCodeService{Secret: hostCodeSecret, Clock: clock}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{
		BaseURL: server.URL,
		Store:   st,
		Rewards: rewards,
		Clock:   clock,
	}
}

func writeFeed(t *testing.T, path string, enters, exits int) {
	t.Helper()

	content := "Time,Action\n"
	for i := 0; i < enters; i++ {
		content += "2025-06-02 11:50:00,enter\n"
	}
	for i := 0; i < exits; i++ {
		content += "2025-06-02 11:55:00,exit\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// call performs a JSON request and decodes the response body into out when
// out is non-nil. Returns the HTTP status code.
func call(t *testing.T, method, url, token string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// register creates a user over the API and returns its bearer token.
func register(t *testing.T, env *testEnv, username string) string {
	t.Helper()

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	status := call(t, http.MethodPost, env.BaseURL+"/v1/register", "", map[string]string{
		"username": username,
		"email":    username + "@campus.test",
		"password": testPassword,
	}, &tok)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}
