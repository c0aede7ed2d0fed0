package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/opencampus/tally/internal/loyalty/domain"
	"github.com/opencampus/tally/internal/loyalty/store"
	"github.com/opencampus/tally/internal/loyalty/store/drivers/sqlite"
	"github.com/opencampus/tally/pkg/idx"
	"github.com/stretchr/testify/require"
)

// fakeClock is a hand-cranked Clock for deterministic time-dependent tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(at time.Time) *fakeClock {
	return &fakeClock{now: at}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = at
}

// openTime is a UTC instant inside the serving window (+8h → 12:00 local).
var openTime = time.Date(2025, 6, 2, 4, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func createTestUser(t *testing.T, st store.Store, username string, points int64) domain.User {
	t.Helper()

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@campus.test",
		PasswordHash: "hash",
		Points:       points,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))

	// Seed the ledger so the balance invariant holds for pre-funded users.
	if points != 0 {
		require.NoError(t, st.Transactions().CreateTransaction(context.Background(), domain.PointsTransaction{
			ID:          idx.New().String(),
			UserID:      user.ID,
			Points:      points,
			Kind:        domain.TransactionEarn,
			Description: "test seed",
			CreatedAt:   now,
		}))
	}
	return user
}

// writeQueueFeed writes a feed CSV with the given number of net entries.
func writeQueueFeed(t *testing.T, enters, exits int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "queue_data.csv")
	content := "Time,Action\n"
	for i := 0; i < enters; i++ {
		content += "2025-06-02 11:45:00,enter\n"
	}
	for i := 0; i < exits; i++ {
		content += "2025-06-02 11:50:00,exit\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
