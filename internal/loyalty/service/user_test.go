package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t), Clock: newFakeClock(openTime)}

	user, err := svc.Register(ctx, "alice", "alice@campus.test", "hunter2-but-longer")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "hunter2-but-longer", user.PasswordHash)

	got, err := svc.Authenticate(ctx, "alice", "hunter2-but-longer")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t), Clock: newFakeClock(openTime)}

	_, err := svc.Register(ctx, "bob", "bob@campus.test", "pw-one-two-three")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob", "other@campus.test", "pw-one-two-three")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t), Clock: newFakeClock(openTime)}

	_, err := svc.Register(ctx, "  ", "x@campus.test", "pw-one-two-three")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, "carol", "c@campus.test", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateDoesNotLeakExistence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t), Clock: newFakeClock(openTime)}

	_, err := svc.Register(ctx, "dave", "dave@campus.test", "correct-horse")
	require.NoError(t, err)

	// Unknown user and wrong password produce the same error.
	_, unknownErr := svc.Authenticate(ctx, "nobody", "whatever")
	_, wrongErr := svc.Authenticate(ctx, "dave", "battery-staple")
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
}

func TestGetProfileReturnsRecentActivity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st, Clock: newFakeClock(openTime)}

	user := createTestUser(t, st, "erin", 120)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, profile.User.ID)
	require.EqualValues(t, 120, profile.User.Points)
	require.Len(t, profile.Transactions, 1)
	require.Empty(t, profile.CheckIns)
}

func TestGetProfileUnknownUser(t *testing.T) {
	t.Parallel()

	svc := &UserService{Store: newTestStore(t), Clock: newFakeClock(openTime)}

	_, err := svc.GetProfile(context.Background(), "no-such-user")
	require.ErrorIs(t, err, ErrUserNotFound)
}
