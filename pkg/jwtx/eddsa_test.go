package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	kp, err := NewEphemeralEdDSA("tally")
	require.NoError(t, err)
	require.True(t, kp.Ready())

	claims := NewAccessClaims("user-1", "alice", "tally", DefaultAccessTokenTTL, time.Now().UTC())
	token, err := kp.Sign(claims)
	require.NoError(t, err)

	got, err := kp.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "alice", got.Username)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	t.Parallel()

	a, err := NewEphemeralEdDSA("tally")
	require.NoError(t, err)
	b, err := NewEphemeralEdDSA("tally")
	require.NoError(t, err)

	token, err := a.Sign(NewAccessClaims("user-1", "alice", "tally", time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = b.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	kp, err := NewEphemeralEdDSA("tally")
	require.NoError(t, err)

	issued := time.Now().UTC().Add(-time.Hour)
	token, err := kp.Sign(NewAccessClaims("user-1", "alice", "tally", time.Minute, issued))
	require.NoError(t, err)

	_, err = kp.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	kp, err := NewEphemeralEdDSA("tally")
	require.NoError(t, err)

	token, err := kp.Sign(NewAccessClaims("user-1", "alice", "someone-else", time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = kp.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}
