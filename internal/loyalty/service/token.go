package service

import (
	"time"

	"github.com/opencampus/tally/internal/loyalty/domain"
	"github.com/opencampus/tally/pkg/jwtx"
)

// TokenService mints access tokens for logged-in users.
type TokenService struct {
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
	Clock     Clock
}

// MintAccessToken issues a signed JWT for the user and reports its expiry in
// whole seconds.
func (s *TokenService) MintAccessToken(user domain.User) (string, int, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(user.ID, user.Username, s.Issuer, ttl, s.Clock.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", 0, err
	}
	return token, int(ttl.Seconds()), nil
}
