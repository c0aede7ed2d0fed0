package service

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"time"
)

const (
	codeDigits = 6
	// CodeTTL is how long an issued verification code stays valid.
	CodeTTL = 10 * time.Second
)

var (
	ErrNoCode      = errors.New("service: no code has been issued")
	ErrInvalidCode = errors.New("service: invalid code")
	ErrCodeExpired = errors.New("service: code expired")
)

// CodeService issues and validates the rotating check-in code shown on the
// cafeteria host display. One code is valid system-wide at a time: it gates
// a single physical queue with a single display.
type CodeService struct {
	Clock Clock

	mu     sync.Mutex
	code   string
	expiry time.Time
}

// Issue replaces any current code with a fresh 6-digit one and resets the
// expiry. Returns the code and its TTL in whole seconds.
func (s *CodeService) Issue() (string, int, error) {
	code, err := randomDigits(codeDigits)
	if err != nil {
		return "", 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.code = code
	s.expiry = s.Clock.Now().Add(CodeTTL)
	return code, int(CodeTTL.Seconds()), nil
}

// Current returns the active code and its remaining validity, issuing a new
// one first when none exists or the current one has expired.
func (s *CodeService) Current() (string, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock.Now()
	if s.code == "" || !now.Before(s.expiry) {
		code, err := randomDigits(codeDigits)
		if err != nil {
			return "", 0, err
		}
		s.code = code
		s.expiry = now.Add(CodeTTL)
	}

	return s.code, int(s.expiry.Sub(now).Seconds()), nil
}

// Validate checks a submitted code against the active one. Rejection order:
// nothing issued, mismatch, expiry.
func (s *CodeService) Validate(submitted string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.code == "" {
		return ErrNoCode
	}
	if submitted != s.code {
		return ErrInvalidCode
	}
	if !s.Clock.Now().Before(s.expiry) {
		return ErrCodeExpired
	}
	return nil
}

// randomDigits draws each digit independently and uniformly from 0-9.
func randomDigits(n int) (string, error) {
	buf := make([]byte, n)
	for i := range buf {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + d.Int64())
	}
	return string(buf), nil
}
