package service

import (
	"fmt"

	"github.com/pquerna/otp/totp"
)

// HostCodeService derives the time-based code the host display renders as a
// QR for phones that scan instead of typing. Separate from CodeService: this
// code is deterministic from the shared secret and the clock, not stored.
type HostCodeService struct {
	Secret string // base32-encoded TOTP secret
	Clock  Clock
}

// Code returns the TOTP code for the current (possibly simulated) time.
func (s *HostCodeService) Code() (string, error) {
	code, err := totp.GenerateCode(s.Secret, s.Clock.Now())
	if err != nil {
		return "", fmt.Errorf("generate host code: %w", err)
	}
	return code, nil
}
