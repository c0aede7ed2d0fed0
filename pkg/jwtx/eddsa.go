package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs claims into a compact JWT string.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and returns its claims if legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// EdDSAKeypair signs and verifies tokens with a single Ed25519 keypair.
// The keypair is ephemeral: generated at process start, so every token dies
// with the process. Fine for a service that is its own only verifier.
type EdDSAKeypair struct {
	priv   ed25519.PrivateKey
	pub    ed25519.PublicKey
	issuer string
}

// NewEphemeralEdDSA generates a fresh Ed25519 keypair bound to an issuer.
func NewEphemeralEdDSA(issuer string) (*EdDSAKeypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate ed25519 key: %w", err)
	}
	return &EdDSAKeypair{priv: priv, pub: pub, issuer: issuer}, nil
}

// Sign turns claims into a signed JWT string.
func (k *EdDSAKeypair) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(k.priv)
}

// Verify validates the JWT string and returns its parsed claims.
func (k *EdDSAKeypair) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return k.pub, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, errors.New("jwtx: invalid token claims")
	}

	if err := claims.ValidateIssuer(k.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// Ready reports whether key material is loaded. Used by readiness checks.
func (k *EdDSAKeypair) Ready() bool {
	return len(k.priv) == ed25519.PrivateKeySize && len(k.pub) == ed25519.PublicKeySize
}
