// Package rho2 provides the integrity-tagging capability of the federation.
//
// The only implementation today is DevSigner, a symmetric HMAC stub meant to
// exercise the signing code path during development. It is NOT a security
// boundary: the key arrives via configuration and every process in a dev
// deployment shares it. A production deployment must supply a Signer backed
// by externally managed key material; call sites depend only on the interface
// so the substitution never touches them.
package rho2

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Signer computes and verifies integrity tags over event payloads.
type Signer interface {
	// Sign returns a signature over the canonical serialization of payload.
	Sign(payload any) (string, error)
	// Verify reports whether signature matches payload.
	Verify(payload any, signature string) bool
}

// DevSigner is the development-mode signer: HMAC-SHA256 over the canonical
// JSON serialization of the payload, hex encoded.
type DevSigner struct {
	key []byte
}

// NewDevSigner creates a dev signer with the given symmetric key.
func NewDevSigner(key string) *DevSigner {
	return &DevSigner{key: []byte(key)}
}

// Sign computes the hex HMAC-SHA256 digest of the payload's JSON form.
// encoding/json sorts map keys, so equal payloads serialize identically.
func (s *DevSigner) Sign(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("canonicalize payload: %w", err)
	}
	mac := hmac.New(sha256.New, s.key)
	mac.Write(raw)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the digest and compares in constant time.
func (s *DevSigner) Verify(payload any, signature string) bool {
	expected, err := s.Sign(payload)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(signature))
}
