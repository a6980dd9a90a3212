package rho2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDevSigner_ImplementsSigner(t *testing.T) {
	var _ Signer = (*DevSigner)(nil)
}

func TestDevSigner_RoundTrip(t *testing.T) {
	signer := NewDevSigner("test-secret")

	payload := map[string]any{"target": "node-a", "cmd": "status"}
	sig, err := signer.Sign(payload)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	assert.True(t, signer.Verify(payload, sig))
}

func TestDevSigner_Deterministic(t *testing.T) {
	signer := NewDevSigner("test-secret")

	a, err := signer.Sign(map[string]any{"b": 2, "a": 1})
	require.NoError(t, err)
	b, err := signer.Sign(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)

	assert.Equal(t, a, b, "map key order must not affect the signature")
}

func TestDevSigner_TamperedPayloadFails(t *testing.T) {
	signer := NewDevSigner("test-secret")

	sig, err := signer.Sign(map[string]any{"text": "hello"})
	require.NoError(t, err)

	assert.False(t, signer.Verify(map[string]any{"text": "hello!"}, sig))
	assert.False(t, signer.Verify(map[string]any{"text": "hello"}, sig+"00"))
	assert.False(t, signer.Verify(map[string]any{"text": "hello"}, ""))
}

func TestDevSigner_DifferentKeysDisagree(t *testing.T) {
	a := NewDevSigner("key-a")
	b := NewDevSigner("key-b")

	payload := map[string]any{"x": 1}
	sig, err := a.Sign(payload)
	require.NoError(t, err)

	assert.False(t, b.Verify(payload, sig))
}

// TestProperty_DevSigner_RoundTrip checks Verify(p, Sign(p)) for arbitrary
// string payloads, and that any change to the payload fails verification.
func TestProperty_DevSigner_RoundTrip(t *testing.T) {
	signer := NewDevSigner("property-secret")

	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")
		payload := map[string]any{"text": text}

		sig, err := signer.Sign(payload)
		require.NoError(rt, err)
		assert.True(rt, signer.Verify(payload, sig))

		mutated := map[string]any{"text": text + "x"}
		assert.False(rt, signer.Verify(mutated, sig))
	})
}
