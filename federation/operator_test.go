package federation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOperatorRegistry_RegisterAndGet(t *testing.T) {
	r := NewOperatorRegistry(zap.NewNop())

	_, ok := r.Get()
	assert.False(t, ok, "fresh registry has no operator")

	stored := r.Register("op-1", "webauthn", map[string]any{"device": "yubikey-5"})
	assert.Greater(t, stored.RegisteredAt, int64(0))
	assert.Equal(t, stored.RegisteredAt, stored.LastSeen)

	got, ok := r.Get()
	require.True(t, ok)
	assert.Equal(t, "op-1", got.ID)
	assert.Equal(t, "webauthn", got.Source)
}

func TestOperatorRegistry_Session(t *testing.T) {
	r := NewOperatorRegistry(zap.NewNop())

	assert.False(t, r.Session().Verified)

	r.MarkVerified()
	session := r.Session()
	assert.True(t, session.Verified)
	assert.Greater(t, session.TS, int64(0))

	r.ClearSession()
	assert.False(t, r.Session().Verified)
	assert.Zero(t, r.Session().TS)
}
