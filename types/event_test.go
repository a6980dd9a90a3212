package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_FreshIDAndTimestamp(t *testing.T) {
	before := time.Now().UTC()

	evt := NewEvent(SignalHeartbeatTick, "test-node", map[string]any{"seq": 1})

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, SignalHeartbeatTick, evt.Signal)
	assert.Equal(t, "test-node", evt.Source)
	assert.Equal(t, SignatureUnsigned, evt.Signature)

	ts, err := time.Parse(time.RFC3339Nano, evt.Timestamp)
	require.NoError(t, err)
	assert.False(t, ts.Before(before.Truncate(time.Second)),
		"event timestamp should not be earlier than call time")
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		evt := NewEvent(SignalArcTelemetry, "src", nil)
		assert.False(t, seen[evt.ID], "event id %q issued twice", evt.ID)
		seen[evt.ID] = true
	}
}

func TestNewEvent_NilPayloadDefaultsToEmptyMap(t *testing.T) {
	evt := NewEvent(SignalUIAction, "ui", nil)
	require.NotNil(t, evt.Payload)
	assert.Empty(t, evt.Payload)
}

func TestEvent_WireFieldNames(t *testing.T) {
	evt := NewEvent(SignalSystemFault, "watchdog", map[string]any{"detail": "x"})

	raw, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	for _, field := range []string{"id", "signal", "timestamp", "source", "payload", "signature"} {
		assert.Contains(t, decoded, field)
	}
}

func TestSignal_Valid(t *testing.T) {
	for _, s := range Signals() {
		assert.True(t, s.Valid(), "signal %q should be valid", s)
	}
	assert.False(t, Signal("NOT_A_SIGNAL").Valid())
	assert.False(t, Signal("").Valid())
}
