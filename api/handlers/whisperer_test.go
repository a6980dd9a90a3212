package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/federation"
	"github.com/BaSui01/arcbridge/types"
)

func TestWhispererHandler_Message(t *testing.T) {
	bus := federation.NewSignalBus(zap.NewNop())
	h := NewWhispererHandler(bus, nil, zap.NewNop())

	var seen []types.Event
	bus.Subscribe(func(e types.Event) { seen = append(seen, e) })

	w := postJSON(t, h.HandleMessage, "/api/whisperer/message", map[string]any{"text": "status report"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	msg := body["message"].(map[string]any)
	assert.Equal(t, "operator", msg["role"])
	assert.Equal(t, "status report", msg["text"])
	assert.NotEmpty(t, msg["id"])
	assert.NotZero(t, msg["timestamp"])

	require.Len(t, seen, 1)
	assert.Equal(t, types.SignalWhispererMessage, seen[0].Signal)
	assert.Equal(t, "operator", seen[0].Source)
}

func TestWhispererHandler_MessageRequiresText(t *testing.T) {
	bus := federation.NewSignalBus(zap.NewNop())
	h := NewWhispererHandler(bus, nil, zap.NewNop())

	w := postJSON(t, h.HandleMessage, "/api/whisperer/message", map[string]any{"text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// A nil hub means no live observers; the HTTP contract must hold regardless.
func TestWhispererHandler_NilHubDoesNotPanic(t *testing.T) {
	bus := federation.NewSignalBus(zap.NewNop())
	h := NewWhispererHandler(bus, nil, zap.NewNop())

	require.NotPanics(t, func() {
		w := postJSON(t, h.HandleMessage, "/api/whisperer/message", map[string]any{"text": "hi"})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestWhispererHandler_Send(t *testing.T) {
	bus := federation.NewSignalBus(zap.NewNop())
	h := NewWhispererHandler(bus, nil, zap.NewNop())

	ok := postJSON(t, h.HandleSend, "/api/whisperer/send", map[string]any{
		"message": map[string]any{"type": "telemetry", "note": "manual"},
	})
	assert.Equal(t, http.StatusOK, ok.Code)

	missing := postJSON(t, h.HandleSend, "/api/whisperer/send", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}
