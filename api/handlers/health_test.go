package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealthHandler_Health(t *testing.T) {
	h := NewHealthHandler(zap.NewNop(), "1.0.0")

	w := get(t, h.HandleHealth, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var status HealthStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestHealthHandler_Healthz(t *testing.T) {
	h := NewHealthHandler(zap.NewNop(), "")

	w := get(t, h.HandleHealthz, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestHealthHandler_Ready(t *testing.T) {
	h := NewHealthHandler(zap.NewNop(), "")

	body := decodeBody(t, get(t, h.HandleReady, "/ready"))
	assert.Equal(t, true, body["ready"])
}
