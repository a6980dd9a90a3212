package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/config"
	"github.com/BaSui01/arcbridge/types"
)

// testConfig disables the pieces that touch global state (Prometheus default
// registry) or wall-clock behavior (heartbeat).
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Telemetry.Enabled = false
	cfg.Heartbeat.Enabled = false
	return cfg
}

func TestNewServer_Wiring(t *testing.T) {
	s := NewServer(testConfig(), zap.NewNop())

	assert.NotNil(t, s.state)
	assert.NotNil(t, s.hub, "stream enabled by default")
	assert.NotNil(t, s.signer, "signing enabled by default")
	assert.NotNil(t, s.signingHandler)
	// The stream bridge listener is attached at construction.
	assert.Equal(t, 1, s.state.Bus.ListenerCount())
}

func TestNewServer_DisabledComponents(t *testing.T) {
	cfg := testConfig()
	cfg.Stream.Enabled = false
	cfg.Signing.Enabled = false

	s := NewServer(cfg, zap.NewNop())
	assert.Nil(t, s.hub)
	assert.Nil(t, s.signer)
	assert.Nil(t, s.signingHandler)
}

func TestServer_BridgeSignsRelayedEvents(t *testing.T) {
	s := NewServer(testConfig(), zap.NewNop())

	// The bridge mutates its local copy before relaying; the emitted event
	// itself keeps the placeholder signature.
	event := s.state.Bus.EmitSignal(types.SignalHeartbeatTick, "test", map[string]any{"n": 1})
	assert.Equal(t, types.SignatureUnsigned, event.Signature)
}

func TestServer_Routes(t *testing.T) {
	s := NewServer(testConfig(), zap.NewNop())
	mux := s.routes()

	get := []string{
		"/health",
		"/healthz",
		"/ready",
		"/api/federation/commands",
		"/api/federation/state",
		"/api/federation/nodes/status",
		"/api/federation/subscriptions",
		"/api/federation/intents",
		"/api/federation/intents/summary",
		"/api/federation/topology",
		"/api/federation/divergence",
		"/api/federation/reasons",
		"/api/federation/policy",
		"/api/federation/actions",
	}

	for _, path := range get {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestServer_RoutesRejectWrongMethod(t *testing.T) {
	s := NewServer(testConfig(), zap.NewNop())
	mux := s.routes()

	req := httptest.NewRequest(http.MethodGet, "/api/whisperer/message", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_HeartbeatPopulatesRegistry(t *testing.T) {
	cfg := testConfig()
	s := NewServer(cfg, zap.NewNop())

	// Drive one heartbeat by hand rather than waiting on the ticker.
	s.state.Nodes.RecordHeartbeat(cfg.Heartbeat.NodeID)
	s.state.Bus.EmitSignal(types.SignalHeartbeatTick, cfg.Heartbeat.NodeID, nil)

	statuses := s.state.Nodes.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, cfg.Heartbeat.NodeID, statuses[0].NodeID)
	assert.Equal(t, "online", statuses[0].Status)
}
