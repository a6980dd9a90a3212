package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthHandler serves the liveness and readiness endpoints. The control
// plane keeps all state in memory, so health reduces to "the process is up".
type HealthHandler struct {
	logger  *zap.Logger
	version string
	started time.Time
}

// HealthStatus is the /health response body.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(logger *zap.Logger, version string) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		logger:  logger.With(zap.String("component", "health_handler")),
		version: version,
		started: time.Now(),
	}
}

// HandleHealth serves GET /health.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	})
}

// HandleHealthz serves GET /healthz in the Kubernetes style: plain "ok".
func (h *HealthHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleReady serves GET /ready. With no external dependencies the process
// is ready as soon as it listens.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"ready":     true,
		"timestamp": time.Now(),
	})
}
