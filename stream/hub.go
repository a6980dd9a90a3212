// Package stream bridges the federation signal bus to live WebSocket
// observers. Delivery is best-effort, at most once per connected client:
// no acknowledgment, no retry, no replay for late joiners.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/types"
)

const (
	// writeTimeout bounds a single client send. Fan-out never blocks on a
	// slow consumer for longer than this.
	writeTimeout = 5 * time.Second

	// Path is the single network path the hub binds to.
	Path = "/stream"
)

// Hub maintains the set of connected observers and relays broadcast payloads
// to each of them. A nil *Hub is valid: every method is a silent no-op, so
// producers never need to care whether the transport was initialized.
type Hub struct {
	logger *zap.Logger

	mu          sync.Mutex
	clients     map[*client]struct{}
	failureHook func()
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex // websocket does not support concurrent writes
}

func (c *client) send(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Write(ctx, websocket.MessageText, data)
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:  logger.With(zap.String("component", "stream_hub")),
		clients: make(map[*client]struct{}),
	}
}

// OnSendFailure registers a callback invoked each time a client send fails.
// Safe on a nil hub.
func (h *Hub) OnSendFailure(fn func()) {
	if h == nil {
		return
	}
	h.mu.Lock()
	h.failureHook = fn
	h.mu.Unlock()
}

// ClientCount returns the number of currently connected observers.
func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler returns the HTTP handler that upgrades connections and serves them
// until disconnect.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			h.logger.Debug("websocket accept failed", zap.Error(err))
			return
		}

		c := &client{conn: conn}
		h.register(c)
		h.logger.Info("telemetry client connected", zap.Int("clients", h.ClientCount()))

		h.greet(c)
		h.readLoop(r.Context(), c)

		h.unregister(c)
		_ = conn.Close(websocket.StatusNormalClosure, "closing")
		h.logger.Info("telemetry client disconnected", zap.Int("clients", h.ClientCount()))
	})
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// greet sends the online banner to a newly connected client.
func (h *Hub) greet(c *client) {
	banner, _ := json.Marshal(map[string]any{
		"type":    "system",
		"level":   "info",
		"source":  "arcbridge",
		"message": "Arc Bridge telemetry online",
		"ts":      time.Now().UnixMilli(),
	})
	if err := c.send(banner); err != nil {
		h.logger.Debug("greeting send failed", zap.Error(err))
	}
}

// inboundFrame is the only client-to-server message the hub understands.
type inboundFrame struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// readLoop consumes client frames until the connection drops. Operator
// command frames get an ack; everything else is ignored.
func (h *Hub) readLoop(ctx context.Context, c *client) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}

		if frame.Kind == "operator_command" {
			ack, _ := json.Marshal(map[string]any{
				"kind":    "ack",
				"content": "Command received: " + frame.Content,
				"ts":      time.Now().UnixMilli(),
			})
			if err := c.send(ack); err != nil {
				return
			}
		}
	}
}

// Broadcast serializes payload once and attempts to send it to every
// connected client. Missing "kind" and "ts" fields are defaulted. A failed
// send to one client is caught and ignored without aborting delivery to the
// rest; on a nil or empty hub the call is a silent no-op.
func (h *Hub) Broadcast(payload map[string]any) {
	if h == nil {
		return
	}

	envelope := make(map[string]any, len(payload)+2)
	envelope["kind"] = "telemetry"
	envelope["ts"] = time.Now().UnixMilli()
	for k, v := range payload {
		envelope[k] = v
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Warn("broadcast payload not serializable", zap.Error(err))
		return
	}
	h.fanout(raw)
}

// BroadcastEvent relays a federation event to every connected client using
// the stable wire envelope. Nil-hub and per-client failure semantics match
// Broadcast.
func (h *Hub) BroadcastEvent(event types.Event) {
	if h == nil {
		return
	}
	raw, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("event not serializable", zap.String("event_id", event.ID), zap.Error(err))
		return
	}
	h.fanout(raw)
}

func (h *Hub) fanout(raw []byte) {
	h.mu.Lock()
	snapshot := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		snapshot = append(snapshot, c)
	}
	hook := h.failureHook
	h.mu.Unlock()

	for _, c := range snapshot {
		if err := c.send(raw); err != nil {
			// Best-effort: the client is likely gone; its read loop will
			// unregister it.
			h.logger.Debug("client send failed", zap.Error(err))
			if hook != nil {
				hook()
			}
		}
	}
}
