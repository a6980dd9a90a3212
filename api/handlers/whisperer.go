package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/federation"
	"github.com/BaSui01/arcbridge/stream"
	"github.com/BaSui01/arcbridge/types"
)

// WhispererHandler ingests operator text and relays it to the signal bus and
// to live stream observers. The hub may be nil; relay then silently skips
// the WebSocket leg.
type WhispererHandler struct {
	bus    *federation.SignalBus
	hub    *stream.Hub
	logger *zap.Logger
}

// NewWhispererHandler creates a whisperer handler.
func NewWhispererHandler(bus *federation.SignalBus, hub *stream.Hub, logger *zap.Logger) *WhispererHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhispererHandler{
		bus:    bus,
		hub:    hub,
		logger: logger.With(zap.String("component", "whisperer_handler")),
	}
}

// messageRequest is the POST /api/whisperer/message body.
type messageRequest struct {
	Text string `json:"text"`
}

// whispererMessage is the stored and relayed form of one operator utterance.
type whispererMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// HandleMessage serves POST /api/whisperer/message: accept one operator
// utterance, publish it on the bus, and fan it out to stream observers.
func (h *WhispererHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req messageRequest
	if derr := DecodeJSONBody(w, r, &req); derr != nil {
		WriteError(w, derr, h.logger)
		return
	}
	if req.Text == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "text is required", h.logger)
		return
	}

	msg := whispererMessage{
		ID:        uuid.NewString(),
		Role:      "operator",
		Text:      req.Text,
		Timestamp: time.Now().UnixMilli(),
	}

	h.bus.EmitSignal(types.SignalWhispererMessage, "operator", msg)
	h.hub.Broadcast(map[string]any{"type": "whisperer-message", "payload": msg})

	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "message": msg})
}

// sendRequest is the POST /api/whisperer/send body: an already-shaped frame
// to relay verbatim to stream observers.
type sendRequest struct {
	Message map[string]any `json:"message"`
}

// HandleSend serves POST /api/whisperer/send.
func (h *WhispererHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req sendRequest
	if derr := DecodeJSONBody(w, r, &req); derr != nil {
		WriteError(w, derr, h.logger)
		return
	}
	if len(req.Message) == 0 {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "message is required", h.logger)
		return
	}

	h.hub.Broadcast(req.Message)
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}
