package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/federation"
	"github.com/BaSui01/arcbridge/types"
)

// OperatorHandler serves the single-operator identity and session endpoints.
// Identity here is bookkeeping, not authentication: registering grants
// nothing and verification only flips an observable flag.
type OperatorHandler struct {
	state  *federation.State
	logger *zap.Logger
}

// NewOperatorHandler creates an operator handler over the given state.
func NewOperatorHandler(state *federation.State, logger *zap.Logger) *OperatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperatorHandler{
		state:  state,
		logger: logger.With(zap.String("component", "operator_handler")),
	}
}

// registerRequest is the POST /api/operator body.
type registerRequest struct {
	ID       string         `json:"id"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata"`
}

// HandleOperator serves /api/operator: GET returns the current identity (or
// operator: null), POST registers one.
func (h *OperatorHandler) HandleOperator(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		op, ok := h.state.Operator.Get()
		if !ok {
			WriteJSON(w, http.StatusOK, map[string]any{"operator": nil})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"operator": op})

	case http.MethodPost:
		var req registerRequest
		if derr := DecodeJSONBody(w, r, &req); derr != nil {
			WriteError(w, derr, h.logger)
			return
		}
		if req.ID == "" || req.Source == "" {
			WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "id and source are required", h.logger)
			return
		}

		op := h.state.Operator.Register(req.ID, req.Source, req.Metadata)
		h.state.Bus.EmitSignal(types.SignalRho2Security, "operator", map[string]any{
			"event":  "operator-registered",
			"id":     op.ID,
			"source": op.Source,
		})
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "operator": op})

	default:
		w.Header().Set("Allow", "GET, POST")
		WriteErrorMessage(w, http.StatusMethodNotAllowed, types.ErrInvalidRequest,
			"method not allowed: "+r.Method, h.logger)
	}
}

// HandleSession serves /api/operator/session: GET returns the session flag,
// POST marks the session verified, DELETE clears it.
func (h *OperatorHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, map[string]any{"session": h.state.Operator.Session()})

	case http.MethodPost:
		h.state.Operator.MarkVerified()
		h.state.Operator.UpdatePresence()
		h.state.Bus.EmitSignal(types.SignalRho2Security, "operator", map[string]any{
			"event": "session-verified",
		})
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "session": h.state.Operator.Session()})

	case http.MethodDelete:
		h.state.Operator.ClearSession()
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		WriteErrorMessage(w, http.StatusMethodNotAllowed, types.ErrInvalidRequest,
			"method not allowed: "+r.Method, h.logger)
	}
}
