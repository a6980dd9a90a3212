package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/federation"
	"github.com/BaSui01/arcbridge/types"
	"github.com/BaSui01/arcbridge/whisperer"
)

// ActionsHandler serves the action blueprint endpoints: recording, listing,
// previewing, and routing operator intents into would-be actions. Nothing
// here executes anything.
type ActionsHandler struct {
	state  *federation.State
	logger *zap.Logger
}

// NewActionsHandler creates an actions handler over the given state.
func NewActionsHandler(state *federation.State, logger *zap.Logger) *ActionsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionsHandler{
		state:  state,
		logger: logger.With(zap.String("component", "actions_handler")),
	}
}

// actionRequest is the shared body for recording and previewing actions.
type actionRequest struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
	Target  string         `json:"target"`
	Channel string         `json:"channel"`
}

func (h *ActionsHandler) decodeAction(w http.ResponseWriter, r *http.Request) (types.ActionSchema, bool) {
	var req actionRequest
	if derr := DecodeJSONBody(w, r, &req); derr != nil {
		WriteError(w, derr, h.logger)
		return types.ActionSchema{}, false
	}
	if req.Type == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "type is required", h.logger)
		return types.ActionSchema{}, false
	}
	if !types.IsValidActionType(req.Type) {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidActionType,
			"unknown action type: "+req.Type, h.logger)
		return types.ActionSchema{}, false
	}

	return types.DefineAction(types.ActionType(req.Type), req.Payload, &types.ActionOptions{
		Target:  req.Target,
		Channel: req.Channel,
	}), true
}

// HandleRecord serves POST /api/federation/action/record: define an action
// blueprint and append it to the action log.
func (h *ActionsHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	action, ok := h.decodeAction(w, r)
	if !ok {
		return
	}

	h.state.Actions.Record(action)
	h.state.Bus.EmitSignal(types.SignalUIAction, "api", action)
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "action": action})
}

// HandleActions serves GET /api/federation/actions: the recent window of the
// action log.
func (h *ActionsHandler) HandleActions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"actions": h.state.Actions.Recent(0)})
}

// HandlePreview serves POST /api/federation/action/preview: the theoretical
// impact of an action against the current topology, computed without side
// effects and without recording anything.
func (h *ActionsHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	action, ok := h.decodeAction(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, h.state.Preview(action))
}

// actRequest is the POST /api/act body: a pre-classified intent.
type actRequest struct {
	Intent     string  `json:"intent"`
	Target     string  `json:"target"`
	AgentType  string  `json:"agent_type"`
	Confidence float64 `json:"confidence"`
}

// HandleAct serves POST /api/act: route a classified intent and report where
// it WOULD go. The routing decision is the entire response; nothing is
// contacted.
func (h *ActionsHandler) HandleAct(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req actRequest
	if derr := DecodeJSONBody(w, r, &req); derr != nil {
		WriteError(w, derr, h.logger)
		return
	}
	if req.Intent == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "intent is required", h.logger)
		return
	}

	result := whisperer.RouteIntent(whisperer.Intent{
		Intent:     req.Intent,
		Target:     req.Target,
		AgentType:  req.AgentType,
		Confidence: req.Confidence,
	})
	WriteJSON(w, http.StatusOK, result)
}

// intentTextRequest is the POST /api/intent body.
type intentTextRequest struct {
	Text string `json:"text"`
}

// HandleIntentText serves POST /api/intent: classify free-form operator text
// and publish the detection on the signal bus.
func (h *ActionsHandler) HandleIntentText(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req intentTextRequest
	if derr := DecodeJSONBody(w, r, &req); derr != nil {
		WriteError(w, derr, h.logger)
		return
	}
	if req.Text == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "text is required", h.logger)
		return
	}

	intent := whisperer.AnalyzeIntent(req.Text)
	h.state.Bus.EmitSignal(types.SignalIntentDetected, "whisperer", intent)
	WriteJSON(w, http.StatusOK, intent)
}
