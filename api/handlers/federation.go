package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/federation"
	"github.com/BaSui01/arcbridge/types"
)

// FederationHandler serves the registry and derived-view endpoints. Every
// read degrades to an empty collection rather than a 5xx: a monitoring
// surface that errors out while the thing it monitors is misbehaving is
// useless exactly when it matters.
type FederationHandler struct {
	state  *federation.State
	logger *zap.Logger
}

// NewFederationHandler creates a federation handler over the given state.
func NewFederationHandler(state *federation.State, logger *zap.Logger) *FederationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FederationHandler{
		state:  state,
		logger: logger.With(zap.String("component", "federation_handler")),
	}
}

// degraded recovers from a panic in a read path and serves the fallback body.
func (h *FederationHandler) degraded(w http.ResponseWriter, fallback map[string]any) {
	if rec := recover(); rec != nil {
		h.logger.Error("read endpoint degraded", zap.Any("panic", rec))
		WriteJSON(w, http.StatusOK, fallback)
	}
}

// enqueueRequest is the POST /api/federation/commands body.
type enqueueRequest struct {
	Target  string         `json:"target"`
	Cmd     string         `json:"cmd"`
	Data    map[string]any `json:"data"`
	Channel string         `json:"channel"`
}

// HandleCommands serves /api/federation/commands.
//
// GET lists the recent command window, or the full per-target history when
// ?target= is given. POST enqueues a command for a future execution layer;
// nothing runs.
func (h *FederationHandler) HandleCommands(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		defer h.degraded(w, map[string]any{"commands": []types.Command{}})

		if target := r.URL.Query().Get("target"); target != "" {
			WriteJSON(w, http.StatusOK, map[string]any{
				"target":   target,
				"commands": h.state.Commands.ForTarget(target),
			})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"commands": h.state.Commands.Recent()})

	case http.MethodPost:
		var req enqueueRequest
		if derr := DecodeJSONBody(w, r, &req); derr != nil {
			WriteError(w, derr, h.logger)
			return
		}
		if req.Target == "" {
			WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "target is required", h.logger)
			return
		}
		if req.Cmd == "" {
			WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "cmd is required", h.logger)
			return
		}

		stored := h.state.Commands.Enqueue(types.Command{
			Target:  req.Target,
			Cmd:     req.Cmd,
			Data:    req.Data,
			Channel: req.Channel,
		})
		h.state.Bus.EmitSignal(types.SignalOperatorCommand, "api", stored)
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "command": stored})

	default:
		w.Header().Set("Allow", "GET, POST")
		WriteErrorMessage(w, http.StatusMethodNotAllowed, types.ErrInvalidRequest,
			"method not allowed: "+r.Method, h.logger)
	}
}

// HandleState serves GET /api/federation/state: the combined snapshot the
// dashboard polls.
func (h *FederationHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	defer h.degraded(w, map[string]any{
		"ts":            time.Now().UnixMilli(),
		"events":        []federation.NodeEvent{},
		"commands":      []types.Command{},
		"subscriptions": []types.Subscription{},
	})

	WriteJSON(w, http.StatusOK, map[string]any{
		"ts":            time.Now().UnixMilli(),
		"events":        h.state.Nodes.Events(),
		"commands":      h.state.Commands.Recent(),
		"subscriptions": h.state.Subscriptions.List(),
	})
}

// HandleNodesStatus serves GET /api/federation/nodes/status.
func (h *FederationHandler) HandleNodesStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	defer h.degraded(w, map[string]any{
		"ts":    time.Now().UnixMilli(),
		"nodes": []federation.NodeStatus{},
	})

	WriteJSON(w, http.StatusOK, map[string]any{
		"ts":    time.Now().UnixMilli(),
		"nodes": h.state.Nodes.Statuses(),
	})
}

// heartbeatRequest is the POST /api/federation/heartbeat body.
type heartbeatRequest struct {
	NodeID string `json:"node_id"`
}

// HandleHeartbeat serves POST /api/federation/heartbeat. Recording presence
// is the only effect; the node is never contacted back.
func (h *FederationHandler) HandleHeartbeat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req heartbeatRequest
	if derr := DecodeJSONBody(w, r, &req); derr != nil {
		WriteError(w, derr, h.logger)
		return
	}
	if req.NodeID == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "node_id is required", h.logger)
		return
	}

	h.state.Nodes.RecordHeartbeat(req.NodeID)
	h.state.Bus.EmitSignal(types.SignalHeartbeatTick, req.NodeID, map[string]any{"nodeId": req.NodeID})
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// subscribeRequest is the POST /api/federation/subscriptions body.
type subscribeRequest struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
}

// HandleSubscriptions serves /api/federation/subscriptions: GET lists, POST
// registers interest in a channel.
func (h *FederationHandler) HandleSubscriptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		defer h.degraded(w, map[string]any{"subscriptions": []types.Subscription{}})
		WriteJSON(w, http.StatusOK, map[string]any{"subscriptions": h.state.Subscriptions.List()})

	case http.MethodPost:
		var req subscribeRequest
		if derr := DecodeJSONBody(w, r, &req); derr != nil {
			WriteError(w, derr, h.logger)
			return
		}
		if req.ID == "" || req.Channel == "" {
			WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "id and channel are required", h.logger)
			return
		}

		sub := h.state.Subscriptions.Register(req.ID, req.Channel)
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "subscription": sub})

	default:
		w.Header().Set("Allow", "GET, POST")
		WriteErrorMessage(w, http.StatusMethodNotAllowed, types.ErrInvalidRequest,
			"method not allowed: "+r.Method, h.logger)
	}
}

// HandleIntents serves /api/federation/intents: GET lists the retained
// window, POST declares a desired state that nothing will enforce.
func (h *FederationHandler) HandleIntents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		defer h.degraded(w, map[string]any{"intents": []types.Intent{}})
		WriteJSON(w, http.StatusOK, map[string]any{"intents": h.state.Intents.List()})

	case http.MethodPost:
		var req types.Intent
		if derr := DecodeJSONBody(w, r, &req); derr != nil {
			WriteError(w, derr, h.logger)
			return
		}

		stored := h.state.Intents.Declare(req)
		h.state.Bus.EmitSignal(types.SignalIntentDetected, "api", stored)
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "intent": stored})

	default:
		w.Header().Set("Allow", "GET, POST")
		WriteErrorMessage(w, http.StatusMethodNotAllowed, types.ErrInvalidRequest,
			"method not allowed: "+r.Method, h.logger)
	}
}

// HandleIntentSummary serves GET /api/federation/intents/summary: lifecycle
// counts plus current stale observations.
func (h *FederationHandler) HandleIntentSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	defer h.degraded(w, map[string]any{
		"lifecycle": map[string]int{},
		"stale":     []federation.StaleIntent{},
	})

	WriteJSON(w, http.StatusOK, map[string]any{
		"lifecycle": h.state.Intents.SummarizeLifecycle(),
		"stale":     h.state.Intents.DetectStale(),
	})
}

// HandleTopology serves GET /api/federation/topology.
func (h *FederationHandler) HandleTopology(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	defer h.degraded(w, map[string]any{"nodes": []federation.TopologyNode{}, "edges": []federation.TopologyEdge{}})

	WriteJSON(w, http.StatusOK, h.state.Topology())
}

// HandleDivergence serves GET /api/federation/divergence.
func (h *FederationHandler) HandleDivergence(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	defer h.degraded(w, map[string]any{"observations": []federation.DivergenceObservation{}})

	WriteJSON(w, http.StatusOK, map[string]any{"observations": h.state.DetectDivergence()})
}

// HandleReasons serves GET /api/federation/reasons.
func (h *FederationHandler) HandleReasons(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	defer h.degraded(w, map[string]any{"reasons": []federation.Reason{}})

	WriteJSON(w, http.StatusOK, map[string]any{"reasons": h.state.Reasons()})
}

// HandlePolicy serves GET /api/federation/policy?action=<name>: the policy
// row plus whether the action demands an override tier.
func (h *FederationHandler) HandlePolicy(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, h.logger) {
		return
	}

	action := r.URL.Query().Get("action")
	WriteJSON(w, http.StatusOK, map[string]any{
		"action":   action,
		"policy":   federation.PolicyFor(action),
		"override": federation.RequiresOverride(action),
	})
}
