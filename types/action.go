package types

import (
	"time"

	"github.com/google/uuid"
)

// ActionType enumerates the kinds of actions the federation will eventually
// be able to perform. The set is closed; nothing in this repository executes
// any of them.
type ActionType string

const (
	ActionQuery       ActionType = "QUERY"       // read-only info requests
	ActionEcho        ActionType = "ECHO"        // ping/heartbeat
	ActionDeploy      ActionType = "DEPLOY"      // deploy agents or manifests
	ActionConfig      ActionType = "CONFIG"      // push configuration
	ActionOrchestrate ActionType = "ORCHESTRATE" // start/stop processes
	ActionPolicy      ActionType = "POLICY"      // update rules
	ActionFederate    ActionType = "FEDERATE"    // add/remove nodes
)

// ActionTypes returns the closed action type set in declaration order.
func ActionTypes() []ActionType {
	return []ActionType{
		ActionQuery,
		ActionEcho,
		ActionDeploy,
		ActionConfig,
		ActionOrchestrate,
		ActionPolicy,
		ActionFederate,
	}
}

// IsValidActionType reports whether candidate names a member of the closed
// action type set. Passive check only.
func IsValidActionType(candidate string) bool {
	for _, t := range ActionTypes() {
		if string(t) == candidate {
			return true
		}
	}
	return false
}

// ActionSchema is a passive blueprint describing a potential future action.
// Constructing one has no side effect beyond producing the value.
type ActionSchema struct {
	ID      string         `json:"id"`
	Type    ActionType     `json:"type"`
	Payload map[string]any `json:"payload"`
	TS      int64          `json:"ts"`
	Target  string         `json:"target,omitempty"`
	Channel string         `json:"channel,omitempty"`
}

// ActionOptions carries the optional routing hints for DefineAction.
type ActionOptions struct {
	Target  string
	Channel string
}

// DefineAction creates an action schema without executing it. A nil payload
// is defaulted to an empty map; the timestamp is assigned in epoch
// milliseconds at construction time.
func DefineAction(typ ActionType, payload map[string]any, opts *ActionOptions) ActionSchema {
	if payload == nil {
		payload = map[string]any{}
	}
	action := ActionSchema{
		ID:      uuid.NewString(),
		Type:    typ,
		Payload: payload,
		TS:      time.Now().UnixMilli(),
	}
	if opts != nil {
		action.Target = opts.Target
		action.Channel = opts.Channel
	}
	return action
}
