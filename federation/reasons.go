package federation

import (
	"fmt"

	"github.com/BaSui01/arcbridge/types"
)

// ReasonSeverity grades a federation reason.
type ReasonSeverity string

const (
	ReasonInfo    ReasonSeverity = "info"
	ReasonWarning ReasonSeverity = "warning"
	ReasonError   ReasonSeverity = "error"
)

// Reason is a derived explanation or flag about federation state. Reasons are
// read-only: no action, command, or reconciliation follows from them.
type Reason struct {
	Type     string         `json:"type"`
	Detail   string         `json:"detail"`
	Severity ReasonSeverity `json:"severity,omitempty"`
	Context  map[string]any `json:"context,omitempty"`
}

// DeriveReasons analyzes topology, intents, and subscriptions and returns
// explanations of anything that looks off: intents targeting unknown nodes,
// orphaned nodes, edges with no matching intent, and intents with no
// subscription.
func DeriveReasons(topo Topology, intents []types.Intent, subs []types.Subscription) []Reason {
	var reasons []Reason

	nodeIDs := make(map[string]bool, len(topo.Nodes))
	for _, node := range topo.Nodes {
		nodeIDs[node.ID] = true
	}

	for _, intent := range intents {
		if intent.Target != "" && !nodeIDs[intent.Target] {
			reasons = append(reasons, Reason{
				Type:     "missing-node",
				Detail:   fmt.Sprintf("Intent targets %q but node not present in topology.", intent.Target),
				Severity: ReasonWarning,
				Context: map[string]any{
					"intentTarget":  intent.Target,
					"intentChannel": intent.Channel,
					"intentDesired": intent.Desired,
				},
			})
		}
	}

	for _, node := range topo.Nodes {
		hasEdges := false
		for _, edge := range topo.Edges {
			if edge.Source == node.ID {
				hasEdges = true
				break
			}
		}
		if !hasEdges {
			reasons = append(reasons, Reason{
				Type:     "orphan",
				Detail:   fmt.Sprintf("Node %q has no subscriptions or edges.", node.ID),
				Severity: ReasonInfo,
				Context: map[string]any{
					"nodeId":   node.ID,
					"nodeType": node.Type,
				},
			})
		}
	}

	for _, edge := range topo.Edges {
		hasMatchingIntent := false
		for _, intent := range intents {
			if intent.Channel == edge.Channel && intent.Target == edge.Source {
				hasMatchingIntent = true
				break
			}
		}
		if !hasMatchingIntent {
			// Informational: not every edge needs a declared intent.
			reasons = append(reasons, Reason{
				Type:     "redundant-edge",
				Detail:   fmt.Sprintf("Edge from %q on channel %q has no matching intent.", edge.Source, edge.Channel),
				Severity: ReasonInfo,
				Context: map[string]any{
					"source":  edge.Source,
					"channel": edge.Channel,
				},
			})
		}
	}

	for _, intent := range intents {
		if intent.Channel == "" || intent.Target == "" {
			continue
		}
		hasSubscription := false
		for _, sub := range subs {
			if sub.Channel == intent.Channel && sub.ID == intent.Target {
				hasSubscription = true
				break
			}
		}
		if !hasSubscription {
			reasons = append(reasons, Reason{
				Type:     "intent-without-subscription",
				Detail:   fmt.Sprintf("Intent targets channel %q for %q but no subscription exists.", intent.Channel, intent.Target),
				Severity: ReasonWarning,
				Context: map[string]any{
					"intentTarget":  intent.Target,
					"intentChannel": intent.Channel,
					"intentDesired": intent.Desired,
				},
			})
		}
	}

	return reasons
}
