package federation

import (
	"time"

	"github.com/BaSui01/arcbridge/types"
)

// previewNotes is attached to every preview so no consumer can mistake it for
// an execution result.
const previewNotes = "Simulation only. No dispatch, no execution, no federation alteration."

// ActionPreview is the theoretical impact of an action, computed without
// executing it. Comparable to kubectl diff or terraform plan: prediction in
// the safe lane, nothing touched.
type ActionPreview struct {
	Action                string         `json:"action"`
	Targets               []TopologyNode `json:"targets"`
	AffectedChannels      []string       `json:"affectedChannels"`
	MatchingSubscriptions int            `json:"matchingSubscriptions"`
	MatchingIntents       int            `json:"matchingIntents"`
	TS                    int64          `json:"timestamp"`
	Notes                 string         `json:"notes"`
	Impact                PreviewImpact  `json:"impact"`
}

// PreviewImpact summarizes the preview as counts.
type PreviewImpact struct {
	Nodes         int `json:"nodes"`
	Channels      int `json:"channels"`
	Subscriptions int `json:"subscriptions"`
	Intents       int `json:"intents"`
}

// PreviewAction computes the theoretical impact of an action against the
// current topology, subscriptions, and intents. Purely predictive: no
// dispatch, no mutation.
func PreviewAction(action types.ActionSchema, topo Topology, subs []types.Subscription, intents []types.Intent) ActionPreview {
	// A targeted action narrows the candidate set to that node; otherwise
	// every known node is a potential target.
	targets := topo.Nodes
	if action.Target != "" {
		targets = nil
		for _, node := range topo.Nodes {
			if node.ID == action.Target {
				targets = append(targets, node)
			}
		}
	}

	matchingSubs := 0
	if action.Channel != "" {
		for _, sub := range subs {
			if sub.Channel == action.Channel {
				matchingSubs++
			}
		}
	} else {
		matchingSubs = len(subs)
	}

	matchingIntents := 0
	for _, intent := range intents {
		if action.Target != "" && intent.Target != action.Target {
			continue
		}
		if action.Channel != "" && intent.Channel != action.Channel {
			continue
		}
		matchingIntents++
	}

	var channels []string
	if action.Channel != "" {
		channels = []string{action.Channel}
	} else {
		seen := make(map[string]bool)
		for _, sub := range subs {
			if !seen[sub.Channel] {
				seen[sub.Channel] = true
				channels = append(channels, sub.Channel)
			}
		}
	}

	return ActionPreview{
		Action:                string(action.Type),
		Targets:               targets,
		AffectedChannels:      channels,
		MatchingSubscriptions: matchingSubs,
		MatchingIntents:       matchingIntents,
		TS:                    time.Now().UnixMilli(),
		Notes:                 previewNotes,
		Impact: PreviewImpact{
			Nodes:         len(targets),
			Channels:      len(channels),
			Subscriptions: matchingSubs,
			Intents:       matchingIntents,
		},
	}
}
