package federation

import (
	"strings"

	"github.com/BaSui01/arcbridge/types"
)

// TopologyNode is a node in the passive federation graph.
type TopologyNode struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

// TopologyEdge links a subscribing node to a channel.
type TopologyEdge struct {
	Source  string `json:"source"`
	Channel string `json:"channel"`
	TS      int64  `json:"ts"`
}

// Topology is a representation of the federation graph. It controls nothing:
// nodes come from intent targets and subscription ids, edges from
// subscriptions.
type Topology struct {
	Nodes []TopologyNode `json:"nodes"`
	Edges []TopologyEdge `json:"edges"`
}

// BuildTopology derives the federation graph from the retained intents and
// subscriptions. Empty identifiers are skipped; node order follows first
// appearance.
func BuildTopology(intents []types.Intent, subs []types.Subscription) Topology {
	seen := make(map[string]bool)
	var nodes []TopologyNode

	addNode := func(id string) {
		if strings.TrimSpace(id) == "" || seen[id] {
			return
		}
		seen[id] = true
		nodes = append(nodes, TopologyNode{ID: id, Type: "node"})
	}

	for _, intent := range intents {
		addNode(intent.Target)
	}
	for _, sub := range subs {
		addNode(sub.ID)
	}

	var edges []TopologyEdge
	for _, sub := range subs {
		if strings.TrimSpace(sub.ID) == "" {
			continue
		}
		edges = append(edges, TopologyEdge{
			Source:  sub.ID,
			Channel: sub.Channel,
			TS:      sub.TS,
		})
	}

	return Topology{Nodes: nodes, Edges: edges}
}
