package federation

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// nodeOfflineThreshold marks a node offline once its last heartbeat is
	// older than this.
	nodeOfflineThreshold = 45 * time.Second
	// nodeEventRetention caps the node event log.
	nodeEventRetention = 200
)

// NodeStatus is a point-in-time view of a federated node's presence.
type NodeStatus struct {
	NodeID   string `json:"nodeId"`
	TS       int64  `json:"ts"`
	Status   string `json:"status"` // "online" or "offline"
	LastSeen int64  `json:"lastSeen"`
}

// NodeEvent is an entry in the passive node event log.
type NodeEvent struct {
	TS     int64          `json:"ts"`
	Type   string         `json:"type"`
	NodeID string         `json:"nodeId"`
	Data   map[string]any `json:"data,omitempty"`
}

// NodeRegistry tracks node presence from heartbeats and keeps a bounded event
// log. Presence is observation only; no node is ever contacted.
type NodeRegistry struct {
	logger *zap.Logger

	mu     sync.Mutex
	nodes  map[string]int64 // node id -> last heartbeat, epoch millis
	events []NodeEvent
}

// NewNodeRegistry creates an empty node registry.
func NewNodeRegistry(logger *zap.Logger) *NodeRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NodeRegistry{
		logger: logger.With(zap.String("component", "node_registry")),
		nodes:  make(map[string]int64),
	}
}

// RecordHeartbeat notes that a node reported in.
func (r *NodeRegistry) RecordHeartbeat(nodeID string) {
	now := time.Now().UnixMilli()
	r.mu.Lock()
	_, known := r.nodes[nodeID]
	r.nodes[nodeID] = now
	r.mu.Unlock()

	if !known {
		r.logger.Info("node joined federation", zap.String("node_id", nodeID))
		r.RecordEvent("node-joined", nodeID, nil)
	}
}

// Statuses returns presence for every known node, offline when the last
// heartbeat is older than 45 seconds. Sorted by node id for stable output.
func (r *NodeRegistry) Statuses() []NodeStatus {
	now := time.Now().UnixMilli()
	threshold := nodeOfflineThreshold.Milliseconds()

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]NodeStatus, 0, len(r.nodes))
	for id, ts := range r.nodes {
		status := "online"
		if now-ts > threshold {
			status = "offline"
		}
		out = append(out, NodeStatus{
			NodeID:   id,
			TS:       ts,
			Status:   status,
			LastSeen: ts,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

// RecordEvent appends to the node event log, dropping the oldest entries once
// the cap is exceeded.
func (r *NodeRegistry) RecordEvent(eventType, nodeID string, data map[string]any) {
	event := NodeEvent{
		TS:     time.Now().UnixMilli(),
		Type:   eventType,
		NodeID: nodeID,
		Data:   data,
	}

	r.mu.Lock()
	r.events = append(r.events, event)
	if len(r.events) > nodeEventRetention {
		r.events = r.events[len(r.events)-nodeEventRetention:]
	}
	r.mu.Unlock()
}

// Events returns the retained node events, oldest first.
func (r *NodeRegistry) Events() []NodeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]NodeEvent, len(r.events))
	copy(out, r.events)
	return out
}
