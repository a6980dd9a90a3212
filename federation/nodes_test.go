package federation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNodeRegistry_HeartbeatMarksOnline(t *testing.T) {
	r := NewNodeRegistry(zap.NewNop())

	assert.Empty(t, r.Statuses())

	r.RecordHeartbeat("pi-worker-01")
	r.RecordHeartbeat("pi-worker-02")

	statuses := r.Statuses()
	require.Len(t, statuses, 2)
	assert.Equal(t, "pi-worker-01", statuses[0].NodeID)
	assert.Equal(t, "online", statuses[0].Status)
}

func TestNodeRegistry_FirstHeartbeatRecordsJoinEvent(t *testing.T) {
	r := NewNodeRegistry(zap.NewNop())

	r.RecordHeartbeat("pi-worker-01")
	r.RecordHeartbeat("pi-worker-01")

	events := r.Events()
	require.Len(t, events, 1, "join event recorded once per node")
	assert.Equal(t, "node-joined", events[0].Type)
	assert.Equal(t, "pi-worker-01", events[0].NodeID)
}

func TestNodeRegistry_EventLogCapped(t *testing.T) {
	r := NewNodeRegistry(zap.NewNop())

	for i := 0; i < nodeEventRetention+30; i++ {
		r.RecordEvent("telemetry", fmt.Sprintf("node-%d", i), nil)
	}

	events := r.Events()
	require.Len(t, events, nodeEventRetention)
	assert.Equal(t, "node-30", events[0].NodeID)
}
