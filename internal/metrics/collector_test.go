package metrics

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// promauto registers against the default registry, so every test gets its
// own namespace to avoid duplicate registration panics.
var collectorNamespaceSeq uint64

func nextTestNamespace() string {
	seq := atomic.AddUint64(&collectorNamespaceSeq, 1)
	return fmt.Sprintf("test_%d", seq)
}

func TestNewCollector(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	assert.NotNil(t, collector)
	assert.NotNil(t, collector.eventsPublished)
	assert.NotNil(t, collector.listenerFaults)
	assert.NotNil(t, collector.streamClients)
	assert.NotNil(t, collector.registrySize)
	assert.NotNil(t, collector.httpRequestsTotal)
}

func TestCollector_RecordEvent(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordEvent("HEARTBEAT_TICK")
	collector.RecordEvent("HEARTBEAT_TICK")
	collector.RecordEvent("WHISPERER_MESSAGE")

	assert.InDelta(t, 2, testutil.ToFloat64(collector.eventsPublished.WithLabelValues("HEARTBEAT_TICK")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.eventsPublished.WithLabelValues("WHISPERER_MESSAGE")), 0.001)
}

func TestCollector_RecordListenerFault(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordListenerFault()
	assert.InDelta(t, 1, testutil.ToFloat64(collector.listenerFaults), 0.001)
}

func TestCollector_StreamGauges(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.SetStreamClients(3)
	assert.InDelta(t, 3, testutil.ToFloat64(collector.streamClients), 0.001)

	collector.SetStreamClients(0)
	assert.InDelta(t, 0, testutil.ToFloat64(collector.streamClients), 0.001)

	collector.RecordStreamSendFailure()
	assert.InDelta(t, 1, testutil.ToFloat64(collector.streamSendFailures), 0.001)
}

func TestCollector_RegistrySize(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.SetRegistrySize("commands", 42)
	collector.RecordCommandEnqueued()
	collector.RecordIntentDeclared()

	assert.InDelta(t, 42, testutil.ToFloat64(collector.registrySize.WithLabelValues("commands")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.commandsEnqueued), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.intentsDeclared), 0.001)
}

func TestCollector_RecordHTTPRequest(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordHTTPRequest("GET", "/api/federation/state", 200, 10*time.Millisecond)
	collector.RecordHTTPRequest("POST", "/api/federation/commands", 400, 5*time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(collector.httpRequestsTotal.WithLabelValues("GET", "/api/federation/state", "2xx")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.httpRequestsTotal.WithLabelValues("POST", "/api/federation/commands", "4xx")), 0.001)
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{100, "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusCode(tt.code))
	}
}
