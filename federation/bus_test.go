package federation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/types"
)

func TestSignalBus_DispatchInRegistrationOrder(t *testing.T) {
	bus := NewSignalBus(zap.NewNop())

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		bus.Subscribe(func(types.Event) {
			order = append(order, i)
		})
	}

	bus.Dispatch(types.NewEvent(types.SignalHeartbeatTick, "test", nil))

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSignalBus_EachListenerInvokedExactlyOnce(t *testing.T) {
	bus := NewSignalBus(zap.NewNop())

	counts := make([]int, 3)
	for i := range counts {
		i := i
		bus.Subscribe(func(types.Event) { counts[i]++ })
	}

	bus.Dispatch(types.NewEvent(types.SignalArcTelemetry, "test", nil))

	for i, c := range counts {
		assert.Equal(t, 1, c, "listener %d invocation count", i)
	}
}

func TestSignalBus_PanickingListenerDoesNotSuppressPeers(t *testing.T) {
	bus := NewSignalBus(zap.NewNop())

	var received []string
	bus.Subscribe(func(types.Event) { received = append(received, "first") })
	bus.Subscribe(func(types.Event) { panic("listener fault") })
	bus.Subscribe(func(types.Event) { received = append(received, "third") })

	require.NotPanics(t, func() {
		bus.Dispatch(types.NewEvent(types.SignalSystemFault, "test", nil))
	})

	assert.Equal(t, []string{"first", "third"}, received)
}

func TestSignalBus_FaultHookCountsRecoveredPanics(t *testing.T) {
	bus := NewSignalBus(zap.NewNop())

	faults := 0
	bus.OnFault(func() { faults++ })
	bus.Subscribe(func(types.Event) { panic("listener fault") })
	bus.Subscribe(func(types.Event) {})

	bus.Dispatch(types.NewEvent(types.SignalSystemFault, "test", nil))
	bus.Dispatch(types.NewEvent(types.SignalSystemFault, "test", nil))

	assert.Equal(t, 2, faults)
}

func TestSignalBus_DispatchWithZeroListeners(t *testing.T) {
	bus := NewSignalBus(zap.NewNop())

	require.NotPanics(t, func() {
		bus.Dispatch(types.NewEvent(types.SignalUIAction, "test", nil))
	})
	assert.Equal(t, 0, bus.ListenerCount())
}

func TestSignalBus_Unsubscribe(t *testing.T) {
	bus := NewSignalBus(zap.NewNop())

	var calls int
	sub := bus.Subscribe(func(types.Event) { calls++ })
	bus.Dispatch(types.NewEvent(types.SignalHeartbeatTick, "test", nil))

	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	bus.Dispatch(types.NewEvent(types.SignalHeartbeatTick, "test", nil))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.ListenerCount())
}

func TestSignalBus_EmitSignalReturnsConstructedEvent(t *testing.T) {
	bus := NewSignalBus(zap.NewNop())

	var seen types.Event
	bus.Subscribe(func(evt types.Event) { seen = evt })

	evt := bus.EmitSignal(types.SignalWhispererMessage, "operator", map[string]any{"text": "hello"})

	assert.Equal(t, types.SignalWhispererMessage, evt.Signal)
	assert.Equal(t, "operator", evt.Source)
	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, evt.ID, seen.ID, "listener should see the same event the caller got back")
}
