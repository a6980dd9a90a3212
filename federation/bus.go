package federation

import (
	"sync"

	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/types"
)

// Listener receives every event dispatched on the bus. The event is passed by
// value; listeners must treat the payload as read-only.
type Listener func(types.Event)

// SignalBus is a synchronous in-process publish/subscribe hub. Listeners are
// invoked in registration order, one dispatch at a time. A listener that
// panics is recovered and logged so the remaining listeners still receive the
// event. There is no queuing: dispatching with zero listeners discards the
// event without error.
type SignalBus struct {
	logger *zap.Logger

	mu        sync.Mutex // guards listeners and faultHook
	listeners []*BusSubscription
	faultHook func()

	dispatchMu sync.Mutex // serializes Dispatch end-to-end
}

// BusSubscription is the cancellation handle returned by Subscribe.
type BusSubscription struct {
	bus  *SignalBus
	fn   Listener
	once sync.Once
}

// Unsubscribe removes the listener from the bus. It is safe to call more than
// once and safe to call from within a listener.
func (s *BusSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.remove(s)
	})
}

// NewSignalBus creates a signal bus. A nil logger is replaced with a noop
// logger.
func NewSignalBus(logger *zap.Logger) *SignalBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignalBus{
		logger: logger.With(zap.String("component", "signal_bus")),
	}
}

// Subscribe registers a listener and returns its cancellation handle.
// Listeners are invoked in the order they were registered.
func (b *SignalBus) Subscribe(fn Listener) *BusSubscription {
	sub := &BusSubscription{bus: b, fn: fn}
	b.mu.Lock()
	b.listeners = append(b.listeners, sub)
	b.mu.Unlock()
	return sub
}

func (b *SignalBus) remove(target *BusSubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.listeners {
		if sub == target {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of currently registered listeners.
func (b *SignalBus) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// OnFault registers a callback invoked each time a listener panic is
// recovered. Passing nil clears the hook.
func (b *SignalBus) OnFault(fn func()) {
	b.mu.Lock()
	b.faultHook = fn
	b.mu.Unlock()
}

// Dispatch delivers the event to every currently registered listener,
// synchronously, in registration order. One listener's failure never
// suppresses delivery to its peers.
func (b *SignalBus) Dispatch(event types.Event) {
	b.dispatchMu.Lock()
	defer b.dispatchMu.Unlock()

	b.mu.Lock()
	snapshot := make([]*BusSubscription, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.Unlock()

	for _, sub := range snapshot {
		b.invoke(sub, event)
	}
}

func (b *SignalBus) invoke(sub *BusSubscription, event types.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("bus listener panicked",
				zap.String("event_id", event.ID),
				zap.String("signal", string(event.Signal)),
				zap.Any("panic", r),
			)
			b.mu.Lock()
			hook := b.faultHook
			b.mu.Unlock()
			if hook != nil {
				hook()
			}
		}
	}()
	sub.fn(event)
}

// EmitSignal constructs an event via types.NewEvent, dispatches it, and
// returns the constructed event to the caller.
func (b *SignalBus) EmitSignal(signal types.Signal, source string, payload any) types.Event {
	event := types.NewEvent(signal, source, payload)
	b.Dispatch(event)
	return event
}
