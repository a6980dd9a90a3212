package federation

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/types"
)

// intentRetention caps stored intents at write time. The List read view uses
// the same bound, so List always returns the full retained history.
const intentRetention = 500

// IntentRegistry records declared desired states for observation only.
// Nothing reconciles, enforces, or acts on an intent.
type IntentRegistry struct {
	logger *zap.Logger

	mu      sync.Mutex
	intents []types.Intent
}

// NewIntentRegistry creates an empty intent registry.
func NewIntentRegistry(logger *zap.Logger) *IntentRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntentRegistry{
		logger: logger.With(zap.String("component", "intent_registry")),
	}
}

// Declare stores a desired future state. The timestamp is assigned here; the
// lifecycle defaults to "pending" and the staleness threshold to one minute.
// The stored intent is returned.
func (r *IntentRegistry) Declare(intent types.Intent) types.Intent {
	intent.Lifecycle = types.IntentLifecyclePending
	if intent.StaleAfter <= 0 {
		intent.StaleAfter = types.DefaultIntentStaleAfter
	}
	intent.TS = time.Now().UnixMilli()

	r.mu.Lock()
	r.intents = append(r.intents, intent)
	if len(r.intents) > intentRetention {
		r.intents = r.intents[len(r.intents)-intentRetention:]
	}
	r.mu.Unlock()

	r.logger.Debug("intent declared",
		zap.String("target", intent.Target),
		zap.String("desired", intent.Desired),
		zap.String("channel", intent.Channel),
	)
	return intent
}

// List returns the retained intents (at most the most recent 500), oldest
// first.
func (r *IntentRegistry) List() []types.Intent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]types.Intent, len(r.intents))
	copy(out, r.intents)
	return out
}

// SummarizeLifecycle returns a histogram of retained intents by lifecycle
// stage.
func (r *IntentRegistry) SummarizeLifecycle() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := make(map[string]int)
	for _, intent := range r.intents {
		key := intent.Lifecycle
		if key == "" {
			key = "unknown"
		}
		summary[key]++
	}
	return summary
}

// StaleIntent is a passive staleness observation: classification only, no
// action taken.
type StaleIntent struct {
	Intent types.Intent `json:"intent"`
	Stale  bool         `json:"stale"`
	Age    int64        `json:"age"` // milliseconds
}

// DetectStale classifies every retained intent by age against its staleness
// threshold.
func (r *IntentRegistry) DetectStale() []StaleIntent {
	return r.detectStaleAt(time.Now().UnixMilli())
}

func (r *IntentRegistry) detectStaleAt(now int64) []StaleIntent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]StaleIntent, 0, len(r.intents))
	for _, intent := range r.intents {
		age := now - intent.TS
		staleAfter := intent.StaleAfter
		if staleAfter <= 0 {
			staleAfter = types.DefaultIntentStaleAfter
		}
		out = append(out, StaleIntent{
			Intent: intent,
			Stale:  age > staleAfter,
			Age:    age,
		})
	}
	return out
}
