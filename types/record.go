package types

// Command is a message destined for a federation target. Commands are stored,
// never executed: the queue is an audit surface for a future execution layer.
// TS is assigned by the queue at enqueue time and is never client-supplied.
type Command struct {
	Target  string         `json:"target"`
	Cmd     string         `json:"cmd"`
	Data    map[string]any `json:"data,omitempty"`
	Channel string         `json:"channel"`
	TS      int64          `json:"ts"`
}

// DefaultCommandChannel is applied when a command is enqueued without an
// explicit routing channel.
const DefaultCommandChannel = "node"

// IntentLifecyclePending is the lifecycle stage assigned to newly declared
// intents.
const IntentLifecyclePending = "pending"

// DefaultIntentStaleAfter is the age in milliseconds after which an intent is
// considered stale when the declarer did not set its own threshold.
const DefaultIntentStaleAfter int64 = 60_000

// Intent represents a declared-but-unenforced desired state. Every field
// except TS is optional; TS is assigned at declaration time.
type Intent struct {
	Target     string         `json:"target,omitempty"`
	Desired    string         `json:"desired,omitempty"`
	Channel    string         `json:"channel,omitempty"`
	Scope      string         `json:"scope,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Created    int64          `json:"created,omitempty"`
	Lifecycle  string         `json:"lifecycle,omitempty"`
	StaleAfter int64          `json:"staleAfter,omitempty"`
	TS         int64          `json:"ts"`
}

// Subscription is a passive registration of interest in a channel. It carries
// no delivery guarantee; the registry only records that the registration
// happened.
type Subscription struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	TS      int64  `json:"ts"`
}
