package types

import (
	"time"

	"github.com/google/uuid"
)

// Signal is a named category of federation event.
type Signal string

const (
	SignalArcTelemetry     Signal = "ARC_TELEMETRY"
	SignalArcStatusUpdate  Signal = "ARC_STATUS_UPDATE"
	SignalAgentLifecycle   Signal = "AGENT_LIFECYCLE"
	SignalHeartbeatTick    Signal = "HEARTBEAT_TICK"
	SignalRho2Security     Signal = "RHO2_SECURITY_EVENT"
	SignalWhispererMessage Signal = "WHISPERER_MESSAGE"
	SignalIntentDetected   Signal = "INTENT_DETECTED"
	SignalOperatorCommand  Signal = "OPERATOR_COMMAND"
	SignalUIAction         Signal = "UI_ACTION"
	SignalAutonomyTrigger  Signal = "AUTONOMY_TRIGGER"
	SignalSystemFault      Signal = "SYSTEM_FAULT"
	SignalSystemResolution Signal = "SYSTEM_RESOLUTION"
)

var signalSet = map[Signal]struct{}{
	SignalArcTelemetry:     {},
	SignalArcStatusUpdate:  {},
	SignalAgentLifecycle:   {},
	SignalHeartbeatTick:    {},
	SignalRho2Security:     {},
	SignalWhispererMessage: {},
	SignalIntentDetected:   {},
	SignalOperatorCommand:  {},
	SignalUIAction:         {},
	SignalAutonomyTrigger:  {},
	SignalSystemFault:      {},
	SignalSystemResolution: {},
}

// Valid reports whether s is a member of the closed signal set. Signals can
// arrive over a network boundary, so callers accepting external input should
// check validity before emitting.
func (s Signal) Valid() bool {
	_, ok := signalSet[s]
	return ok
}

// Signals returns every member of the closed signal set.
func Signals() []Signal {
	out := make([]Signal, 0, len(signalSet))
	for s := range signalSet {
		out = append(out, s)
	}
	return out
}

// SignatureUnsigned is the placeholder integrity tag stamped on events that
// have not been signed by the rho2 signer. Development only.
const SignatureUnsigned = "rho2::unsigned.local"

// Event is the envelope wrapping a federation signal, its origin, payload and
// integrity tag. Events are immutable once created; the JSON field names are
// part of the wire contract and must not change.
type Event struct {
	ID        string `json:"id"`
	Signal    Signal `json:"signal"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Payload   any    `json:"payload"`
	Signature string `json:"signature,omitempty"`
}

// NewEvent constructs a federation event with a fresh unique id and the
// current wall-clock timestamp. A nil payload is defaulted to an empty map.
// The signature is stamped with the development placeholder; real signing is
// the rho2 package's concern.
func NewEvent(signal Signal, source string, payload any) Event {
	if payload == nil {
		payload = map[string]any{}
	}
	return Event{
		ID:        uuid.NewString(),
		Signal:    signal,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Source:    source,
		Payload:   payload,
		Signature: SignatureUnsigned,
	}
}
