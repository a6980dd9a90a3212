package federation

import (
	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/types"
)

// State is the process-scoped composition root for the passive control plane.
// The application creates exactly one State at startup and passes it by
// reference to every component that needs it; there are no package-level
// singletons, which keeps the sharing discipline explicit and makes per-test
// reset a matter of constructing a fresh State.
type State struct {
	Bus           *SignalBus
	Commands      *CommandQueue
	Intents       *IntentRegistry
	Subscriptions *SubscriptionRegistry
	Actions       *ActionLog
	Nodes         *NodeRegistry
	Operator      *OperatorRegistry
}

// NewState creates a fresh, empty control plane state.
func NewState(logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		Bus:           NewSignalBus(logger),
		Commands:      NewCommandQueue(logger),
		Intents:       NewIntentRegistry(logger),
		Subscriptions: NewSubscriptionRegistry(logger),
		Actions:       NewActionLog(logger),
		Nodes:         NewNodeRegistry(logger),
		Operator:      NewOperatorRegistry(logger),
	}
}

// Topology derives the current federation graph.
func (s *State) Topology() Topology {
	return BuildTopology(s.Intents.List(), s.Subscriptions.List())
}

// DetectDivergence compares declared intents against subscription state.
func (s *State) DetectDivergence() []DivergenceObservation {
	return DetectDivergence(s.Intents.List(), s.Subscriptions.List())
}

// Reasons derives read-only explanations about the current federation state.
func (s *State) Reasons() []Reason {
	return DeriveReasons(s.Topology(), s.Intents.List(), s.Subscriptions.List())
}

// Preview computes the theoretical impact of an action without executing it.
func (s *State) Preview(action types.ActionSchema) ActionPreview {
	return PreviewAction(action, s.Topology(), s.Subscriptions.List(), s.Intents.List())
}
