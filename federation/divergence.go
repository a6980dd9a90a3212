package federation

import (
	"time"

	"github.com/BaSui01/arcbridge/types"
)

// DivergenceStatus classifies how a declared intent relates to observed
// subscription state.
type DivergenceStatus string

const (
	DivergenceAligned  DivergenceStatus = "aligned"
	DivergenceMissing  DivergenceStatus = "missing"
	DivergenceDiverged DivergenceStatus = "diverged"
)

// DivergenceObservation is a read-only observation of where intent differs
// from state. No reconciliation or enforcement follows from it.
type DivergenceObservation struct {
	Intent types.Intent        `json:"intent"`
	Status DivergenceStatus    `json:"status"`
	Match  *types.Subscription `json:"match,omitempty"`
	TS     int64               `json:"ts"`
}

// DetectDivergence compares declared intents with the subscription registry.
// An intent with no subscription on its channel is missing; a channel match
// whose subscriber differs from the intent's target is diverged; everything
// else is aligned.
func DetectDivergence(intents []types.Intent, subs []types.Subscription) []DivergenceObservation {
	now := time.Now().UnixMilli()

	out := make([]DivergenceObservation, 0, len(intents))
	for _, intent := range intents {
		var match *types.Subscription
		for i := range subs {
			if subs[i].Channel == intent.Channel {
				match = &subs[i]
				break
			}
		}

		status := DivergenceMissing
		if match != nil {
			switch {
			case intent.Target != "" && match.ID == intent.Target:
				status = DivergenceAligned
			case intent.Target != "" && match.ID != intent.Target:
				status = DivergenceDiverged
			default:
				// No specific target; a channel match is sufficient.
				status = DivergenceAligned
			}
		}

		out = append(out, DivergenceObservation{
			Intent: intent,
			Status: status,
			Match:  match,
			TS:     now,
		})
	}
	return out
}
