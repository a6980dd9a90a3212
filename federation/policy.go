package federation

// RequirementConfirmation tags an action type that must be confirmed by an
// operator before any future execution layer may act on it.
const RequirementConfirmation = "requires-confirmation"

// overrideRules is the static override policy table. It is a lookup only:
// nothing in this core gates, intercepts, or blocks anything with it. The
// execution layer that eventually acts on queued commands is responsible for
// consulting it first.
var overrideRules = map[string]string{
	"restart":       RequirementConfirmation,
	"shutdown":      RequirementConfirmation,
	"deploy":        RequirementConfirmation,
	"update-config": RequirementConfirmation,
	"federate":      RequirementConfirmation,
}

// RequiresOverride returns the confirmation requirement for an action type,
// or the empty string when the action carries no override rule.
func RequiresOverride(actionType string) string {
	return overrideRules[actionType]
}

// ActionPolicy describes which roles, tenants, and agents are permitted for
// an action, and what the action requires before execution. Simulation only;
// no enforcement happens here.
type ActionPolicy struct {
	Action          string   `json:"action,omitempty"`
	AllowedRoles    []string `json:"allowedRoles"`
	AllowedTenants  []string `json:"allowedTenants"`
	ForbiddenAgents []string `json:"forbiddenAgents"`
	Requirements    []string `json:"requirements"`
}

var policyTable = map[string]ActionPolicy{
	"get-status": {
		AllowedRoles:    []string{"operator", "viewer", "sovereign"},
		AllowedTenants:  []string{"root", "*"},
		ForbiddenAgents: []string{},
		Requirements:    []string{"identity"},
	},
	"fetch-metrics": {
		AllowedRoles:    []string{"operator", "viewer", "sovereign"},
		AllowedTenants:  []string{"root", "*"},
		ForbiddenAgents: []string{},
		Requirements:    []string{"identity"},
	},
	"update-config": {
		AllowedRoles:    []string{"operator", "sovereign"},
		AllowedTenants:  []string{"root"},
		ForbiddenAgents: []string{},
		Requirements:    []string{"identity", "mfa"},
	},
	"deploy": {
		AllowedRoles:    []string{"sovereign"},
		AllowedTenants:  []string{"root"},
		ForbiddenAgents: []string{},
		Requirements:    []string{"identity", "mfa", "approval"},
	},
	"restart": {
		AllowedRoles:    []string{"operator", "sovereign"},
		AllowedTenants:  []string{"root"},
		ForbiddenAgents: []string{},
		Requirements:    []string{"identity", "mfa"},
	},
}

// PolicyFor returns the execution policy for an action. Unknown actions get a
// restrictive default; the empty action or "none" gets an empty policy.
func PolicyFor(action string) ActionPolicy {
	if action == "" || action == "none" {
		return ActionPolicy{
			AllowedRoles:    []string{},
			AllowedTenants:  []string{},
			ForbiddenAgents: []string{},
			Requirements:    []string{},
		}
	}

	policy, ok := policyTable[action]
	if !ok {
		policy = ActionPolicy{
			AllowedRoles:    []string{"sovereign"},
			AllowedTenants:  []string{"root"},
			ForbiddenAgents: []string{},
			Requirements:    []string{"identity", "mfa", "approval"},
		}
	}
	policy.Action = action
	return policy
}
