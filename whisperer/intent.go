// Package whisperer hosts the operator-facing text collaborators: a keyword
// intent matcher and the router that turns a detected intent into a passive
// routing decision. Neither performs any action; they only classify text and
// describe what WOULD be routed.
package whisperer

import (
	"regexp"
	"strings"
)

// Intent names understood by the router.
const (
	IntentOpenArc     = "OPEN_ARC"
	IntentQueryStatus = "QUERY_STATUS"
	IntentSpawnAgent  = "SPAWN_AGENT"
	IntentUnknown     = "UNKNOWN"
)

// Intent is the result of analyzing operator text.
type Intent struct {
	Intent     string  `json:"intent"`
	Target     string  `json:"target,omitempty"`
	AgentType  string  `json:"agent_type,omitempty"`
	Confidence float64 `json:"confidence"`
}

var (
	arcPattern   = regexp.MustCompile(`(?i)(theta|sigma|omega|rho|rho2|lambda|chi)`)
	agentPattern = regexp.MustCompile(`agent ([a-zA-Z]+)`)
)

// AnalyzeIntent classifies free-form operator text with simple keyword
// matching. No model behind it; confidence is a fixed heuristic per pattern.
func AnalyzeIntent(text string) Intent {
	t := strings.ToLower(strings.TrimSpace(text))

	if strings.Contains(t, "open arc") || strings.HasPrefix(t, "arc ") {
		match := arcPattern.FindString(t)
		confidence := 0.5
		if match != "" {
			confidence = 0.9
		}
		return Intent{Intent: IntentOpenArc, Target: match, Confidence: confidence}
	}

	if strings.Contains(t, "mesh") || strings.Contains(t, "system status") {
		return Intent{Intent: IntentQueryStatus, Target: "mesh", Confidence: 0.85}
	}

	if strings.Contains(t, "spawn agent") || strings.Contains(t, "create agent") {
		groups := agentPattern.FindStringSubmatch(t)
		agentType := ""
		confidence := 0.6
		if len(groups) == 2 {
			agentType = groups[1]
			confidence = 0.88
		}
		return Intent{Intent: IntentSpawnAgent, AgentType: agentType, Confidence: confidence}
	}

	return Intent{Intent: IntentUnknown, Confidence: 0.2}
}

// RouteResult describes where an intent would be routed. Description only;
// nothing is contacted.
type RouteResult struct {
	OK      bool   `json:"ok"`
	Action  string `json:"action"`
	Target  string `json:"target,omitempty"`
	Agent   string `json:"agent,omitempty"`
	Message string `json:"message"`
}

// RouteIntent maps a detected intent onto a routing decision.
func RouteIntent(intent Intent) RouteResult {
	switch intent.Intent {
	case IntentOpenArc:
		return RouteResult{
			OK:      true,
			Action:  IntentOpenArc,
			Target:  intent.Target,
			Message: "Opening ARC → " + strings.ToUpper(intent.Target),
		}
	case IntentQueryStatus:
		return RouteResult{
			OK:      true,
			Action:  IntentQueryStatus,
			Target:  "mesh",
			Message: "Fetching mesh status snapshot...",
		}
	case IntentSpawnAgent:
		return RouteResult{
			OK:      true,
			Action:  IntentSpawnAgent,
			Agent:   intent.AgentType,
			Message: "Initializing agent creation: " + intent.AgentType,
		}
	default:
		return RouteResult{
			OK:      false,
			Action:  "UNKNOWN",
			Message: "Intent could not be routed",
		}
	}
}
