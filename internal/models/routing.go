// ABOUTME: Routing decision types for the enhancement path selection
// ABOUTME: Defines the closed path enumeration and the per-request decision
package models

// Path identifies which enhancement behavior handles a request.
type Path string

const (
	// PathNeutral - safe content, neutral prompt enhancer
	PathNeutral Path = "neutral"

	// PathAdult - NSFW content, adult prompt enhancer (gate must pass)
	PathAdult Path = "adult"

	// PathBlocked - safety gate failed, no enhancement calls are made
	PathBlocked Path = "blocked"
)

// IsValid reports whether p is one of the known paths.
func (p Path) IsValid() bool {
	switch p {
	case PathNeutral, PathAdult, PathBlocked:
		return true
	}
	return false
}

// GatePolicy names the routing policy in effect.
type GatePolicy string

const (
	// PolicyNSFWConditional - gate evaluated only on the adult path;
	// neutral content bypasses the gate entirely
	PolicyNSFWConditional GatePolicy = "nsfw_conditional"

	// PolicyGateAlways - gate evaluated unconditionally on every request
	PolicyGateAlways GatePolicy = "gate_always"
)

// IsValid reports whether g is a known policy.
func (g GatePolicy) IsValid() bool {
	return g == PolicyNSFWConditional || g == PolicyGateAlways
}

// RoutingDecision records which path was selected and why. Computed fresh
// per request from the image analysis and configuration; immutable once
// produced. GatePassed is nil when the gate was never evaluated.
type RoutingDecision struct {
	SelectedPath Path   `json:"selected_path"`
	GateApplied  bool   `json:"gate_applied"`
	GatePassed   *bool  `json:"gate_passed"`
	Reason       string `json:"reason"`
}
