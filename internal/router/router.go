// ABOUTME: Router deciding which enhancement path handles a request
// ABOUTME: Supports both gate-always and nsfw-conditional policies
package router

import (
	"fmt"

	"github.com/vidprep/vidprep/internal/gate"
	"github.com/vidprep/vidprep/internal/models"
)

// Config is the routing policy configuration. Both policy shapes observed
// in the product's iterations are supported; neither is a bug fix of the
// other, so the choice is explicit configuration.
type Config struct {
	// Policy selects when the safety gate is evaluated.
	Policy models.GatePolicy

	// RouteAdultWhenNSFW enables the adult path for nsfw-classified images.
	// When false, everything routes to the neutral enhancer.
	RouteAdultWhenNSFW bool

	// GateAllowedValues is the allow-list for the minors classification.
	GateAllowedValues []string
}

// Route computes the routing decision for one image analysis. Exactly one
// decision is produced per request; the gate is only ever evaluated on the
// path the active policy requires it for.
func Route(analysis models.ImageAnalysis, cfg Config) models.RoutingDecision {
	switch cfg.Policy {
	case models.PolicyGateAlways:
		return routeGateAlways(analysis, cfg)
	default:
		return routeNSFWConditional(analysis, cfg)
	}
}

// routeNSFWConditional applies the gate only when adult routing is in play.
// Neutral content bypasses the gate entirely: GateApplied=false,
// GatePassed=nil.
func routeNSFWConditional(analysis models.ImageAnalysis, cfg Config) models.RoutingDecision {
	if analysis.NSFW && cfg.RouteAdultWhenNSFW {
		res := gate.Evaluate(analysis.MinorUnder16, cfg.GateAllowedValues)
		passed := res.Passed
		if !res.Passed {
			return models.RoutingDecision{
				SelectedPath: models.PathBlocked,
				GateApplied:  true,
				GatePassed:   &passed,
				Reason: fmt.Sprintf("adult content blocked: minor_under_16=%q (requires one of %v): %s",
					analysis.MinorUnder16, cfg.GateAllowedValues, res.Reason),
			}
		}
		return models.RoutingDecision{
			SelectedPath: models.PathAdult,
			GateApplied:  true,
			GatePassed:   &passed,
			Reason:       "adult content allowed: no minors detected",
		}
	}

	return models.RoutingDecision{
		SelectedPath: models.PathNeutral,
		GateApplied:  false,
		GatePassed:   nil,
		Reason:       "neutral content: routed to safe enhancer",
	}
}

// routeGateAlways evaluates the gate on every request regardless of the
// nsfw classification. When the gate passes, path selection still honors
// the nsfw/adult flag.
func routeGateAlways(analysis models.ImageAnalysis, cfg Config) models.RoutingDecision {
	res := gate.Evaluate(analysis.MinorUnder16, cfg.GateAllowedValues)
	passed := res.Passed

	if !res.Passed {
		return models.RoutingDecision{
			SelectedPath: models.PathBlocked,
			GateApplied:  true,
			GatePassed:   &passed,
			Reason: fmt.Sprintf("blocked: minor_under_16=%q (requires one of %v): %s",
				analysis.MinorUnder16, cfg.GateAllowedValues, res.Reason),
		}
	}

	if analysis.NSFW && cfg.RouteAdultWhenNSFW {
		return models.RoutingDecision{
			SelectedPath: models.PathAdult,
			GateApplied:  true,
			GatePassed:   &passed,
			Reason:       "adult content allowed: no minors detected",
		}
	}

	return models.RoutingDecision{
		SelectedPath: models.PathNeutral,
		GateApplied:  true,
		GatePassed:   &passed,
		Reason:       "gate passed: routed to safe enhancer",
	}
}
