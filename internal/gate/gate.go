// ABOUTME: Safety gate evaluating the minors classification against an allow-list
// ABOUTME: Pure function: only an allow-listed classification passes
package gate

import (
	"fmt"

	"github.com/vidprep/vidprep/internal/models"
)

// Result is the outcome of one gate evaluation.
type Result struct {
	Passed bool   `json:"passed"`
	Reason string `json:"reason"`
}

// Evaluate checks a classification value against the configured allow-list.
// Only membership in the allow-list passes; an explicit positive
// classification and an ambiguous/unrecognized one both block, with
// distinct reasons for auditability.
func Evaluate(value string, allowed []string) Result {
	for _, a := range allowed {
		if value == a {
			return Result{
				Passed: true,
				Reason: fmt.Sprintf("classification %q is allowed", value),
			}
		}
	}

	if value == models.MinorYes {
		return Result{
			Passed: false,
			Reason: fmt.Sprintf("explicit positive classification %q", value),
		}
	}

	return Result{
		Passed: false,
		Reason: fmt.Sprintf("ambiguous or unrecognized classification %q", value),
	}
}
