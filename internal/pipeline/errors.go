// ABOUTME: Validation error type for pipeline input checks
// ABOUTME: Raised before any external call; maps to HTTP 400 at the edge
package pipeline

// ValidationError reports a bad or missing input. The pipeline never
// issues an external call once validation has failed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
