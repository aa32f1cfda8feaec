// ABOUTME: Error taxonomy for external model calls
// ABOUTME: Distinguishes missing credentials, upstream failures, and malformed output
package llm

import (
	"errors"
	"fmt"
)

// ErrNotConfigured indicates the API credential is missing. Surfaced at the
// first call attempt, not at client construction, so the service can start
// without a key and report the problem on use.
var ErrNotConfigured = errors.New("XAI_API_KEY is not configured")

// UpstreamError wraps a failed external call: network failure, auth
// rejection, or an API-level error. The original message is preserved for
// diagnosis.
type UpstreamError struct {
	Op         string // which call failed, e.g. "analysis" or "enhancement"
	StatusCode int    // HTTP status when known, 0 for transport errors
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s call failed (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s call failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsAuth reports whether the failure was an authentication rejection.
func (e *UpstreamError) IsAuth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// MalformedResponseError indicates the external call succeeded but its
// content could not be parsed as the expected structured data, even after
// stripping any markdown code fence.
type MalformedResponseError struct {
	Op  string
	Raw string // raw content that failed to parse
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
