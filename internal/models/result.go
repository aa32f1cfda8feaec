// ABOUTME: PipelineResult - the full per-request output of the pipeline
// ABOUTME: Held as the single most-recently-completed result in process memory
package models

import "time"

// PipelineResult is the complete output of one pipeline run. It is built
// incrementally over the request's lifetime and stored as the process-wide
// latest result only after the run completes successfully.
//
// Invariants:
//   - exactly one Analysis and one Routing per result
//   - Blocked results always have an empty Fragments list
//   - FragmentCount == Duration / fragment length, fragment numbers are a
//     contiguous run starting at 1
//   - Costs.Total equals the sum of the analysis record plus every
//     fragment record
type PipelineResult struct {
	Duration      int             `json:"duration"`
	FragmentCount int             `json:"fragment_count"`
	Analysis      ImageAnalysis   `json:"analysis"`
	Routing       RoutingDecision `json:"routing"`
	Fragments     []Fragment      `json:"fragments"`
	Costs         *Costs          `json:"costs,omitempty"`
	Blocked       bool            `json:"blocked,omitempty"`
	BlockedReason string          `json:"blocked_reason,omitempty"`
	CompletedAt   time.Time       `json:"completed_at"`
}
