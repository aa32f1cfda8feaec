// ABOUTME: Cost accounting types: per-call CostRecord and per-request CostTotals
// ABOUTME: Values are rounded to 6 decimals for display; totals sum at full precision
package models

import "math"

// ModelPricing is the USD price pair for one model, per million tokens.
type ModelPricing struct {
	InputPerMillion  float64 `json:"input_per_million"`
	OutputPerMillion float64 `json:"output_per_million"`
}

// CostRecord is the cost of a single external model call. The USD fields
// are rounded to 6 decimal places for display; CostTotals recomputes the
// full-precision values from the token counts and pricing.
type CostRecord struct {
	Model         string       `json:"model"`
	InputTokens   int          `json:"input_tokens"`
	OutputTokens  int          `json:"output_tokens"`
	TotalTokens   int          `json:"total_tokens"`
	InputCostUSD  float64      `json:"input_cost_usd"`
	OutputCostUSD float64      `json:"output_cost_usd"`
	TotalCostUSD  float64      `json:"total_cost_usd"`
	Pricing       ModelPricing `json:"pricing"`
}

// NewCostRecord computes the cost of a call from token counts and pricing.
// Always succeeds; unknown models are handled by the caller's pricing lookup.
func NewCostRecord(model string, inputTokens, outputTokens int, pricing ModelPricing) CostRecord {
	inputCost := float64(inputTokens) / 1_000_000 * pricing.InputPerMillion
	outputCost := float64(outputTokens) / 1_000_000 * pricing.OutputPerMillion

	return CostRecord{
		Model:         model,
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		TotalTokens:   inputTokens + outputTokens,
		InputCostUSD:  RoundUSD(inputCost),
		OutputCostUSD: RoundUSD(outputCost),
		TotalCostUSD:  RoundUSD(inputCost + outputCost),
		Pricing:       pricing,
	}
}

// rawCost returns the unrounded USD cost of the call.
func (r CostRecord) rawCost() float64 {
	return float64(r.InputTokens)/1_000_000*r.Pricing.InputPerMillion +
		float64(r.OutputTokens)/1_000_000*r.Pricing.OutputPerMillion
}

// CostTotals is the running sum of all CostRecords within one request.
// It never decreases within a request.
type CostTotals struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	TotalCostUSD float64 `json:"total_cost_usd"`

	// raw accumulates at full precision; TotalCostUSD is its rounded view
	raw float64
}

// Add accumulates one call's cost into the totals.
func (t *CostTotals) Add(r CostRecord) {
	t.InputTokens += r.InputTokens
	t.OutputTokens += r.OutputTokens
	t.TotalTokens += r.TotalTokens
	t.raw += r.rawCost()
	t.TotalCostUSD = RoundUSD(t.raw)
}

// Costs is the cost section of a PipelineResult: the analysis call, every
// fragment call, and the running total.
type Costs struct {
	Analysis  CostRecord   `json:"analysis"`
	Fragments []CostRecord `json:"fragments"`
	Total     CostTotals   `json:"total"`
}

// RoundUSD rounds a dollar amount to 6 decimal places for display.
func RoundUSD(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
