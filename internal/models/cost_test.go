// ABOUTME: Tests for CostRecord computation and CostTotals accumulation
// ABOUTME: Verifies rounding behavior and full-precision summation

package models

import (
	"math"
	"testing"
)

func TestNewCostRecord(t *testing.T) {
	pricing := ModelPricing{InputPerMillion: 0.20, OutputPerMillion: 0.50}

	rec := NewCostRecord("grok-2-vision-1212", 1_000_000, 2_000_000, pricing)

	if rec.Model != "grok-2-vision-1212" {
		t.Errorf("Model = %q, want %q", rec.Model, "grok-2-vision-1212")
	}
	if rec.TotalTokens != 3_000_000 {
		t.Errorf("TotalTokens = %d, want 3000000", rec.TotalTokens)
	}
	if rec.InputCostUSD != 0.20 {
		t.Errorf("InputCostUSD = %v, want 0.20", rec.InputCostUSD)
	}
	if rec.OutputCostUSD != 1.00 {
		t.Errorf("OutputCostUSD = %v, want 1.00", rec.OutputCostUSD)
	}
	if rec.TotalCostUSD != 1.20 {
		t.Errorf("TotalCostUSD = %v, want 1.20", rec.TotalCostUSD)
	}
}

func TestNewCostRecord_TotalEqualsInputPlusOutput(t *testing.T) {
	pricing := ModelPricing{InputPerMillion: 0.20, OutputPerMillion: 0.50}

	tests := []struct {
		name    string
		in, out int
	}{
		{"zero tokens", 0, 0},
		{"small call", 137, 42},
		{"typical call", 1523, 388},
		{"input only", 9999, 0},
		{"output only", 0, 9999},
		{"large call", 4_321_987, 1_234_567},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewCostRecord("any-model", tt.in, tt.out, pricing)

			sum := rec.InputCostUSD + rec.OutputCostUSD
			if math.Abs(rec.TotalCostUSD-sum) > 1e-6 {
				t.Errorf("TotalCostUSD = %v, want input+output = %v", rec.TotalCostUSD, sum)
			}
			if rec.TotalTokens != tt.in+tt.out {
				t.Errorf("TotalTokens = %d, want %d", rec.TotalTokens, tt.in+tt.out)
			}
		})
	}
}

func TestCostTotals_Add(t *testing.T) {
	pricing := ModelPricing{InputPerMillion: 0.20, OutputPerMillion: 0.50}

	var totals CostTotals
	totals.Add(NewCostRecord("model-a", 1000, 500, pricing))
	totals.Add(NewCostRecord("model-b", 2000, 1500, pricing))

	if totals.InputTokens != 3000 {
		t.Errorf("InputTokens = %d, want 3000", totals.InputTokens)
	}
	if totals.OutputTokens != 2000 {
		t.Errorf("OutputTokens = %d, want 2000", totals.OutputTokens)
	}
	if totals.TotalTokens != 5000 {
		t.Errorf("TotalTokens = %d, want 5000", totals.TotalTokens)
	}

	want := RoundUSD((3000.0/1e6)*0.20 + (2000.0/1e6)*0.50)
	if totals.TotalCostUSD != want {
		t.Errorf("TotalCostUSD = %v, want %v", totals.TotalCostUSD, want)
	}
}

func TestCostTotals_Monotonic(t *testing.T) {
	pricing := ModelPricing{InputPerMillion: 0.20, OutputPerMillion: 0.50}

	var totals CostTotals
	prev := 0.0
	for i := 0; i < 10; i++ {
		totals.Add(NewCostRecord("m", 100, 100, pricing))
		if totals.TotalCostUSD < prev {
			t.Fatalf("TotalCostUSD decreased after add %d: %v < %v", i+1, totals.TotalCostUSD, prev)
		}
		prev = totals.TotalCostUSD
	}
}

func TestCostTotals_FullPrecisionSum(t *testing.T) {
	// Many tiny calls whose individually rounded costs would under-count.
	pricing := ModelPricing{InputPerMillion: 0.20, OutputPerMillion: 0.50}

	var totals CostTotals
	for i := 0; i < 1000; i++ {
		totals.Add(NewCostRecord("m", 1, 1, pricing))
	}

	// 1000 calls of 1 in + 1 out token = 1000 in + 1000 out tokens.
	want := RoundUSD((1000.0/1e6)*0.20 + (1000.0/1e6)*0.50)
	if totals.TotalCostUSD != want {
		t.Errorf("TotalCostUSD = %v, want %v", totals.TotalCostUSD, want)
	}
}

func TestRoundUSD(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already rounded", 0.5, 0.5},
		{"six decimals", 0.1234565, 0.123457},
		{"truncates down", 0.1234561, 0.123456},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundUSD(tt.in); got != tt.want {
				t.Errorf("RoundUSD(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
