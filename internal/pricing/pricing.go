// ABOUTME: Pricing table mapping model ids to USD-per-million-token prices
// ABOUTME: Unknown models fall back to the table's default price pair
package pricing

import (
	"github.com/vidprep/vidprep/internal/models"
)

// Table holds per-model pricing with a default fallback pair. Lookups never
// fail: a model absent from the table is charged at the default pair.
type Table struct {
	Models  map[string]models.ModelPricing `json:"models"`
	Default models.ModelPricing            `json:"default"`
}

// DefaultTable returns the compiled-in pricing for the xAI Grok models
// used by the pipeline. Prices are USD per million tokens.
func DefaultTable() Table {
	return Table{
		Models: map[string]models.ModelPricing{
			// Vision model used for image analysis
			"grok-2-vision-latest": {InputPerMillion: 0.20, OutputPerMillion: 0.50},
			"grok-2-vision-1212":   {InputPerMillion: 0.20, OutputPerMillion: 0.50},

			// Fast text model used for prompt enhancement
			"grok-4-1-fast-non-reasoning": {InputPerMillion: 0.20, OutputPerMillion: 0.50},

			// Flagship pricing
			"grok-4": {InputPerMillion: 2.00, OutputPerMillion: 10.00},
		},
		Default: models.ModelPricing{InputPerMillion: 0.20, OutputPerMillion: 0.50},
	}
}

// Lookup returns the pricing for model, or the default pair if the model
// is not in the table.
func (t Table) Lookup(model string) models.ModelPricing {
	if p, ok := t.Models[model]; ok {
		return p
	}
	return t.Default
}

// Cost computes the CostRecord for one call. It always returns a record,
// using the default pricing when the model is unknown. Side-effect-free.
func (t Table) Cost(model string, inputTokens, outputTokens int) models.CostRecord {
	return models.NewCostRecord(model, inputTokens, outputTokens, t.Lookup(model))
}
