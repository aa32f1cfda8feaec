// ABOUTME: Fragment sequencer driving one enhancement call per time slice
// ABOUTME: Threads each fragment's output into the next call's context
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/vidprep/vidprep/internal/config"
	"github.com/vidprep/vidprep/internal/llm"
	"github.com/vidprep/vidprep/internal/models"
)

// NoteReusesSourceImage is recorded on every fragment after the first.
// Continuation currently reuses the original uploaded image; a production
// system should seed each fragment from the last frame of the previously
// generated video. This is a known approximation, surfaced rather than
// silently fixed.
const NoteReusesSourceImage = "continuation reuses the original uploaded image; " +
	"production should use the last frame of the previous video fragment as the first frame"

// generateFragments produces exactly count fragments, strictly in order:
// fragment N's enhancement call must complete before fragment N+1's call is
// issued, because N+1's request context embeds N's output prompt. No
// internal parallelism, no retries; the first failure aborts the sequence.
func (p *Pipeline) generateFragments(ctx context.Context, path models.Path, userPrompt string, analysis models.ImageAnalysis, count int) ([]models.Fragment, error) {
	system, err := p.enhancerPrompt(path)
	if err != nil {
		return nil, err
	}
	model := p.cfg.EnhancerModel(path)

	fragments := make([]models.Fragment, 0, count)
	for num := 1; num <= count; num++ {
		var prev *models.Fragment
		if num > 1 {
			prev = &fragments[len(fragments)-1]
		}

		user := buildEnhancerMessage(userPrompt, analysis, prev, p.cfg.FragmentLength)

		if p.cfg.LogAPICalls {
			p.log.WithField("fragment", num).WithField("model", model).
				WithField("path", string(path)).Info("generating fragment prompt")
		}

		comp, err := p.client.Complete(ctx, "enhancement", llm.Request{
			Model:    model,
			System:   system,
			User:     user,
			JSONMode: p.cfg.JSONMode,
		})
		if err != nil {
			return nil, fmt.Errorf("fragment %d: %w", num, err)
		}

		output, err := llm.ParseEnhancement(comp.Content)
		if err != nil {
			return nil, fmt.Errorf("fragment %d: %w", num, err)
		}

		cost := p.cfg.Pricing.Cost(comp.Model, comp.InputTokens, comp.OutputTokens)
		p.metrics.ObserveCall(comp.InputTokens, comp.OutputTokens, cost.TotalCostUSD)

		fragment := models.Fragment{
			Number:    num,
			TimeRange: models.TimeRange(num, p.cfg.FragmentLength),
			Path:      path,
			Output:    output,
			Cost:      cost,
		}
		if num > 1 {
			fragment.Note = NoteReusesSourceImage
		}
		fragments = append(fragments, fragment)
	}

	return fragments, nil
}

// enhancerPrompt resolves the system prompt for the selected path.
func (p *Pipeline) enhancerPrompt(path models.Path) (string, error) {
	name := config.PromptNeutralEnhancer
	if path == models.PathAdult {
		name = config.PromptAdultEnhancer
	}
	return p.prompts.Get(name)
}

// buildEnhancerMessage assembles the enhancement call's user message. The
// first fragment sees the user prompt plus the image analysis; later
// fragments additionally see the previous fragment's generated prompt
// quoted verbatim with its time range and an instruction to advance the
// action rather than restart it.
func buildEnhancerMessage(userPrompt string, analysis models.ImageAnalysis, prev *models.Fragment, fragmentLength int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Image analysis:\n- People count: %d\n- Description: %s\n\n", analysis.PeopleCount, analysis.Description)
	fmt.Fprintf(&b, "User's original prompt:\n%s", userPrompt)

	if prev != nil {
		fmt.Fprintf(&b, "\n\n--- Previous Fragment (%s) ---\n", prev.TimeRange)
		fmt.Fprintf(&b, "Enhanced prompt used: %q\n\n", prev.Output.Prompt)
		fmt.Fprintf(&b, "Generate the continuation for the next %d-second fragment. "+
			"Advance the action naturally from where the previous fragment ended.", fragmentLength)
	}

	return b.String()
}
