// ABOUTME: Parsers for structured model output with safe defaults
// ABOUTME: Strips markdown code fences before JSON decoding
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vidprep/vidprep/internal/models"
)

// StripCodeFence removes a surrounding markdown code fence (``` or
// ```json) from s if present. Models sometimes wrap JSON output in a fence
// even when structured output is requested.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[1 : len(lines)-1]
	} else {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ParseAnalysis decodes the image analyzer's JSON output. The output is
// untrusted: absent fields default safely (nsfw=false,
// minor_under_16="unclear", people_count=0, description="") and a negative
// people count is clamped to zero.
func ParseAnalysis(content string) (models.ImageAnalysis, error) {
	analysis := models.DefaultAnalysis()

	raw := StripCodeFence(content)
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return models.ImageAnalysis{}, &MalformedResponseError{Op: "analysis", Raw: content, Err: err}
	}

	if analysis.PeopleCount < 0 {
		analysis.PeopleCount = 0
	}
	if analysis.MinorUnder16 == "" {
		analysis.MinorUnder16 = models.MinorUnclear
	}
	return analysis, nil
}

// ParseEnhancement decodes a prompt enhancer's JSON output. A non-empty
// prompt field is required; the nsfw flag is optional.
func ParseEnhancement(content string) (models.EnhancerOutput, error) {
	var out models.EnhancerOutput

	raw := StripCodeFence(content)
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return models.EnhancerOutput{}, &MalformedResponseError{Op: "enhancement", Raw: content, Err: err}
	}
	if strings.TrimSpace(out.Prompt) == "" {
		return models.EnhancerOutput{}, &MalformedResponseError{
			Op:  "enhancement",
			Raw: content,
			Err: fmt.Errorf("missing prompt field"),
		}
	}
	return out, nil
}
