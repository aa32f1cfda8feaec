// ABOUTME: Fragment type for one 5-second slice of the requested video
// ABOUTME: Fragment N>1 embeds fragment N-1's prompt as continuation context
package models

import "fmt"

// EnhancerOutput is the structured output of one prompt-enhancement call.
type EnhancerOutput struct {
	Prompt string `json:"prompt"`
	NSFW   *bool  `json:"nsfw,omitempty"`
}

// Fragment is one contiguous time slice of the requested video, backed by
// exactly one enhancement call. Fragments are created strictly in order;
// the only inter-fragment relationship is that fragment N>1's generation
// context embeds fragment N-1's output prompt.
type Fragment struct {
	Number    int            `json:"fragment_number"`
	TimeRange string         `json:"time_range"`
	Path      Path           `json:"path_used"`
	Output    EnhancerOutput `json:"output"`
	Cost      CostRecord     `json:"cost"`

	// Note surfaces the known continuation approximation for fragments
	// after the first: the original image is reused instead of a frame
	// extracted from the previously generated video.
	Note string `json:"note,omitempty"`
}

// TimeRange formats the time window covered by fragment number num
// (1-based) given the fragment length in seconds, e.g. "5-10 sec".
func TimeRange(num, fragmentLength int) string {
	start := (num - 1) * fragmentLength
	end := num * fragmentLength
	return fmt.Sprintf("%d-%d sec", start, end)
}
