// ABOUTME: ImageAnalysis type produced by the vision model for each request
// ABOUTME: Treated as untrusted external output; absent fields default safely
package models

// MinorStatus values reported by the image analyzer. The analyzer is free
// to return anything; only MinorNo ever passes the safety gate by default.
const (
	MinorNo      = "no"
	MinorYes     = "yes"
	MinorUnclear = "unclear"
)

// ImageAnalysis is the structured output of the image-analysis call.
// Exactly one is produced per request.
type ImageAnalysis struct {
	PeopleCount  int    `json:"people_count"`
	MinorUnder16 string `json:"minor_under_16"`
	NSFW         bool   `json:"nsfw"`
	Description  string `json:"description"`
}

// DefaultAnalysis returns an ImageAnalysis with the safe defaults applied
// for fields the external model may omit.
func DefaultAnalysis() ImageAnalysis {
	return ImageAnalysis{
		PeopleCount:  0,
		MinorUnder16: MinorUnclear,
		NSFW:         false,
		Description:  "",
	}
}
