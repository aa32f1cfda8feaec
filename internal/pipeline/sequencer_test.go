// ABOUTME: Unit tests for the enhancer message builder
// ABOUTME: Verifies first-fragment and continuation message structure

package pipeline

import (
	"strings"
	"testing"

	"github.com/vidprep/vidprep/internal/models"
)

func TestBuildEnhancerMessage_FirstFragment(t *testing.T) {
	analysis := models.ImageAnalysis{PeopleCount: 2, Description: "two people at a park"}

	msg := buildEnhancerMessage("make it dramatic", analysis, nil, 5)

	for _, want := range []string{
		"People count: 2",
		"two people at a park",
		"User's original prompt:\nmake it dramatic",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Previous Fragment") {
		t.Errorf("first fragment message should have no continuation block:\n%s", msg)
	}
}

func TestBuildEnhancerMessage_Continuation(t *testing.T) {
	analysis := models.ImageAnalysis{PeopleCount: 1, Description: "a runner at dawn"}
	prev := &models.Fragment{
		Number:    1,
		TimeRange: "0-5 sec",
		Output:    models.EnhancerOutput{Prompt: "the runner crests a hill"},
	}

	msg := buildEnhancerMessage("keep going", analysis, prev, 5)

	for _, want := range []string{
		"--- Previous Fragment (0-5 sec) ---",
		`"the runner crests a hill"`,
		"next 5-second fragment",
		"Advance the action naturally",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("continuation message missing %q:\n%s", want, msg)
		}
	}
}
