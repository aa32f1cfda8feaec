// ABOUTME: Tests for code-fence stripping and structured-output parsing
// ABOUTME: Verifies untrusted-output defaults and malformed-response errors

package llm

import (
	"errors"
	"testing"

	"github.com/vidprep/vidprep/internal/models"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json untouched", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with language tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"surrounding whitespace", "  \n```\n{\"a\":1}\n```\n ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    models.ImageAnalysis
	}{
		{
			name:    "complete analysis",
			content: `{"people_count":2,"minor_under_16":"no","nsfw":true,"description":"two people at a park"}`,
			want:    models.ImageAnalysis{PeopleCount: 2, MinorUnder16: "no", NSFW: true, Description: "two people at a park"},
		},
		{
			name:    "absent fields default safely",
			content: `{}`,
			want:    models.ImageAnalysis{PeopleCount: 0, MinorUnder16: "unclear", NSFW: false, Description: ""},
		},
		{
			name:    "negative people count clamped",
			content: `{"people_count":-3}`,
			want:    models.ImageAnalysis{PeopleCount: 0, MinorUnder16: "unclear"},
		},
		{
			name:    "empty minor status defaults to unclear",
			content: `{"minor_under_16":""}`,
			want:    models.ImageAnalysis{MinorUnder16: "unclear"},
		},
		{
			name:    "code-fenced output",
			content: "```json\n{\"nsfw\":true,\"minor_under_16\":\"no\"}\n```",
			want:    models.ImageAnalysis{NSFW: true, MinorUnder16: "no"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnalysis(tt.content)
			if err != nil {
				t.Fatalf("ParseAnalysis() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseAnalysis() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseAnalysis_Malformed(t *testing.T) {
	_, err := ParseAnalysis("I cannot analyze this image.")
	if err == nil {
		t.Fatal("ParseAnalysis() should fail on non-JSON content")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %T, want *MalformedResponseError", err)
	}
	if malformed.Raw == "" {
		t.Error("MalformedResponseError should preserve the raw content")
	}
}

func TestParseEnhancement(t *testing.T) {
	got, err := ParseEnhancement(`{"prompt":"a slow pan across the park","nsfw":false}`)
	if err != nil {
		t.Fatalf("ParseEnhancement() error = %v", err)
	}
	if got.Prompt != "a slow pan across the park" {
		t.Errorf("Prompt = %q, want the enhanced prompt", got.Prompt)
	}
	if got.NSFW == nil || *got.NSFW {
		t.Errorf("NSFW = %v, want pointer to false", got.NSFW)
	}
}

func TestParseEnhancement_OptionalNSFW(t *testing.T) {
	got, err := ParseEnhancement(`{"prompt":"two people walking"}`)
	if err != nil {
		t.Fatalf("ParseEnhancement() error = %v", err)
	}
	if got.NSFW != nil {
		t.Errorf("NSFW = %v, want nil when absent", *got.NSFW)
	}
}

func TestParseEnhancement_MissingPrompt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty object", `{}`},
		{"blank prompt", `{"prompt":"   "}`},
		{"not json", "sure, here is a prompt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnhancement(tt.content)
			if err == nil {
				t.Fatal("ParseEnhancement() should fail")
			}
			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Errorf("error = %T, want *MalformedResponseError", err)
			}
		})
	}
}

func TestUpstreamError_IsAuth(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{401, true},
		{403, true},
		{500, false},
		{0, false},
	}

	for _, tt := range tests {
		e := &UpstreamError{Op: "analysis", StatusCode: tt.status, Err: errors.New("boom")}
		if got := e.IsAuth(); got != tt.want {
			t.Errorf("IsAuth() with status %d = %v, want %v", tt.status, got, tt.want)
		}
	}
}
