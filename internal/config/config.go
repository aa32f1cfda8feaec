// ABOUTME: Centralized configuration for the vidprep pipeline service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vidprep/vidprep/internal/models"
	"github.com/vidprep/vidprep/internal/pricing"
)

// Prompt template names resolved through the prompt provider.
const (
	PromptAnalyzer        = "analyzer"
	PromptNeutralEnhancer = "neutral_enhancer"
	PromptAdultEnhancer   = "adult_enhancer"
)

// Config holds all configuration for the pipeline. It is passed explicitly
// into each component's constructor; nothing reads it as ambient state.
type Config struct {
	// xAI API settings
	BaseURL string
	APIKey  string

	// Model selection per pipeline stage
	AnalysisModel string
	NeutralModel  string
	AdultModel    string

	// Request parameters
	ImageDetail string // vision detail hint: "low" or "high"
	JSONMode    bool   // request structured (json_object) output

	// Routing and safety gate
	GatePolicy         models.GatePolicy
	RouteAdultWhenNSFW bool
	GateAllowedValues  []string

	// Video settings
	Durations       []int
	DefaultDuration int
	FragmentLength  int

	// Upload limits
	MaxImageBytes     int64
	AllowedImageTypes []string

	// Prompt templates
	PromptDir string

	// Pricing
	Pricing pricing.Table

	// Toggles
	LogAPICalls bool
	TrackCosts  bool

	// Server
	Host string
	Port int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL: getEnv("XAI_BASE_URL", "https://api.x.ai/v1"),
		APIKey:  os.Getenv("XAI_API_KEY"),

		AnalysisModel: getEnv("VIDPREP_ANALYSIS_MODEL", "grok-2-vision-1212"),
		NeutralModel:  getEnv("VIDPREP_NEUTRAL_MODEL", "grok-4-1-fast-non-reasoning"),
		AdultModel:    getEnv("VIDPREP_ADULT_MODEL", "grok-4-1-fast-non-reasoning"),

		ImageDetail: getEnv("VIDPREP_IMAGE_DETAIL", "low"),
		JSONMode:    getEnvBool("VIDPREP_JSON_MODE", true),

		GatePolicy:         models.GatePolicy(getEnv("VIDPREP_GATE_POLICY", string(models.PolicyNSFWConditional))),
		RouteAdultWhenNSFW: getEnvBool("VIDPREP_ROUTE_ADULT_WHEN_NSFW", true),
		GateAllowedValues:  getEnvList("VIDPREP_GATE_ALLOWED_VALUES", []string{"no"}),

		Durations:       getEnvIntList("VIDPREP_DURATIONS", []int{5, 10}),
		DefaultDuration: getEnvInt("VIDPREP_DEFAULT_DURATION", 5),
		FragmentLength:  getEnvInt("VIDPREP_FRAGMENT_LENGTH", 5),

		MaxImageBytes:     int64(getEnvInt("VIDPREP_MAX_IMAGE_BYTES", 20*1024*1024)),
		AllowedImageTypes: getEnvList("VIDPREP_ALLOWED_IMAGE_TYPES", []string{"image/jpeg", "image/jpg", "image/png"}),

		PromptDir: getEnv("VIDPREP_PROMPT_DIR", "prompts"),

		Pricing: pricing.DefaultTable(),

		LogAPICalls: getEnvBool("VIDPREP_LOG_API_CALLS", true),
		TrackCosts:  getEnvBool("VIDPREP_TRACK_COSTS", true),

		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnvInt("PORT", 5050),
	}

	if raw := os.Getenv("VIDPREP_MODEL_PRICING_JSON"); raw != "" {
		var table pricing.Table
		if err := json.Unmarshal([]byte(raw), &table); err != nil {
			return nil, fmt.Errorf("VIDPREP_MODEL_PRICING_JSON is not valid JSON: %w", err)
		}
		if table.Models == nil {
			table.Models = map[string]models.ModelPricing{}
		}
		cfg.Pricing = table
	}

	return cfg, cfg.Validate()
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if !c.GatePolicy.IsValid() {
		return fmt.Errorf("VIDPREP_GATE_POLICY must be %q or %q, got %q",
			models.PolicyNSFWConditional, models.PolicyGateAlways, c.GatePolicy)
	}
	if c.FragmentLength <= 0 {
		return fmt.Errorf("VIDPREP_FRAGMENT_LENGTH must be positive, got %d", c.FragmentLength)
	}
	if len(c.Durations) == 0 {
		return fmt.Errorf("VIDPREP_DURATIONS must not be empty")
	}
	if !c.DurationAllowed(c.DefaultDuration) {
		return fmt.Errorf("VIDPREP_DEFAULT_DURATION %d is not in the allowed set %v", c.DefaultDuration, c.Durations)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("VIDPREP_MAX_IMAGE_BYTES must be positive, got %d", c.MaxImageBytes)
	}
	if c.ImageDetail != "low" && c.ImageDetail != "high" {
		return fmt.Errorf("VIDPREP_IMAGE_DETAIL must be \"low\" or \"high\", got %q", c.ImageDetail)
	}
	return nil
}

// DurationAllowed reports whether d is in the configured allowed set.
func (c *Config) DurationAllowed(d int) bool {
	for _, v := range c.Durations {
		if v == d {
			return true
		}
	}
	return false
}

// MIMETypeAllowed reports whether t is in the configured allow-list.
func (c *Config) MIMETypeAllowed(t string) bool {
	for _, v := range c.AllowedImageTypes {
		if strings.EqualFold(v, t) {
			return true
		}
	}
	return false
}

// EnhancerModel returns the model id configured for the given path.
func (c *Config) EnhancerModel(path models.Path) string {
	if path == models.PathAdult {
		return c.AdultModel
	}
	return c.NeutralModel
}

// Public returns the non-secret view of the configuration served by the
// /config endpoint. The API credential is never included.
func (c *Config) Public() map[string]interface{} {
	return map[string]interface{}{
		"base_url":              c.BaseURL,
		"analysis_model":        c.AnalysisModel,
		"neutral_model":         c.NeutralModel,
		"adult_model":           c.AdultModel,
		"image_detail":          c.ImageDetail,
		"json_mode":             c.JSONMode,
		"gate_policy":           c.GatePolicy,
		"route_adult_when_nsfw": c.RouteAdultWhenNSFW,
		"gate_allowed_values":   c.GateAllowedValues,
		"durations":             c.Durations,
		"default_duration":      c.DefaultDuration,
		"fragment_length":       c.FragmentLength,
		"max_image_bytes":       c.MaxImageBytes,
		"allowed_image_types":   c.AllowedImageTypes,
		"log_api_calls":         c.LogAPICalls,
		"track_costs":           c.TrackCosts,
		"pricing":               c.Pricing,
	}
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func getEnvIntList(key string, defaultVal []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []int
	for _, p := range strings.Split(v, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return defaultVal
		}
		out = append(out, i)
	}
	return out
}
