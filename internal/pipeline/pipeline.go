// ABOUTME: Pipeline orchestrator: validate, analyze, route, sequence, store
// ABOUTME: Composes the gate, router, sequencer, and cost accounting
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vidprep/vidprep/internal/config"
	"github.com/vidprep/vidprep/internal/llm"
	"github.com/vidprep/vidprep/internal/logger"
	"github.com/vidprep/vidprep/internal/metrics"
	"github.com/vidprep/vidprep/internal/models"
	"github.com/vidprep/vidprep/internal/prompts"
	"github.com/vidprep/vidprep/internal/router"
)

// Request is one pipeline invocation: raw image bytes, the user's prompt,
// and the requested video duration in seconds (0 means the configured
// default).
type Request struct {
	Image     []byte
	ImageMIME string
	Prompt    string
	Duration  int
}

// Pipeline runs the end-to-end preprocessing flow. All collaborators are
// injected; nothing is read from ambient globals.
type Pipeline struct {
	cfg     *config.Config
	client  llm.Client
	prompts prompts.Provider
	store   *ResultStore
	metrics *metrics.Metrics
	log     *logger.Logger
}

// New builds a pipeline. metrics may be nil to disable instrumentation.
func New(cfg *config.Config, client llm.Client, provider prompts.Provider, m *metrics.Metrics, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		client:  client,
		prompts: provider,
		store:   NewResultStore(),
		metrics: m,
		log:     log,
	}
}

// Latest exposes the single most-recently-completed result, read-only.
func (p *Pipeline) Latest() (*models.PipelineResult, bool) {
	return p.store.Latest()
}

// Run executes the pipeline for one request. On success the result is
// stored as the process-wide latest result and returned. On any failure the
// remaining steps are aborted, nothing is stored, and the previous latest
// result is left untouched.
func (p *Pipeline) Run(ctx context.Context, req Request) (*models.PipelineResult, error) {
	result, err := p.run(ctx, req)
	switch {
	case err != nil:
		p.metrics.ObserveRun(metrics.OutcomeFailed)
	case result.Blocked:
		p.metrics.ObserveRun(metrics.OutcomeBlocked)
	default:
		p.metrics.ObserveRun(metrics.OutcomeCompleted)
	}
	return result, err
}

func (p *Pipeline) run(ctx context.Context, req Request) (*models.PipelineResult, error) {
	if req.Duration == 0 {
		req.Duration = p.cfg.DefaultDuration
	}
	if err := p.validate(req); err != nil {
		return nil, err
	}

	fragmentCount := req.Duration / p.cfg.FragmentLength

	if p.cfg.LogAPICalls {
		p.log.WithField("duration", req.Duration).WithField("fragments", fragmentCount).
			Info("pipeline starting")
	}

	// Step 1: image analysis
	analysis, analysisCost, err := p.analyzeImage(ctx, req)
	if err != nil {
		return nil, err
	}

	var totals models.CostTotals
	totals.Add(analysisCost)

	// Step 2: routing decision
	routing := router.Route(analysis, router.Config{
		Policy:             p.cfg.GatePolicy,
		RouteAdultWhenNSFW: p.cfg.RouteAdultWhenNSFW,
		GateAllowedValues:  p.cfg.GateAllowedValues,
	})

	if p.cfg.LogAPICalls {
		p.log.WithField("path", string(routing.SelectedPath)).
			WithField("reason", routing.Reason).Info("routing decided")
	}

	result := &models.PipelineResult{
		Duration:      req.Duration,
		FragmentCount: fragmentCount,
		Analysis:      analysis,
		Routing:       routing,
		Fragments:     []models.Fragment{},
	}

	// Blocked short-circuit: empty fragments, cost total reflects only the
	// analysis call. Still a successful outcome, not an error.
	if routing.SelectedPath == models.PathBlocked {
		result.Blocked = true
		result.BlockedReason = routing.Reason
		p.finalize(result, analysisCost, nil, totals)
		return result, nil
	}

	// Step 3: fragment generation, strictly in order
	fragments, err := p.generateFragments(ctx, routing.SelectedPath, strings.TrimSpace(req.Prompt), analysis, fragmentCount)
	if err != nil {
		return nil, err
	}
	for _, f := range fragments {
		totals.Add(f.Cost)
	}
	result.Fragments = fragments

	fragmentCosts := make([]models.CostRecord, len(fragments))
	for i, f := range fragments {
		fragmentCosts[i] = f.Cost
	}
	p.finalize(result, analysisCost, fragmentCosts, totals)

	if p.cfg.LogAPICalls {
		p.log.WithField("total_cost_usd", totals.TotalCostUSD).
			WithField("total_tokens", totals.TotalTokens).Info("pipeline complete")
	}

	return result, nil
}

// finalize attaches cost reporting (when enabled) and stores the result as
// the process's latest. This is the only writer of the latest-result slot.
func (p *Pipeline) finalize(result *models.PipelineResult, analysisCost models.CostRecord, fragmentCosts []models.CostRecord, totals models.CostTotals) {
	if p.cfg.TrackCosts {
		if fragmentCosts == nil {
			fragmentCosts = []models.CostRecord{}
		}
		result.Costs = &models.Costs{
			Analysis:  analysisCost,
			Fragments: fragmentCosts,
			Total:     totals,
		}
	}
	result.CompletedAt = time.Now().UTC()
	p.store.Set(result)
}

// validate fails fast on bad input, before any external call is made.
func (p *Pipeline) validate(req Request) error {
	if len(req.Image) == 0 {
		return &ValidationError{Reason: "no image file provided"}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return &ValidationError{Reason: "no prompt provided"}
	}
	if !p.cfg.DurationAllowed(req.Duration) {
		return &ValidationError{Reason: fmt.Sprintf("invalid duration %d, allowed: %v", req.Duration, p.cfg.Durations)}
	}
	if !p.cfg.MIMETypeAllowed(req.ImageMIME) {
		return &ValidationError{Reason: fmt.Sprintf("unsupported image type %q, allowed: %v", req.ImageMIME, p.cfg.AllowedImageTypes)}
	}
	if int64(len(req.Image)) > p.cfg.MaxImageBytes {
		return &ValidationError{Reason: fmt.Sprintf("image too large, maximum size is %d bytes", p.cfg.MaxImageBytes)}
	}
	return nil
}

// analyzeImage runs the vision call and parses its structured output.
func (p *Pipeline) analyzeImage(ctx context.Context, req Request) (models.ImageAnalysis, models.CostRecord, error) {
	system, err := p.prompts.Get(config.PromptAnalyzer)
	if err != nil {
		return models.ImageAnalysis{}, models.CostRecord{}, err
	}

	if p.cfg.LogAPICalls {
		p.log.WithField("model", p.cfg.AnalysisModel).WithField("image_type", req.ImageMIME).
			WithField("detail", p.cfg.ImageDetail).Info("analyzing image")
	}

	comp, err := p.client.Complete(ctx, "analysis", llm.Request{
		Model:     p.cfg.AnalysisModel,
		System:    system,
		User:      "Analyze this image and provide the JSON output as specified.",
		Image:     req.Image,
		ImageMIME: req.ImageMIME,
		Detail:    p.cfg.ImageDetail,
		JSONMode:  p.cfg.JSONMode,
	})
	if err != nil {
		return models.ImageAnalysis{}, models.CostRecord{}, err
	}

	cost := p.cfg.Pricing.Cost(comp.Model, comp.InputTokens, comp.OutputTokens)
	p.metrics.ObserveCall(comp.InputTokens, comp.OutputTokens, cost.TotalCostUSD)

	analysis, err := llm.ParseAnalysis(comp.Content)
	if err != nil {
		return models.ImageAnalysis{}, models.CostRecord{}, err
	}
	return analysis, cost, nil
}
