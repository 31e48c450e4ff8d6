// Package generator runs the two-phase test generation workflow: scenario
// discovery over one completion call, then on-demand detail expansion,
// batched or fanned out per scenario over a bounded worker pool.
package generator

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rishav781/Test-Agent/internal/config"
	"github.com/rishav781/Test-Agent/internal/decoder"
	"github.com/rishav781/Test-Agent/internal/llm"
	"github.com/rishav781/Test-Agent/internal/logger"
	"github.com/rishav781/Test-Agent/internal/prompt"
	"github.com/rishav781/Test-Agent/internal/types"
	"github.com/rishav781/Test-Agent/internal/validator"
)

// Generator owns one configured pipeline: prompt building, completion,
// decoding, and validation. It holds no per-request state; every call gets
// immutable inputs and produces an independent result.
type Generator struct {
	client llm.Client
	config *config.Config
	logger *logger.Logger
}

// New creates a Generator on an explicit client and configuration.
func New(client llm.Client, cfg *config.Config, log *logger.Logger) *Generator {
	return &Generator{
		client: client,
		config: cfg,
		logger: log,
	}
}

// Input is one generation request. Exactly one of Description, ImageBase64,
// or Document is set. Immutable once built, consumed once.
type Input struct {
	Description   string
	ImageBase64   string
	Document      *types.ParsedDocument
	DocumentKind  types.DocumentKind
	ScenariosOnly bool
}

// GenerateScenarios runs the scenario-discovery stage for one input.
// Failure is always a data value: the returned result carries an error
// string and raw-response excerpt instead of panicking or propagating.
func (g *Generator) GenerateScenarios(ctx context.Context, input Input) *types.GenerationResult {
	runID := uuid.NewString()

	var (
		p               prompt.Prompt
		model           string
		defaultCategory string
	)
	switch {
	case input.Document != nil:
		p = prompt.ForAPIDocument(input.Document, input.DocumentKind, g.config.Generate.MaxPromptEndpoints)
		model = g.config.LLM.APIModel
		defaultCategory = "api_testing"
	case input.ImageBase64 != "":
		p = prompt.ForImage(input.ImageBase64, input.ScenariosOnly)
		model = g.config.LLM.VisionModel
		defaultCategory = "functional"
	default:
		p = prompt.ForDescription(input.Description, input.ScenariosOnly)
		model = g.config.LLM.TextModel
		defaultCategory = "functional"
	}

	scenarios, failure := g.runStage(ctx, runID, "generate_scenarios", model, p, defaultCategory)
	if failure != nil {
		if input.Document != nil {
			// API document generation degrades to the canned fallback so
			// the caller never receives a totally empty result.
			return &types.GenerationResult{Scenarios: fallbackScenarios(input.DocumentKind)}
		}
		return failure
	}

	if len(scenarios) == 0 && input.Document != nil {
		scenarios = fallbackScenarios(input.DocumentKind)
	}

	return &types.GenerationResult{Scenarios: validator.ApplyDefaults(scenarios)}
}

// runStage performs one prompt→complete→decode→validate pass. On failure
// it returns a value-level result describing the problem.
func (g *Generator) runStage(ctx context.Context, runID, stage, model string, p prompt.Prompt, defaultCategory string) ([]types.Scenario, *types.GenerationResult) {
	raw, err := g.client.Complete(ctx, llm.Request{
		Model:       model,
		System:      p.System,
		User:        p.User,
		ImageBase64: p.ImageBase64,
		MaxTokens:   p.MaxTokens,
		Temperature: g.config.LLM.Temperature,
	})
	if err != nil {
		g.logger.LogInteraction(stage, runID, nil, err)
		return nil, &types.GenerationResult{Error: err.Error()}
	}

	decoded, err := decoder.Decode(raw, p.Shape)
	if err != nil {
		g.logger.LogInteraction(stage, runID, nil, err)
		result := &types.GenerationResult{Error: err.Error()}
		var decodeErr *decoder.Error
		if errors.As(err, &decodeErr) {
			result.RawResponse = decodeErr.Excerpt
		}
		return nil, result
	}

	scenarios := validator.Scenarios(decoded, defaultCategory)
	g.logger.LogInteraction(stage, runID, len(scenarios), nil)
	return scenarios, nil
}
