package generator

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/rishav781/Test-Agent/internal/prompt"
	"github.com/rishav781/Test-Agent/internal/types"
	"github.com/rishav781/Test-Agent/internal/validator"
)

// ExpandScenarios runs the detail-expansion stage: every input scenario
// comes back with its test_cases populated. Small sets go out as a single
// completion call; larger sets are either split into sequential batches or
// fanned out one call per scenario across the worker pool, depending on
// configuration. A failed unit is logged and omitted — it never aborts its
// siblings. The merged result is reordered lexically by scenario id so the
// response is stable regardless of completion arrival order.
func (g *Generator) ExpandScenarios(ctx context.Context, scenarios []types.Scenario, kind types.DocumentKind) *types.GenerationResult {
	if len(scenarios) == 0 {
		return &types.GenerationResult{Scenarios: []types.Scenario{}}
	}

	runID := uuid.NewString()

	var merged []types.Scenario
	switch {
	case len(scenarios) <= g.config.Generate.SmallBatchThreshold:
		merged = g.expandSequential(ctx, runID, scenarios, kind, len(scenarios))
	case g.config.Generate.Parallel:
		merged = g.expandParallel(ctx, runID, scenarios, kind)
	default:
		merged = g.expandSequential(ctx, runID, scenarios, kind, g.config.Generate.BatchSize)
	}

	if len(merged) == 0 {
		return &types.GenerationResult{Scenarios: fallbackScenarios(kind)}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ID < merged[j].ID
	})

	return &types.GenerationResult{Scenarios: validator.ApplyDefaults(merged)}
}

// expandSequential issues one completion call per batch, in order. A hung
// batch blocks the ones behind it, which is why the parallel variant is
// the default for large sets.
func (g *Generator) expandSequential(ctx context.Context, runID string, scenarios []types.Scenario, kind types.DocumentKind, batchSize int) []types.Scenario {
	var merged []types.Scenario
	for start := 0; start < len(scenarios); start += batchSize {
		end := start + batchSize
		if end > len(scenarios) {
			end = len(scenarios)
		}
		expanded, err := g.expandUnit(ctx, runID, scenarios[start:end], kind)
		if err != nil {
			g.logger.Printf("[%s] batch %d-%d failed: %v", runID, start, end, err)
			continue
		}
		merged = append(merged, expanded...)
	}
	return merged
}

// expandParallel issues one completion call per scenario across a bounded
// worker pool. All workers are joined before the merged result is
// produced; no detached work survives the call.
func (g *Generator) expandParallel(ctx context.Context, runID string, scenarios []types.Scenario, kind types.DocumentKind) []types.Scenario {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		merged []types.Scenario
	)
	sem := make(chan struct{}, g.config.Generate.MaxWorkers)

	for _, scenario := range scenarios {
		wg.Add(1)
		go func(scenario types.Scenario) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			expanded, err := g.expandUnit(ctx, runID, []types.Scenario{scenario}, kind)
			if err != nil {
				g.logger.Printf("[%s] scenario %q failed: %v", runID, scenario.Title, err)
				return
			}

			mu.Lock()
			merged = append(merged, expanded...)
			mu.Unlock()
		}(scenario)
	}

	wg.Wait()
	return merged
}

// expandUnit runs one batch (or single scenario) through the full
// prompt→complete→decode→validate pass.
func (g *Generator) expandUnit(ctx context.Context, runID string, scenarios []types.Scenario, kind types.DocumentKind) ([]types.Scenario, error) {
	var (
		p               prompt.Prompt
		model           string
		defaultCategory string
	)
	if kind == types.KindSwagger || kind == types.KindPostman {
		p = prompt.ForAPIScenarioBatch(scenarios, kind)
		model = g.config.LLM.APIModel
		defaultCategory = "api_testing"
	} else {
		p = prompt.ForScenarioExpansion(scenarios)
		model = g.config.LLM.TextModel
		defaultCategory = "functional"
	}

	expanded, failure := g.runStage(ctx, runID, "expand_scenarios", model, p, defaultCategory)
	if failure != nil {
		return nil, errors.New(failure.Error)
	}
	return expanded, nil
}
