package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishav781/Test-Agent/internal/llm"
	"github.com/rishav781/Test-Agent/internal/logger"
	"github.com/rishav781/Test-Agent/internal/types"
)

func TestGenerateScenariosFromDescription(t *testing.T) {
	client := &fakeClient{
		respond: func(_ int, req llm.Request) (string, error) {
			assert.Contains(t, req.User, "user login flow")
			return `{"scenarios": [{"id": "SC001", "title": "Login", "test_cases": [{"title": "Valid credentials"}]}]}`, nil
		},
	}
	gen := New(client, testConfig(true), logger.Discard())

	result := gen.GenerateScenarios(context.Background(), Input{Description: "user login flow"})

	assert.Empty(t, result.Error)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, "Login", result.Scenarios[0].Title)
	assert.Equal(t, "functional", result.Scenarios[0].Category)
	require.Len(t, result.Scenarios[0].TestCases, 1)
	assert.Equal(t, "medium", result.Scenarios[0].TestCases[0].Priority)
}

func TestGenerateScenariosModelSelection(t *testing.T) {
	var models []string
	client := &fakeClient{
		respond: func(_ int, req llm.Request) (string, error) {
			models = append(models, req.Model)
			return `{"scenarios": [{"title": "ok"}]}`, nil
		},
	}
	cfg := testConfig(true)
	cfg.LLM.TextModel = "text-model"
	cfg.LLM.VisionModel = "vision-model"
	gen := New(client, cfg, logger.Discard())

	gen.GenerateScenarios(context.Background(), Input{Description: "feature"})
	gen.GenerateScenarios(context.Background(), Input{ImageBase64: "aGVsbG8="})

	assert.Equal(t, []string{"text-model", "vision-model"}, models)
}

func TestGenerateScenariosDecodeFailure(t *testing.T) {
	client := &fakeClient{
		respond: func(int, llm.Request) (string, error) {
			return "I'm sorry, I can't produce that.", nil
		},
	}
	gen := New(client, testConfig(true), logger.Discard())

	result := gen.GenerateScenarios(context.Background(), Input{Description: "feature"})

	assert.Empty(t, result.Scenarios)
	assert.NotEmpty(t, result.Error)
	assert.Contains(t, result.RawResponse, "I'm sorry")
}

func TestGenerateScenariosDecodeFailureExcerptTruncated(t *testing.T) {
	long := strings.Repeat("x", 2000)
	client := &fakeClient{
		respond: func(int, llm.Request) (string, error) {
			return long, nil
		},
	}
	gen := New(client, testConfig(true), logger.Discard())

	result := gen.GenerateScenarios(context.Background(), Input{Description: "feature"})

	assert.NotEmpty(t, result.Error)
	assert.Len(t, result.RawResponse, 500)
}

func TestGenerateScenariosUpstreamFailure(t *testing.T) {
	client := &fakeClient{
		respond: func(int, llm.Request) (string, error) {
			return "", errors.New("connection reset")
		},
	}
	gen := New(client, testConfig(true), logger.Discard())

	result := gen.GenerateScenarios(context.Background(), Input{Description: "feature"})

	assert.Empty(t, result.Scenarios)
	assert.Contains(t, result.Error, "connection reset")
}

func TestGenerateScenariosDocumentFailureFallsBack(t *testing.T) {
	client := &fakeClient{
		respond: func(int, llm.Request) (string, error) {
			return "", errors.New("provider down")
		},
	}
	gen := New(client, testConfig(true), logger.Discard())

	doc := &types.ParsedDocument{
		Title: "Petstore",
		Endpoints: []types.Endpoint{
			{Method: "GET", Path: "/pets"},
		},
	}
	result := gen.GenerateScenarios(context.Background(), Input{
		Document:      doc,
		DocumentKind:  types.KindSwagger,
		ScenariosOnly: true,
	})

	// Document generation degrades to the canned API scenarios instead of
	// surfacing the upstream error.
	assert.Empty(t, result.Error)
	require.NotEmpty(t, result.Scenarios)
	assert.Equal(t, "API_SC001", result.Scenarios[0].ID)
}

func TestGenerateScenariosDocumentEmptyResultFallsBack(t *testing.T) {
	client := &fakeClient{
		respond: func(int, llm.Request) (string, error) {
			return `[]`, nil
		},
	}
	gen := New(client, testConfig(true), logger.Discard())

	doc := &types.ParsedDocument{Title: "Petstore"}
	result := gen.GenerateScenarios(context.Background(), Input{
		Document:     doc,
		DocumentKind: types.KindPostman,
	})

	require.NotEmpty(t, result.Scenarios)
	assert.Equal(t, "Basic API Endpoint Testing", result.Scenarios[0].Title)
}
