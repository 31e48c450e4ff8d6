// Package website analyzes a live website with the model and derives
// website_testing scenarios from the analysis.
package website

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rishav781/Test-Agent/internal/config"
	"github.com/rishav781/Test-Agent/internal/decoder"
	"github.com/rishav781/Test-Agent/internal/llm"
	"github.com/rishav781/Test-Agent/internal/logger"
	"github.com/rishav781/Test-Agent/internal/types"
	"github.com/rishav781/Test-Agent/internal/validator"
)

const (
	fetchTimeout   = 10 * time.Second
	maxHTMLLength  = 20000
	maxHTMLPreview = 10000
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var (
	titlePattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaPattern  = regexp.MustCompile(`(?i)<meta[^>]*name=["']description["'][^>]*content=["']([^"']*)["'][^>]*>`)
)

// Rating is one parameter score out of 5.
type Rating struct {
	Rating      int    `json:"rating"`
	Explanation string `json:"explanation"`
}

// Analysis is the model's quality assessment of a website.
type Analysis struct {
	OverallRating   int               `json:"overall_rating"`
	Parameters      map[string]Rating `json:"parameters"`
	Report          string            `json:"report"`
	Recommendations []string          `json:"recommendations"`
}

// Info summarizes what was analyzed.
type Info struct {
	Title           string            `json:"title"`
	URL             string            `json:"url"`
	Description     string            `json:"description"`
	OverallRating   int               `json:"overall_rating"`
	Parameters      map[string]Rating `json:"parameters"`
	Report          string            `json:"report"`
	Recommendations []string          `json:"recommendations"`
	AnalyzedAt      string            `json:"analyzed_at"`
}

// Result is the full website analysis response, shaped like the API
// document generation result.
type Result struct {
	DocumentType string           `json:"document_type"`
	WebsiteInfo  Info             `json:"website_info"`
	Scenarios    []types.Scenario `json:"scenarios"`
	GeneratedAt  string           `json:"generated_at"`
	InputType    string           `json:"input_type"`
}

// Analyzer fetches a website and runs the analysis and scenario stages.
type Analyzer struct {
	client llm.Client
	config *config.Config
	logger *logger.Logger
	http   *http.Client
}

// NewAnalyzer creates an Analyzer on an explicit client and configuration.
func NewAnalyzer(client llm.Client, cfg *config.Config, log *logger.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		config: cfg,
		logger: log,
		http:   &http.Client{Timeout: fetchTimeout},
	}
}

// Analyze fetches the page, asks the model for a rated analysis, and then
// generates test scenarios grounded in that analysis.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*Result, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL format")
	}

	html, err := a.fetchPage(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch website: %w", err)
	}

	title := extractFirst(titlePattern, html)
	metaDesc := extractFirst(metaPattern, html)

	analysis, err := a.analyzePage(ctx, rawURL, title, metaDesc, html)
	if err != nil {
		return nil, err
	}
	analyzedAt := time.Now().Format(time.RFC3339)

	scenarios := a.generateScenarios(ctx, analysis, rawURL, title)

	return &Result{
		DocumentType: "website",
		WebsiteInfo: Info{
			Title:           title,
			URL:             rawURL,
			Description:     metaDesc,
			OverallRating:   analysis.OverallRating,
			Parameters:      analysis.Parameters,
			Report:          analysis.Report,
			Recommendations: analysis.Recommendations,
			AnalyzedAt:      analyzedAt,
		},
		Scenarios:   scenarios,
		GeneratedAt: time.Now().Format(time.RFC3339),
		InputType:   "website_url",
	}, nil
}

func (a *Analyzer) fetchPage(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHTMLLength))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (a *Analyzer) analyzePage(ctx context.Context, rawURL, title, metaDesc, html string) (*Analysis, error) {
	preview := html
	if len(preview) > maxHTMLPreview {
		preview = preview[:maxHTMLPreview]
	}

	user := fmt.Sprintf(`Website URL: %s
Title: %s
Meta Description: %s

HTML Content Preview:
%s`, rawURL, title, metaDesc, preview)

	raw, err := a.client.Complete(ctx, llm.Request{
		Model:       a.config.LLM.WebsiteModel,
		System:      analysisSystemMessage,
		User:        user,
		MaxTokens:   2000,
		Temperature: a.config.LLM.Temperature,
	})
	if err != nil {
		a.logger.LogInteraction("analyze_website", rawURL, nil, err)
		return nil, err
	}

	decoded, err := decoder.Decode(raw, decoder.ShapeObject)
	if err != nil {
		a.logger.LogInteraction("analyze_website", rawURL, nil, err)
		return nil, err
	}

	var analysis Analysis
	if err := json.Unmarshal(decoded, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}

	a.logger.LogInteraction("analyze_website", rawURL, analysis.OverallRating, nil)
	return &analysis, nil
}

// generateScenarios derives website test scenarios from the analysis. Any
// failure degrades to the canned fallback pair rather than failing the
// whole analysis.
func (a *Analyzer) generateScenarios(ctx context.Context, analysis *Analysis, rawURL, title string) []types.Scenario {
	parameters, _ := json.MarshalIndent(analysis.Parameters, "", "  ")
	recommendations, _ := json.MarshalIndent(analysis.Recommendations, "", "  ")

	user := fmt.Sprintf(`Website: %s
Title: %s

Analysis Results:
Overall Rating: %d/5

Parameter Ratings:
%s

Analysis Report:
%s

Recommendations:
%s

Generate comprehensive test scenarios and test cases based on this analysis.`,
		rawURL, title, analysis.OverallRating, parameters,
		orDefault(analysis.Report, "No report available"), recommendations)

	raw, err := a.client.Complete(ctx, llm.Request{
		Model:       a.config.LLM.WebsiteModel,
		System:      scenarioSystemMessage,
		User:        user,
		MaxTokens:   3000,
		Temperature: a.config.LLM.Temperature,
	})
	if err != nil {
		a.logger.LogInteraction("website_scenarios", rawURL, nil, err)
		return fallbackScenarios(rawURL)
	}

	decoded, err := decoder.Decode(raw, decoder.ShapeArray)
	if err != nil {
		a.logger.LogInteraction("website_scenarios", rawURL, nil, err)
		return fallbackScenarios(rawURL)
	}

	scenarios := validator.Scenarios(decoded, "website_testing")
	if len(scenarios) == 0 {
		return fallbackScenarios(rawURL)
	}

	a.logger.LogInteraction("website_scenarios", rawURL, len(scenarios), nil)
	return validator.ApplyDefaults(scenarios)
}

func extractFirst(pattern *regexp.Regexp, html string) string {
	match := pattern.FindStringSubmatch(html)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
