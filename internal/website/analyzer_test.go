package website

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rishav781/Test-Agent/internal/config"
	"github.com/rishav781/Test-Agent/internal/llm"
	"github.com/rishav781/Test-Agent/internal/logger"
)

type scriptedClient struct {
	mu      sync.Mutex
	calls   int
	respond func(call int, req llm.Request) (string, error)
}

func (c *scriptedClient) Complete(_ context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	c.calls++
	call := c.calls
	c.mu.Unlock()
	return c.respond(call, req)
}

func testAnalyzer(client llm.Client) *Analyzer {
	cfg := &config.Config{
		LLM: config.LLMConfig{
			WebsiteModel: "gpt-4",
			Temperature:  0.3,
			Timeout:      time.Second,
		},
	}
	return NewAnalyzer(client, cfg, logger.Discard())
}

const testPage = `<!DOCTYPE html>
<html>
<head>
<title> Example Shop </title>
<meta name="description" content="Buy example things online">
</head>
<body><h1>Welcome</h1></body>
</html>`

const analysisResponse = `{
  "overall_rating": 4,
  "parameters": {
    "usability": {"rating": 4, "explanation": "clear layout"}
  },
  "report": "Solid landing page.",
  "recommendations": ["Add alt text"]
}`

const scenarioResponse = `[
  {
    "id": "WEB_SC001",
    "title": "Navigation Testing",
    "test_cases": [{"title": "Main menu links resolve"}]
  }
]`

func TestExtractFirst(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		html    string
		want    string
	}{
		{"title", "title", `<title>My Page</title>`, "My Page"},
		{"title with attributes", "title", `<TITLE id="t"> Spaced </TITLE>`, "Spaced"},
		{"title across lines", "title", "<title>\nMulti\n</title>", "Multi"},
		{"meta description", "meta", `<meta name="description" content="hello world">`, "hello world"},
		{"meta single quotes", "meta", `<meta name='description' content='hi'>`, "hi"},
		{"missing", "title", `<body>no head</body>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := titlePattern
			if tt.pattern == "meta" {
				pattern = metaPattern
			}
			if got := extractFirst(pattern, tt.html); got != tt.want {
				t.Errorf("extractFirst(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	client := &scriptedClient{
		respond: func(call int, req llm.Request) (string, error) {
			switch call {
			case 1:
				if !strings.Contains(req.User, "Example Shop") {
					t.Errorf("analysis prompt missing page title:\n%s", req.User)
				}
				return analysisResponse, nil
			default:
				if !strings.Contains(req.User, "Overall Rating: 4/5") {
					t.Errorf("scenario prompt missing rating:\n%s", req.User)
				}
				return scenarioResponse, nil
			}
		},
	}

	result, err := testAnalyzer(client).Analyze(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.DocumentType != "website" {
		t.Errorf("document type = %q", result.DocumentType)
	}
	if result.InputType != "website_url" {
		t.Errorf("input type = %q", result.InputType)
	}
	if result.WebsiteInfo.Title != "Example Shop" {
		t.Errorf("title = %q", result.WebsiteInfo.Title)
	}
	if result.WebsiteInfo.Description != "Buy example things online" {
		t.Errorf("description = %q", result.WebsiteInfo.Description)
	}
	if result.WebsiteInfo.OverallRating != 4 {
		t.Errorf("rating = %d", result.WebsiteInfo.OverallRating)
	}
	if len(result.Scenarios) != 1 || result.Scenarios[0].Title != "Navigation Testing" {
		t.Errorf("scenarios = %+v", result.Scenarios)
	}
	if result.Scenarios[0].Category != "website_testing" {
		t.Errorf("category = %q", result.Scenarios[0].Category)
	}
}

func TestAnalyzeInvalidURL(t *testing.T) {
	client := &scriptedClient{
		respond: func(int, llm.Request) (string, error) {
			t.Fatal("no completion expected for an invalid URL")
			return "", nil
		},
	}

	for _, rawURL := range []string{"", "not-a-url", "example.com/no-scheme"} {
		if _, err := testAnalyzer(client).Analyze(context.Background(), rawURL); err == nil {
			t.Errorf("Analyze(%q) succeeded, want error", rawURL)
		}
	}
}

func TestAnalyzeFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := &scriptedClient{
		respond: func(int, llm.Request) (string, error) {
			return analysisResponse, nil
		},
	}

	_, err := testAnalyzer(client).Analyze(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "failed to fetch website") {
		t.Errorf("err = %v", err)
	}
}

func TestAnalyzeScenarioStageFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	client := &scriptedClient{
		respond: func(call int, _ llm.Request) (string, error) {
			if call == 1 {
				return analysisResponse, nil
			}
			return "", errors.New("provider down")
		},
	}

	result, err := testAnalyzer(client).Analyze(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(result.Scenarios) == 0 {
		t.Fatal("expected fallback scenarios")
	}
	if result.Scenarios[0].Title != "Basic Website Functionality Test" {
		t.Errorf("fallback title = %q", result.Scenarios[0].Title)
	}
}
