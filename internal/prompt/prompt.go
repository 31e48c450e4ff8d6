// Package prompt assembles the system and user instructions for each
// generation stage and input modality. Every system message embeds the
// exact target JSON schema and the only-JSON contract the decoder relies
// on during fallback parsing.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rishav781/Test-Agent/internal/decoder"
	"github.com/rishav781/Test-Agent/internal/types"
)

// Prompt is one prepared model instruction pair.
type Prompt struct {
	System      string
	User        string
	ImageBase64 string
	Shape       decoder.Shape
	MaxTokens   int
}

const scenarioSystemMessage = `You are an expert QA testing agent. Your task is to generate comprehensive test scenarios from a given description or image.

CRITICAL: You must respond with ONLY valid JSON. Do not include any explanatory text, comments, or formatting outside of the JSON structure. Start your response directly with '{' and end with '}'.

Required JSON format:
{
    "scenarios": [
        {
            "id": "SC001",
            "title": "Scenario Title",
            "description": "Brief description of the scenario",
            "category": "functional|negative|performance|security|integration",
            "preconditions": ["Precondition 1", "Precondition 2"],
            "estimated_test_cases": 5,
            "test_cases": []
        }
    ]
}

For each feature or UI, generate a list of test scenarios covering:
- Functional testing
- UI/UX testing
- Edge cases
- Error handling
- Data validation
- User workflows

Remember: Return ONLY the JSON object, no additional text.`

const expansionSystemMessage = `You are an expert QA testing agent. Your task is to generate detailed test cases for the provided test scenarios.

CRITICAL: You must respond with ONLY valid JSON. Do not include any explanatory text, comments, or formatting outside of the JSON structure. Start your response directly with '{' and end with '}'.

Required JSON format:
{
    "scenarios": [
        {
            "id": "SC001",
            "title": "Scenario Title",
            "description": "Brief description of the scenario",
            "category": "functional|negative|performance|security|integration",
            "preconditions": ["Precondition 1", "Precondition 2"],
            "test_cases": [
                {
                    "id": "TC001",
                    "title": "Test Case Title",
                    "description": "Detailed test case description",
                    "priority": "high|medium|low",
                    "category": "functional|negative|performance|security|integration",
                    "preconditions": ["Precondition 1"],
                    "steps": ["Step 1", "Step 2", "Step 3"],
                    "test_data": {"key": "value"},
                    "expected_result": "Expected outcome",
                    "validation_criteria": ["Criterion 1", "Criterion 2"]
                }
            ]
        }
    ]
}

For each scenario provided, generate comprehensive test cases covering functional testing, UI/UX testing, edge cases, error handling, data validation, and user workflows.

Remember: Return ONLY the JSON object, no additional text.`

const apiScenarioSystemMessage = `You are an expert API testing specialist. Your task is to generate comprehensive test scenarios for API endpoints based on the provided API documentation.

CRITICAL: You must respond with ONLY valid JSON. Do not include any explanatory text, comments, or formatting outside of the JSON structure. Start your response directly with '[' and end with ']'.

Required JSON format for each test scenario:
{
    "id": "API_SC001",
    "title": "API Endpoint Test Scenario",
    "description": "Detailed description of what this scenario tests",
    "category": "functional|negative|performance|security|integration",
    "endpoints": ["/api/endpoint1", "/api/endpoint2"],
    "test_types": ["authentication", "data_validation", "error_handling"],
    "priority": "high|medium|low",
    "estimated_test_cases": 5
}

For each API endpoint or group of related endpoints, generate scenarios covering:
1. Functional Testing: Happy path, data validation, CRUD operations
2. Negative Testing: Invalid inputs, error conditions, boundary values
3. Security Testing: Authentication, authorization, input validation
4. Performance Testing: Response times, load handling
5. Integration Testing: Dependencies, data flow

Focus on scenario-level descriptions without detailed test case steps. Each scenario should represent a logical group of related test cases.`

const apiExpansionSystemMessage = `You are an expert API testing specialist. Generate detailed test cases for the provided API scenarios.

CRITICAL: Respond with ONLY valid JSON. Start with '[' and end with ']'.

JSON format:
{
    "id": "API_SC001",
    "title": "Scenario Title",
    "description": "Brief description",
    "category": "functional|negative|security",
    "test_cases": [
        {
            "id": "API_TC001",
            "title": "Test Case Title",
            "description": "Test description",
            "priority": "high|medium|low",
            "category": "functional|negative|security",
            "preconditions": ["Precondition 1"],
            "steps": ["Step 1", "Step 2", "Step 3"],
            "test_data": {
                "method": "GET|POST|PUT|DELETE",
                "endpoint": "/api/endpoint",
                "expected_status_code": 200
            },
            "expected_result": "Expected outcome",
            "validation_criteria": ["Criterion 1"]
        }
    ]
}

Generate 3-5 test cases per scenario.`

// ForDescription builds the scenario-discovery prompt for a free-text
// feature description.
func ForDescription(description string, scenariosOnly bool) Prompt {
	user := fmt.Sprintf("Generate test scenarios for this feature:\n\n%s", description)
	if !scenariosOnly {
		user += "\n\nPlease also generate detailed test cases for each scenario."
	}
	return Prompt{
		System:    scenarioSystemMessage,
		User:      user,
		Shape:     decoder.ShapeObject,
		MaxTokens: 4000,
	}
}

// ForImage builds the scenario-discovery prompt for a UI screenshot. The
// image travels as a base64 data URL in a multimodal message.
func ForImage(imageBase64 string, scenariosOnly bool) Prompt {
	user := "Generate test scenarios for the feature shown in this image."
	if !scenariosOnly {
		user += "\n\nPlease also generate detailed test cases for each scenario."
	}
	return Prompt{
		System:      scenarioSystemMessage,
		User:        user,
		ImageBase64: imageBase64,
		Shape:       decoder.ShapeObject,
		MaxTokens:   4000,
	}
}

// ForScenarioExpansion builds the detail-expansion prompt for previously
// discovered scenarios. Scenarios carrying an estimated_test_cases count
// get a hard instruction to match it; the count is never re-validated.
func ForScenarioExpansion(scenarios []types.Scenario) Prompt {
	serialized, _ := json.MarshalIndent(scenarios, "", " ")

	var counts []string
	for _, scenario := range scenarios {
		if scenario.EstimatedTestCases > 0 {
			counts = append(counts, fmt.Sprintf("- %s: exactly %d test cases",
				scenario.Title, scenario.EstimatedTestCases))
		}
	}

	user := fmt.Sprintf("Please generate detailed test cases for these scenarios:\n\n%s", serialized)
	if len(counts) > 0 {
		user += "\n\nGenerate the exact number of test cases requested per scenario:\n" +
			strings.Join(counts, "\n")
	}

	return Prompt{
		System:    expansionSystemMessage,
		User:      user,
		Shape:     decoder.ShapeObject,
		MaxTokens: 4000,
	}
}

// ForAPIDocument builds the scenario-discovery prompt for a parsed API
// document. At most maxEndpoints endpoints are listed, with a trailing
// note counting the rest, to bound prompt size.
func ForAPIDocument(doc *types.ParsedDocument, kind types.DocumentKind, maxEndpoints int) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Please analyze this %s API specification and generate comprehensive test scenarios:\n\n", kind)
	fmt.Fprintf(&b, "API Title: %s\n", orUnknown(doc.Title))
	fmt.Fprintf(&b, "API Description: %s\n\n", orDefault(doc.Description, "No description"))
	b.WriteString("Endpoints Summary:\n")

	for i, endpoint := range doc.Endpoints {
		if i >= maxEndpoints {
			break
		}
		fmt.Fprintf(&b, "- %s %s: %s\n", endpoint.Method, endpoint.Path,
			orDefault(endpointSummary(endpoint), "No summary"))
	}
	if extra := len(doc.Endpoints) - maxEndpoints; extra > 0 {
		fmt.Fprintf(&b, "... and %d more endpoints\n", extra)
	}

	b.WriteString("\nGenerate 8-12 comprehensive test scenarios covering all major testing aspects.")

	return Prompt{
		System:    apiScenarioSystemMessage,
		User:      b.String(),
		Shape:     decoder.ShapeArray,
		MaxTokens: 3000,
	}
}

// ForAPIScenarioBatch builds the detail-expansion prompt for a batch of
// API scenarios.
func ForAPIScenarioBatch(scenarios []types.Scenario, kind types.DocumentKind) Prompt {
	serialized, _ := json.MarshalIndent(scenarios, "", " ")

	user := fmt.Sprintf(`Generate detailed test cases for these %d API scenarios:

%s

Document Type: %s
Generate test cases for ALL %d scenarios.`,
		len(scenarios), serialized, kind, len(scenarios))

	return Prompt{
		System:    apiExpansionSystemMessage,
		User:      user,
		Shape:     decoder.ShapeArray,
		MaxTokens: 4000,
	}
}

func endpointSummary(endpoint types.Endpoint) string {
	if endpoint.Summary != "" {
		return endpoint.Summary
	}
	return endpoint.Name
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
