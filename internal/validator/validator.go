// Package validator enforces the output shape on decoded model responses.
// It is deliberately lenient: malformed entries are dropped one by one so a
// single bad scenario never invalidates an otherwise-good batch.
package validator

import (
	"encoding/json"

	"github.com/rishav781/Test-Agent/internal/types"
)

// looseScenario tolerates a test_cases value of any JSON type; anything
// that is not a list is coerced to an empty list.
type looseScenario struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Preconditions      []string        `json:"preconditions"`
	Endpoints          []string        `json:"endpoints"`
	TestTypes          []string        `json:"test_types"`
	Priority           string          `json:"priority"`
	EstimatedTestCases int             `json:"estimated_test_cases"`
	TestCases          json.RawMessage `json:"test_cases"`
}

// Scenarios validates a decoded response and returns the retained
// scenarios. The input may be an object with a "scenarios" list or a bare
// array. Entries that are not objects or lack a title are dropped; every
// surviving field gets its default. defaultCategory, when non-empty, fills
// a missing scenario category.
func Scenarios(decoded json.RawMessage, defaultCategory string) []types.Scenario {
	entries := scenarioEntries(decoded)

	validated := make([]types.Scenario, 0, len(entries))
	for _, entry := range entries {
		var loose looseScenario
		if err := json.Unmarshal(entry, &loose); err != nil {
			continue
		}
		if loose.Title == "" {
			continue
		}

		scenario := types.Scenario{
			ID:                 loose.ID,
			Title:              loose.Title,
			Description:        loose.Description,
			Category:           loose.Category,
			Preconditions:      loose.Preconditions,
			Endpoints:          loose.Endpoints,
			TestTypes:          loose.TestTypes,
			Priority:           loose.Priority,
			EstimatedTestCases: loose.EstimatedTestCases,
			TestCases:          testCases(loose.TestCases),
		}
		if scenario.Category == "" {
			scenario.Category = defaultCategory
		}
		if scenario.Preconditions == nil {
			scenario.Preconditions = []string{}
		}
		validated = append(validated, scenario)
	}

	return validated
}

// ApplyDefaults re-applies field defaults to an already-typed scenario
// list. It is idempotent: running it twice never changes the result.
func ApplyDefaults(scenarios []types.Scenario) []types.Scenario {
	for i := range scenarios {
		if scenarios[i].Preconditions == nil {
			scenarios[i].Preconditions = []string{}
		}
		if scenarios[i].TestCases == nil {
			scenarios[i].TestCases = []types.TestCase{}
		}
		for j := range scenarios[i].TestCases {
			applyTestCaseDefaults(&scenarios[i].TestCases[j])
		}
	}
	return scenarios
}

func scenarioEntries(decoded json.RawMessage) []json.RawMessage {
	var wrapper struct {
		Scenarios []json.RawMessage `json:"scenarios"`
	}
	if err := json.Unmarshal(decoded, &wrapper); err == nil && wrapper.Scenarios != nil {
		return wrapper.Scenarios
	}

	var list []json.RawMessage
	if err := json.Unmarshal(decoded, &list); err == nil {
		return list
	}

	return nil
}

// looseTestCase tolerates a test_data value of any JSON type; anything
// that is not an object is coerced to an empty map.
type looseTestCase struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Priority           string          `json:"priority"`
	Category           string          `json:"category"`
	Preconditions      []string        `json:"preconditions"`
	Steps              []string        `json:"steps"`
	TestData           json.RawMessage `json:"test_data"`
	ExpectedResult     string          `json:"expected_result"`
	ValidationCriteria []string        `json:"validation_criteria"`
}

func testCases(raw json.RawMessage) []types.TestCase {
	var entries []json.RawMessage
	if raw == nil || json.Unmarshal(raw, &entries) != nil {
		return []types.TestCase{}
	}

	validated := make([]types.TestCase, 0, len(entries))
	for _, entry := range entries {
		var loose looseTestCase
		if err := json.Unmarshal(entry, &loose); err != nil {
			continue
		}
		if loose.Title == "" {
			continue
		}

		testCase := types.TestCase{
			ID:                 loose.ID,
			Title:              loose.Title,
			Description:        loose.Description,
			Priority:           loose.Priority,
			Category:           loose.Category,
			Preconditions:      loose.Preconditions,
			Steps:              loose.Steps,
			ExpectedResult:     loose.ExpectedResult,
			ValidationCriteria: loose.ValidationCriteria,
		}
		if loose.TestData != nil {
			_ = json.Unmarshal(loose.TestData, &testCase.TestData)
		}
		applyTestCaseDefaults(&testCase)
		validated = append(validated, testCase)
	}
	return validated
}

func applyTestCaseDefaults(tc *types.TestCase) {
	if tc.Priority == "" {
		tc.Priority = "medium"
	}
	if tc.Category == "" {
		tc.Category = "functional"
	}
	if tc.Preconditions == nil {
		tc.Preconditions = []string{}
	}
	if tc.Steps == nil {
		tc.Steps = []string{}
	}
	if tc.TestData == nil {
		tc.TestData = map[string]any{}
	}
	if tc.ValidationCriteria == nil {
		tc.ValidationCriteria = []string{}
	}
}
