package validator

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/rishav781/Test-Agent/internal/types"
)

func TestScenariosDropsEntriesWithoutTitle(t *testing.T) {
	decoded := json.RawMessage(`{"scenarios": [
		{"id": "SC001", "title": "Valid scenario"},
		{"id": "SC002", "description": "no title here"}
	]}`)

	scenarios := Scenarios(decoded, "")

	if len(scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(scenarios))
	}
	if scenarios[0].Title != "Valid scenario" {
		t.Errorf("unexpected scenario retained: %q", scenarios[0].Title)
	}
}

func TestScenariosAcceptsBareArray(t *testing.T) {
	decoded := json.RawMessage(`[{"id": "API_SC001", "title": "Auth flow"}]`)

	scenarios := Scenarios(decoded, "api_testing")

	if len(scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(scenarios))
	}
	if scenarios[0].Category != "api_testing" {
		t.Errorf("expected default category api_testing, got %q", scenarios[0].Category)
	}
}

func TestScenariosDropsNonObjectEntries(t *testing.T) {
	decoded := json.RawMessage(`{"scenarios": ["just a string", {"title": "Real"}]}`)

	scenarios := Scenarios(decoded, "")

	if len(scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(scenarios))
	}
}

func TestScenariosCoercesTestCases(t *testing.T) {
	tests := []struct {
		name    string
		decoded string
	}{
		{"missing", `{"scenarios": [{"title": "S"}]}`},
		{"non-list", `{"scenarios": [{"title": "S", "test_cases": "nope"}]}`},
		{"null", `{"scenarios": [{"title": "S", "test_cases": null}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenarios := Scenarios(json.RawMessage(tt.decoded), "")
			if len(scenarios) != 1 {
				t.Fatalf("expected 1 scenario, got %d", len(scenarios))
			}
			if scenarios[0].TestCases == nil || len(scenarios[0].TestCases) != 0 {
				t.Errorf("expected empty test case list, got %#v", scenarios[0].TestCases)
			}
		})
	}
}

func TestTestCaseDefaults(t *testing.T) {
	decoded := json.RawMessage(`{"scenarios": [{
		"title": "S",
		"test_cases": [
			{"title": "Bare case"},
			{"description": "dropped, no title"}
		]
	}]}`)

	scenarios := Scenarios(decoded, "")

	if len(scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(scenarios))
	}
	cases := scenarios[0].TestCases
	if len(cases) != 1 {
		t.Fatalf("expected 1 test case, got %d", len(cases))
	}

	tc := cases[0]
	if tc.Priority != "medium" {
		t.Errorf("priority default = %q, want medium", tc.Priority)
	}
	if tc.Category != "functional" {
		t.Errorf("category default = %q, want functional", tc.Category)
	}
	if tc.Preconditions == nil || tc.Steps == nil || tc.TestData == nil || tc.ValidationCriteria == nil {
		t.Errorf("expected non-nil defaults, got %+v", tc)
	}
	if tc.ExpectedResult != "" {
		t.Errorf("expected_result default = %q, want empty", tc.ExpectedResult)
	}
}

func TestTestDataCoercedToMap(t *testing.T) {
	decoded := json.RawMessage(`{"scenarios": [{
		"title": "S",
		"test_cases": [{"title": "TC", "test_data": "free-form string"}]
	}]}`)

	scenarios := Scenarios(decoded, "")

	tc := scenarios[0].TestCases[0]
	if tc.TestData == nil || len(tc.TestData) != 0 {
		t.Errorf("expected empty test_data map, got %#v", tc.TestData)
	}
}

func TestApplyDefaultsIdempotent(t *testing.T) {
	decoded := json.RawMessage(`{"scenarios": [{
		"id": "SC001",
		"title": "Login",
		"test_cases": [{"title": "Valid login", "priority": "high"}]
	}]}`)

	first := Scenarios(decoded, "functional")
	before, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}

	twice := ApplyDefaults(ApplyDefaults(first))
	after, err := json.Marshal(twice)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(before, after) {
		t.Errorf("defaulting drifted on repeat:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestApplyDefaultsFillsNilCollections(t *testing.T) {
	scenarios := ApplyDefaults([]types.Scenario{{Title: "S"}})

	if scenarios[0].Preconditions == nil {
		t.Error("preconditions left nil")
	}
	if scenarios[0].TestCases == nil {
		t.Error("test_cases left nil")
	}
}
