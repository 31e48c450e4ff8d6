package types

import "encoding/json"

// DocumentKind classifies an uploaded API artifact.
type DocumentKind string

const (
	KindSwagger DocumentKind = "swagger"
	KindPostman DocumentKind = "postman"
	KindUnknown DocumentKind = "unknown"
)

// Endpoint is one operation extracted from an API document. Swagger and
// Postman documents populate different subsets of the optional fields; the
// generic values are carried verbatim into prompts.
type Endpoint struct {
	Path        string          `json:"path"`
	Method      string          `json:"method"`
	Summary     string          `json:"summary,omitempty"`
	Name        string          `json:"name,omitempty"`
	Folder      string          `json:"folder,omitempty"`
	Description string          `json:"description,omitempty"`
	OperationID string          `json:"operation_id,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
	RequestBody json.RawMessage `json:"request_body,omitempty"`
	Responses   json.RawMessage `json:"responses,omitempty"`
	Headers     json.RawMessage `json:"headers,omitempty"`
	Body        json.RawMessage `json:"body,omitempty"`
	Auth        json.RawMessage `json:"auth,omitempty"`
}

// ParsedDocument is the uniform representation of a Swagger spec or Postman
// collection. Built once per uploaded document, discarded after the
// generation call returns.
type ParsedDocument struct {
	Title       string     `json:"title"`
	Version     string     `json:"version,omitempty"`
	Description string     `json:"description"`
	Host        string     `json:"host,omitempty"`
	BasePath    string     `json:"base_path,omitempty"`
	Schemes     []string   `json:"schemes,omitempty"`
	Endpoints   []Endpoint `json:"endpoints"`
}

// TestCase is one concrete verification with steps and an expected result.
// Every field has a defined default so downstream consumers never see a
// missing key.
type TestCase struct {
	ID                 string         `json:"id,omitempty"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Priority           string         `json:"priority"`
	Category           string         `json:"category"`
	Preconditions      []string       `json:"preconditions"`
	Steps              []string       `json:"steps"`
	TestData           map[string]any `json:"test_data"`
	ExpectedResult     string         `json:"expected_result"`
	ValidationCriteria []string       `json:"validation_criteria"`
}

// Scenario is a named logical grouping of related test cases.
type Scenario struct {
	ID                 string     `json:"id,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	Preconditions      []string   `json:"preconditions"`
	Endpoints          []string   `json:"endpoints,omitempty"`
	TestTypes          []string   `json:"test_types,omitempty"`
	Priority           string     `json:"priority,omitempty"`
	EstimatedTestCases int        `json:"estimated_test_cases,omitempty"`
	TestCases          []TestCase `json:"test_cases"`
}

// GenerationResult is the outcome of one generation call. Errors are data,
// never panics: a failed decode carries a truncated raw excerpt.
type GenerationResult struct {
	Scenarios   []Scenario `json:"scenarios"`
	Error       string     `json:"error,omitempty"`
	RawResponse string     `json:"raw_response,omitempty"`
}

// CanonicalMethods is the set of HTTP verbs kept when walking a Swagger
// paths object.
var CanonicalMethods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"PATCH":   true,
	"HEAD":    true,
	"OPTIONS": true,
}
