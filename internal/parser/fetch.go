package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/rishav781/Test-Agent/internal/types"
)

// Fetcher locates and loads the OpenAPI document of a live service so a
// base URL can feed the generation pipeline the same way an uploaded file
// does.
type Fetcher struct {
	baseURL string
	client  *http.Client
}

// NewFetcher creates a new Fetcher for the given service base URL.
func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Fetch probes the conventional OpenAPI document locations and normalizes
// the first one that loads.
func (f *Fetcher) Fetch() (*types.ParsedDocument, error) {
	urls := []string{
		fmt.Sprintf("%s/swagger/v1/swagger.json", f.baseURL),
		fmt.Sprintf("%s/swagger.json", f.baseURL),
		fmt.Sprintf("%s/v1/swagger.json", f.baseURL),
		fmt.Sprintf("%s/api/swagger.json", f.baseURL),
		fmt.Sprintf("%s/api/v1/swagger.json", f.baseURL),
		fmt.Sprintf("%s/openapi.json", f.baseURL),
	}

	var lastErr error
	for _, url := range urls {
		doc, err := f.fetchDoc(url)
		if err != nil {
			lastErr = err
			continue
		}
		return normalizeOpenAPI(doc), nil
	}

	return nil, fmt.Errorf("no OpenAPI document found under %s: %v", f.baseURL, lastErr)
}

func (f *Fetcher) fetchDoc(url string) (*openapi3.T, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI doc: %v", err)
	}

	return doc, nil
}

func normalizeOpenAPI(doc *openapi3.T) *types.ParsedDocument {
	parsed := &types.ParsedDocument{
		Title:     "API Specification",
		Endpoints: []types.Endpoint{},
	}
	if doc.Info != nil {
		if doc.Info.Title != "" {
			parsed.Title = doc.Info.Title
		}
		parsed.Version = doc.Info.Version
		parsed.Description = doc.Info.Description
	}

	paths := doc.Paths.Map()
	for _, path := range sortedPathKeys(paths) {
		pathItem := paths[path]
		operations := pathItem.Operations()
		for _, method := range sortedOperationKeys(operations) {
			operation := operations[method]
			endpoint := types.Endpoint{
				Path:        normalizePath(path),
				Method:      strings.ToUpper(method),
				Summary:     operation.Summary,
				Description: operation.Description,
				OperationID: operation.OperationID,
				Tags:        operation.Tags,
			}
			if len(operation.Parameters) > 0 {
				endpoint.Parameters = marshalLoose(operation.Parameters)
			}
			if operation.RequestBody != nil {
				endpoint.RequestBody = marshalLoose(operation.RequestBody)
			}
			if operation.Responses != nil {
				endpoint.Responses = marshalLoose(operation.Responses)
			}
			parsed.Endpoints = append(parsed.Endpoints, endpoint)
		}
	}

	return parsed
}

func sortedPathKeys(m map[string]*openapi3.PathItem) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedOperationKeys(m map[string]*openapi3.Operation) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func marshalLoose(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
