package parser

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/rishav781/Test-Agent/internal/types"
)

// ParseSwagger normalizes a Swagger/OpenAPI document. Operations are kept
// verbatim: parameters, request bodies, and responses are carried as raw
// JSON so prompts see exactly what the document declared.
func ParseSwagger(doc map[string]any) *types.ParsedDocument {
	parsed := &types.ParsedDocument{
		Title:     "API Specification",
		Version:   "1.0.0",
		Host:      stringValue(doc["host"]),
		BasePath:  stringValue(doc["basePath"]),
		Schemes:   stringSlice(doc["schemes"]),
		Endpoints: []types.Endpoint{},
	}
	if len(parsed.Schemes) == 0 {
		parsed.Schemes = []string{"https"}
	}

	if info, ok := doc["info"].(map[string]any); ok {
		if title := stringValue(info["title"]); title != "" {
			parsed.Title = title
		}
		if version := stringValue(info["version"]); version != "" {
			parsed.Version = version
		}
		parsed.Description = stringValue(info["description"])
	}

	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return parsed
	}

	// Map iteration order is random; sort so the endpoint list is stable
	// for the same document.
	for _, path := range sortedKeys(paths) {
		methods, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range sortedKeys(methods) {
			verb := strings.ToUpper(method)
			if !types.CanonicalMethods[verb] {
				continue
			}
			operation, ok := methods[method].(map[string]any)
			if !ok {
				continue
			}
			parsed.Endpoints = append(parsed.Endpoints, types.Endpoint{
				Path:        normalizePath(path),
				Method:      verb,
				Summary:     stringValue(operation["summary"]),
				Description: stringValue(operation["description"]),
				OperationID: stringValue(operation["operationId"]),
				Tags:        stringSlice(operation["tags"]),
				Parameters:  rawValue(operation["parameters"]),
				RequestBody: rawValue(operation["requestBody"]),
				Responses:   rawValue(operation["responses"]),
			})
		}
	}

	return parsed
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func rawValue(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
