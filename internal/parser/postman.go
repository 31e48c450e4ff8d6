package parser

import (
	"net/url"
	"strings"

	"github.com/rishav781/Test-Agent/internal/types"
)

// ParsePostman normalizes a Postman collection. The item tree is walked
// recursively: an item with a request is a leaf, an item with a nested item
// list is a folder.
func ParsePostman(doc map[string]any) *types.ParsedDocument {
	parsed := &types.ParsedDocument{
		Title:     "Postman Collection",
		Endpoints: []types.Endpoint{},
	}

	if info, ok := doc["info"].(map[string]any); ok {
		if name := stringValue(info["name"]); name != "" {
			parsed.Title = name
		}
		parsed.Description = descriptionValue(info["description"])
	}

	if items, ok := doc["item"].([]any); ok {
		collectRequests(parsed, items, "")
	}

	return parsed
}

func collectRequests(parsed *types.ParsedDocument, items []any, folderPath string) {
	for _, entry := range items {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		if request, ok := item["request"].(map[string]any); ok {
			parsed.Endpoints = append(parsed.Endpoints, requestEndpoint(item, request, folderPath))
			continue
		}

		if children, ok := item["item"].([]any); ok {
			childPath := stringValue(item["name"])
			if folderPath != "" {
				childPath = folderPath + "/" + childPath
			}
			collectRequests(parsed, children, childPath)
		}
	}
}

func requestEndpoint(item, request map[string]any, folderPath string) types.Endpoint {
	method := stringValue(request["method"])
	if method == "" {
		method = "GET"
	}

	return types.Endpoint{
		Path:        requestPath(request["url"]),
		Method:      method,
		Name:        stringValue(item["name"]),
		Folder:      folderPath,
		Description: descriptionValue(request["description"]),
		Headers:     rawValue(request["header"]),
		Body:        rawValue(request["body"]),
		Auth:        rawValue(request["auth"]),
	}
}

// requestPath extracts the request path from either a raw URL string or a
// Postman v2.1 structured url object. Absolute URLs are reduced to their
// path component.
func requestPath(v any) string {
	var path string

	switch u := v.(type) {
	case string:
		path = u
	case map[string]any:
		_, hostOK := u["host"].([]any)
		segments, pathOK := u["path"].([]any)
		if hostOK && pathOK {
			parts := make([]string, 0, len(segments))
			for _, segment := range segments {
				if s, ok := segment.(string); ok {
					parts = append(parts, s)
				}
			}
			path = "/" + strings.Join(parts, "/")
		} else {
			path = stringValue(u["raw"])
		}
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		if parsed, err := url.Parse(path); err == nil {
			path = parsed.Path
		}
	}

	return normalizePath(path)
}

// descriptionValue handles both plain-string and {content: ...} forms.
func descriptionValue(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case map[string]any:
		return stringValue(d["content"])
	}
	return ""
}
