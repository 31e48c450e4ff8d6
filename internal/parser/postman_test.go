package parser

import (
	"encoding/json"
	"testing"
)

func TestParsePostman(t *testing.T) {
	raw := `{
		"info": {"name": "User API", "description": "Sample collection"},
		"item": [
			{
				"name": "List users",
				"request": {
					"method": "GET",
					"url": "https://api.example.com/v1/users",
					"header": [{"key": "Accept", "value": "application/json"}]
				}
			},
			{
				"name": "Admin",
				"item": [
					{
						"name": "Create user",
						"request": {
							"method": "POST",
							"url": {
								"raw": "https://api.example.com/v1/admin/users",
								"host": ["api", "example", "com"],
								"path": ["v1", "admin", "users"]
							},
							"body": {"mode": "raw", "raw": "{}"}
						}
					}
				]
			}
		]
	}`
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	parsed := ParsePostman(doc)

	if parsed.Title != "User API" {
		t.Errorf("title = %q", parsed.Title)
	}
	if parsed.Description != "Sample collection" {
		t.Errorf("description = %q", parsed.Description)
	}
	if len(parsed.Endpoints) != 2 {
		t.Fatalf("endpoints = %d, want 2", len(parsed.Endpoints))
	}

	list := parsed.Endpoints[0]
	if list.Path != "/v1/users" {
		t.Errorf("absolute URL not reduced to path: %q", list.Path)
	}
	if list.Method != "GET" || list.Name != "List users" {
		t.Errorf("first endpoint = %s %q", list.Method, list.Name)
	}
	if list.Headers == nil {
		t.Error("headers not carried")
	}

	create := parsed.Endpoints[1]
	if create.Path != "/v1/admin/users" {
		t.Errorf("structured url path = %q", create.Path)
	}
	if create.Method != "POST" {
		t.Errorf("method = %q", create.Method)
	}
	if create.Body == nil {
		t.Error("body not carried")
	}
	if create.Folder != "Admin" {
		t.Errorf("folder = %q", create.Folder)
	}
}

func TestRequestPath(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"absolute url", `"https://api.example.com/v1/users"`, "/v1/users"},
		{"relative path", `"/v1/users"`, "/v1/users"},
		{"missing slash", `"v1/users"`, "/v1/users"},
		{"structured", `{"host": ["x"], "path": ["a", "b"]}`, "/a/b"},
		{"structured without path falls back to raw", `{"raw": "/fallback"}`, "/fallback"},
		{"empty", `""`, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v any
			if err := json.Unmarshal([]byte(tt.url), &v); err != nil {
				t.Fatalf("bad fixture: %v", err)
			}
			if got := requestPath(v); got != tt.want {
				t.Errorf("requestPath(%s) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestParsePostmanDefaultsMethodToGet(t *testing.T) {
	doc := map[string]any{
		"info": map[string]any{"name": "x"},
		"item": []any{
			map[string]any{
				"name":    "no method",
				"request": map[string]any{"url": "/ping"},
			},
		},
	}

	parsed := ParsePostman(doc)
	if len(parsed.Endpoints) != 1 || parsed.Endpoints[0].Method != "GET" {
		t.Errorf("endpoints = %+v", parsed.Endpoints)
	}
}
