package parser

import (
	"fmt"

	"github.com/rishav781/Test-Agent/internal/types"
)

// DocumentTypeError reports an upload that is neither a Swagger/OpenAPI
// spec nor a Postman collection. It is fatal for the request: no model call
// is made for an unrecognized document.
type DocumentTypeError struct {
	Detail string
}

func (e *DocumentTypeError) Error() string {
	return fmt.Sprintf("unrecognized API document: %s", e.Detail)
}

// Detect classifies an uploaded JSON document. Precedence:
// a document carrying info.name is a Postman collection unless a
// swagger/openapi marker is also present, in which case swagger wins;
// then bare swagger/openapi markers; then a top-level item list.
func Detect(doc map[string]any) types.DocumentKind {
	if info, ok := doc["info"].(map[string]any); ok {
		if _, hasName := info["name"]; hasName {
			if hasAnyKey(doc, "swagger", "openapi") {
				return types.KindSwagger
			}
			if _, hasItem := doc["item"]; hasItem {
				return types.KindPostman
			}
		}
	}

	if hasAnyKey(doc, "swagger", "openapi") {
		return types.KindSwagger
	}

	if items, ok := doc["item"].([]any); ok && items != nil {
		return types.KindPostman
	}

	return types.KindUnknown
}

// Parse detects the document kind and normalizes it. Returns a
// *DocumentTypeError for unknown documents.
func Parse(doc map[string]any) (*types.ParsedDocument, types.DocumentKind, error) {
	switch kind := Detect(doc); kind {
	case types.KindSwagger:
		return ParseSwagger(doc), kind, nil
	case types.KindPostman:
		return ParsePostman(doc), kind, nil
	default:
		return nil, types.KindUnknown, &DocumentTypeError{
			Detail: "expected a Swagger/OpenAPI specification or Postman collection",
		}
	}
}

func hasAnyKey(doc map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := doc[key]; ok {
			return true
		}
	}
	return false
}
