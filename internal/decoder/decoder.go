// Package decoder turns raw model completions into valid JSON through an
// ordered list of recovery strategies. Models occasionally wrap valid JSON
// in prose or code fences, or answer with a bare array where an object was
// requested; the strategies locate a valid JSON span inside the noise
// without attempting to repair broken JSON syntax itself.
package decoder

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Shape is the top-level JSON value the prompt asked the model to produce.
type Shape int

const (
	// ShapeObject expects a reply starting with '{'.
	ShapeObject Shape = iota
	// ShapeArray expects a reply starting with '['.
	ShapeArray
)

// excerptLen bounds the raw-response excerpt carried by a decode failure,
// so error payloads stay small no matter how long the model rambled.
const excerptLen = 500

// Error reports that no strategy could recover JSON from the response.
// It is a value-level outcome: decoding never panics and never surfaces
// the full raw text.
type Error struct {
	Excerpt string
}

func (e *Error) Error() string {
	return "failed to parse model response as JSON: " + e.Excerpt
}

// scenariosKey is the wrapper used when an object was expected but the
// model emitted a bare array.
const scenariosKey = "scenarios"

var (
	objectSpan = regexp.MustCompile(`(?s)\{.*\}`)
	arraySpan  = regexp.MustCompile(`(?s)\[.*\]`)
)

// A strategy attempts one recovery. It returns the recovered JSON and
// whether it succeeded; the decode loop stops at the first success.
type strategy func(trimmed string, shape Shape) (json.RawMessage, bool)

var strategies = []strategy{
	parseWhole,
	extractObjectSpan,
	extractArraySpan,
}

// Decode recovers a JSON value of the expected shape from raw model text.
// On total failure it returns a *Error carrying a truncated excerpt.
func Decode(raw string, shape Shape) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(raw)

	for _, attempt := range strategies {
		if value, ok := attempt(trimmed, shape); ok {
			return value, nil
		}
	}

	excerpt := trimmed
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}
	return nil, &Error{Excerpt: excerpt}
}

// parseWhole accepts the trimmed response as-is when it is valid JSON of
// the expected shape. A bare array where an object was expected falls
// through so the array strategy can wrap it.
func parseWhole(trimmed string, shape Shape) (json.RawMessage, bool) {
	if !json.Valid([]byte(trimmed)) {
		return nil, false
	}
	if !shapeMatches(trimmed, shape) {
		return nil, false
	}
	return json.RawMessage(trimmed), true
}

// extractObjectSpan takes the greedy first-'{' to last-'}' span and accepts
// it if that substring is valid JSON on its own.
func extractObjectSpan(trimmed string, shape Shape) (json.RawMessage, bool) {
	if shape != ShapeObject {
		return nil, false
	}
	span := objectSpan.FindString(trimmed)
	if span == "" || !json.Valid([]byte(span)) {
		return nil, false
	}
	return json.RawMessage(span), true
}

// extractArraySpan takes the greedy first-'[' to last-']' span. When the
// caller expected an object, the recovered array is wrapped as
// {"scenarios": <array>}.
func extractArraySpan(trimmed string, shape Shape) (json.RawMessage, bool) {
	span := arraySpan.FindString(trimmed)
	if span == "" || !json.Valid([]byte(span)) {
		return nil, false
	}
	if shape == ShapeObject {
		wrapped, err := json.Marshal(map[string]json.RawMessage{
			scenariosKey: json.RawMessage(span),
		})
		if err != nil {
			return nil, false
		}
		return wrapped, true
	}
	return json.RawMessage(span), true
}

func shapeMatches(trimmed string, shape Shape) bool {
	if trimmed == "" {
		return false
	}
	switch shape {
	case ShapeArray:
		return trimmed[0] == '['
	default:
		return trimmed[0] == '{'
	}
}
