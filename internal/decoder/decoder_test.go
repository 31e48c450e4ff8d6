package decoder

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidObjectIsIdentity(t *testing.T) {
	raw := `{"scenarios": [{"id": "SC001", "title": "Login"}]}`

	decoded, err := Decode(raw, ShapeObject)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(decoded))
}

func TestDecodeTrimsWhitespace(t *testing.T) {
	decoded, err := Decode("\n  {\"scenarios\": []}  \n", ShapeObject)
	require.NoError(t, err)
	assert.JSONEq(t, `{"scenarios": []}`, string(decoded))
}

func TestDecodeRecoversObjectFromProse(t *testing.T) {
	raw := `Here is the result: {"scenarios": []} Thanks!`

	decoded, err := Decode(raw, ShapeObject)
	require.NoError(t, err)
	assert.JSONEq(t, `{"scenarios": []}`, string(decoded))
}

func TestDecodeRecoversObjectFromCodeFence(t *testing.T) {
	raw := "```json\n{\"scenarios\": [{\"title\": \"X\"}]}\n```"

	decoded, err := Decode(raw, ShapeObject)
	require.NoError(t, err)
	assert.JSONEq(t, `{"scenarios": [{"title": "X"}]}`, string(decoded))
}

func TestDecodeWrapsBareArrayWhenObjectExpected(t *testing.T) {
	raw := `[{"id": "SC001", "title": "A"}, {"id": "SC002", "title": "B"}]`

	decoded, err := Decode(raw, ShapeObject)
	require.NoError(t, err)

	var wrapper struct {
		Scenarios []json.RawMessage `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(decoded, &wrapper))
	assert.Len(t, wrapper.Scenarios, 2)
}

func TestDecodeArrayShape(t *testing.T) {
	raw := "Sure, here you go:\n[{\"id\": \"API_SC001\", \"title\": \"Auth\"}]"

	decoded, err := Decode(raw, ShapeArray)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": "API_SC001", "title": "Auth"}]`, string(decoded))
}

func TestDecodeArrayShapeRejectsBareObject(t *testing.T) {
	_, err := Decode(`{"title": "not a list"}`, ShapeArray)

	var decodeErr *Error
	require.ErrorAs(t, err, &decodeErr)
}

func TestDecodeFailureCarriesExcerpt(t *testing.T) {
	_, err := Decode("I cannot help with that.", ShapeObject)

	var decodeErr *Error
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "I cannot help with that.", decodeErr.Excerpt)
}

func TestDecodeExcerptTruncatedTo500(t *testing.T) {
	raw := strings.Repeat("no json here ", 100)

	_, err := Decode(raw, ShapeObject)

	var decodeErr *Error
	require.ErrorAs(t, err, &decodeErr)
	assert.Len(t, decodeErr.Excerpt, 500)
	assert.NotEmpty(t, decodeErr.Excerpt)
}

func TestDecodeDoesNotRepairTruncatedJSON(t *testing.T) {
	// A truncated object has no valid span to locate; recovery is about
	// finding JSON inside noise, not fixing broken syntax.
	_, err := Decode(`{"scenarios": [{"title": "cut off`, ShapeObject)

	var decodeErr *Error
	require.ErrorAs(t, err, &decodeErr)
}
