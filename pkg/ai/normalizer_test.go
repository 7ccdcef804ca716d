package ai

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeJSONResponse_CleanObject(t *testing.T) {
	out, err := NormalizeJSONResponse(`{"rules":[{"type":"heading"}]}`)
	require.NoError(t, err)
	assert.Equal(t, `{"rules":[{"type":"heading"}]}`, out)
}

func TestNormalizeJSONResponse_CodeFence(t *testing.T) {
	raw := "```json\n{\"rules\":[]}\n```"
	out, err := NormalizeJSONResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"rules":[]}`, out)
}

func TestNormalizeJSONResponse_ProseWrapped(t *testing.T) {
	raw := `Sure, here is the result you asked for:

{"rules":[{"type":"bold","pattern":"**{text}**"}]}

Let me know if you need anything else.`
	out, err := NormalizeJSONResponse(raw)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
	assert.Equal(t, `{"rules":[{"type":"bold","pattern":"**{text}**"}]}`, out)
}

func TestNormalizeJSONResponse_BOMPrefix(t *testing.T) {
	out, err := NormalizeJSONResponse("\ufeff{\"a\":1}")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)
}

func TestNormalizeJSONResponse_BracesInsideStrings(t *testing.T) {
	// braces inside string literals must not confuse the balance scan
	raw := `{"pattern":"{text} and } inside","next":"{"}`
	out, err := NormalizeJSONResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestNormalizeJSONResponse_TruncatedMidString(t *testing.T) {
	raw := `{"rules":[{"type":"heading","name":"second level tit`
	out, err := NormalizeJSONResponse(raw)
	require.NoError(t, err)

	var payload struct {
		Rules []struct {
			Type string `json:"type"`
			Name string `json:"name"`
		} `json:"rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Rules, 1)
	assert.Equal(t, "heading", payload.Rules[0].Type)
	assert.Equal(t, "second level tit", payload.Rules[0].Name)
}

func TestNormalizeJSONResponse_TruncatedMidEscape(t *testing.T) {
	raw := `{"name":"line one\`
	out, err := NormalizeJSONResponse(raw)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestNormalizeJSONResponse_TruncatedAfterComma(t *testing.T) {
	raw := `{"rules":[{"type":"bold"},`
	out, err := NormalizeJSONResponse(raw)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestNormalizeJSONResponse_TruncatedAfterColon(t *testing.T) {
	raw := `{"name":"x","pattern":`
	out, err := NormalizeJSONResponse(raw)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Nil(t, payload["pattern"])
}

func TestNormalizeJSONResponse_TrailingComma(t *testing.T) {
	out, err := NormalizeJSONResponse(`{"examples":["a","b",],}`)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestNormalizeJSONResponse_ControlChars(t *testing.T) {
	out, err := NormalizeJSONResponse("{\"name\":\"ab\x01cd\"}")
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "abcd", payload["name"])
}

func TestNormalizeJSONResponse_NoObject(t *testing.T) {
	_, err := NormalizeJSONResponse("I cannot produce the requested rules.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "I cannot produce the requested rules.", malformed.Raw)
}

func TestNormalizeJSONResponse_UnrepairableKeepsRaw(t *testing.T) {
	raw := `{"rules": not even close]`
	_, err := NormalizeJSONResponse(raw)
	require.Error(t, err)

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, raw, malformed.Raw)
}

func TestUnmarshalResponse(t *testing.T) {
	var payload struct {
		Rules []struct {
			Type string `json:"type"`
		} `json:"rules"`
	}
	err := UnmarshalResponse("```json\n{\"rules\":[{\"type\":\"quote\"}]}\n```", &payload)
	require.NoError(t, err)
	require.Len(t, payload.Rules, 1)
	assert.Equal(t, "quote", payload.Rules[0].Type)
}

func TestUnmarshalResponse_TypeMismatch(t *testing.T) {
	var payload struct {
		Rules []string `json:"rules"`
	}
	err := UnmarshalResponse(`{"rules":{"oops":true}}`, &payload)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}
