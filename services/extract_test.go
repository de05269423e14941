package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func competenciesJSON() string {
	items := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		items = append(items, fmt.Sprintf(`{"numero":%d,"titulo":"C%d","nota":160,"feedback":"ok"}`, i, i))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", "  {\"a\":1}  ", `{"a":1}`},
		{"fence mid text", "veja:\n```json\n{}\n``` fim", "veja:\n\n{}\n fim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestSliceJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading prose", `Here you go: {"a":1}`, `{"a":1}`},
		{"trailing prose", `{"a":1} hope it helps`, `{"a":1}`},
		{"nested braces", `x {"a":{"b":2}} y`, `{"a":{"b":2}}`},
		{"no braces", "I cannot comply.", "I cannot comply."},
		{"only open", "{ broken", "{ broken"},
		{"reversed", "} oops {", "} oops {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sliceJSONObject(tt.in))
		})
	}
}

func TestParseAnalysis_FencedWithProse(t *testing.T) {
	object := `{"notaGeral":820,"competencias":` + competenciesJSON() + `}`
	text := "Here you go:\n```json\n" + object + "\n```"

	got, err := ParseAnalysis(text)
	require.NoError(t, err)

	assert.JSONEq(t, object, string(got.Raw))
	assert.False(t, got.Fallback)
	assert.Equal(t, 820, got.Scorecard.OverallScore)
	require.Len(t, got.Scorecard.Competencies, 5)
	assert.Equal(t, 160, got.Scorecard.Competencies[4].Score)
}

func TestParseAnalysis_PassThroughUnknownFieldsAndTypes(t *testing.T) {
	object := `{"notaGeral":812.5,"competencias":[{"numero":1,"nota":"alta"}],"extra":{"keep":true}}`

	got, err := ParseAnalysis(object)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(got.Raw, &decoded))
	assert.Equal(t, 812.5, decoded["notaGeral"])
	assert.Equal(t, map[string]any{"keep": true}, decoded["extra"])
}

func TestParseAnalysis_ShapeFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain refusal", "I cannot comply."},
		{"empty", ""},
		{"truncated", `{"notaGeral": 800, "competencias": [`},
		{"missing overall", `{"competencias": []}`},
		{"zero overall", `{"notaGeral": 0, "competencias": []}`},
		{"null overall", `{"notaGeral": null, "competencias": []}`},
		{"false overall", `{"notaGeral": false, "competencias": []}`},
		{"empty string overall", `{"notaGeral": "", "competencias": []}`},
		{"missing competencies", `{"notaGeral": 800}`},
		{"competencies object", `{"notaGeral": 800, "competencias": {"1": 160}}`},
		{"competencies null", `{"notaGeral": 800, "competencias": null}`},
		{"competencies string", `{"notaGeral": 800, "competencias": "[]"}`},
		{"top-level array", `[1,2]`},
		{"top-level null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalysis(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse))
		})
	}
}

func TestParseAnalysis_ArrayWrappedObject(t *testing.T) {
	got, err := ParseAnalysis(`[{"notaGeral": 800, "competencias": []}]`)
	require.NoError(t, err)

	assert.JSONEq(t, `{"notaGeral": 800, "competencias": []}`, string(got.Raw))
	assert.Equal(t, 800, got.Scorecard.OverallScore)
	assert.False(t, got.Partial)
}

func TestParseAnalysis_PartialTypedView(t *testing.T) {
	got, err := ParseAnalysis(`{"notaGeral":812.5,"competencias":[]}`)
	require.NoError(t, err)

	assert.True(t, got.Partial)
	assert.Error(t, got.PartialErr)
	assert.JSONEq(t, `{"notaGeral":812.5,"competencias":[]}`, string(got.Raw))
}

func TestTruthy(t *testing.T) {
	assert.True(t, truthy(json.RawMessage(`1e400`)))
	assert.True(t, truthy(json.RawMessage(`-1e400`)))
	assert.True(t, truthy(json.RawMessage(`1`)))
	assert.True(t, truthy(json.RawMessage(`-3`)))
	assert.True(t, truthy(json.RawMessage(`"0"`)))
	assert.True(t, truthy(json.RawMessage(`[]`)))
	assert.True(t, truthy(json.RawMessage(`{}`)))
	assert.True(t, truthy(json.RawMessage(`true`)))
	assert.False(t, truthy(json.RawMessage(`0.0`)))
	assert.False(t, truthy(nil))
}
