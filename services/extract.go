package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"corretor/models"
)

// ErrMalformedResponse marks provider output that could not be turned into an analysis.
var ErrMalformedResponse = errors.New("malformed provider response")

// Argument order matters: the tagged fences must be removed before the bare one.
var fenceReplacer = strings.NewReplacer("```json", "", "```JSON", "", "```", "")

// Analysis is an accepted provider answer. Raw is the JSON object exactly as
// the provider wrote it; Scorecard is a best-effort typed view of the same object.
// Partial is set when some fields of Raw did not fit the typed view.
type Analysis struct {
	Raw       json.RawMessage
	Scorecard models.EssayAnalysis
	Fallback  bool
	Partial   bool
	// PartialErr is the decode error behind Partial.
	PartialErr error
}

// stripCodeFences removes every markdown code fence marker and trims the result.
func stripCodeFences(text string) string {
	return strings.TrimSpace(fenceReplacer.Replace(text))
}

// sliceJSONObject cuts text down to the span between the first '{' and the
// last '}'. Text without such a span is returned unchanged.
func sliceJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return text
	}
	return text[start : end+1]
}

// ParseAnalysis extracts and shape-checks the analysis object in a free-form completion.
func ParseAnalysis(text string) (Analysis, error) {
	candidate := sliceJSONObject(stripCodeFences(text))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return Analysis{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if !truthy(fields["notaGeral"]) {
		return Analysis{}, fmt.Errorf("%w: notaGeral missing or falsy", ErrMalformedResponse)
	}
	if !isArray(fields["competencias"]) {
		return Analysis{}, fmt.Errorf("%w: competencias is not an array", ErrMalformedResponse)
	}

	// Type mismatches (e.g. fractional scores) only leave zero values in the
	// typed view; the raw object is still returned untouched.
	var card models.EssayAnalysis
	typedErr := json.Unmarshal([]byte(candidate), &card)

	return Analysis{
		Raw:        json.RawMessage(candidate),
		Scorecard:  card,
		Partial:    typedErr != nil,
		PartialErr: typedErr,
	}, nil
}

// truthy reports whether a JSON value would pass a JavaScript truthiness test.
func truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", `""`:
		return false
	}
	if v[0] == '-' || (v[0] >= '0' && v[0] <= '9') {
		f, err := strconv.ParseFloat(string(v), 64)
		// Out-of-range literals overflow to ±Inf, which is truthy.
		return errors.Is(err, strconv.ErrRange) || (err == nil && f != 0)
	}
	return true
}

func isArray(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) > 0 && v[0] == '['
}
