// Package breakdown builds the categorized cost/valuation view from HESH
// warehouse rows. The warehouse embeds the cost detail as a Python-literal
// serialized map (single quotes, None/True/False/nan tokens), so decoding is
// a token-normalization pass followed by a regular JSON parse.
package breakdown

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// DecodeError is a typed decode failure. Callers keep the user-facing
// behavior graceful (a null breakdown), but the failure is surfaced
// distinctly in logs rather than swallowed.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cost detail decode failed (%s): %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Token table for Python-literal → JSON normalization. Word boundaries keep
// substrings like "Nonexistent" intact.
var (
	reNone  = regexp.MustCompile(`\bNone\b`)
	reNan   = regexp.MustCompile(`\bnan\b`)
	reTrue  = regexp.MustCompile(`\bTrue\b`)
	reFalse = regexp.MustCompile(`\bFalse\b`)
)

func normalizeTokens(raw string) string {
	s := raw
	// Pre-escape any double quotes so the quote swap below cannot produce
	// nested unescaped quotes.
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "'", `"`)
	s = reNone.ReplaceAllString(s, "null")
	s = reNan.ReplaceAllString(s, "null")
	s = reTrue.ReplaceAllString(s, "true")
	s = reFalse.ReplaceAllString(s, "false")
	return s
}

// tuplesToArrays converts parenthesis-tuples to JSON arrays. Only applied on
// the retry pass so well-formed payloads are not touched.
func tuplesToArrays(s string) string {
	s = strings.ReplaceAll(s, "(", "[")
	return strings.ReplaceAll(s, ")", "]")
}

// Decode parses a serialized Python mapping into a structured map. It first
// normalizes the token table and parses as JSON; on failure it retries with
// tuples converted to arrays; on a second failure it returns a DecodeError.
func Decode(raw string) (map[string]any, error) {
	normalized := normalizeTokens(raw)

	var out map[string]any
	if err := json.Unmarshal([]byte(normalized), &out); err == nil {
		return out, nil
	}

	retried := tuplesToArrays(normalized)
	if err := json.Unmarshal([]byte(retried), &out); err != nil {
		return nil, &DecodeError{Reason: "after tuple normalization", Err: err}
	}
	return out, nil
}

// mapAt walks one level into a decoded map, returning nil when the key is
// missing or not a map.
func mapAt(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

// numAt reads a monetary field from a decoded map as integer currency units.
// Absent, null and non-numeric values all default to 0.
func numAt(m map[string]any, key string) int64 {
	if m == nil {
		return 0
	}
	f, ok := m[key].(float64)
	if !ok || f != f { // NaN guard
		return 0
	}
	return int64(f)
}
