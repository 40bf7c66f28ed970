package analyzer

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/thumbforge/pkg/errors"
)

var fenceReplacer = strings.NewReplacer("```json", "", "```JSON", "", "```", "")

// Parse reads an analysis out of model text. Markdown code fences and any
// prose around the outermost JSON object are ignored.
func Parse(text string) (*Analysis, error) {
	clean := strings.TrimSpace(fenceReplacer.Replace(text))
	obj, ok := outermostObject(clean)
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformedResponse, "no JSON object in analyzer response: %s", snippet(clean))
	}
	var a Analysis
	if err := json.Unmarshal([]byte(obj), &a); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedResponse, err, "decode analyzer response")
	}
	return &a, nil
}

// outermostObject returns the span from the first '{' to the brace that
// closes it, skipping braces inside JSON strings.
func outermostObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// snippet shortens s to at most 120 bytes for error messages, cutting on
// a rune boundary.
func snippet(s string) string {
	const n = 120
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
