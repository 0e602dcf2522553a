package generation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Parse recovers a Generated value from raw provider text. It accepts code
// fences and prose around the JSON object and ignores unknown fields. A field
// whose shape does not match is dropped on its own so its siblings survive;
// text without a complete JSON object yields ErrInvalidJSON.
func Parse(raw string) (*Generated, error) {
	body, ok := extractObject(raw)
	if !ok {
		return nil, ErrInvalidJSON
	}
	var sections map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	g := &Generated{}
	decodeLenient([]byte(body), reflect.ValueOf(g).Elem(), "")
	return g, nil
}

// Empty reports whether g carries none of the document sections.
func (g *Generated) Empty() bool {
	return g == nil || (g.RiskScores == nil && g.EUAIActClassification == nil &&
		g.ReferenceArchitecture == nil && g.QuickStartGuide == nil &&
		len(g.RecommendationsByPillar) == 0 && len(g.Recommendations) == 0 && len(g.NextSteps) == 0)
}

// extractObject returns the first balanced top-level JSON object in s,
// skipping braces inside strings.
func extractObject(s string) (string, bool) {
	s = stripFences(s)
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "```json"); i >= 0 {
			s = s[i:]
		} else {
			return s
		}
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}
