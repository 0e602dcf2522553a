package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FromJSON decodes a JSON object into a Profile. String values are kept,
// numbers and booleans are formatted, lists are joined with ", " and nested
// objects are kept as compact JSON.
func FromJSON(data []byte) (Profile, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return FromMap(raw), nil
}

// FromMap converts decoded JSON values into a Profile. Null values are dropped.
func FromMap(raw map[string]any) Profile {
	p := make(Profile, len(raw))
	for k, v := range raw {
		key := strings.TrimSpace(k)
		if key == "" || v == nil {
			continue
		}
		p[key] = stringify(v)
	}
	return p
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
