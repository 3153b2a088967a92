package validation

import (
	"encoding/json"
	"math"
)

// configString reads a string-valued config key; absent or non-string
// yields the empty string.
func configString(cfg map[string]any, key string) string {
	if s, ok := cfg[key].(string); ok {
		return s
	}
	return ""
}

// configNumber reads a numeric config key. Config maps come from both
// authored defaults (Go ints) and decoded JSON (float64, json.Number),
// so every numeric representation is accepted. The second return is
// false when the key is absent; the third is false when the value is
// present but not numeric.
func configNumber(cfg map[string]any, key string) (float64, bool, bool) {
	v, present := cfg[key]
	if !present {
		return 0, false, true
	}
	switch n := v.(type) {
	case int:
		return float64(n), true, true
	case int32:
		return float64(n), true, true
	case int64:
		return float64(n), true, true
	case float32:
		return float64(n), true, true
	case float64:
		return n, true, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, true, false
		}
		return f, true, true
	default:
		return 0, true, false
	}
}

// isWhole reports whether f has no fractional part.
func isWhole(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f)
}
