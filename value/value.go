// Package value provides loose accessors over decoded JSON records.
//
// Records reach the reverse rules as map[string]any trees produced by a JSON
// decoder or by the forward rules themselves, so a field may hold a string,
// a number of any Go numeric type, a single map where a list is expected,
// or nothing at all. These helpers solve common problems:
//   - Type coercion (string "123" → int)
//   - Null/empty handling
//   - Scalar-or-list normalization
//   - Nested path lookup
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// TEXT VALUES
// =============================================================================

// Text extracts a string from various representations.
// Handles: string, []byte, fmt.Stringer, numeric types, bool, nil
func Text(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		if val == float32(int32(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// TextOr extracts a string with a default for empty/nil values.
func TextOr(v any, defaultVal string) string {
	s := Text(v)
	if s == "" {
		return defaultVal
	}
	return s
}

// Strings normalizes a scalar or list to []string, dropping empty entries.
func Strings(v any) []string {
	var out []string
	for _, item := range List(v) {
		if s := strings.TrimSpace(Text(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// =============================================================================
// NUMERIC VALUES
// =============================================================================

// Int extracts an integer from various representations.
// Handles: int, float64, string ("123"), fmt.Stringer numbers, nil (→ 0)
func Int(v any) int {
	i, _ := IntOK(v)
	return i
}

// IntOK is Int reporting whether the value held an integer.
func IntOK(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case int32:
		return int(val), true
	case float64:
		return int(val), val == float64(int(val))
	case float32:
		return int(val), val == float32(int(val))
	case bool:
		return 0, false
	default:
		i, err := strconv.Atoi(strings.TrimSpace(Text(v)))
		return i, err == nil
	}
}

// IntOr extracts an integer with a default for unparseable values.
func IntOr(v any, defaultVal int) int {
	if i, ok := IntOK(v); ok {
		return i
	}
	return defaultVal
}

// =============================================================================
// BOOLEAN VALUES
// =============================================================================

// Bool extracts a boolean from various representations.
// Handles: bool, numbers (0/1), string ("true"/"false"/"1"/"0"/"yes"/"no"), nil
func Bool(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		s := strings.ToLower(strings.TrimSpace(Text(v)))
		return s == "true" || s == "1" || s == "yes" || s == "on"
	}
}

// IsSet reports whether key is present in m with a boolean-ish value,
// distinguishing an explicit false from a missing key.
func IsSet(m map[string]any, key string) (set, val bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return false, false
	}
	return true, Bool(v)
}

// =============================================================================
// CONTAINERS
// =============================================================================

// List coerces a value to a list: nil gives nil, a list is returned as is,
// anything else is wrapped.
func List(v any) []any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		return val
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, m := range val {
			out[i] = m
		}
		return out
	default:
		return []any{v}
	}
}

// Map returns v as a map, or nil.
func Map(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Maps returns the map elements of a scalar-or-list value.
func Maps(v any) []map[string]any {
	var out []map[string]any
	for _, item := range List(v) {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// Get walks a dotted path through nested maps. A numeric segment indexes a
// list.
func Get(v any, path string) any {
	cur := v
	for seg := range strings.SplitSeq(path, ".") {
		switch c := cur.(type) {
		case map[string]any:
			cur = c[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(c) {
				return nil
			}
			cur = c[i]
		default:
			return nil
		}
	}
	return cur
}

// GetText is Text(Get(v, path)).
func GetText(v any, path string) string {
	return Text(Get(v, path))
}
