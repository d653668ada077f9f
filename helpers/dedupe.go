package helpers

import (
	"fmt"
	"reflect"
	"slices"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Lists shorter than this are deduplicated by pairwise comparison; longer
// ones by hashing a canonical encoding of each element.
const squaredDedupeLen = 10

// DedupeList removes repeated elements keeping the first occurrence.
func DedupeList(list []any) []any {
	if len(list) < squaredDedupeLen {
		return dedupeByEquality(list)
	}
	return dedupeByKey(list)
}

func dedupeByEquality(list []any) []any {
	out := make([]any, 0, len(list))
	for _, v := range list {
		if !slices.ContainsFunc(out, func(o any) bool { return Equal(o, v) }) {
			out = append(out, v)
		}
	}
	return out
}

func dedupeByKey(list []any) []any {
	seen := make(map[string]struct{}, len(list))
	out := make([]any, 0, len(list))
	for _, v := range list {
		k := canonicalKey(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

// canonicalKey encodes v as a deterministic protobuf Struct value so that
// maps with the same content hash alike regardless of key order.
func canonicalKey(v any) string {
	pv, err := structpb.NewValue(normalizeForProto(v))
	if err == nil {
		b, err := proto.MarshalOptions{Deterministic: true}.Marshal(pv)
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("%T:%#v", v, v)
}

// normalizeForProto converts the container types structpb does not accept.
func normalizeForProto(v any) any {
	switch val := v.(type) {
	case []map[string]any:
		out := make([]any, len(val))
		for i, m := range val {
			out[i] = normalizeForProto(m)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = normalizeForProto(x)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, x := range val {
			out[k] = normalizeForProto(x)
		}
		return out
	}
	return v
}

// DedupeAllLists walks a record removing repeated elements from every list.
// Top-level keys named in exempt are left untouched.
func DedupeAllLists(v any, exempt ...string) any {
	if m, ok := v.(map[string]any); ok {
		out := make(map[string]any, len(m))
		for k, x := range m {
			if slices.Contains(exempt, k) {
				out[k] = x
				continue
			}
			out[k] = dedupeAll(x)
		}
		return out
	}
	return dedupeAll(v)
}

func dedupeAll(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, x := range val {
			out[k] = dedupeAll(x)
		}
		return out
	case []any:
		items := make([]any, len(val))
		for i, x := range val {
			items[i] = dedupeAll(x)
		}
		return DedupeList(items)
	case []string, []map[string]any:
		return dedupeAll(normalizeForProto(val))
	}
	return v
}

// StripEmptyValues removes nil, empty strings and empty containers at any
// depth, dropping containers that become empty. Zero numbers and false are
// kept. The result is nil when nothing is left.
func StripEmptyValues(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, x := range val {
			if s := StripEmptyValues(x); s != nil {
				out[k] = s
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, x := range val {
			if s := StripEmptyValues(x); s != nil {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []string:
		out := make([]any, 0, len(val))
		for _, s := range val {
			if s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []map[string]any:
		items := make([]any, len(val))
		for i, m := range val {
			items[i] = m
		}
		return StripEmptyValues(items)
	}
	return v
}

// Equal compares decoded JSON values, treating all numeric types alike.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
