package marc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// FromMarcJSON converts the keyed form produced by the reverse rules into a
// record. Keys are a tag optionally followed by up to two indicators ('_' or
// ' ' for blank). A control field key maps to a scalar; a data field key
// maps to a subfield map or a list of them, where a subfield value may be a
// scalar or a list of scalars. Empty values are dropped and the resulting
// record is sorted.
func FromMarcJSON(m map[string]any) (*Record, error) {
	rec := &Record{}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if len(key) < 3 || len(key) > 5 {
			return nil, fmt.Errorf("marcjson: invalid field key %q", key)
		}
		tag := key[:3]
		ind1, ind2 := string(Blank), string(Blank)
		if len(key) > 3 {
			ind1 = indicatorKey(key[3:4])
		}
		if len(key) > 4 {
			ind2 = indicatorKey(key[4:5])
		}

		if strings.HasPrefix(tag, "00") {
			for _, v := range asList(m[key]) {
				if s := scalar(v); s != "" {
					rec.Append(Field{Tag: tag, Value: s})
				}
			}
			continue
		}

		for _, item := range asList(m[key]) {
			group, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("marcjson: field %s: expected subfield map, got %T", key, item)
			}
			f := Field{Tag: tag, Ind1: ind1, Ind2: ind2}
			codes := make([]string, 0, len(group))
			for c := range group {
				codes = append(codes, c)
			}
			slices.Sort(codes)
			for _, code := range codes {
				for _, v := range asList(group[code]) {
					f.Add(code, scalar(v))
				}
			}
			if len(f.Subfields) > 0 {
				rec.Append(f)
			}
		}
	}
	rec.Sort()
	return rec, nil
}

// ToMarcJSON converts a record into the keyed form accepted by FromMarcJSON.
// Repeated subfield codes become lists.
func ToMarcJSON(r *Record) map[string]any {
	out := make(map[string]any)
	for key, f := range r.Items() {
		if f.IsControl() {
			out[key] = f.Value
			continue
		}
		group := make(map[string]any)
		for _, sf := range f.Subfields {
			switch prev := group[sf.Code].(type) {
			case nil:
				group[sf.Code] = sf.Value
			case string:
				group[sf.Code] = []any{prev, sf.Value}
			case []any:
				group[sf.Code] = append(prev, sf.Value)
			}
		}
		list, _ := out[key].([]any)
		out[key] = append(list, group)
	}
	return out
}

func asList(v any) []any {
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
		for i, g := range val {
			out[i] = g
		}
		return out
	default:
		return []any{v}
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(val)
	}
}
