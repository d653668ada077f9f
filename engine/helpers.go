package engine

import "github.com/lehigh-university-libraries/inspire-dojson/value"

// ForEachValue wraps fn so its result is appended to the list under target
// instead of replacing it. A nil or Skip result appends nothing.
func ForEachValue[V any](target string, fn Rule[V]) Rule[V] {
	return func(acc map[string]any, key string, v V) (any, error) {
		out, err := fn(acc, key, v)
		if err != nil {
			return nil, err
		}
		if out == nil || IsSkip(out) {
			return Skip, nil
		}
		return append(value.List(acc[target]), out), nil
	}
}

// Flatten wraps fn so each element of the list it returns is appended to
// the list under target.
func Flatten[V any](target string, fn Rule[V]) Rule[V] {
	return func(acc map[string]any, key string, v V) (any, error) {
		out, err := fn(acc, key, v)
		if err != nil {
			return nil, err
		}
		if out == nil || IsSkip(out) {
			return Skip, nil
		}
		items := value.List(out)
		if len(items) == 0 {
			return Skip, nil
		}
		return append(value.List(acc[target]), items...), nil
	}
}

// Append adds values to the list under key in acc, skipping nils.
func Append(acc map[string]any, key string, values ...any) {
	list := value.List(acc[key])
	for _, v := range values {
		if v != nil {
			list = append(list, v)
		}
	}
	if len(list) > 0 {
		acc[key] = list
	}
}

// SetDefault stores v under key unless the key already holds a value.
func SetDefault(acc map[string]any, key string, v any) {
	if _, ok := acc[key]; !ok {
		acc[key] = v
	}
}
