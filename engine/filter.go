package engine

import (
	"iter"
	"slices"

	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

// Filter post-processes a translated record. src is the record the rules
// read. Filters must be idempotent.
type Filter[S any] func(out map[string]any, src S) (map[string]any, error)

// Pipeline runs filters in order.
type Pipeline[S any] []Filter[S]

// Apply runs every filter, stopping at the first error.
func (p Pipeline[S]) Apply(out map[string]any, src S) (map[string]any, error) {
	var err error
	for _, f := range p {
		out, err = f(out, src)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = make(map[string]any)
		}
	}
	return out, nil
}

// AddSchema sets $schema to the canonical URL of the named schema.
func AddSchema[S any](stem string) Filter[S] {
	return func(out map[string]any, _ S) (map[string]any, error) {
		out["$schema"] = helpers.SchemaURL(stem)
		return out, nil
	}
}

// AddCollection appends name to _collections when absent.
func AddCollection[S any](name string) Filter[S] {
	return func(out map[string]any, _ S) (map[string]any, error) {
		colls := value.List(out["_collections"])
		if !slices.ContainsFunc(colls, func(c any) bool { return value.Text(c) == name }) {
			colls = append(colls, name)
		}
		out["_collections"] = colls
		return out, nil
	}
}

// DedupeAllLists removes repeated list elements everywhere except under the
// exempt top-level keys.
func DedupeAllLists[S any](exempt ...string) Filter[S] {
	return func(out map[string]any, _ S) (map[string]any, error) {
		m, _ := helpers.DedupeAllLists(out, exempt...).(map[string]any)
		return m, nil
	}
}

// StripEmptyValues removes empty strings, nil and empty containers.
func StripEmptyValues[S any]() Filter[S] {
	return func(out map[string]any, _ S) (map[string]any, error) {
		m, _ := helpers.StripEmptyValues(out).(map[string]any)
		if m == nil {
			m = make(map[string]any)
		}
		return m, nil
	}
}

// Translator couples a rule set with the filters run after it.
type Translator[V, S any] struct {
	Rules   *Overdo[V]
	Filters Pipeline[S]
}

// Translate dispatches items through the rules and filters the result.
func (t *Translator[V, S]) Translate(items iter.Seq2[string, V], src S) (map[string]any, error) {
	out, err := t.Rules.Do(items)
	if err != nil {
		return nil, err
	}
	return t.Filters.Apply(out, src)
}
