// Package engine dispatches the fields of a source record to translation
// rules and accumulates their results into a target record.
//
// A rule set is an Overdo value built once at package initialisation and
// read-only afterwards; Do holds no state between calls, so one rule set may
// translate many records concurrently.
package engine

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"reflect"
	"runtime"
	"slices"
	"strings"
)

// Rule transforms one occurrence of a source field. acc is the record being
// built; rules may read it and write sibling keys into it. The returned
// value is stored under the rule's target key. Returning Skip or nil stores
// nothing.
type Rule[V any] func(acc map[string]any, key string, value V) (any, error)

type skipKey struct{}

// Skip tells the engine not to write the rule's target key. Side effects on
// the accumulator are kept.
var Skip any = skipKey{}

// IsSkip reports whether v is the Skip sentinel.
func IsSkip(v any) bool {
	_, ok := v.(skipKey)
	return ok
}

type entry[V any] struct {
	name    string
	target  string
	pattern pattern
	fn      Rule[V]
}

// Overdo is a registry of rules for one (entity, direction) pair.
type Overdo[V any] struct {
	name  string
	rules []entry[V]
}

// New creates an empty rule set.
func New[V any](name string) *Overdo[V] {
	return &Overdo[V]{name: name}
}

// Name returns the rule set name.
func (o *Overdo[V]) Name() string {
	return o.name
}

// Over registers fn under target for each pattern. Patterns are compiled
// here; an invalid pattern is a programming error and panics.
func (o *Overdo[V]) Over(target string, fn Rule[V], patterns ...string) {
	if len(patterns) == 0 {
		panic(fmt.Sprintf("engine %s: rule for %q has no pattern", o.name, target))
	}
	name := ruleName(fn, target)
	for _, src := range patterns {
		p, err := compile(src)
		if err != nil {
			panic(fmt.Sprintf("engine %s: %v", o.name, err))
		}
		o.rules = append(o.rules, entry[V]{name: name, target: target, pattern: p, fn: fn})
	}
}

// Each registers fn so that every occurrence appends its result to the list
// under target.
func (o *Overdo[V]) Each(target string, fn Rule[V], patterns ...string) {
	o.Over(target, ForEachValue(target, fn), patterns...)
}

// Flat registers fn so that every element of the list it returns is
// appended to the list under target.
func (o *Overdo[V]) Flat(target string, fn Rule[V], patterns ...string) {
	o.Over(target, Flatten(target, fn), patterns...)
}

// Rules returns the number of registered (rule, pattern) pairs.
func (o *Overdo[V]) Rules() int {
	return len(o.rules)
}

// Match reports whether any rule handles key.
func (o *Overdo[V]) Match(key string) bool {
	return slices.ContainsFunc(o.rules, func(e entry[V]) bool { return e.pattern.match(key) })
}

// Do runs the rules over the source items in order and returns the
// accumulated record. Keys no rule matches are dropped. The first failing
// rule aborts the translation with a *TranslationError and no record.
func (o *Overdo[V]) Do(items iter.Seq2[string, V]) (map[string]any, error) {
	acc := make(map[string]any)
	for key, value := range items {
		matched := false
		for i := range o.rules {
			e := &o.rules[i]
			if !e.pattern.match(key) {
				continue
			}
			matched = true
			out, err := o.invoke(e, acc, key, value)
			if err != nil {
				slog.Debug("rule failed", "engine", o.name, "rule", e.name, "key", key, "err", err)
				return nil, err
			}
			if out == nil || IsSkip(out) {
				continue
			}
			acc[e.target] = out
		}
		if !matched {
			slog.Debug("ignoring field", "engine", o.name, "key", key)
		}
	}
	return acc, nil
}

func (o *Overdo[V]) invoke(e *entry[V], acc map[string]any, key string, value V) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TranslationError{Engine: o.name, Rule: e.name, Key: key, Value: value, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	out, err = e.fn(acc, key, value)
	if err != nil {
		var te *TranslationError
		if errors.As(err, &te) {
			return nil, err
		}
		return nil, &TranslationError{Engine: o.name, Rule: e.name, Key: key, Value: value, Err: err}
	}
	return out, nil
}

// ruleName derives a readable name from the function, falling back to the
// target for closures.
func ruleName(fn any, target string) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return target
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if strings.Contains(name, ".func") {
		return target
	}
	return name
}

// Sorted yields the entries of a JSON record in key order; the reverse
// direction dispatches over it.
func Sorted(record map[string]any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range slices.Sorted(maps.Keys(record)) {
			if !yield(k, record[k]) {
				return
			}
		}
	}
}
