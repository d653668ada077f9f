package api

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/schema"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

// ValidationError is one invariant a translated record breaks.
type ValidationError struct {
	Field   string // Path of the offending value, e.g. "titles[0].title"
	Code    string // Error code, e.g. "required", "duplicate"
	Message string // Human-readable message
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult collects the errors found in one record.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message, or nil if valid.
func (r *ValidationResult) Error() error {
	if r.IsValid() {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

func (r *ValidationResult) add(field, code, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the structural guarantees every translated record gives:
// a known schema, a collection, the literature defaults, unique attachment
// keys, deduplicated lists, no empty values and well-formed record links.
func Validate(rec map[string]any) *ValidationResult {
	result := &ValidationResult{}

	stem := schema.Stem(value.Text(rec["$schema"]))
	e, ok := schema.Default.BySchema(stem)
	switch {
	case stem == "":
		result.add("$schema", "required", "$schema is required")
	case !ok:
		result.add("$schema", "unknown_schema", "unknown schema %q", stem)
	}

	if len(value.Strings(rec["_collections"])) == 0 {
		result.add("_collections", "required", "at least one collection is required")
	}

	if ok && e.Name == "hep" {
		if len(value.Strings(rec["document_type"])) == 0 {
			result.add("document_type", "required", "document_type is required")
		}
		if _, set := rec["curated"]; !set {
			result.add("curated", "required", "curated is required")
		}
		uniqueKeys(result, rec, "documents")
		uniqueKeys(result, rec, "figures")
	}

	var exempt []string
	if ok {
		exempt = e.DedupeExempt
	}
	for _, k := range slices.Sorted(maps.Keys(rec)) {
		walk(result, k, rec[k], !slices.Contains(exempt, k))
	}
	return result
}

func uniqueKeys(result *ValidationResult, rec map[string]any, list string) {
	seen := make(map[string]int)
	for i, item := range value.Maps(rec[list]) {
		key := value.Text(item["key"])
		if j, dup := seen[key]; dup {
			result.add(fmt.Sprintf("%s[%d].key", list, i), "duplicate", "key %q already used by %s[%d]", key, list, j)
			continue
		}
		seen[key] = i
	}
}

// walk descends into v reporting empty values, repeated list elements and
// record links whose last segment is not a positive integer.
func walk(result *ValidationResult, path string, v any, dedupe bool) {
	switch val := v.(type) {
	case nil:
		result.add(path, "empty", "null value")
	case string:
		if val == "" {
			result.add(path, "empty", "empty string")
		}
		if strings.HasSuffix(path, ".$ref") || path == "$ref" {
			checkRef(result, path, val)
		}
	case map[string]any:
		if len(val) == 0 {
			result.add(path, "empty", "empty object")
		}
		for _, k := range slices.Sorted(maps.Keys(val)) {
			walk(result, path+"."+k, val[k], dedupe)
		}
	case []any:
		if len(val) == 0 {
			result.add(path, "empty", "empty list")
		}
		for i, item := range val {
			if dedupe && slices.ContainsFunc(val[:i], func(prev any) bool { return helpers.Equal(prev, item) }) {
				result.add(fmt.Sprintf("%s[%d]", path, i), "duplicate", "repeats an earlier element")
			}
			walk(result, fmt.Sprintf("%s[%d]", path, i), item, dedupe)
		}
	}
}

func checkRef(result *ValidationResult, path, ref string) {
	tail := ref[strings.LastIndex(ref, "/")+1:]
	if n, err := strconv.Atoi(tail); err != nil || n <= 0 {
		result.add(path, "invalid_ref", "%q does not end in a record id", ref)
	}
}
