package engine

import "fmt"

// TranslationError is returned when a rule fails on a field.
type TranslationError struct {
	Engine string // Rule set name (e.g., "hep")
	Rule   string // Rule name
	Key    string // Source key (e.g., "773__")
	Value  any    // The offending field occurrence
	Err    error  // Underlying cause
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("%s: rule %s failed on %s (%v): %v", e.Engine, e.Rule, e.Key, e.Value, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}
