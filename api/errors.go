package api

import "fmt"

// NotSupportedError reports a record kind that is recognised but refused.
type NotSupportedError struct {
	Kind string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s records are not supported", e.Kind)
}

// NotImplementedError reports a JSON schema with no MARC rules.
type NotImplementedError struct {
	Schema string
}

func (e *NotImplementedError) Error() string {
	if e.Schema == "" {
		return "record has no $schema"
	}
	return fmt.Sprintf("no MARC rules for schema %q", e.Schema)
}
