// Package format defines the interface for record format plugins used by
// the command line. Records travel between plugins in their JSON form.
package format

import "io"

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "marcxml", "json")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Parser is a format that can read records.
type Parser interface {
	Format

	// Parse reads input and returns JSON records.
	Parse(r io.Reader, opts *ParseOptions) ([]map[string]any, error)
}

// Serializer is a format that can write records.
type Serializer interface {
	Format

	// Serialize writes JSON records to the output.
	Serialize(w io.Writer, records []map[string]any, opts *SerializeOptions) error
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// SourceName is an identifier for the source (for error messages)
	SourceName string

	// Kind forces the entity rules used for MARC input. Empty means detect
	// from the 980 markers.
	Kind string
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// Pretty enables pretty-printing (for JSON formats)
	Pretty bool
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{}
}
