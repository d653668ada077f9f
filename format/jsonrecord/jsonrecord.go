// Package jsonrecord provides a format plugin for INSPIRE JSON records.
package jsonrecord

import (
	"bytes"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/lehigh-university-libraries/inspire-dojson/format"
)

// Format implements the JSON record format.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "json"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "INSPIRE JSON records (one object or an array)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json"}
}

// CanParse returns true for JSON carrying a $schema.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || (peek[0] != '{' && peek[0] != '[') {
		return false
	}
	return bytes.Contains(peek, []byte(`"$schema"`))
}

// Parse reads a single record or an array of records.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var records []map[string]any
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", source(opts), err)
		}
		return records, nil
	}
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source(opts), err)
	}
	return []map[string]any{rec}, nil
}

// Serialize writes records as JSON. A single record is written as an
// object, several as an array.
func (f *Format) Serialize(w io.Writer, records []map[string]any, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}
	return Encode(w, records, opts.Pretty)
}

// Encode writes one value per record set the way Serialize does. Other
// JSON-based plugins share it.
func Encode[T any](w io.Writer, records []T, pretty bool) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if len(records) == 1 {
		return encoder.Encode(records[0])
	}
	return encoder.Encode(records)
}

func source(opts *format.ParseOptions) string {
	if opts == nil || opts.SourceName == "" {
		return "input"
	}
	return opts.SourceName
}

func init() {
	format.Register(&Format{})
}
