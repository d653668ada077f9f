// Package marcjson provides a write-only format plugin showing the keyed
// MARC produced by the reverse rules, before it becomes MARCXML.
package marcjson

import (
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/inspire-dojson/api"
	"github.com/lehigh-university-libraries/inspire-dojson/format"
	"github.com/lehigh-university-libraries/inspire-dojson/format/jsonrecord"
)

// Format implements the MARC-JSON format.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "marcjson"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "MARC fields keyed by tag and indicators, as JSON"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return nil
}

// CanParse is false; the format is write-only.
func (f *Format) CanParse([]byte) bool {
	return false
}

// Serialize runs the reverse rules and writes their output as JSON.
func (f *Format) Serialize(w io.Writer, records []map[string]any, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}
	out := make([]map[string]any, 0, len(records))
	for i, rec := range records {
		m, err := api.RecordToMarcJSON(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, m)
	}
	return jsonrecord.Encode(w, out, opts.Pretty)
}

func init() {
	format.Register(&Format{})
}
