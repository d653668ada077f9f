// Package marcxml provides a format plugin for INSPIRE MARCXML.
package marcxml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/inspire-dojson/api"
	"github.com/lehigh-university-libraries/inspire-dojson/format"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

// Format implements the MARCXML format.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "marcxml"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "MARCXML records as exported by the legacy INSPIRE system"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml", "marcxml"}
}

// CanParse returns true if the input looks like MARCXML.
func (f *Format) CanParse(peek []byte) bool {
	return bytes.Contains(peek, []byte("<record")) &&
		(bytes.Contains(peek, []byte("<datafield")) || bytes.Contains(peek, []byte("<controlfield")))
}

// Parse translates every record of a MARCXML document.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if opts != nil && opts.Kind != "" {
		return api.MarcxmlToRecordsAs(opts.Kind, data)
	}
	return api.MarcxmlToRecords(data)
}

// Serialize writes records as MARCXML. One record is written as a bare
// <record>, several are wrapped in a <collection>.
func (f *Format) Serialize(w io.Writer, records []map[string]any, _ *format.SerializeOptions) error {
	recs := make([]*marc.Record, 0, len(records))
	for i, rec := range records {
		m, err := api.RecordToMarc(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		recs = append(recs, m)
	}
	var out []byte
	if len(recs) == 1 {
		out = marc.Marshal(recs[0])
	} else {
		out = marc.MarshalCollection(recs)
	}
	_, err := w.Write(out)
	return err
}

func init() {
	format.Register(&Format{})
}
