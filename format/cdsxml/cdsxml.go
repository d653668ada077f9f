// Package cdsxml provides a read-only format plugin for CERN Document
// Server MARCXML.
package cdsxml

import (
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/inspire-dojson/api"
	"github.com/lehigh-university-libraries/inspire-dojson/format"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

// Format implements the CDS MARCXML format.
type Format struct{}

var (
	_ format.Format = (*Format)(nil)
	_ format.Parser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "cds"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "CERN Document Server MARCXML, read as literature"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return nil
}

// CanParse is always false: CDS and INSPIRE MARCXML look the same, so the
// format has to be asked for by name.
func (f *Format) CanParse([]byte) bool {
	return false
}

// Parse translates every record of a CDS MARCXML document.
func (f *Format) Parse(r io.Reader, _ *format.ParseOptions) ([]map[string]any, error) {
	recs, err := marc.ParseRecords(r)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(recs))
	for i, rec := range recs {
		m, err := api.TranslateCDS(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func init() {
	format.Register(&Format{})
}
