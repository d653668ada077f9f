// Package common holds the rules every record kind shares: bookkeeping
// control fields, links to merged and deleted records, private notes, URLs
// and the deleted flag.
package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

// Forward registers the shared MARC to JSON rules. endpoint is used for
// links to other records of the same kind.
func Forward(o *engine.Overdo[marc.Field], endpoint string) {
	o.Over("control_number", controlNumber, "^001")
	o.Over("legacy_version", legacyVersion, "^005")
	o.Over("legacy_creation_date", legacyCreationDate, "^961")
	o.Over("new_record", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		return helpers.GetRecordRef(f.Get("d"), endpoint), nil
	}, "^970")
	o.Flat("deleted_records", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		var refs []any
		for _, id := range f.GetAll("a") {
			if ref := helpers.GetRecordRef(id, endpoint); ref != nil {
				refs = append(refs, ref)
			}
		}
		return refs, nil
	}, "^981")
	o.Flat("_private_notes", PrivateNotes, "^595__")
	o.Flat("urls", URLs, "^8564")
	o.Over("deleted", deleted, "^980")
}

func controlNumber(_ map[string]any, _ string, f marc.Field) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(f.Value))
	if err != nil {
		return nil, fmt.Errorf("control number %q: %w", f.Value, err)
	}
	return n, nil
}

func legacyVersion(_ map[string]any, _ string, f marc.Field) (any, error) {
	return f.Value, nil
}

// legacyCreationDate reads 961__x. 961__c doubles as the legacy version for
// records that lost their 005.
func legacyCreationDate(acc map[string]any, _ string, f marc.Field) (any, error) {
	if c := f.Get("c"); c != "" {
		engine.SetDefault(acc, "legacy_version", c)
	}
	x := f.Get("x")
	if x == "" {
		return engine.Skip, nil
	}
	return helpers.NormalizeDateAggressively(x), nil
}

// PrivateNotes reads the a subfields of a 595 as notes sourced from 9.
// Fields with no a produce nothing.
func PrivateNotes(_ map[string]any, _ string, f marc.Field) (any, error) {
	source := f.Get("9")
	var notes []any
	for _, a := range f.GetAll("a") {
		notes = append(notes, map[string]any{"value": a, "source": source})
	}
	return notes, nil
}

// URLs reads an 8564. Links back to the legacy system itself are dropped.
func URLs(_ map[string]any, _ string, f marc.Field) (any, error) {
	description := f.Get("y")
	var urls []any
	for _, u := range f.GetAll("u") {
		if helpers.IsLegacyURL(u) {
			continue
		}
		urls = append(urls, map[string]any{"value": u, "description": description})
	}
	return urls, nil
}

func deleted(_ map[string]any, _ string, f marc.Field) (any, error) {
	for _, c := range f.GetAll("c") {
		if strings.EqualFold(c, "DELETED") {
			return true, nil
		}
	}
	return engine.Skip, nil
}

// Reverse registers the shared JSON to MARC rules.
func Reverse(o *engine.Overdo[any]) {
	o.Flat("001", func(_ map[string]any, _ string, v any) (any, error) {
		return value.Text(v), nil
	}, "^control_number$")
	o.Flat("005", func(_ map[string]any, _ string, v any) (any, error) {
		return value.Text(v), nil
	}, "^legacy_version$")
	o.Flat("961__", func(_ map[string]any, _ string, v any) (any, error) {
		return map[string]any{"x": value.Text(v)}, nil
	}, "^legacy_creation_date$")
	o.Flat("970__", func(_ map[string]any, _ string, v any) (any, error) {
		if sf := recidSubfield("d", v); sf != nil {
			return sf, nil
		}
		return nil, nil
	}, "^new_record$")
	o.Flat("981__", func(_ map[string]any, _ string, v any) (any, error) {
		var out []any
		for _, ref := range value.List(v) {
			if sf := recidSubfield("a", ref); sf != nil {
				out = append(out, sf)
			}
		}
		return out, nil
	}, "^deleted_records$")
	o.Flat("595__", func(_ map[string]any, _ string, v any) (any, error) {
		var out []any
		for _, note := range value.Maps(v) {
			out = append(out, map[string]any{"a": note["value"], "9": note["source"]})
		}
		return out, nil
	}, "^_private_notes$")
	o.Flat("8564_", func(_ map[string]any, _ string, v any) (any, error) {
		var out []any
		for _, u := range value.Maps(v) {
			out = append(out, map[string]any{"u": u["value"], "y": u["description"]})
		}
		return out, nil
	}, "^urls$")
	o.Flat("980__", func(_ map[string]any, _ string, v any) (any, error) {
		if !value.Bool(v) {
			return nil, nil
		}
		return map[string]any{"c": "DELETED"}, nil
	}, "^deleted$")
}

func recidSubfield(code string, ref any) map[string]any {
	id, ok := helpers.GetRecid(ref)
	if !ok {
		return nil
	}
	return map[string]any{code: strconv.Itoa(id)}
}
