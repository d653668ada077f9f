// Package api is the entry point of the translator. It picks the rule set
// for a record, runs it and serialises the result.
package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/cds"
	"github.com/lehigh-university-libraries/inspire-dojson/conferences"
	"github.com/lehigh-university-libraries/inspire-dojson/data"
	"github.com/lehigh-university-libraries/inspire-dojson/experiments"
	"github.com/lehigh-university-libraries/inspire-dojson/hep"
	"github.com/lehigh-university-libraries/inspire-dojson/hepnames"
	"github.com/lehigh-university-libraries/inspire-dojson/institutions"
	"github.com/lehigh-university-libraries/inspire-dojson/jobs"
	"github.com/lehigh-university-libraries/inspire-dojson/journals"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/schema"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

type forwardFunc func(*marc.Record) (map[string]any, error)

type reverseFunc func(map[string]any) (map[string]any, error)

// forwardRules is keyed by entity name. Jobs are refused by Detect and only
// reachable through TranslateAs.
var forwardRules = map[string]forwardFunc{
	"conferences":  conferences.Translate,
	"data":         data.Translate,
	"experiments":  experiments.Translate,
	"hep":          hep.Translate,
	"hepnames":     hepnames.Translate,
	"institutions": institutions.Translate,
	"jobs":         jobs.Translate,
	"journals":     journals.Translate,
}

// reverseRules is keyed by entity name.
var reverseRules = map[string]reverseFunc{
	"hep":      hep.TranslateReverse,
	"hepnames": hepnames.TranslateReverse,
}

// MarcxmlToRecord translates the first record of a MARCXML document.
func MarcxmlToRecord(doc []byte) (map[string]any, error) {
	rec, err := marc.ParseRecord(doc)
	if err != nil {
		return nil, err
	}
	return Translate(rec)
}

// MarcxmlToRecords translates every record of a MARCXML document. The first
// failure stops the run.
func MarcxmlToRecords(doc []byte) ([]map[string]any, error) {
	return MarcxmlToRecordsAs("", doc)
}

// MarcxmlToRecordsAs is MarcxmlToRecords with the entity forced to name.
// An empty name detects the entity per record.
func MarcxmlToRecordsAs(name string, doc []byte) ([]map[string]any, error) {
	recs, err := marc.ParseRecords(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(recs))
	for i, rec := range recs {
		var r map[string]any
		if name == "" {
			r, err = Translate(rec)
		} else {
			r, err = TranslateAs(name, rec)
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Translate picks the entity from the record's 980__a markers and runs its
// rules.
func Translate(rec *marc.Record) (map[string]any, error) {
	e, err := Detect(rec)
	if err != nil {
		return nil, err
	}
	fn, ok := forwardRules[e.Name]
	if !ok {
		return nil, &NotSupportedError{Kind: e.Name}
	}
	return fn(rec)
}

// TranslateAs runs the rules of the named entity without looking at the
// record's markers.
func TranslateAs(name string, rec *marc.Record) (map[string]any, error) {
	fn, ok := forwardRules[name]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q", name)
	}
	return fn(rec)
}

// Detect returns the entity a MARC record belongs to.
func Detect(rec *marc.Record) (*schema.Entity, error) {
	var markers []string
	for _, a := range rec.Values("980__", "a") {
		markers = append(markers, strings.ToLower(strings.TrimSpace(a)))
	}
	e := schema.Default.Detect(markers)
	if e == nil {
		return nil, fmt.Errorf("no entity for markers %v", markers)
	}
	slog.Debug("detected entity", "entity", e.Name, "markers", markers)
	if e.Refused {
		return nil, &NotSupportedError{Kind: e.Name}
	}
	return e, nil
}

// CDSMarcxmlToRecord translates a CDS record into a literature record.
func CDSMarcxmlToRecord(doc []byte) (map[string]any, error) {
	rec, err := marc.ParseRecord(doc)
	if err != nil {
		return nil, err
	}
	return TranslateCDS(rec)
}

// TranslateCDS runs a parsed CDS record through the crosswalk and the
// literature rules.
func TranslateCDS(rec *marc.Record) (map[string]any, error) {
	hepRec, err := cds.Translate(rec)
	if err != nil {
		return nil, err
	}
	return hep.Translate(hepRec)
}

// RecordToMarcJSON runs the reverse rules chosen by $schema.
func RecordToMarcJSON(rec map[string]any) (map[string]any, error) {
	stem := schema.Stem(value.Text(rec["$schema"]))
	e, ok := schema.Default.BySchema(stem)
	if !ok || !e.Reverse {
		return nil, &NotImplementedError{Schema: stem}
	}
	fn, ok := reverseRules[e.Name]
	if !ok {
		return nil, &NotImplementedError{Schema: stem}
	}
	return fn(rec)
}

// RecordToMarc converts a JSON record into a MARC record.
func RecordToMarc(rec map[string]any) (*marc.Record, error) {
	out, err := RecordToMarcJSON(rec)
	if err != nil {
		return nil, err
	}
	return marc.FromMarcJSON(out)
}

// RecordToMarcxml serialises a JSON record as MARCXML.
func RecordToMarcxml(rec map[string]any) ([]byte, error) {
	m, err := RecordToMarc(rec)
	if err != nil {
		return nil, err
	}
	return marc.Marshal(m), nil
}
