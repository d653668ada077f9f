package common

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/schema"
)

// Entity returns the registered entity called name. Rule packages call it
// while building their rule sets, so a missing entry panics.
func Entity(name string) *schema.Entity {
	e, ok := schema.Default.Get(name)
	if !ok {
		panic(fmt.Sprintf("common: entity %q not registered", name))
	}
	return e
}

// Filters is the pipeline shared by the record kinds that are only
// translated from MARC.
func Filters(e *schema.Entity) engine.Pipeline[*marc.Record] {
	return engine.Pipeline[*marc.Record]{
		engine.AddSchema[*marc.Record](e.Schema),
		engine.AddCollection[*marc.Record](e.Collection),
		engine.StripEmptyValues[*marc.Record](),
		engine.DedupeAllLists[*marc.Record](e.DedupeExempt...),
	}
}

// PublicNotes reads the a subfields of a 500 as notes sourced from 9.
func PublicNotes(_ map[string]any, _ string, f marc.Field) (any, error) {
	source := f.Get("9")
	var notes []any
	for _, a := range f.GetAll("a") {
		notes = append(notes, map[string]any{"value": a, "source": source})
	}
	return notes, nil
}

// InspireCategories reads the INSPIRE terms of a 65017. Unknown terms become
// Other; fields from other schemes produce nothing.
func InspireCategories(_ map[string]any, _ string, f marc.Field) (any, error) {
	if !strings.EqualFold(f.Get("2"), "INSPIRE") {
		return nil, nil
	}
	var out []any
	for _, a := range f.GetAll("a") {
		term, ok := mapping.InspireCategory(a)
		if !ok {
			term = "Other"
		}
		out = append(out, map[string]any{"term": term})
	}
	return out, nil
}

// Keywords reads a 6531 as free keywords.
func Keywords(_ map[string]any, _ string, f marc.Field) (any, error) {
	source := f.Get("9")
	var out []any
	for _, a := range f.GetAll("a") {
		out = append(out, map[string]any{"value": a, "source": source})
	}
	return out, nil
}

// Description joins the a subfields of a 520 and sanitises the markup.
func Description(_ map[string]any, _ string, f marc.Field) (any, error) {
	d := helpers.SanitizeHTML(strings.Join(f.GetAll("a"), " "))
	if d == "" {
		return engine.Skip, nil
	}
	return d, nil
}

// Date reads one subfield as a date, dropping what does not parse.
func Date(f marc.Field, code string) string {
	return helpers.NormalizeDateAggressively(f.Get(code))
}
