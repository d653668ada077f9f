// Package experiments translates experiment records from MARC.
package experiments

import (
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/common"
	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

var forward = &engine.Translator[marc.Field, *marc.Record]{
	Rules:   newRules(),
	Filters: common.Filters(common.Entity("experiments")),
}

// Translate converts a MARC record into an experiment record.
func Translate(rec *marc.Record) (map[string]any, error) {
	return forward.Translate(rec.Items(), rec)
}

// dateKeys maps the 046 subfields to the experiment's milestones.
var dateKeys = []struct{ code, key string }{
	{"q", "date_proposed"},
	{"r", "date_approved"},
	{"s", "date_started"},
	{"t", "date_completed"},
	{"c", "date_cancelled"},
}

// relations maps 510__w to the relation name.
var relations = map[string]string{
	"a": "predecessor",
	"b": "successor",
	"t": "parent",
}

func newRules() *engine.Overdo[marc.Field] {
	o := engine.New[marc.Field]("experiments")
	common.Forward(o, "experiments")
	o.Over("legacy_name", experiment, "^119")
	o.Over("long_name", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		if a := f.Get("a"); a != "" {
			return a, nil
		}
		return engine.Skip, nil
	}, "^245")
	o.Flat("name_variants", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		return toAny(f.GetAll("a")), nil
	}, "^419")
	o.Over("date_proposed", dates, "^046")
	o.Over("description", common.Description, "^520")
	o.Flat("inspire_categories", common.InspireCategories, "^65017")
	o.Over("collaboration", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		g := f.Get("g")
		if g == "" {
			return engine.Skip, nil
		}
		c := map[string]any{"value": g}
		if r := helpers.GetRecordRef(f.Get("0"), "experiments"); r != nil {
			c["record"] = r
		}
		return c, nil
	}, "^710")
	o.Each("related_records", relatedRecord, "^510")
	o.Flat("public_notes", common.PublicNotes, "^500")
	return o
}

// experiment reads the 119: the legacy name, accelerator and the
// institutions hosting the experiment.
func experiment(acc map[string]any, _ string, f marc.Field) (any, error) {
	if c := f.Get("c"); c != "" {
		acc["accelerator"] = map[string]any{"value": c}
	}
	for _, u := range f.GetAll("u") {
		engine.Append(acc, "institutions", map[string]any{"value": u})
	}
	if a := f.Get("a"); a != "" {
		return a, nil
	}
	return engine.Skip, nil
}

// dates reads the 046. Every milestone but the proposal date is written as a
// side effect.
func dates(acc map[string]any, _ string, f marc.Field) (any, error) {
	var proposed any = engine.Skip
	for _, d := range dateKeys {
		v := common.Date(f, d.code)
		if v == "" {
			continue
		}
		if d.code == "q" {
			proposed = v
			continue
		}
		acc[d.key] = v
	}
	return proposed, nil
}

func relatedRecord(_ map[string]any, _ string, f marc.Field) (any, error) {
	ref := helpers.GetRecordRef(f.Get("0"), "experiments")
	if ref == nil {
		return nil, nil
	}
	rel := map[string]any{"record": ref}
	if r, ok := relations[strings.ToLower(f.Get("w"))]; ok {
		rel["relation"] = r
	} else {
		rel["relation_freetext"] = f.Get("w")
	}
	return rel, nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
