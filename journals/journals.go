// Package journals translates journal records from MARC.
package journals

import (
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/common"
	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

var forward = &engine.Translator[marc.Field, *marc.Record]{
	Rules:   newRules(),
	Filters: common.Filters(common.Entity("journals")),
}

// Translate converts a MARC record into a journal record.
func Translate(rec *marc.Record) (map[string]any, error) {
	return forward.Translate(rec.Items(), rec)
}

var media = map[string]string{
	"online":     "online",
	"electronic": "online",
	"print":      "print",
}

func newRules() *engine.Overdo[marc.Field] {
	o := engine.New[marc.Field]("journals")
	common.Forward(o, "journals")
	o.Each("issns", issn, "^022")
	o.Over("journal_title", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		a := f.Get("a")
		if a == "" {
			return engine.Skip, nil
		}
		return map[string]any{"title": a, "subtitle": f.Get("b")}, nil
	}, "^130")
	o.Over("short_title", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		if a := f.Get("a"); a != "" {
			return a, nil
		}
		return engine.Skip, nil
	}, "^711")
	o.Flat("title_variants", allOf("a"), "^730")
	o.Flat("publisher", allOf("b"), "^643")
	o.Flat("public_notes", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		var out []any
		for _, i := range f.GetAll("i") {
			out = append(out, map[string]any{"value": i})
		}
		return out, nil
	}, "^680")
	o.Over("refereed", status, "^690C")
	o.Each("related_records", func(_ map[string]any, key string, f marc.Field) (any, error) {
		id := f.Get("w")
		if id == "" {
			id = f.Get("0")
		}
		ref := helpers.GetRecordRef(id, "journals")
		if ref == nil {
			return nil, nil
		}
		relation := "predecessor"
		if strings.HasPrefix(key, "785") {
			relation = "successor"
		}
		return map[string]any{"record": ref, "relation": relation, "curated_relation": true}, nil
	}, "^780", "^785")
	return o
}

// allOf collects every occurrence of one subfield.
func allOf(code string) engine.Rule[marc.Field] {
	return func(_ map[string]any, _ string, f marc.Field) (any, error) {
		var out []any
		for _, v := range f.GetAll(code) {
			out = append(out, v)
		}
		return out, nil
	}
}

func issn(_ map[string]any, _ string, f marc.Field) (any, error) {
	a := f.Get("a")
	if a == "" {
		return nil, nil
	}
	v, err := helpers.NormalizeISSN(a)
	if err != nil {
		v = strings.TrimSpace(a)
	}
	out := map[string]any{"value": v}
	if m, ok := media[strings.ToLower(strings.TrimSpace(f.Get("b")))]; ok {
		out["medium"] = m
	}
	return out, nil
}

// status reads the 690C markers. PEER REVIEW makes the journal refereed,
// PROCEEDINGS marks proceedings series and NONPUBLISHED withdraws the
// refereed flag.
func status(acc map[string]any, _ string, f marc.Field) (any, error) {
	var refereed any = engine.Skip
	for _, a := range f.GetAll("a") {
		switch strings.ToUpper(strings.TrimSpace(a)) {
		case "PEER REVIEW":
			refereed = true
		case "NONPUBLISHED":
			refereed = false
		case "PROCEEDINGS":
			acc["proceedings"] = true
		}
	}
	return refereed, nil
}
