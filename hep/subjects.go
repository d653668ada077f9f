package hep

import (
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

func subjectRules(o *engine.Overdo[marc.Field]) {
	o.Flat("keywords", classificationKeywords, "^084")
	o.Flat("keywords", freeKeywords, "^6531")
	o.Flat("keywords", inspireKeywords, "^695")
	o.Flat("inspire_categories", inspireCategories, "^65017")
	o.Each("accelerator_experiments", acceleratorExperiments, "^693")
}

// classificationKeywords reads PACS and PDG codes from 084.
func classificationKeywords(_ map[string]any, _ string, f marc.Field) (any, error) {
	scheme := strings.ToUpper(strings.TrimSpace(f.Get("2")))
	if scheme != "PACS" && scheme != "PDG" {
		return nil, nil
	}
	return keywordList(f, scheme), nil
}

func freeKeywords(_ map[string]any, _ string, f marc.Field) (any, error) {
	return keywordList(f, strings.ToUpper(strings.TrimSpace(f.Get("2")))), nil
}

func inspireKeywords(_ map[string]any, _ string, f marc.Field) (any, error) {
	scheme := strings.ToUpper(strings.TrimSpace(f.Get("2")))
	if scheme == "" {
		scheme = "INSPIRE"
	}
	return keywordList(f, scheme), nil
}

func keywordList(f marc.Field, scheme string) []any {
	src := source(f.Get("9"))
	var out []any
	for _, a := range f.GetAll("a") {
		kw := map[string]any{"value": a}
		setIf(kw, "schema", scheme)
		setIf(kw, "source", src)
		out = append(out, kw)
	}
	return out
}

// inspireCategories reads 65017 with 2=INSPIRE. arXiv categories in the
// same tag are merged into the eprint by a filter.
func inspireCategories(_ map[string]any, _ string, f marc.Field) (any, error) {
	if !strings.EqualFold(f.Get("2"), "INSPIRE") {
		return nil, nil
	}
	src := strings.ToLower(source(f.Get("9")))
	var out []any
	for _, a := range f.GetAll("a") {
		term, ok := mapping.InspireCategory(a)
		if !ok {
			term = "Other"
		}
		cat := map[string]any{"term": term}
		setIf(cat, "source", src)
		out = append(out, cat)
	}
	return out, nil
}

func acceleratorExperiments(_ map[string]any, _ string, f marc.Field) (any, error) {
	ae := map[string]any{}
	setIf(ae, "accelerator", f.Get("a"))
	setIf(ae, "legacy_name", f.Get("e"))
	setIf(ae, "record", ref(f, "0", experiments))
	if len(ae) == 0 {
		return nil, nil
	}
	return ae, nil
}

func subjectRules2marc(o *engine.Overdo[any]) {
	o.Flat("6531_", keywords2marc, "^keywords$")
	o.Flat("65017", inspireCategories2marc, "^inspire_categories$")
	o.Flat("693__", acceleratorExperiments2marc, "^accelerator_experiments$")
}

// keywords2marc routes keywords back to the tag their schema came from.
func keywords2marc(acc map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, kw := range value.Maps(v) {
		scheme := value.Text(kw["schema"])
		sf := map[string]any{"a": kw["value"], "2": scheme, "9": kw["source"]}
		switch scheme {
		case "PACS", "PDG":
			engine.Append(acc, "084__", sf)
		case "INSPIRE":
			engine.Append(acc, "695__", sf)
		default:
			out = append(out, sf)
		}
	}
	return out, nil
}

func inspireCategories2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, c := range value.Maps(v) {
		out = append(out, map[string]any{"2": "INSPIRE", "a": c["term"], "9": c["source"]})
	}
	return out, nil
}

func acceleratorExperiments2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, ae := range value.Maps(v) {
		out = append(out, map[string]any{"a": ae["accelerator"], "e": ae["legacy_name"], "0": recid(ae["record"])})
	}
	return out, nil
}
