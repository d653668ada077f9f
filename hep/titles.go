package hep

import (
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

func titleRules(o *engine.Overdo[marc.Field]) {
	o.Over("titles", titles, "^245", "^246")
	o.Each("title_translations", titleTranslations, "^242")
	o.Over("rpp", rpp, "^210")
}

// titles keeps the 245 title first whatever the field order. A 245 whose
// title starts with RPP marks a Review of Particle Physics edition and
// produces no title.
func titles(acc map[string]any, key string, f marc.Field) (any, error) {
	a := f.Get("a")
	if a == "" {
		return nil, nil
	}
	title := map[string]any{"title": a}
	setIf(title, "subtitle", f.Get("b"))
	setIf(title, "source", f.Get("9"))

	existing := value.List(acc["titles"])
	if !strings.HasPrefix(key, "245") {
		return append(existing, title), nil
	}
	if strings.HasPrefix(a, "RPP") {
		acc["rpp"] = true
		return nil, nil
	}
	return append([]any{title}, existing...), nil
}

func titleTranslations(_ map[string]any, _ string, f marc.Field) (any, error) {
	a := f.Get("a")
	if a == "" {
		return nil, nil
	}
	t := map[string]any{"title": a}
	setIf(t, "subtitle", f.Get("b"))
	setIf(t, "source", f.Get("9"))
	lang, ok := helpers.LanguageCode(f.Get("y"))
	if !ok {
		lang = helpers.DetectLanguage(a)
	}
	setIf(t, "language", lang)
	return t, nil
}

func rpp(_ map[string]any, _ string, f marc.Field) (any, error) {
	for _, a := range f.GetAll("a") {
		if strings.Contains(strings.ToUpper(a), "RPP") {
			return true, nil
		}
	}
	return nil, nil
}

func titleRules2marc(o *engine.Overdo[any]) {
	o.Flat("245__", titles2marc, "^titles$")
	o.Flat("242__", titleTranslations2marc, "^title_translations$")
	o.Flat("210__", func(_ map[string]any, _ string, v any) (any, error) {
		if !value.Bool(v) {
			return nil, nil
		}
		return map[string]any{"a": "RPP"}, nil
	}, "^rpp$")
}

// titles2marc writes the first title as 245 and the rest as 246.
func titles2marc(acc map[string]any, _ string, v any) (any, error) {
	ts := value.Maps(v)
	if len(ts) == 0 {
		return nil, nil
	}
	for _, t := range ts[1:] {
		engine.Append(acc, "246__", titleSubfields(t))
	}
	return titleSubfields(ts[0]), nil
}

func titleSubfields(t map[string]any) map[string]any {
	return map[string]any{"a": t["title"], "b": t["subtitle"], "9": t["source"]}
}

func titleTranslations2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, t := range value.Maps(v) {
		sf := titleSubfields(t)
		sf["y"] = t["language"]
		out = append(out, sf)
	}
	return out, nil
}
