package hepnames

import (
	"github.com/lehigh-university-libraries/inspire-dojson/common"
	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

func newReverseRules() *engine.Overdo[any] {
	o := engine.New[any]("hepnames2marc")
	common.Reverse(o)
	o.Flat("035__", ids2marc, "^ids$")
	o.Flat("046__", func(_ map[string]any, key string, v any) (any, error) {
		code := "f"
		if key == "death_date" {
			code = "g"
		}
		return map[string]any{code: value.Text(v)}, nil
	}, "^birth_date$", "^death_date$")
	o.Flat("100__", name2marc, "^name$")
	o.Flat("371__", positions2marc, "^positions$")
	o.Flat("371__", emails2marc, "^email_addresses$")
	o.Flat("65017", func(_ map[string]any, key string, v any) (any, error) {
		var out []any
		if key == "arxiv_categories" {
			for _, c := range value.Strings(v) {
				out = append(out, map[string]any{"2": "arXiv", "a": c})
			}
			return out, nil
		}
		for _, c := range value.Maps(v) {
			out = append(out, map[string]any{"2": "INSPIRE", "a": c["term"]})
		}
		return out, nil
	}, "^arxiv_categories$", "^inspire_categories$")
	o.Flat("667__", func(_ map[string]any, _ string, v any) (any, error) {
		var out []any
		for _, n := range value.Maps(v) {
			out = append(out, map[string]any{"a": n["value"]})
		}
		return out, nil
	}, "^public_notes$")
	o.Flat("678__", func(_ map[string]any, _ string, v any) (any, error) {
		var out []any
		for _, a := range value.Maps(v) {
			out = append(out, map[string]any{"a": a["name"], "d": a["year"]})
		}
		return out, nil
	}, "^awards$")
	o.Flat("693__", projectMembership2marc, "^project_membership$")
	o.Flat("701__", advisors2marc, "^advisors$")
	o.Flat("980__", func(_ map[string]any, key string, v any) (any, error) {
		if key == "stub" {
			if stub, ok := v.(bool); ok && !stub {
				return map[string]any{"a": "USEFUL"}, nil
			}
			return nil, nil
		}
		for _, c := range value.Strings(v) {
			if c == entity().Collection {
				return map[string]any{"a": "HEPNAMES"}, nil
			}
		}
		return nil, nil
	}, "^_collections$", "^stub$")
	return o
}

func reverseFilters() engine.Pipeline[map[string]any] {
	return engine.Pipeline[map[string]any]{
		addStatus,
		engine.StripEmptyValues[map[string]any](),
	}
}

// addStatus writes the profile status into the 100 it belongs to.
func addStatus(out map[string]any, src map[string]any) (map[string]any, error) {
	status := value.Text(src["status"])
	if status == "" {
		return out, nil
	}
	fields := value.Maps(out["100__"])
	if len(fields) == 0 {
		out["100__"] = []any{map[string]any{"g": status}}
		return out, nil
	}
	fields[0]["g"] = status
	return out, nil
}

func ids2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, id := range value.Maps(v) {
		scheme := value.Text(id["schema"])
		label, ok := idLabels[scheme]
		if !ok {
			label = scheme
		}
		code := "a"
		if value.Bool(id["hidden"]) {
			code = "z"
		}
		out = append(out, map[string]any{"9": label, code: id["value"]})
	}
	return out, nil
}

// name2marc writes the 100 and the variant names into 400, 410 and 880.
func name2marc(acc map[string]any, _ string, v any) (any, error) {
	n := value.Map(v)
	for key, tag := range map[string]string{"name_variants": "400__", "previous_names": "410__", "native_names": "880__"} {
		for _, a := range value.Strings(n[key]) {
			engine.Append(acc, tag, map[string]any{"a": a})
		}
	}
	return map[string]any{"a": n["value"], "b": n["numeration"], "c": n["title"], "q": n["preferred_name"]}, nil
}

func positions2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, p := range value.Maps(v) {
		sf := map[string]any{
			"a": p["institution"],
			"r": p["rank"],
			"s": p["start_date"],
			"t": p["end_date"],
		}
		if id, ok := helpers.GetRecid(p["record"]); ok {
			sf["0"] = id
		}
		if value.Bool(p["current"]) {
			sf["z"] = "Current"
		}
		if value.Bool(p["hidden"]) {
			sf["h"] = "HIDDEN"
		}
		out = append(out, sf)
	}
	return out, nil
}

// emails2marc writes public addresses into 371 and hidden ones into 595.
func emails2marc(acc map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, e := range value.Maps(v) {
		code := "o"
		if value.Bool(e["current"]) {
			code = "m"
		}
		sf := map[string]any{code: e["value"]}
		if value.Bool(e["hidden"]) {
			engine.Append(acc, "595__", sf)
			continue
		}
		out = append(out, sf)
	}
	return out, nil
}

func projectMembership2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, pm := range value.Maps(v) {
		sf := map[string]any{"e": pm["name"], "s": pm["start_date"], "d": pm["end_date"]}
		if id, ok := helpers.GetRecid(pm["record"]); ok {
			sf["0"] = id
		}
		if value.Bool(pm["current"]) {
			sf["z"] = "Current"
		}
		if value.Bool(pm["hidden"]) {
			sf["h"] = "HIDDEN"
		}
		out = append(out, sf)
	}
	return out, nil
}

func advisors2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, a := range value.Maps(v) {
		sf := map[string]any{"a": a["name"]}
		if dt := value.Text(a["degree_type"]); dt != "" {
			sf["g"] = mapping.DegreeLabel(dt)
		}
		var i []any
		for _, id := range value.Maps(a["ids"]) {
			i = append(i, id["value"])
		}
		sf["i"] = i
		if id, ok := helpers.GetRecid(a["record"]); ok {
			sf["x"] = id
			if value.Bool(a["curated_relation"]) {
				sf["y"] = "1"
			}
		}
		out = append(out, sf)
	}
	return out, nil
}
