// Package institutions translates institution records from MARC.
package institutions

import (
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/common"
	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

var forward = &engine.Translator[marc.Field, *marc.Record]{
	Rules:   newRules(),
	Filters: common.Filters(common.Entity("institutions")),
}

// Translate converts a MARC record into an institution record.
func Translate(rec *marc.Record) (map[string]any, error) {
	return forward.Translate(rec.Items(), rec)
}

var relations = map[string]string{
	"a": "predecessor",
	"b": "successor",
	"t": "parent",
}

func newRules() *engine.Overdo[marc.Field] {
	o := engine.New[marc.Field]("institutions")
	common.Forward(o, "institutions")
	o.Flat("institution_hierarchy", institution, "^110")
	o.Each("addresses", address, "^371")
	o.Flat("name_variants", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		var out []any
		for _, a := range f.GetAll("a") {
			out = append(out, map[string]any{"value": a, "source": f.Get("9")})
		}
		return out, nil
	}, "^410")
	o.Each("related_records", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		ref := helpers.GetRecordRef(f.Get("0"), "institutions")
		if ref == nil {
			return nil, nil
		}
		rel := map[string]any{"record": ref, "curated_relation": true}
		if r, ok := relations[strings.ToLower(f.Get("w"))]; ok {
			rel["relation"] = r
		} else {
			rel["relation_freetext"] = f.Get("w")
		}
		return rel, nil
	}, "^510")
	o.Flat("public_notes", common.PublicNotes, "^500")
	o.Flat("inspire_categories", common.InspireCategories, "^65017")
	return o
}

// institution reads the 110. a and b give the levels of the hierarchy,
// t the legacy ICN and u the current ICNs.
func institution(acc map[string]any, _ string, f marc.Field) (any, error) {
	if t := f.Get("t"); t != "" {
		acc["legacy_ICN"] = t
	}
	for _, u := range f.GetAll("u") {
		engine.Append(acc, "ICN", u)
	}
	var levels []any
	for _, code := range []string{"a", "b"} {
		for _, name := range f.GetAll(code) {
			levels = append(levels, map[string]any{"name": name})
		}
	}
	return levels, nil
}

// address reads a 371. The country comes from d, or from g when d does not
// name one.
func address(_ map[string]any, _ string, f marc.Field) (any, error) {
	addr := map[string]any{}
	if lines := f.GetAll("a"); len(lines) > 0 {
		addr["postal_address"] = toAny(lines)
	}
	if cities := f.GetAll("b"); len(cities) > 0 {
		addr["cities"] = toAny(cities)
	}
	if c := f.Get("c"); c != "" {
		addr["state"] = c
	}
	if e := f.Get("e"); e != "" {
		addr["postal_code"] = e
	}
	for _, code := range []string{"d", "g"} {
		if cc, ok := mapping.CountryCode(f.Get(code)); ok {
			addr["country_code"] = cc
			break
		}
	}
	if len(addr) == 0 {
		return nil, nil
	}
	return addr, nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
