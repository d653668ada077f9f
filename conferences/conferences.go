// Package conferences translates conference records from MARC. There is no
// reverse direction.
package conferences

import (
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/common"
	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

var forward = &engine.Translator[marc.Field, *marc.Record]{
	Rules:   newRules(),
	Filters: common.Filters(common.Entity("conferences")),
}

// Translate converts a MARC record into a conference record.
func Translate(rec *marc.Record) (map[string]any, error) {
	return forward.Translate(rec.Items(), rec)
}

// Rules exposes the rule set for inspection.
func Rules() *engine.Overdo[marc.Field] {
	return forward.Rules
}

func newRules() *engine.Overdo[marc.Field] {
	o := engine.New[marc.Field]("conferences")
	common.Forward(o, "conferences")
	o.Flat("titles", conference, "^111")
	o.Each("contact_details", contact, "^270")
	o.Each("series", series, "^411")
	o.Flat("public_notes", common.PublicNotes, "^500")
	o.Over("short_description", func(acc map[string]any, key string, f marc.Field) (any, error) {
		d, err := common.Description(acc, key, f)
		if err != nil || engine.IsSkip(d) {
			return d, err
		}
		return map[string]any{"value": d, "source": f.Get("9")}, nil
	}, "^520")
	o.Flat("keywords", common.Keywords, "^6531")
	o.Flat("inspire_categories", common.InspireCategories, "^65017")
	o.Flat("alternative_titles", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		var out []any
		for _, a := range f.GetAll("a") {
			out = append(out, map[string]any{"title": a})
		}
		return out, nil
	}, "^711")
	return o
}

// conference reads the 111 that carries most of a conference: its title,
// where and when it takes place, its CNUM and acronyms.
func conference(acc map[string]any, _ string, f marc.Field) (any, error) {
	if c := f.Get("c"); c != "" {
		for _, place := range strings.Split(c, ";") {
			if addr := address(place); addr != nil {
				engine.Append(acc, "addresses", addr)
			}
		}
	}
	if x := common.Date(f, "x"); x != "" {
		acc["opening_date"] = x
	}
	if y := common.Date(f, "y"); y != "" {
		acc["closing_date"] = y
	}
	if g := f.Get("g"); g != "" {
		acc["cnum"] = helpers.NormalizeCNUM(g)
	}
	for _, e := range f.GetAll("e") {
		engine.Append(acc, "acronyms", strings.TrimSpace(e))
	}

	var titles []any
	subtitle := f.Get("b")
	for _, a := range f.GetAll("a") {
		titles = append(titles, map[string]any{"title": a, "subtitle": subtitle})
	}
	return titles, nil
}

// address splits "City, State, Country". The last part is only taken as a
// country when it names one.
func address(place string) map[string]any {
	var parts []string
	for _, p := range strings.Split(place, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	addr := map[string]any{"place_name": strings.Join(parts, ", ")}
	if len(parts) > 1 {
		if code, ok := mapping.CountryCode(parts[len(parts)-1]); ok {
			addr["country_code"] = code
			parts = parts[:len(parts)-1]
		}
	}
	addr["cities"] = []any{parts[0]}
	if len(parts) > 1 {
		addr["state"] = parts[1]
	}
	return addr
}

func contact(_ map[string]any, _ string, f marc.Field) (any, error) {
	c := map[string]any{"name": f.Get("p"), "email": f.Get("m")}
	if c["name"] == "" && c["email"] == "" {
		return nil, nil
	}
	return c, nil
}

func series(_ map[string]any, _ string, f marc.Field) (any, error) {
	name := f.Get("a")
	if name == "" {
		return nil, nil
	}
	s := map[string]any{"name": name}
	if n, err := strconv.Atoi(strings.TrimSpace(f.Get("n"))); err == nil && n > 0 {
		s["number"] = n
	}
	return s, nil
}
