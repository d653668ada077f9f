// Package jobs translates job announcements from MARC. The rules are
// complete, but the top-level dispatcher refuses job records, so only
// callers that import this package directly reach them.
package jobs

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
	Filters: common.Filters(common.Entity("jobs")),
}

// Translate converts a MARC record into a job record.
func Translate(rec *marc.Record) (map[string]any, error) {
	return forward.Translate(rec.Items(), rec)
}

func newRules() *engine.Overdo[marc.Field] {
	o := engine.New[marc.Field]("jobs")
	common.Forward(o, "jobs")
	o.Over("deadline_date", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		if d := common.Date(f, "i"); d != "" {
			return d, nil
		}
		return engine.Skip, nil
	}, "^046")
	o.Each("institutions", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		a := f.Get("a")
		if a == "" {
			return nil, nil
		}
		inst := map[string]any{"value": a}
		if r := helpers.GetRecordRef(f.Get("z"), "institutions"); r != nil {
			inst["record"] = r
			inst["curated_relation"] = true
		}
		return inst, nil
	}, "^110")
	o.Over("position", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		if a := f.Get("a"); a != "" {
			return a, nil
		}
		return engine.Skip, nil
	}, "^245")
	o.Each("contact_details", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		c := map[string]any{"name": f.Get("p"), "email": f.Get("m")}
		if c["name"] == "" && c["email"] == "" {
			return nil, nil
		}
		return c, nil
	}, "^270")
	o.Flat("regions", regions, "^371")
	o.Over("description", common.Description, "^520")
	o.Flat("arxiv_categories", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		var out []any
		for _, a := range f.GetAll("a") {
			if c, ok := mapping.ArxivCategory(a); ok {
				out = append(out, c)
			}
		}
		return out, nil
	}, "^65017")
	o.Flat("ranks", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		var out []any
		for _, a := range f.GetAll("a") {
			if r, ok := mapping.Rank(a); ok {
				out = append(out, r)
			}
		}
		return out, nil
	}, "^656")
	o.Each("accelerator_experiments", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		e := f.Get("e")
		ref := helpers.GetRecordRef(f.Get("0"), "experiments")
		if e == "" && ref == nil {
			return nil, nil
		}
		exp := map[string]any{"legacy_name": e}
		if ref != nil {
			exp["record"] = ref
			exp["curated_relation"] = true
		}
		return exp, nil
	}, "^693")
	o.Over("status", func(acc map[string]any, _ string, f marc.Field) (any, error) {
		for _, a := range f.GetAll("a") {
			switch strings.ToUpper(strings.TrimSpace(a)) {
			case "JOBHIDDEN":
				return "closed", nil
			case "JOB":
				if _, ok := acc["status"]; !ok {
					return "open", nil
				}
			}
		}
		return engine.Skip, nil
	}, "^980")
	return o
}

// regions reads a 371. Values naming a region go to regions; anything else
// is a place, written to address as a side effect.
func regions(acc map[string]any, _ string, f marc.Field) (any, error) {
	var out []any
	for _, a := range f.GetAll("a") {
		a = strings.TrimSpace(a)
		if mapping.IsRegion(a) {
			out = append(out, a)
			continue
		}
		addr := map[string]any{"cities": []any{a}}
		if cc, ok := mapping.CountryCode(f.Get("d")); ok {
			addr["country_code"] = cc
		}
		engine.Append(acc, "address", addr)
	}
	return out, nil
}
