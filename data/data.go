// Package data translates data set records from MARC.
package data

import (
	"github.com/lehigh-university-libraries/inspire-dojson/common"
	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

var forward = &engine.Translator[marc.Field, *marc.Record]{
	Rules:   newRules(),
	Filters: common.Filters(common.Entity("data")),
}

// Translate converts a MARC record into a data record.
func Translate(rec *marc.Record) (map[string]any, error) {
	return forward.Translate(rec.Items(), rec)
}

func newRules() *engine.Overdo[marc.Field] {
	o := engine.New[marc.Field]("data")
	common.Forward(o, "data")
	o.Flat("dois", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		var out []any
		for _, a := range f.GetAll("a") {
			if !helpers.IsDOI(a) {
				continue
			}
			out = append(out, map[string]any{
				"value":    helpers.NormalizeDOI(a),
				"source":   f.Get("9"),
				"material": f.Get("q"),
			})
		}
		return out, nil
	}, "^0247")
	o.Flat("titles", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		var out []any
		for _, a := range f.GetAll("a") {
			out = append(out, map[string]any{"title": a, "source": f.Get("9")})
		}
		return out, nil
	}, "^245")
	o.Each("abstracts", func(acc map[string]any, key string, f marc.Field) (any, error) {
		d, err := common.Description(acc, key, f)
		if err != nil || engine.IsSkip(d) {
			return nil, err
		}
		return map[string]any{"value": d, "source": f.Get("9")}, nil
	}, "^520")
	o.Flat("literature", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		var out []any
		for _, w := range f.GetAll("w") {
			if ref := helpers.GetRecordRef(w, "literature"); ref != nil {
				out = append(out, map[string]any{"record": ref})
			}
		}
		return out, nil
	}, "^786")
	return o
}
