// Package hepnames translates author profiles between MARC and JSON.
package hepnames

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/common"
	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/schema"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

// idSchemas maps 035__9 values to id schemas.
var idSchemas = map[string]string{
	"arxiv":         "ARXIV",
	"bai":           "INSPIRE BAI",
	"cern":          "CERN",
	"desy":          "DESY",
	"googlescholar": "GOOGLESCHOLAR",
	"inspire":       "INSPIRE ID",
	"jacow":         "JACOW",
	"kaken":         "KAKEN",
	"linkedin":      "LINKEDIN",
	"orcid":         "ORCID",
	"researcherid":  "RESEARCHERID",
	"scopus":        "SCOPUS",
	"slac":          "SLAC",
	"spires":        "SPIRES",
	"twitter":       "TWITTER",
	"viaf":          "VIAF",
	"wikipedia":     "WIKIPEDIA",
}

// idLabels are the 035__9 values written back.
var idLabels = map[string]string{
	"INSPIRE BAI": "BAI",
	"INSPIRE ID":  "INSPIRE",
}

var statuses = map[string]bool{
	"active":   true,
	"departed": true,
	"deceased": true,
	"retired":  true,
}

var cernDigits = regexp.MustCompile(`^\d+$`)

var (
	forward = &engine.Translator[marc.Field, *marc.Record]{
		Rules:   newForwardRules(),
		Filters: forwardFilters(),
	}
	reverse = &engine.Translator[any, map[string]any]{
		Rules:   newReverseRules(),
		Filters: reverseFilters(),
	}
)

// Translate converts a MARC record into an author record.
func Translate(rec *marc.Record) (map[string]any, error) {
	return forward.Translate(rec.Items(), rec)
}

// TranslateReverse converts an author record into MARC-JSON.
func TranslateReverse(rec map[string]any) (map[string]any, error) {
	return reverse.Translate(engine.Sorted(rec), rec)
}

func entity() *schema.Entity {
	e, ok := schema.Default.Get("hepnames")
	if !ok {
		panic("hepnames: entity not registered")
	}
	return e
}

func newForwardRules() *engine.Overdo[marc.Field] {
	o := engine.New[marc.Field]("hepnames")
	common.Forward(o, "authors")
	o.Flat("ids", ids, "^035")
	o.Over("birth_date", dates, "^046")
	o.Over("name", name, "^100")
	o.Over("name", nameVariants, "^400", "^410", "^880")
	o.Each("positions", positions, "^371")
	o.Flat("email_addresses", hiddenEmails, "^595")
	o.Flat("inspire_categories", categories, "^65017")
	o.Flat("public_notes", publicNotes, "^667")
	o.Each("awards", awards, "^678")
	o.Each("project_membership", projectMembership, "^693")
	o.Each("advisors", advisors, "^701")
	o.Over("_collections", collections, "^980")
	return o
}

func forwardFilters() engine.Pipeline[*marc.Record] {
	e := entity()
	return engine.Pipeline[*marc.Record]{
		engine.AddSchema[*marc.Record](e.Schema),
		engine.AddCollection[*marc.Record](e.Collection),
		func(out map[string]any, _ *marc.Record) (map[string]any, error) {
			engine.SetDefault(out, "stub", true)
			return out, nil
		},
		engine.StripEmptyValues[*marc.Record](),
		engine.DedupeAllLists[*marc.Record](e.DedupeExempt...),
	}
}

// ids reads a 035. The schema comes from 9 or is recognised from the value.
// a and z give separate ids; the z one is marked hidden.
func ids(_ map[string]any, _ string, f marc.Field) (any, error) {
	label := strings.TrimSpace(f.Get("9"))
	if strings.EqualFold(label, "CURATOR") {
		return nil, nil
	}
	var out []any
	for _, code := range []string{"a", "z"} {
		for _, val := range f.GetAll(code) {
			id := authorID(label, val)
			if id == nil {
				continue
			}
			if code == "z" {
				id["hidden"] = true
			}
			out = append(out, id)
		}
	}
	return out, nil
}

func authorID(label, val string) map[string]any {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	scheme, ok := idSchemas[strings.ToLower(label)]
	if !ok {
		scheme = detectSchema(val)
	}
	if scheme == "" {
		return nil
	}
	val, ok = normalizeID(scheme, val)
	if !ok {
		return nil
	}
	return map[string]any{"schema": scheme, "value": val}
}

func detectSchema(v string) string {
	switch {
	case helpers.IsORCID(v):
		return "ORCID"
	case helpers.IsInspireID(v):
		return "INSPIRE ID"
	case helpers.IsBAI(v):
		return "INSPIRE BAI"
	}
	if _, ok := helpers.NormalizeCERNID(v); ok {
		return "CERN"
	}
	if _, ok := helpers.NormalizeKAKENID(v); ok {
		return "KAKEN"
	}
	return ""
}

func normalizeID(scheme, v string) (string, bool) {
	switch scheme {
	case "ORCID":
		return helpers.NormalizeORCID(v), true
	case "CERN":
		if cernDigits.MatchString(v) {
			return "CERN-" + v, true
		}
		return helpers.NormalizeCERNID(v)
	case "KAKEN":
		if cernDigits.MatchString(v) {
			return "KAKEN-" + v, true
		}
		return helpers.NormalizeKAKENID(v)
	}
	return v, true
}

// dates reads 046: f is the birth date, g the death date.
func dates(acc map[string]any, _ string, f marc.Field) (any, error) {
	if g := helpers.NormalizeDateAggressively(f.Get("g")); g != "" {
		acc["death_date"] = g
	}
	if d := helpers.NormalizeDateAggressively(f.Get("f")); d != "" {
		return d, nil
	}
	return nil, nil
}

func nameMap(acc map[string]any) map[string]any {
	n := value.Map(acc["name"])
	if n == nil {
		n = map[string]any{}
	}
	return n
}

// name reads the 100; g carries the profile status.
func name(acc map[string]any, _ string, f marc.Field) (any, error) {
	if g := strings.ToLower(strings.TrimSpace(f.Get("g"))); statuses[g] {
		acc["status"] = g
	}
	n := nameMap(acc)
	if a := f.Get("a"); a != "" {
		n["value"] = helpers.NormalizeName(a)
	}
	for code, key := range map[string]string{"b": "numeration", "c": "title", "q": "preferred_name"} {
		if v := f.Get(code); v != "" {
			n[key] = v
		}
	}
	return n, nil
}

func nameVariants(acc map[string]any, key string, f marc.Field) (any, error) {
	target := map[string]string{"400": "name_variants", "410": "previous_names", "880": "native_names"}[key[:3]]
	n := nameMap(acc)
	for _, a := range f.GetAll("a") {
		n[target] = append(value.List(n[target]), a)
	}
	return n, nil
}

// positions reads a 371. Public e-mail addresses ride along in m (current)
// and o (former).
func positions(acc map[string]any, _ string, f marc.Field) (any, error) {
	addEmails(acc, f, false)
	inst := f.Get("a")
	if inst == "" {
		return nil, nil
	}
	p := map[string]any{"institution": inst}
	if r := f.Get("r"); r != "" {
		if rank, ok := mapping.Rank(r); ok {
			p["rank"] = rank
		} else {
			slog.Debug("ignoring unknown rank", "rank", r, "institution", inst)
		}
	}
	setIf(p, "start_date", helpers.NormalizeDateAggressively(f.Get("s")))
	setIf(p, "end_date", helpers.NormalizeDateAggressively(f.Get("t")))
	if strings.EqualFold(f.Get("z"), "Current") {
		p["current"] = true
	}
	if strings.EqualFold(f.Get("h"), "HIDDEN") {
		p["hidden"] = true
	}
	if r := helpers.GetRecordRef(f.Get("0"), "institutions"); r != nil {
		p["record"] = r
	}
	return p, nil
}

func addEmails(acc map[string]any, f marc.Field, hidden bool) {
	for _, code := range []string{"m", "o"} {
		for _, email := range f.GetAll(code) {
			e := map[string]any{"value": email, "current": code == "m"}
			if hidden {
				e["hidden"] = true
			}
			engine.Append(acc, "email_addresses", e)
		}
	}
}

func hiddenEmails(acc map[string]any, _ string, f marc.Field) (any, error) {
	addEmails(acc, f, true)
	return nil, nil
}

// categories reads 65017: arXiv categories and INSPIRE terms.
func categories(acc map[string]any, _ string, f marc.Field) (any, error) {
	var out []any
	switch strings.ToUpper(f.Get("2")) {
	case "ARXIV":
		for _, a := range f.GetAll("a") {
			if c, ok := mapping.ArxivCategory(a); ok {
				engine.Append(acc, "arxiv_categories", c)
			}
		}
	case "INSPIRE":
		for _, a := range f.GetAll("a") {
			term, ok := mapping.InspireCategory(a)
			if !ok {
				term = "Other"
			}
			out = append(out, map[string]any{"term": term})
		}
	}
	return out, nil
}

func publicNotes(_ map[string]any, _ string, f marc.Field) (any, error) {
	var out []any
	for _, a := range f.GetAll("a") {
		out = append(out, map[string]any{"value": a})
	}
	return out, nil
}

func awards(_ map[string]any, _ string, f marc.Field) (any, error) {
	a := f.Get("a")
	if a == "" {
		return nil, nil
	}
	award := map[string]any{"name": a}
	if y, err := strconv.Atoi(strings.TrimSpace(f.Get("d"))); err == nil && y > 0 {
		award["year"] = y
	}
	return award, nil
}

func projectMembership(_ map[string]any, _ string, f marc.Field) (any, error) {
	e := f.Get("e")
	if e == "" {
		return nil, nil
	}
	pm := map[string]any{"name": e}
	if r := helpers.GetRecordRef(f.Get("0"), "experiments"); r != nil {
		pm["record"] = r
	}
	setIf(pm, "start_date", helpers.NormalizeDateAggressively(f.Get("s")))
	setIf(pm, "end_date", helpers.NormalizeDateAggressively(f.Get("d")))
	pm["current"] = strings.EqualFold(f.Get("z"), "Current")
	if strings.EqualFold(f.Get("h"), "HIDDEN") {
		pm["hidden"] = true
	}
	return pm, nil
}

func advisors(_ map[string]any, _ string, f marc.Field) (any, error) {
	a := f.Get("a")
	if a == "" {
		return nil, nil
	}
	adv := map[string]any{"name": helpers.NormalizeName(a)}
	if g := f.Get("g"); g != "" {
		adv["degree_type"] = mapping.DegreeType(g)
	}
	var advIDs []any
	for _, i := range f.GetAll("i") {
		if helpers.IsInspireID(i) {
			advIDs = append(advIDs, map[string]any{"schema": "INSPIRE ID", "value": i})
		}
	}
	setIf(adv, "ids", advIDs)
	if r := helpers.GetRecordRef(f.Get("x"), "authors"); r != nil {
		adv["record"] = r
		adv["curated_relation"] = f.Get("y") == "1"
	}
	return adv, nil
}

func collections(acc map[string]any, _ string, f marc.Field) (any, error) {
	colls := value.List(acc["_collections"])
	for _, a := range f.GetAll("a") {
		switch strings.ToUpper(strings.TrimSpace(a)) {
		case "HEPNAMES":
			colls = append(colls, entity().Collection)
		case "USEFUL":
			acc["stub"] = false
		}
	}
	if len(colls) == 0 {
		return nil, nil
	}
	return colls, nil
}

func setIf(m map[string]any, key string, v any) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return
		}
	case []any:
		if len(val) == 0 {
			return
		}
	}
	m[key] = v
}
