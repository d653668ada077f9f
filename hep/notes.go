package hep

import (
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

const (
	briefEntry     = "* Brief entry *"
	temporaryEntry = "* Temporary entry *"
)

var presentedOn = regexp.MustCompile(`(?i)^presented on\s+(.+?)\.?$`)

func noteRules(o *engine.Overdo[marc.Field]) {
	o.Flat("public_notes", publicNotes, "^500")
	o.Over("thesis_info", thesisInfo, "^502")
	o.Each("abstracts", abstracts, "^520")
	o.Each("_desy_bookkeeping", desyBookkeeping, "^595_D")
	o.Over("_export_to", exportTo, "^595__")
}

// publicNotes reads a 500. Defense dates of theses and the brief/temporary
// entry markers are notes only in MARC; they become fields here.
func publicNotes(acc map[string]any, _ string, f marc.Field) (any, error) {
	src := f.Get("9")
	var out []any
	for _, a := range f.GetAll("a") {
		switch {
		case a == briefEntry || a == temporaryEntry:
			acc["curated"] = false
		case presentedOn.MatchString(a):
			date := helpers.NormalizeDateAggressively(presentedOn.FindStringSubmatch(a)[1])
			if date == "" {
				out = append(out, note(a, src))
				continue
			}
			ti := value.Map(acc["thesis_info"])
			if ti == nil {
				ti = map[string]any{}
			}
			ti["defense_date"] = date
			acc["thesis_info"] = ti
		default:
			out = append(out, note(a, src))
		}
	}
	return out, nil
}

func note(v, src string) map[string]any {
	n := map[string]any{"value": v}
	setIf(n, "source", src)
	return n
}

// thesisInfo reads a 502, merging into what 500 may already have set.
// Institution names in c are paired with record ids in z when both lists
// have the same length.
func thesisInfo(acc map[string]any, _ string, f marc.Field) (any, error) {
	ti := value.Map(acc["thesis_info"])
	if ti == nil {
		ti = map[string]any{}
	}
	if b := f.Get("b"); b != "" {
		ti["degree_type"] = mapping.DegreeType(b)
	}
	setIf(ti, "date", helpers.NormalizeDateAggressively(f.Get("d")))

	names, recids := f.GetAll("c"), f.GetAll("z")
	var insts []any
	for i, name := range names {
		inst := map[string]any{"name": name}
		if len(recids) == len(names) {
			setIf(inst, "record", helpers.GetRecordRef(recids[i], institutions))
		}
		insts = append(insts, inst)
	}
	setIf(ti, "institutions", insts)
	return ti, nil
}

func abstracts(_ map[string]any, _ string, f marc.Field) (any, error) {
	a := f.Get("a")
	if a == "" {
		return nil, nil
	}
	abstract := map[string]any{"value": helpers.SanitizeHTML(a)}
	src := f.Get("9")
	if strings.EqualFold(src, "arXiv") {
		src = "arXiv"
	}
	setIf(abstract, "source", src)
	return abstract, nil
}

func desyBookkeeping(_ map[string]any, _ string, f marc.Field) (any, error) {
	entry := map[string]any{}
	setIf(entry, "expert", f.Get("a"))
	setIf(entry, "date", helpers.NormalizeDateAggressively(f.Get("d")))
	setIf(entry, "status", f.Get("s"))
	return entry, nil
}

// exportTo reads 595__c: "CDS" or "HAL" requests an export, "not CDS" and
// "not HAL" forbid one.
func exportTo(acc map[string]any, _ string, f marc.Field) (any, error) {
	cs := f.GetAll("c")
	if len(cs) == 0 {
		return nil, nil
	}
	out := value.Map(acc["_export_to"])
	if out == nil {
		out = map[string]any{}
	}
	for _, c := range cs {
		c = strings.ToUpper(strings.TrimSpace(c))
		allowed := true
		if rest, ok := strings.CutPrefix(c, "NOT "); ok {
			c, allowed = strings.TrimSpace(rest), false
		}
		if c == "CDS" || c == "HAL" {
			out[c] = allowed
		}
	}
	return out, nil
}

func noteRules2marc(o *engine.Overdo[any]) {
	o.Flat("500__", publicNotes2marc, "^public_notes$")
	o.Flat("502__", thesisInfo2marc, "^thesis_info$")
	o.Flat("520__", abstracts2marc, "^abstracts$")
	o.Flat("595_D", desyBookkeeping2marc, "^_desy_bookkeeping$")
	o.Flat("595__", exportTo2marc, "^_export_to$")
}

func publicNotes2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, n := range value.Maps(v) {
		out = append(out, map[string]any{"a": n["value"], "9": n["source"]})
	}
	return out, nil
}

// thesisInfo2marc writes 502 and, for a defense date, a 500 note.
func thesisInfo2marc(acc map[string]any, _ string, v any) (any, error) {
	ti := value.Map(v)
	if ti == nil {
		return nil, nil
	}
	if d := value.Text(ti["defense_date"]); d != "" {
		engine.Append(acc, "500__", map[string]any{"a": "Presented on " + d})
	}
	var c, z []any
	insts := value.Maps(ti["institutions"])
	for _, inst := range insts {
		c = append(c, inst["name"])
		if id := recid(inst["record"]); id != "" {
			z = append(z, id)
		}
	}
	if len(z) != len(insts) {
		z = nil
	}
	sf := map[string]any{"c": c, "z": z, "d": ti["date"]}
	if dt := value.Text(ti["degree_type"]); dt != "" {
		sf["b"] = mapping.DegreeLabel(dt)
	}
	return sf, nil
}

func abstracts2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, a := range value.Maps(v) {
		out = append(out, map[string]any{"a": a["value"], "9": a["source"]})
	}
	return out, nil
}

func desyBookkeeping2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, e := range value.Maps(v) {
		out = append(out, map[string]any{"a": e["expert"], "d": e["date"], "s": e["status"]})
	}
	return out, nil
}

func exportTo2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, target := range []string{"CDS", "HAL"} {
		set, allowed := value.IsSet(value.Map(v), target)
		switch {
		case !set:
		case allowed:
			out = append(out, map[string]any{"c": target})
		default:
			out = append(out, map[string]any{"c": "not " + target})
		}
	}
	return out, nil
}
