package hep

import (
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

var isbnMedia = map[string]string{
	"online":     "online",
	"electronic": "online",
	"print":      "print",
	"hardcover":  "hardcover",
	"hbk":        "hardcover",
	"hb":         "hardcover",
	"softcover":  "softcover",
	"paperback":  "softcover",
	"pbk":        "softcover",
	"pb":         "softcover",
}

// externalSchemas are the 035__9 spellings of external systems.
var externalSchemas = map[string]string{
	"ads":     "ADS",
	"cds":     "CDS",
	"cercer":  "CERCER",
	"desy":    "DESY",
	"euclid":  "EUCLID",
	"hal":     "HAL",
	"inis":    "INIS",
	"kekscan": "KEKSCAN",
	"msnet":   "MSNET",
	"osti":    "OSTI",
	"scoap3":  "SCOAP3",
	"spires":  "SPIRES",
	"wos":     "WOS",
	"zblatt":  "ZBLATT",
}

func isTexkeySource(s string) bool {
	return strings.EqualFold(s, "INSPIRETeX") || strings.EqualFold(s, "SPIRESTeX")
}

func identifierRules(o *engine.Overdo[marc.Field]) {
	o.Flat("isbns", isbns, "^020")
	o.Flat("dois", dois, "^0247")
	o.Flat("external_system_identifiers", externalSystemIdentifiers, "^035")
	o.Flat("external_system_identifiers", spiresIdentifiers, "^970")
	o.Flat("arxiv_eprints", arxivEprints, "^037")
	o.Flat("languages", languages, "^041")
}

func isbns(_ map[string]any, _ string, f marc.Field) (any, error) {
	medium := isbnMedia[strings.ToLower(strings.TrimSpace(f.Get("b")))]
	var out []any
	for _, a := range f.GetAll("a") {
		isbn, err := helpers.NormalizeISBN(a)
		if err != nil {
			isbn = a
		}
		item := map[string]any{"value": isbn}
		setIf(item, "medium", medium)
		out = append(out, item)
	}
	return out, nil
}

// dois reads a 0247. DOIs stay in dois; handles, URNs and the like go to
// persistent_identifiers as a side effect.
func dois(acc map[string]any, _ string, f marc.Field) (any, error) {
	scheme := strings.ToUpper(strings.TrimSpace(f.Get("2")))
	src := source(f.Get("9"))
	material := strings.ToLower(f.Get("q"))

	var out []any
	for _, a := range f.GetAll("a") {
		kind := scheme
		if kind == "" {
			switch {
			case helpers.IsDOI(a):
				kind = "DOI"
			case helpers.IsHandle(a):
				kind = "HDL"
			case helpers.IsURN(a):
				kind = "URN"
			default:
				continue
			}
		}
		if kind == "DOI" {
			doi := map[string]any{"value": helpers.NormalizeDOI(a)}
			setIf(doi, "source", src)
			setIf(doi, "material", material)
			out = append(out, doi)
			continue
		}
		pid := map[string]any{"schema": kind, "value": a}
		setIf(pid, "source", src)
		engine.Append(acc, "persistent_identifiers", pid)
	}
	return out, nil
}

// externalSystemIdentifiers reads a 035. TeX keys are collected by a filter
// since a subfields of every 035 must precede the z subfields; CURATOR
// stamps and arXiv ids, which 037 carries, are ignored.
func externalSystemIdentifiers(_ map[string]any, _ string, f marc.Field) (any, error) {
	src := strings.TrimSpace(f.Get("9"))
	if src == "" || isCurator(src) || strings.EqualFold(src, "arXiv") || isTexkeySource(src) {
		return nil, nil
	}
	name, ok := externalSchemas[strings.ToLower(src)]
	if !ok {
		name = strings.ToUpper(src)
	}
	var out []any
	for _, a := range f.GetAll("a") {
		out = append(out, map[string]any{"schema": name, "value": a})
	}
	return out, nil
}

func spiresIdentifiers(_ map[string]any, _ string, f marc.Field) (any, error) {
	var out []any
	for _, a := range f.GetAll("a") {
		if !strings.HasPrefix(a, "SPIRES-") {
			a = "SPIRES-" + a
		}
		out = append(out, map[string]any{"schema": "SPIRES", "value": a})
	}
	return out, nil
}

// arxivEprints reads a 037. arXiv identifiers become eprints; everything
// else is a report number, hidden when only z is present.
func arxivEprints(acc map[string]any, _ string, f marc.Field) (any, error) {
	src := strings.TrimSpace(f.Get("9"))
	a := f.Get("a")
	switch {
	case a != "" && (strings.EqualFold(src, "arXiv") || (src == "" && helpers.IsArxiv(a))):
		eprint := map[string]any{"value": helpers.NormalizeArxiv(a)}
		setIf(eprint, "categories", arxivCategories(f.GetAll("c")))
		return eprint, nil
	case a != "":
		rn := map[string]any{"value": a}
		setIf(rn, "source", source(src))
		engine.Append(acc, "report_numbers", rn)
	case f.Get("z") != "":
		rn := map[string]any{"value": f.Get("z"), "hidden": true}
		setIf(rn, "source", source(src))
		engine.Append(acc, "report_numbers", rn)
	}
	return nil, nil
}

// arxivCategories normalises obsolete archive names and drops unknown
// categories.
func arxivCategories(raw []string) []any {
	var out []any
	for _, c := range raw {
		if cat, ok := mapping.ArxivCategory(c); ok {
			out = append(out, cat)
		}
	}
	return out
}

func languages(_ map[string]any, _ string, f marc.Field) (any, error) {
	var out []any
	for _, a := range f.GetAll("a") {
		for _, lang := range helpers.SplitLanguages(a) {
			if code, ok := helpers.LanguageCode(lang); ok {
				out = append(out, code)
			}
		}
	}
	return out, nil
}

func identifierRules2marc(o *engine.Overdo[any]) {
	o.Flat("020__", isbns2marc, "^isbns$")
	o.Flat("0247_", dois2marc, "^dois$")
	o.Flat("0247_", persistentIdentifiers2marc, "^persistent_identifiers$")
	o.Flat("035__", texkeys2marc, "^texkeys$")
	o.Flat("035__", externalSystemIdentifiers2marc, "^external_system_identifiers$")
	o.Flat("037__", arxivEprints2marc, "^arxiv_eprints$")
	o.Flat("037__", reportNumbers2marc, "^report_numbers$")
	o.Flat("041__", languages2marc, "^languages$")
}

func isbns2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, isbn := range value.Maps(v) {
		out = append(out, map[string]any{"a": isbn["value"], "b": isbn["medium"]})
	}
	return out, nil
}

func dois2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, doi := range value.Maps(v) {
		out = append(out, map[string]any{
			"2": "DOI",
			"a": doi["value"],
			"9": doi["source"],
			"q": doi["material"],
		})
	}
	return out, nil
}

func persistentIdentifiers2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, pid := range value.Maps(v) {
		out = append(out, map[string]any{
			"2": pid["schema"],
			"a": pid["value"],
			"9": pid["source"],
		})
	}
	return out, nil
}

// texkeys2marc writes the current key as a and older keys as z.
func texkeys2marc(_ map[string]any, _ string, v any) (any, error) {
	keys := value.Strings(v)
	var out []any
	for i, k := range keys {
		code := "z"
		if i == 0 {
			code = "a"
		}
		out = append(out, map[string]any{"9": "INSPIRETeX", code: k})
	}
	return out, nil
}

func externalSystemIdentifiers2marc(acc map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, id := range value.Maps(v) {
		scheme := value.Text(id["schema"])
		if scheme == "SPIRES" {
			engine.Append(acc, "970__", map[string]any{"a": id["value"]})
			continue
		}
		out = append(out, map[string]any{"9": scheme, "a": id["value"]})
	}
	return out, nil
}

// arxivEprints2marc writes 037 and, as a side effect, the categories again
// as 65017 so that the legacy subject index sees them.
func arxivEprints2marc(acc map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, eprint := range value.Maps(v) {
		id := value.Text(eprint["value"])
		if !strings.Contains(id, "/") {
			id = "arXiv:" + id
		}
		cats := value.Strings(eprint["categories"])
		out = append(out, map[string]any{"9": "arXiv", "a": id, "c": toAny(cats)})
		for _, c := range cats {
			engine.Append(acc, "65017", map[string]any{"2": "arXiv", "a": c})
		}
	}
	return out, nil
}

func reportNumbers2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, rn := range value.Maps(v) {
		code := "a"
		if value.Bool(rn["hidden"]) {
			code = "z"
		}
		out = append(out, map[string]any{code: rn["value"], "9": rn["source"]})
	}
	return out, nil
}

func languages2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, code := range value.Strings(v) {
		if name, ok := helpers.LanguageName(code); ok {
			out = append(out, map[string]any{"a": name})
		}
	}
	return out, nil
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
