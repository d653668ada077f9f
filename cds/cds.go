// Package cds rewrites records exported by the CERN Document Server into
// the MARC dialect the literature rules read. Fields with the same meaning
// in both systems pass through; the rest are renamed or reshaped.
package cds

import (
	"regexp"
	"slices"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

var (
	inspireAuthorID = regexp.MustCompile(`^AUTHOR\|\(INSPIRE\)(INSPIRE-\d+)$`)
	cernAuthorID    = regexp.MustCompile(`^AUTHOR\|\(SzGeCERN\)(\d+)$`)
	orcidAuthorID   = regexp.MustCompile(`^(?:AUTHOR\|)?\(ORCID\)(.+)$`)
	leadingDigits   = regexp.MustCompile(`\d+`)
	cdsFileURL      = regexp.MustCompile(`^https?://cds\.cern\.ch/record/\d+/files/`)
)

// passThrough lists the fields copied unchanged, keyed by the pattern that
// selects them and the key they are written under.
var passThrough = []struct{ pattern, key string }{
	{"^020", "020__"},
	{"^0247", "0247_"},
	{"^037", "037__"},
	{"^041", "041__"},
	{"^242", "242__"},
	{"^245", "245__"},
	{"^246", "246__"},
	{"^260", "260__"},
	{"^269", "269__"},
	{"^490", "490__"},
	{"^500", "500__"},
	{"^502", "502__"},
	{"^520", "520__"},
	{"^540", "540__"},
	{"^542", "542__"},
	{"^6531", "6531_"},
	{"^693", "693__"},
	{"^710", "710__"},
	{"^773", "773__"},
	{"^999C5", "999C5"},
}

// dropped035 are the 035__9 sources that point back at INSPIRE itself.
var dropped035 = map[string]bool{
	"INSPIRE": true,
	"SPIRES":  true,
	"CERCER":  true,
}

// documentTypes maps CDS 980__a values to literature markers.
var documentTypes = map[string]string{
	"ARTICLE":          "",
	"PREPRINT":         "",
	"BOOK":             "Book",
	"BOOKCHAPTER":      "BookChapter",
	"CONFERENCEPAPER":  "ConferencePaper",
	"INTNOTEATLASPUBL": "Note",
	"INTNOTECMSPUBL":   "Note",
	"NOTE":             "Note",
	"PROCEEDINGS":      "Proceedings",
	"REPORT":           "Report",
	"THESIS":           "Thesis",
}

var translator = &engine.Translator[marc.Field, *marc.Record]{
	Rules:   newRules(),
	Filters: engine.Pipeline[*marc.Record]{addHEP},
}

// Translate converts a CDS record into a record for the literature rules.
func Translate(rec *marc.Record) (*marc.Record, error) {
	out, err := TranslateToMarcJSON(rec)
	if err != nil {
		return nil, err
	}
	return marc.FromMarcJSON(out)
}

// TranslateToMarcJSON converts a CDS record into keyed MARC-JSON.
func TranslateToMarcJSON(rec *marc.Record) (map[string]any, error) {
	return translator.Translate(rec.Items(), rec)
}

func newRules() *engine.Overdo[marc.Field] {
	o := engine.New[marc.Field]("cds2hep")
	o.Flat("035__", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		return map[string]any{"9": "CDS", "a": strings.TrimSpace(f.Value)}, nil
	}, "^001$")
	o.Flat("035__", externalID, "^035")
	o.Flat("037__", func(_ map[string]any, _ string, f marc.Field) (any, error) {
		return group(f, "a"), nil
	}, "^088")
	o.Flat("100__", author, "^100")
	o.Flat("700__", author, "^700")
	o.Flat("300__", pages, "^300")
	o.Flat("65017", subject, "^65017")
	o.Flat("FFT__", files, "^8564")
	o.Flat("980__", collections, "^980")
	for _, p := range passThrough {
		o.Flat(p.key, func(_ map[string]any, _ string, f marc.Field) (any, error) {
			return group(f), nil
		}, p.pattern)
	}
	return o
}

// subfields returns the subfield map of f, limited to codes when any are
// given. Repeated codes become lists.
func subfields(f marc.Field, codes ...string) map[string]any {
	out := make(map[string]any)
	for _, sf := range f.Subfields {
		if len(codes) > 0 && !slices.Contains(codes, sf.Code) {
			continue
		}
		out[sf.Code] = append(value.List(out[sf.Code]), sf.Value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// group is subfields as a rule result: nothing at all when f has none of
// the codes.
func group(f marc.Field, codes ...string) any {
	if m := subfields(f, codes...); m != nil {
		return m
	}
	return nil
}

func externalID(_ map[string]any, _ string, f marc.Field) (any, error) {
	if dropped035[strings.ToUpper(strings.TrimSpace(f.Get("9")))] {
		return nil, nil
	}
	return group(f), nil
}

// author copies a 100 or 700, turning the identifiers CDS keeps in 0 into
// the i and j subfields used for literature authors.
func author(_ map[string]any, _ string, f marc.Field) (any, error) {
	out := subfields(f, "a", "e", "m", "q", "u")
	if out == nil {
		return nil, nil
	}
	for _, id := range f.GetAll("0") {
		id = strings.TrimSpace(id)
		switch {
		case inspireAuthorID.MatchString(id):
			out["i"] = append(value.List(out["i"]), inspireAuthorID.FindStringSubmatch(id)[1])
		case cernAuthorID.MatchString(id):
			out["j"] = append(value.List(out["j"]), "CCID-"+cernAuthorID.FindStringSubmatch(id)[1])
		case orcidAuthorID.MatchString(id):
			out["j"] = append(value.List(out["j"]), "ORCID:"+orcidAuthorID.FindStringSubmatch(id)[1])
		}
	}
	return out, nil
}

// pages keeps the page count of a 300, dropping "p" and similar.
func pages(_ map[string]any, _ string, f marc.Field) (any, error) {
	n := leadingDigits.FindString(f.Get("a"))
	if n == "" {
		return nil, nil
	}
	return map[string]any{"a": n}, nil
}

// subject maps CDS subject headings to INSPIRE categories. Headings with no
// counterpart become Other; fields from other schemes pass through.
func subject(_ map[string]any, _ string, f marc.Field) (any, error) {
	if !strings.EqualFold(f.Get("2"), "SzGeCERN") {
		return group(f), nil
	}
	var out []any
	for _, a := range f.GetAll("a") {
		term, ok := mapping.CDSSubject(a)
		if !ok {
			term = "Other"
		}
		out = append(out, map[string]any{"2": "INSPIRE", "a": term})
	}
	return out, nil
}

// files turns links to CDS-hosted files into attachments. Other links
// stay links.
func files(acc map[string]any, _ string, f marc.Field) (any, error) {
	var out []any
	for _, u := range f.GetAll("u") {
		if !cdsFileURL.MatchString(u) {
			engine.Append(acc, "8564_", map[string]any{"u": u, "y": f.Get("y")})
			continue
		}
		out = append(out, map[string]any{"a": u, "d": f.Get("y"), "t": "CDS"})
	}
	return out, nil
}

func collections(_ map[string]any, _ string, f marc.Field) (any, error) {
	var out []any
	for _, a := range f.GetAll("a") {
		marker, ok := documentTypes[strings.ToUpper(strings.TrimSpace(a))]
		if ok && marker != "" {
			out = append(out, map[string]any{"a": marker})
		}
	}
	return out, nil
}

// addHEP files every converted record in the literature collection.
func addHEP(out map[string]any, _ *marc.Record) (map[string]any, error) {
	for _, c := range value.Maps(out["980__"]) {
		if value.Text(c["a"]) == "HEP" {
			return out, nil
		}
	}
	out["980__"] = append(value.List(out["980__"]), map[string]any{"a": "HEP"})
	return out, nil
}
