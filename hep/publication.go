package hep

import (
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

var relations = map[string]string{
	"780": "predecessor",
	"785": "successor",
	"787": "commented",
}

func publicationRules(o *engine.Overdo[marc.Field]) {
	o.Each("imprints", imprints, "^260")
	o.Over("preprint_date", preprintDate, "^269")
	o.Over("number_of_pages", numberOfPages, "^300")
	o.Each("book_series", bookSeries, "^490")
	o.Each("publication_info", publicationInfo, "^773")
	o.Each("related_records", relatedRecords, "^78002", "^78502", "^78708")
	o.Each("funding_info", fundingInfo, "^536")
	o.Each("license", license, "^540")
	o.Each("copyright", copyright, "^542")
}

func imprints(_ map[string]any, _ string, f marc.Field) (any, error) {
	imprint := map[string]any{}
	setIf(imprint, "place", f.Get("a"))
	setIf(imprint, "publisher", f.Get("b"))
	setIf(imprint, "date", helpers.NormalizeDateAggressively(f.Get("c")))
	return imprint, nil
}

func preprintDate(_ map[string]any, _ string, f marc.Field) (any, error) {
	if d := helpers.NormalizeDateAggressively(f.Get("c")); d != "" {
		return d, nil
	}
	return nil, nil
}

// numberOfPages takes the leading number of 300__a ("12 p.").
func numberOfPages(_ map[string]any, _ string, f marc.Field) (any, error) {
	a := strings.TrimSpace(f.Get("a"))
	end := strings.IndexFunc(a, func(r rune) bool { return r < '0' || r > '9' })
	if end >= 0 {
		a = a[:end]
	}
	if n, ok := positiveInt(a); ok {
		return n, nil
	}
	return nil, nil
}

func bookSeries(_ map[string]any, _ string, f marc.Field) (any, error) {
	series := map[string]any{}
	setIf(series, "title", f.Get("a"))
	setIf(series, "volume", f.Get("v"))
	return series, nil
}

// publicationInfo reads a 773. A first indicator of 1 marks a hidden entry.
// Repeated c subfields fill the page range first and the article id next.
func publicationInfo(_ map[string]any, key string, f marc.Field) (any, error) {
	pi := map[string]any{}
	for _, c := range f.GetAll("c") {
		start, end, artid := helpers.SplitPageArtid(c)
		if _, ok := pi["page_start"]; !ok && start != "" {
			setIf(pi, "page_start", start)
			setIf(pi, "page_end", end)
		}
		if _, ok := pi["artid"]; !ok {
			setIf(pi, "artid", artid)
		}
	}
	setIf(pi, "material", strings.ToLower(f.Get("m")))
	setIf(pi, "journal_issue", f.Get("n"))
	setIf(pi, "journal_title", f.Get("p"))
	setIf(pi, "journal_volume", f.Get("v"))
	if w := f.Get("w"); w != "" {
		pi["cnum"] = helpers.NormalizeCNUM(w)
	}
	setIf(pi, "pubinfo_freetext", f.Get("x"))
	if y, ok := positiveInt(f.Get("y")); ok {
		pi["year"] = y
	}
	if z := f.Get("z"); z != "" {
		if isbn, err := helpers.NormalizeISBN(z); err == nil {
			pi["parent_isbn"] = isbn
		} else {
			pi["parent_isbn"] = z
		}
	}
	setIf(pi, "parent_report_number", f.Get("r"))
	setIf(pi, "parent_record", ref(f, "0", literature))
	setIf(pi, "journal_record", ref(f, "1", journals))
	setIf(pi, "conference_record", ref(f, "2", conferences))
	if len(key) > 3 && key[3] == '1' {
		pi["hidden"] = true
	}
	if len(pi) == 0 {
		return nil, nil
	}
	return pi, nil
}

func relatedRecords(_ map[string]any, key string, f marc.Field) (any, error) {
	rr := map[string]any{"relation": relations[key[:3]]}
	setIf(rr, "record", ref(f, "w", literature))
	setIf(rr, "relation_freetext", f.Get("i"))
	if _, ok := rr["record"]; !ok {
		return nil, nil
	}
	return rr, nil
}

func fundingInfo(_ map[string]any, _ string, f marc.Field) (any, error) {
	fi := map[string]any{}
	setIf(fi, "agency", f.Get("a"))
	setIf(fi, "grant_number", f.Get("c"))
	setIf(fi, "project_number", f.Get("f"))
	return fi, nil
}

func license(_ map[string]any, _ string, f marc.Field) (any, error) {
	l := map[string]any{}
	setIf(l, "license", f.Get("a"))
	setIf(l, "imposing", f.Get("b"))
	setIf(l, "url", f.Get("u"))
	setIf(l, "material", strings.ToLower(f.Get("3")))
	return l, nil
}

func copyright(_ map[string]any, _ string, f marc.Field) (any, error) {
	c := map[string]any{}
	setIf(c, "holder", f.Get("d"))
	setIf(c, "statement", f.Get("f"))
	setIf(c, "url", f.Get("u"))
	if y, ok := positiveInt(f.Get("g")); ok {
		c["year"] = y
	}
	setIf(c, "material", strings.ToLower(f.Get("3")))
	return c, nil
}

func publicationRules2marc(o *engine.Overdo[any]) {
	o.Flat("260__", imprints2marc, "^imprints$")
	o.Flat("269__", func(_ map[string]any, _ string, v any) (any, error) {
		return map[string]any{"c": value.Text(v)}, nil
	}, "^preprint_date$")
	o.Flat("300__", func(_ map[string]any, _ string, v any) (any, error) {
		return map[string]any{"a": value.Text(v)}, nil
	}, "^number_of_pages$")
	o.Flat("490__", bookSeries2marc, "^book_series$")
	o.Flat("773__", publicationInfo2marc, "^publication_info$")
	o.Flat("78002", relatedRecords2marc, "^related_records$")
	o.Flat("536__", fundingInfo2marc, "^funding_info$")
	o.Flat("540__", license2marc, "^license$")
	o.Flat("542__", copyright2marc, "^copyright$")
}

func imprints2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, i := range value.Maps(v) {
		out = append(out, map[string]any{"a": i["place"], "b": i["publisher"], "c": i["date"]})
	}
	return out, nil
}

func bookSeries2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, s := range value.Maps(v) {
		out = append(out, map[string]any{"a": s["title"], "v": s["volume"]})
	}
	return out, nil
}

// publicationInfo2marc writes visible entries as 773 and hidden ones into
// the 7731 bucket. Pages are joined back into c, with the article id as a
// second c.
func publicationInfo2marc(acc map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, pi := range value.Maps(v) {
		var c []any
		if pages := helpers.JoinPages(value.Text(pi["page_start"]), value.Text(pi["page_end"])); pages != "" {
			c = append(c, pages)
		}
		if artid := value.Text(pi["artid"]); artid != "" {
			c = append(c, artid)
		}
		sf := map[string]any{
			"c": c,
			"m": pi["material"],
			"n": pi["journal_issue"],
			"p": pi["journal_title"],
			"v": pi["journal_volume"],
			"w": pi["cnum"],
			"x": pi["pubinfo_freetext"],
			"y": pi["year"],
			"z": pi["parent_isbn"],
			"r": pi["parent_report_number"],
			"0": recid(pi["parent_record"]),
			"1": recid(pi["journal_record"]),
			"2": recid(pi["conference_record"]),
		}
		if value.Bool(pi["hidden"]) {
			engine.Append(acc, "7731_", sf)
			continue
		}
		out = append(out, sf)
	}
	return out, nil
}

// relatedRecords2marc writes predecessors as 78002 and the other relations
// into their own tags as side effects.
func relatedRecords2marc(acc map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, rr := range value.Maps(v) {
		sf := map[string]any{"w": recid(rr["record"]), "i": rr["relation_freetext"]}
		switch value.Text(rr["relation"]) {
		case "successor":
			engine.Append(acc, "78502", sf)
		case "commented":
			engine.Append(acc, "78708", sf)
		default:
			out = append(out, sf)
		}
	}
	return out, nil
}

func fundingInfo2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, fi := range value.Maps(v) {
		out = append(out, map[string]any{"a": fi["agency"], "c": fi["grant_number"], "f": fi["project_number"]})
	}
	return out, nil
}

func license2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, l := range value.Maps(v) {
		out = append(out, map[string]any{"a": l["license"], "b": l["imposing"], "u": l["url"], "3": l["material"]})
	}
	return out, nil
}

func copyright2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, c := range value.Maps(v) {
		year := ""
		if y, ok := value.IntOK(c["year"]); ok {
			year = strconv.Itoa(y)
		}
		out = append(out, map[string]any{
			"d": c["holder"], "f": c["statement"], "u": c["url"], "g": year, "3": c["material"],
		})
	}
	return out, nil
}
