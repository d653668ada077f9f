package hep

import (
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/reference"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

func referenceRules(o *engine.Overdo[marc.Field]) {
	o.Each("references", references, "^999C5")
}

// references reads a 999C5 in subfield order. z=1 together with a CURATOR
// stamp marks a verified record link; the stamp alone only records that a
// curator touched the citation.
func references(_ map[string]any, _ string, f marc.Field) (any, error) {
	b := reference.New()
	for _, sf := range f.Subfields {
		v := sf.Value
		switch sf.Code {
		case "0":
			b.SetRecord(helpers.GetRecordRef(v, literature))
		case "a", "b", "i":
			b.AddUID(v)
		case "c":
			b.AddCollaboration(v)
		case "e":
			b.AddAuthor(v, "editor")
		case "h":
			b.AddAuthor(v, "")
		case "k":
			b.SetTexkey(v)
		case "m":
			b.AddMisc(v)
		case "o":
			b.SetLabel(v)
		case "p":
			b.SetPublisher(v)
		case "q":
			b.AddParentTitle(v)
		case "r":
			b.AddReportNumber(v)
		case "s":
			b.SetPubnote(v)
		case "t":
			b.AddTitle(v)
		case "u":
			b.AddURL(v)
		case "x":
			b.AddRawReference(v, "")
		case "y":
			b.SetYear(v)
		}
	}
	if isCurator(f.Get("9")) {
		if f.Get("z") == "1" {
			b.Curate()
		} else {
			b.SetLegacyCurated()
		}
	}
	return b.Obj(), nil
}

func referenceRules2marc(o *engine.Overdo[any]) {
	o.Flat("999C5", references2marc, "^references$")
}

func references2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, r := range value.Maps(v) {
		out = append(out, referenceSubfields(r))
	}
	return out, nil
}

func referenceSubfields(r map[string]any) map[string]any {
	ref := value.Map(r["reference"])
	pi := value.Map(ref["publication_info"])

	var uids []any
	for _, doi := range value.Strings(ref["dois"]) {
		uids = append(uids, "doi:"+doi)
	}
	for _, pid := range value.Maps(ref["persistent_identifiers"]) {
		val := value.Text(pid["value"])
		if value.Text(pid["schema"]) == "HDL" {
			val = "hdl:" + val
		}
		uids = append(uids, val)
	}

	var editors, authors []any
	for _, a := range value.Maps(ref["authors"]) {
		if value.Text(a["inspire_role"]) == "editor" {
			editors = append(editors, a["full_name"])
		} else {
			authors = append(authors, a["full_name"])
		}
	}

	reports := value.List(ref["report_numbers"])
	if e := value.Text(ref["arxiv_eprint"]); e != "" {
		if !strings.Contains(e, "/") {
			e = "arXiv:" + e
		}
		reports = append([]any{e}, reports...)
	}

	var urls []any
	for _, u := range value.Maps(ref["urls"]) {
		urls = append(urls, u["value"])
	}
	var raw []any
	for _, rr := range value.Maps(r["raw_refs"]) {
		raw = append(raw, rr["value"])
	}

	sf := map[string]any{
		"0": recid(r["record"]),
		"a": uids,
		"b": pi["cnum"],
		"c": ref["collaborations"],
		"e": editors,
		"h": authors,
		"i": ref["isbn"],
		"k": ref["texkey"],
		"m": ref["misc"],
		"o": ref["label"],
		"p": value.Get(ref, "imprint.publisher"),
		"q": pi["parent_title"],
		"r": reports,
		"s": pubnote(pi),
		"t": value.Get(ref, "title.title"),
		"u": urls,
		"x": raw,
		"y": pi["year"],
	}
	switch {
	case value.Bool(r["curated_relation"]):
		sf["9"], sf["z"] = "CURATOR", "1"
	case value.Bool(r["legacy_curated"]):
		sf["9"] = "CURATOR"
	}
	return sf
}

// pubnote rebuilds the "Journal,Volume,Pages" note.
func pubnote(pi map[string]any) string {
	title, volume := value.Text(pi["journal_title"]), value.Text(pi["journal_volume"])
	if title == "" || volume == "" {
		return ""
	}
	pages := helpers.JoinPages(value.Text(pi["page_start"]), value.Text(pi["page_end"]))
	if pages == "" {
		pages = value.Text(pi["artid"])
	}
	return title + "," + volume + "," + pages
}
