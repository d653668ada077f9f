// Package reference builds the structured citations stored under a
// literature record's references list.
//
// A Builder accumulates the pieces of one citation as the subfields of a
// 999C5 field are read, in whatever order they come, and Obj renders the
// citation at any point. Each call files its input under the right part of
// the citation: arXiv identifiers given as report numbers become the eprint,
// DOIs and handles given as generic identifiers are told apart, and a
// pubnote that cannot be split is kept as free text.
package reference

import (
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

const (
	minYear = 1000
	maxYear = 2100
)

// Builder is a draft citation. The zero value is not usable; call New.
type Builder struct {
	ref       map[string]any
	record    map[string]any
	curated   bool
	legacy    bool
	rawRefs   []any
	hasPubRef bool
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{ref: make(map[string]any)}
}

func (b *Builder) list(key string, v any) {
	b.ref[key] = append(value.List(b.ref[key]), v)
}

func (b *Builder) sub(key string) map[string]any {
	m, ok := b.ref[key].(map[string]any)
	if !ok {
		m = make(map[string]any)
		b.ref[key] = m
	}
	return m
}

// AddAuthor records an author. role is an inspire role; "author" is the
// default and is not stored.
func (b *Builder) AddAuthor(name, role string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	author := map[string]any{"full_name": helpers.NormalizeName(name)}
	if role != "" && role != "author" {
		author["inspire_role"] = role
	}
	b.list("authors", author)
}

// AddTitle sets the cited title. Further titles are kept as misc.
func (b *Builder) AddTitle(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	if _, ok := b.ref["title"]; ok {
		b.AddMisc(title)
		return
	}
	b.ref["title"] = map[string]any{"title": title}
}

// AddParentTitle sets the title of the book or proceedings containing the
// cited work.
func (b *Builder) AddParentTitle(title string) {
	if title = strings.TrimSpace(title); title != "" {
		b.sub("publication_info")["parent_title"] = title
	}
}

// SetPubnote splits a "Journal,Volume,Pages" note into publication info.
// Notes that do not have exactly three parts, or a second note when one has
// already been set, are kept as misc.
func (b *Builder) SetPubnote(pubnote string) {
	pubnote = strings.TrimSpace(pubnote)
	if pubnote == "" {
		return
	}
	parts := strings.Split(pubnote, ",")
	if b.hasPubRef || len(parts) != 3 {
		b.AddMisc(pubnote)
		return
	}
	title := strings.TrimSpace(parts[0])
	volume := strings.TrimSpace(parts[1])
	start, end, artid := helpers.SplitPageArtid(parts[2])
	if title == "" || volume == "" {
		b.AddMisc(pubnote)
		return
	}
	pi := b.sub("publication_info")
	pi["journal_title"] = title
	pi["journal_volume"] = volume
	setIf(pi, "page_start", start)
	setIf(pi, "page_end", end)
	setIf(pi, "artid", artid)
	b.hasPubRef = true
}

// SetYear records the publication year when it is plausible.
func (b *Builder) SetYear(year string) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < minYear || y > maxYear {
		return
	}
	b.sub("publication_info")["year"] = y
}

// AddReportNumber records a report number, or the arXiv eprint when the
// number is an arXiv identifier.
func (b *Builder) AddReportNumber(rn string) {
	rn = strings.TrimSpace(rn)
	if rn == "" {
		return
	}
	if helpers.IsArxiv(rn) {
		b.ref["arxiv_eprint"] = helpers.NormalizeArxiv(rn)
		return
	}
	b.list("report_numbers", rn)
}

// AddURL records a link to the cited work.
func (b *Builder) AddURL(url string) {
	if url = strings.TrimSpace(url); url != "" {
		b.list("urls", map[string]any{"value": url})
	}
}

// AddMisc keeps free text that fits nowhere else.
func (b *Builder) AddMisc(misc string) {
	if misc = strings.TrimSpace(misc); misc != "" {
		b.list("misc", misc)
	}
}

// SetTexkey sets the cited work's TeX key.
func (b *Builder) SetTexkey(key string) {
	setIf(b.ref, "texkey", strings.TrimSpace(key))
}

// SetPublisher sets the publisher of the cited work.
func (b *Builder) SetPublisher(publisher string) {
	if publisher = strings.TrimSpace(publisher); publisher != "" {
		b.sub("imprint")["publisher"] = publisher
	}
}

// SetLabel sets the citation label as printed in the citing paper ("12").
func (b *Builder) SetLabel(label string) {
	label = strings.Trim(strings.TrimSpace(label), "[]")
	setIf(b.ref, "label", label)
}

// AddCollaboration records a collaboration, dropping the word
// "Collaboration".
func (b *Builder) AddCollaboration(name string) {
	name = strings.TrimSpace(name)
	for _, suffix := range []string{" Collaboration", " collaboration"} {
		name = strings.TrimSuffix(name, suffix)
	}
	if name != "" {
		b.list("collaborations", name)
	}
}

// AddRawReference keeps the unparsed citation text.
func (b *Builder) AddRawReference(raw, source string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	r := map[string]any{"schema": "text", "value": raw}
	setIf(r, "source", source)
	b.rawRefs = append(b.rawRefs, r)
}

// AddUID files a generic identifier: DOI, handle, URN, arXiv id, conference
// number or ISBN. Anything else is dropped.
func (b *Builder) AddUID(uid string) {
	uid = strings.TrimSpace(uid)
	switch {
	case uid == "":
	case helpers.IsDOI(uid):
		b.list("dois", helpers.NormalizeDOI(uid))
	case strings.HasPrefix(strings.ToLower(uid), "hdl:") || helpers.IsHandle(uid):
		b.list("persistent_identifiers", map[string]any{
			"schema": "HDL",
			"value":  strings.TrimPrefix(strings.TrimPrefix(uid, "hdl:"), "HDL:"),
		})
	case helpers.IsURN(uid):
		b.list("persistent_identifiers", map[string]any{"schema": "URN", "value": uid})
	case helpers.IsArxiv(uid):
		b.ref["arxiv_eprint"] = helpers.NormalizeArxiv(uid)
	case helpers.IsCNUM(helpers.NormalizeCNUM(uid)):
		b.sub("publication_info")["cnum"] = helpers.NormalizeCNUM(uid)
	default:
		if isbn, err := helpers.NormalizeISBN(uid); err == nil {
			b.ref["isbn"] = isbn
		}
	}
}

// SetRecord links the citation to a record.
func (b *Builder) SetRecord(ref map[string]any) {
	if ref != nil {
		b.record = ref
	}
}

// Curate marks the record link as verified by a curator.
func (b *Builder) Curate() {
	b.curated = true
}

// SetLegacyCurated marks a citation curated in the legacy system without a
// verified link.
func (b *Builder) SetLegacyCurated() {
	b.legacy = true
}

// Obj renders the citation. The returned map is independent of the
// builder, which may keep accumulating.
func (b *Builder) Obj() map[string]any {
	out := map[string]any{"curated_relation": b.curated}
	if ref, ok := helpers.StripEmptyValues(b.ref).(map[string]any); ok {
		out["reference"] = ref
	}
	if b.record != nil {
		out["record"] = b.record
	}
	if len(b.rawRefs) > 0 {
		out["raw_refs"] = helpers.StripEmptyValues(b.rawRefs)
	}
	if b.legacy {
		out["legacy_curated"] = true
	}
	return out
}

func setIf(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}
