package hep

import (
	"slices"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

func forwardFilters() engine.Pipeline[*marc.Record] {
	e := entity()
	return engine.Pipeline[*marc.Record]{
		engine.AddSchema[*marc.Record](e.Schema),
		engine.AddCollection[*marc.Record](e.Collection),
		addTexkeys,
		addArxivCategories,
		moveIncompletePublicationInfo,
		ensureDocumentType,
		ensureCurated,
		orderFigures,
		uniqueKeys("documents"),
		uniqueKeys("figures"),
		engine.StripEmptyValues[*marc.Record](),
		engine.DedupeAllLists[*marc.Record](e.DedupeExempt...),
	}
}

// addTexkeys collects TeX keys from every 035: current keys (a) first,
// superseded ones (z) after.
func addTexkeys(out map[string]any, src *marc.Record) (map[string]any, error) {
	var current, old []any
	for _, f := range src.Fields {
		if f.Tag != "035" || !isTexkeySource(f.Get("9")) {
			continue
		}
		for _, a := range f.GetAll("a") {
			current = append(current, a)
		}
		for _, z := range f.GetAll("z") {
			old = append(old, z)
		}
	}
	if keys := append(current, old...); len(keys) > 0 {
		out["texkeys"] = keys
	}
	return out, nil
}

// addArxivCategories merges the 65017 arXiv categories into the first
// eprint, after the ones 037 carried.
func addArxivCategories(out map[string]any, src *marc.Record) (map[string]any, error) {
	eprints := value.Maps(out["arxiv_eprints"])
	if len(eprints) == 0 {
		return out, nil
	}
	var extra []string
	for _, f := range src.Fields {
		if f.Tag == "650" && strings.EqualFold(f.Get("2"), "arXiv") {
			extra = append(extra, f.GetAll("a")...)
		}
	}
	cats := value.List(eprints[0]["categories"])
	for _, c := range arxivCategories(extra) {
		if !slices.Contains(cats, c) {
			cats = append(cats, c)
		}
	}
	if len(cats) > 0 {
		eprints[0]["categories"] = cats
	}
	return out, nil
}

// moveIncompletePublicationInfo turns entries that only name a journal into
// "Submitted to" notes.
func moveIncompletePublicationInfo(out map[string]any, _ *marc.Record) (map[string]any, error) {
	infos := value.Maps(out["publication_info"])
	if len(infos) == 0 {
		return out, nil
	}
	var kept []any
	for _, pi := range infos {
		title := value.Text(pi["journal_title"])
		if title != "" && onlyKeys(pi, "journal_title", "hidden") {
			engine.Append(out, "public_notes", map[string]any{"value": "Submitted to " + title})
			continue
		}
		kept = append(kept, pi)
	}
	if len(kept) == 0 {
		delete(out, "publication_info")
	} else {
		out["publication_info"] = kept
	}
	return out, nil
}

func onlyKeys(m map[string]any, keys ...string) bool {
	for k := range m {
		if !slices.Contains(keys, k) {
			return false
		}
	}
	return true
}

func ensureDocumentType(out map[string]any, _ *marc.Record) (map[string]any, error) {
	if len(value.List(out["document_type"])) == 0 {
		out["document_type"] = []any{"article"}
	}
	return out, nil
}

func ensureCurated(out map[string]any, _ *marc.Record) (map[string]any, error) {
	engine.SetDefault(out, "curated", true)
	return out, nil
}

// orderFigures sorts figures that carry an order by it, keeps the others
// after them in input order and drops the order itself.
func orderFigures(out map[string]any, _ *marc.Record) (map[string]any, error) {
	figs := value.Maps(out["figures"])
	if len(figs) == 0 {
		return out, nil
	}
	slices.SortStableFunc(figs, func(a, b map[string]any) int {
		oa, okA := value.IntOK(a["order"])
		ob, okB := value.IntOK(b["order"])
		switch {
		case okA && okB:
			return oa - ob
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	sorted := make([]any, len(figs))
	for i, fig := range figs {
		delete(fig, "order")
		sorted[i] = fig
	}
	out["figures"] = sorted
	return out, nil
}

// uniqueKeys prefixes repeated attachment keys with their index in the
// list, prefixing again while the new key is already in use.
func uniqueKeys(field string) engine.Filter[*marc.Record] {
	return func(out map[string]any, _ *marc.Record) (map[string]any, error) {
		items := value.Maps(out[field])
		counts := make(map[string]int, len(items))
		for _, it := range items {
			counts[value.Text(it["key"])]++
		}
		seen := make(map[string]bool, len(items))
		for k, n := range counts {
			if n == 1 {
				seen[k] = true
			}
		}
		for i, it := range items {
			k := value.Text(it["key"])
			if counts[k] == 1 {
				continue
			}
			prefix := strconv.Itoa(i) + "_"
			k = prefix + k
			for seen[k] {
				k = prefix + k
			}
			seen[k] = true
			it["key"] = k
		}
		return out, nil
	}
}

func reverseFilters() engine.Pipeline[map[string]any] {
	return engine.Pipeline[map[string]any]{
		curationNote,
		engine.StripEmptyValues[map[string]any](),
	}
}

// curationNote flags uncurated records the way the legacy system does: a
// leading 500 note, temporary for core records and brief otherwise.
func curationNote(out map[string]any, src map[string]any) (map[string]any, error) {
	set, curated := value.IsSet(src, "curated")
	if !set || curated {
		return out, nil
	}
	note := briefEntry
	if value.Bool(src["core"]) {
		note = temporaryEntry
	}
	notes := value.List(out["500__"])
	for _, n := range value.Maps(notes) {
		if value.Text(n["a"]) == note {
			return out, nil
		}
	}
	out["500__"] = append([]any{map[string]any{"a": note}}, notes...)
	return out, nil
}
