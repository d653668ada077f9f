package hep

import (
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

// flags are 980__a markers that set a boolean rather than naming a
// collection or a document type.
var flags = map[string]struct {
	key string
	val bool
}{
	"citeable":  {"citeable", true},
	"core":      {"core", true},
	"noncore":   {"core", false},
	"published": {"refereed", true},
	"withdrawn": {"withdrawn", true},
	"deleted":   {"deleted", true},
}

func collectionRules(o *engine.Overdo[marc.Field]) {
	o.Over("_collections", collections, "^980")
}

// collections reads the 980 markers case-insensitively.
func collections(acc map[string]any, _ string, f marc.Field) (any, error) {
	colls := value.List(acc["_collections"])
	for _, a := range f.GetAll("a") {
		marker := strings.ToLower(strings.TrimSpace(a))
		if flag, ok := flags[marker]; ok {
			acc[flag.key] = flag.val
			continue
		}
		if c, ok := mapping.Collection(marker); ok {
			colls = append(colls, c)
			continue
		}
		if dt, ok := mapping.DocumentType(marker); ok {
			engine.Append(acc, "document_type", dt)
			continue
		}
		if mapping.IsPublicationType(marker) {
			engine.Append(acc, "publication_type", marker)
		}
	}
	if len(colls) == 0 {
		return nil, nil
	}
	return colls, nil
}

func collectionRules2marc(o *engine.Overdo[any]) {
	o.Flat("980__", collections2marc, "^_collections$")
	o.Flat("980__", documentType2marc, "^document_type$", "^publication_type$")
	o.Flat("980__", func(_ map[string]any, key string, v any) (any, error) {
		for marker, flag := range flags {
			if flag.key == key && flag.val == value.Bool(v) && marker != "deleted" {
				return map[string]any{"a": strings.ToUpper(marker)}, nil
			}
		}
		return nil, nil
	}, "^citeable$", "^core$", "^refereed$", "^withdrawn$")
}

func collections2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, c := range value.Strings(v) {
		if m, ok := mapping.CollectionMarker(c); ok {
			out = append(out, map[string]any{"a": m})
		}
	}
	return out, nil
}

func documentType2marc(_ map[string]any, key string, v any) (any, error) {
	var out []any
	for _, dt := range value.Strings(v) {
		if key == "publication_type" {
			out = append(out, map[string]any{"a": dt})
			continue
		}
		if m, ok := mapping.DocumentTypeMarker(dt); ok {
			out = append(out, map[string]any{"a": m})
		}
	}
	return out, nil
}
