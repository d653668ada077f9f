package hep

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

// figureOrder is the five-digit position legacy records prefix figure
// captions with.
var figureOrder = regexp.MustCompile(`^(\d{5})\s*(.*)$`)

func attachmentRules(o *engine.Overdo[marc.Field]) {
	o.Over("documents", attachments, "^FFT")
}

// attachments reads an FFT. Images go to figures, ordered by their caption,
// and other files become documents. Context files are dropped.
func attachments(acc map[string]any, _ string, f marc.Field) (any, error) {
	kind := strings.TrimSpace(f.Get("t"))
	ext := strings.ToLower(f.Get("f"))
	url := f.Get("a")
	if url == "" || strings.EqualFold(kind, "context") || strings.HasSuffix(ext, "context") {
		return nil, nil
	}
	if !helpers.IsURL(url) {
		url = helpers.AFSURL(url)
	}

	key := f.Get("n")
	if key == "" {
		key = strings.TrimSuffix(helpers.FileName(url), path.Ext(helpers.FileName(url)))
	}
	if ext == "" {
		ext = strings.ToLower(path.Ext(helpers.FileName(f.Get("a"))))
	}
	key += ext

	description := f.Get("d")
	if ext == ".png" || strings.EqualFold(kind, "Plot") {
		fig := map[string]any{"key": key, "url": url}
		if m := figureOrder.FindStringSubmatch(description); m != nil {
			n, _ := strconv.Atoi(m[1])
			fig["order"] = n
			description = m[2]
		}
		setIf(fig, "caption", description)
		if src := sourceOf(kind); src != "" {
			fig["source"] = src
		}
		engine.Append(acc, "figures", fig)
		return nil, nil
	}

	doc := map[string]any{"key": key, "url": url}
	if strings.EqualFold(description, "fulltext") {
		doc["fulltext"] = true
	} else {
		setIf(doc, "description", description)
	}
	if strings.Contains(strings.ToUpper(f.Get("o")), "HIDDEN") {
		doc["hidden"] = true
	}
	if src := sourceOf(kind); src != "" {
		doc["source"] = src
		if src == "arxiv" {
			doc["hidden"] = true
		}
	}
	return append(value.List(acc["documents"]), doc), nil
}

func sourceOf(kind string) string {
	if strings.EqualFold(kind, "arXiv") {
		return "arxiv"
	}
	return ""
}

func attachmentRules2marc(o *engine.Overdo[any]) {
	o.Flat("FFT__", documents2marc, "^documents$")
	o.Flat("FFT__", figures2marc, "^figures$")
}

func fileParts(key string) (name, ext string) {
	ext = path.Ext(key)
	return strings.TrimSuffix(key, ext), ext
}

func documents2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, doc := range value.Maps(v) {
		name, ext := fileParts(value.Text(doc["key"]))
		sf := map[string]any{"a": doc["url"], "n": name, "f": ext, "t": "Main", "d": doc["description"]}
		if value.Bool(doc["fulltext"]) {
			sf["d"] = "fulltext"
		}
		if value.Text(doc["source"]) == "arxiv" {
			sf["t"] = "arXiv"
		} else if value.Bool(doc["hidden"]) {
			sf["o"] = "HIDDEN"
		}
		out = append(out, sf)
	}
	return out, nil
}

// figures2marc numbers the captions by position so that the order survives
// the trip back.
func figures2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for i, fig := range value.Maps(v) {
		name, ext := fileParts(value.Text(fig["key"]))
		d := strings.TrimSpace(fmt.Sprintf("%05d %s", i, value.Text(fig["caption"])))
		t := "Plot"
		if value.Text(fig["source"]) == "arxiv" {
			t = "arXiv"
		}
		out = append(out, map[string]any{"a": fig["url"], "n": name, "f": ext, "t": t, "d": d})
	}
	return out, nil
}
