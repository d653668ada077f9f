package hep

import (
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

func authorRules(o *engine.Overdo[marc.Field]) {
	o.Flat("authors", authorsRule, "^100", "^700", "^701")
	o.Flat("collaborations", collaborations, "^110", "^710")
}

// authorsRule reads a 100, 700 or 701. The first a is the author the
// identifiers, emails and record link belong to; further a subfields, which
// old records use to pack several people into one field, only share the
// affiliations and roles.
func authorsRule(_ map[string]any, key string, f marc.Field) (any, error) {
	names := f.GetAll("a")
	if len(names) == 0 {
		return nil, nil
	}
	roles := authorRoles(key, f.GetAll("e"))
	affs := affiliations(f.GetAll("u"), f.GetAll("z"))
	raw := rawAffiliations(f.GetAll("v"))

	first := map[string]any{"full_name": helpers.NormalizeName(names[0])}
	setIf(first, "alternative_names", toAny(dedupeStrings(f.GetAll("q"))))
	setIf(first, "affiliations", affs)
	setIf(first, "affiliations_identifiers", affiliationIdentifiers(f.GetAll("t")))
	setIf(first, "raw_affiliations", raw)
	setIf(first, "emails", emails(f.GetAll("m")))
	setIf(first, "ids", authorIDs(f))
	setIf(first, "inspire_roles", roles)
	setIf(first, "record", ref(f, "x", authors))
	if f.Get("y") == "1" {
		first["curated_relation"] = true
	}

	out := []any{first}
	for _, name := range names[1:] {
		extra := map[string]any{"full_name": helpers.NormalizeName(name)}
		setIf(extra, "affiliations", affs)
		setIf(extra, "inspire_roles", roles)
		setIf(extra, "raw_affiliations", raw)
		out = append(out, extra)
	}
	return out, nil
}

func authorRoles(key string, labels []string) []any {
	var roles []string
	if strings.HasPrefix(key, "701") {
		roles = append(roles, "supervisor")
	}
	for _, e := range labels {
		if r := helpers.NormalizeRole(e); r != "" {
			roles = append(roles, r)
		}
	}
	return toAny(dedupeStrings(roles))
}

// affiliations pairs u with z only when both are given for every
// affiliation; otherwise the record links cannot be attributed.
func affiliations(names, recids []string) []any {
	var out []any
	paired := len(names) == len(recids)
	for i, name := range names {
		aff := map[string]any{"value": name}
		if paired {
			setIf(aff, "record", helpers.GetRecordRef(recids[i], institutions))
		}
		out = append(out, aff)
	}
	return out
}

func affiliationIdentifiers(values []string) []any {
	var out []any
	for _, t := range dedupeStrings(values) {
		scheme, val, ok := strings.Cut(t, ":")
		if !ok || scheme == "" || val == "" {
			continue
		}
		out = append(out, map[string]any{"schema": strings.TrimSpace(scheme), "value": strings.TrimSpace(val)})
	}
	return out
}

func rawAffiliations(values []string) []any {
	var out []any
	for _, v := range dedupeStrings(values) {
		out = append(out, map[string]any{"value": v})
	}
	return out
}

func emails(values []string) []any {
	var out []string
	for _, m := range values {
		m = strings.TrimSpace(m)
		if len(m) > 6 && strings.EqualFold(m[:6], "email:") {
			m = strings.TrimSpace(m[6:])
		}
		out = append(out, m)
	}
	return toAny(dedupeStrings(out))
}

// authorIDs classifies i (INSPIRE ID), j (prefixed identifiers) and w (BAI).
func authorIDs(f marc.Field) []any {
	var ids []any
	seen := make(map[string]bool)
	add := func(scheme, val string) {
		k := scheme + "\x00" + val
		if val == "" || seen[k] {
			return
		}
		seen[k] = true
		ids = append(ids, map[string]any{"schema": scheme, "value": val})
	}
	for _, i := range f.GetAll("i") {
		if helpers.IsInspireID(i) {
			add("INSPIRE ID", i)
		}
	}
	for _, j := range f.GetAll("j") {
		if scheme, val, ok := classifyAuthorID(j); ok {
			add(scheme, val)
		}
	}
	for _, w := range f.GetAll("w") {
		if helpers.IsBAI(w) {
			add("INSPIRE BAI", w)
		}
	}
	return ids
}

func classifyAuthorID(j string) (string, string, bool) {
	j = strings.TrimSpace(j)
	upper := strings.ToUpper(j)
	switch {
	case strings.HasPrefix(upper, "ORCID:"):
		return "ORCID", helpers.NormalizeORCID(j), true
	case strings.HasPrefix(upper, "JACOW-"):
		return "JACOW", "JACoW-" + j[6:], true
	case strings.HasPrefix(upper, "CCID-"):
		return "CERN", "CERN-" + j[5:], true
	case strings.HasPrefix(upper, "CERN"):
		if id, ok := helpers.NormalizeCERNID(j); ok {
			return "CERN", id, true
		}
	case helpers.IsInspireID(j):
		return "INSPIRE ID", j, true
	case helpers.IsORCID(j):
		return "ORCID", helpers.NormalizeORCID(j), true
	}
	return "", "", false
}

func collaborations(_ map[string]any, _ string, f marc.Field) (any, error) {
	record := ref(f, "0", experiments)
	var out []any
	for _, g := range f.GetAll("g") {
		c := map[string]any{"value": g}
		setIf(c, "record", record)
		out = append(out, c)
	}
	return out, nil
}

func dedupeStrings(values []string) []string {
	var out []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func authorRules2marc(o *engine.Overdo[any]) {
	o.Flat("100__", authors2marc, "^authors$")
	o.Flat("710__", collaborations2marc, "^collaborations$")
}

// authors2marc writes the first author who is not a supervisor as 100, the
// other authors as 700 and supervisors as 701.
func authors2marc(acc map[string]any, _ string, v any) (any, error) {
	var first any
	for _, a := range value.Maps(v) {
		sf, supervisor := authorSubfields(a)
		switch {
		case supervisor:
			engine.Append(acc, "701__", sf)
		case first == nil:
			first = sf
		default:
			engine.Append(acc, "700__", sf)
		}
	}
	if first == nil {
		return nil, nil
	}
	return first, nil
}

func authorSubfields(a map[string]any) (map[string]any, bool) {
	sf := map[string]any{
		"a": a["full_name"],
		"q": a["alternative_names"],
		"x": recid(a["record"]),
	}
	if value.Bool(a["curated_relation"]) {
		sf["y"] = "1"
	}

	var u, z, t, vv, m, i, j, w, e []any
	affs := value.Maps(a["affiliations"])
	for _, aff := range affs {
		u = append(u, aff["value"])
		if id := recid(aff["record"]); id != "" {
			z = append(z, id)
		}
	}
	if len(z) != len(affs) {
		z = nil
	}
	for _, id := range value.Maps(a["affiliations_identifiers"]) {
		t = append(t, value.Text(id["schema"])+":"+value.Text(id["value"]))
	}
	for _, raw := range value.Maps(a["raw_affiliations"]) {
		vv = append(vv, raw["value"])
	}
	for _, email := range value.Strings(a["emails"]) {
		m = append(m, email)
	}
	for _, id := range value.Maps(a["ids"]) {
		val := value.Text(id["value"])
		switch value.Text(id["schema"]) {
		case "INSPIRE ID":
			i = append(i, val)
		case "INSPIRE BAI":
			w = append(w, val)
		case "ORCID":
			j = append(j, "ORCID:"+val)
		case "JACOW":
			j = append(j, val)
		case "CERN":
			j = append(j, "CCID-"+strings.TrimPrefix(val, "CERN-"))
		}
	}
	supervisor := false
	for _, role := range value.Strings(a["inspire_roles"]) {
		if role == "supervisor" {
			supervisor = true
			continue
		}
		if label := helpers.RoleLabel(role); label != "" {
			e = append(e, label)
		}
	}
	sf["u"], sf["z"], sf["t"], sf["v"] = u, z, t, vv
	sf["m"], sf["i"], sf["j"], sf["w"], sf["e"] = m, i, j, w, e
	return sf, supervisor
}

func collaborations2marc(_ map[string]any, _ string, v any) (any, error) {
	var out []any
	for _, c := range value.Maps(v) {
		out = append(out, map[string]any{"g": c["value"], "0": recid(c["record"])})
	}
	return out, nil
}
