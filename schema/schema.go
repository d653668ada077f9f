// Package schema describes the record kinds the translator knows about: the
// JSON schema each one validates against, its collection name, the API
// endpoint used in $ref links and the 980 markers that identify it in MARC.
package schema

import (
	"embed"
	"slices"
	"strings"
)

//go:embed entities.yaml
var embedded embed.FS

// Entity describes one record kind.
type Entity struct {
	// Name is the rule-set name (hep, hepnames, conferences, ...).
	Name string `yaml:"name"`

	// Schema is the stem of the JSON schema file (hep, authors, ...).
	Schema string `yaml:"schema"`

	// Collection is the value stamped into _collections.
	Collection string `yaml:"collection"`

	// Endpoint is the API path segment used in $ref URLs.
	Endpoint string `yaml:"endpoint"`

	// Markers are the lower-case 980__a values that select this entity.
	Markers []string `yaml:"markers"`

	// Reverse is true when JSON to MARC rules exist.
	Reverse bool `yaml:"reverse"`

	// Refused entities are recognised but cannot be translated from MARC.
	Refused bool `yaml:"refused"`

	// DedupeExempt lists keys whose lists keep duplicates.
	DedupeExempt []string `yaml:"dedupe_exempt"`
}

// Matches reports whether any of the markers selects e.
func (e *Entity) Matches(markers []string) bool {
	for _, m := range markers {
		if slices.Contains(e.Markers, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// IsFallback is true for the entity used when no marker matches.
func (e *Entity) IsFallback() bool {
	return len(e.Markers) == 0
}

// URL is the canonical $schema URL for the entity under base.
func (e *Entity) URL(base string) string {
	return strings.TrimSuffix(base, "/") + "/schemas/records/" + e.Schema + ".json"
}

// Stem extracts the schema name from a $schema value, accepting full URLs,
// relative paths and bare file names.
func Stem(schemaURL string) string {
	s := schemaURL
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSuffix(s, ".json")
}
