// Package mapping holds the fixed vocabularies used by the translation rules:
// collection markers, document and degree types, arXiv categories, languages,
// subject categories, ranks and countries.
//
// All tables are embedded YAML decoded once at package initialisation and
// are read-only afterwards.
package mapping

import (
	"slices"
	"strings"
)

type collectionsTable struct {
	Collections      map[string]string `yaml:"collections"`
	DocumentTypes    map[string]string `yaml:"document_types"`
	PublicationTypes []string          `yaml:"publication_types"`
}

type degreesTable struct {
	DegreeTypes  map[string]string `yaml:"degree_types"`
	DegreeLabels map[string]string `yaml:"degree_labels"`
}

type arxivTable struct {
	Obsolete   map[string]string `yaml:"obsolete"`
	Categories []string          `yaml:"categories"`
}

type categoriesTable struct {
	Inspire     []string          `yaml:"inspire"`
	CDSSubjects map[string]string `yaml:"cds_subjects"`
	Ranks       map[string]string `yaml:"ranks"`
	Regions     []string          `yaml:"regions"`
}

// Language is one entry of the language table.
type Language struct {
	Code    string   `yaml:"code"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

type languagesTable struct {
	Languages []Language `yaml:"languages"`
}

type countriesTable struct {
	Countries map[string]string `yaml:"countries"`
}

var (
	collections = mustLoad[collectionsTable]("collections.yaml")
	degrees     = mustLoad[degreesTable]("degrees.yaml")
	arxiv       = mustLoad[arxivTable]("arxiv.yaml")
	categories  = mustLoad[categoriesTable]("categories.yaml")
	languages   = mustLoad[languagesTable]("languages.yaml")
	countries   = mustLoad[countriesTable]("countries.yaml")

	collectionMarkers   = invert(collections.Collections)
	documentTypeMarkers = invert(collections.DocumentTypes)
	languageIndex       = indexLanguages(languages.Languages)
	inspireIndex        = lowerIndex(categories.Inspire)
	arxivIndex          = lowerIndex(arxiv.Categories)
	countryCodes        = invertFold(countries.Countries)
)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func invertFold(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(v)] = k
	}
	return out
}

func lowerIndex(values []string) map[string]string {
	out := make(map[string]string, len(values))
	for _, v := range values {
		out[strings.ToLower(v)] = v
	}
	return out
}

func indexLanguages(langs []Language) map[string]*Language {
	out := make(map[string]*Language, len(langs)*3)
	for i := range langs {
		l := &langs[i]
		out[l.Code] = l
		out[l.Name] = l
		for _, a := range l.Aliases {
			out[a] = l
		}
	}
	return out
}

// Collection returns the collection name for a lower-case 980 marker.
func Collection(marker string) (string, bool) {
	c, ok := collections.Collections[strings.ToLower(marker)]
	return c, ok
}

// CollectionMarker returns the upper-case 980 marker for a collection name.
func CollectionMarker(name string) (string, bool) {
	m, ok := collectionMarkers[name]
	return strings.ToUpper(m), ok
}

// DocumentType returns the document_type value for a 980 marker.
func DocumentType(marker string) (string, bool) {
	d, ok := collections.DocumentTypes[strings.ToLower(marker)]
	return d, ok
}

// DocumentTypeMarker returns the camel-cased 980 marker for a document type,
// e.g. "conference paper" gives "ConferencePaper".
func DocumentTypeMarker(docType string) (string, bool) {
	if _, ok := documentTypeMarkers[docType]; !ok {
		return "", false
	}
	var b strings.Builder
	for _, w := range strings.Fields(docType) {
		b.WriteString(strings.ToUpper(w[:1]) + w[1:])
	}
	return b.String(), true
}

// IsPublicationType reports whether a 980 marker is a publication type.
func IsPublicationType(marker string) bool {
	return slices.Contains(collections.PublicationTypes, strings.ToLower(marker))
}

// DegreeType maps a free-form degree label to a degree type; unknown labels
// give "other".
func DegreeType(label string) string {
	if d, ok := degrees.DegreeTypes[strings.ToUpper(strings.TrimSpace(label))]; ok {
		return d
	}
	return "other"
}

// DegreeLabel is the inverse of DegreeType.
func DegreeLabel(degreeType string) string {
	if l, ok := degrees.DegreeLabels[degreeType]; ok {
		return l
	}
	return degrees.DegreeLabels["other"]
}

// ArxivCategory normalises a category, replacing obsolete archive names.
// The second result is false when the category is not a known arXiv category.
func ArxivCategory(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if c, ok := arxiv.Obsolete[strings.ToLower(raw)]; ok {
		return c, true
	}
	c, ok := arxivIndex[strings.ToLower(raw)]
	return c, ok
}

// InspireCategory returns the canonical spelling of an INSPIRE category term.
func InspireCategory(term string) (string, bool) {
	c, ok := inspireIndex[strings.ToLower(strings.TrimSpace(term))]
	return c, ok
}

// CDSSubject maps a CDS subject heading to an INSPIRE category term.
func CDSSubject(subject string) (string, bool) {
	c, ok := categories.CDSSubjects[strings.TrimSpace(subject)]
	return c, ok
}

// Rank normalises a position rank.
func Rank(raw string) (string, bool) {
	r, ok := categories.Ranks[strings.ToUpper(strings.TrimSpace(raw))]
	return r, ok
}

// IsRegion reports whether s names a job region.
func IsRegion(s string) bool {
	return slices.Contains(categories.Regions, s)
}

// LookupLanguage finds a language by ISO 639-1 or 639-2 code or by English
// name, case-insensitively.
func LookupLanguage(s string) (*Language, bool) {
	l, ok := languageIndex[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// CountryName returns the name for an ISO 3166 alpha-2 code.
func CountryName(code string) (string, bool) {
	n, ok := countries.Countries[strings.ToUpper(code)]
	return n, ok
}

// CountryCode returns the alpha-2 code for a country name or code.
func CountryCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, ok := countries.Countries[strings.ToUpper(s)]; ok && len(s) == 2 {
		return strings.ToUpper(s), true
	}
	c, ok := countryCodes[strings.ToLower(s)]
	return c, ok
}
