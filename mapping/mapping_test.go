package mapping

import (
	"strings"
	"testing"
)

func TestCollections(t *testing.T) {
	if c, ok := Collection("HEP"); !ok || c != "Literature" {
		t.Errorf("Collection(HEP): got %q, %v", c, ok)
	}
	if m, ok := CollectionMarker("CDS Hidden"); !ok || m != "CDSHIDDEN" {
		t.Errorf("CollectionMarker: got %q, %v", m, ok)
	}
	if _, ok := Collection("citeable"); ok {
		t.Error("citeable must not be a collection")
	}
}

func TestDocumentTypes(t *testing.T) {
	tests := []struct {
		marker string
		want   string
	}{
		{"Book", "book"},
		{"BookChapter", "book chapter"},
		{"CONFERENCEPAPER", "conference paper"},
		{"ActivityReport", "activity report"},
	}
	for _, tt := range tests {
		got, ok := DocumentType(tt.marker)
		if !ok || got != tt.want {
			t.Errorf("DocumentType(%q) = %q, %v; want %q", tt.marker, got, ok, tt.want)
		}
		back, ok := DocumentTypeMarker(tt.want)
		if !ok || !strings.EqualFold(back, tt.marker) {
			t.Errorf("DocumentTypeMarker(%q) = %q", tt.want, back)
		}
	}
	if !IsPublicationType("Review") {
		t.Error("review should be a publication type")
	}
}

func TestDegreeType(t *testing.T) {
	tests := map[string]string{
		"PhD":          "phd",
		"Ph.D. Thesis": "phd",
		"PDF":          "phd",
		"Master":       "master",
		"bachelor":     "bachelor",
		"Laurea":       "laurea",
		"Diploma":      "diploma",
		"Habilitation": "habilitation",
		"Licentiate":   "other",
	}
	for in, want := range tests {
		if got := DegreeType(in); got != want {
			t.Errorf("DegreeType(%q) = %q, want %q", in, got, want)
		}
	}
	if DegreeLabel("phd") != "PhD" || DegreeLabel("unknown") != "Thesis" {
		t.Error("unexpected degree labels")
	}
}

func TestArxivCategory(t *testing.T) {
	if c, ok := ArxivCategory("solv-int"); !ok || c != "nlin.SI" {
		t.Errorf("obsolete: got %q, %v", c, ok)
	}
	if c, ok := ArxivCategory("HEP-PH"); !ok || c != "hep-ph" {
		t.Errorf("case: got %q, %v", c, ok)
	}
	if _, ok := ArxivCategory("Theory-HEP"); ok {
		t.Error("Theory-HEP is not an arXiv category")
	}
}

func TestLanguages(t *testing.T) {
	for _, in := range []string{"fre", "fra", "French", "fr"} {
		l, ok := LookupLanguage(in)
		if !ok || l.Code != "fr" || l.Name != "french" {
			t.Errorf("LookupLanguage(%q) = %+v, %v", in, l, ok)
		}
	}
}

func TestCategoriesAndCountries(t *testing.T) {
	if c, ok := InspireCategory("theory-hep"); !ok || c != "Theory-HEP" {
		t.Errorf("InspireCategory: got %q", c)
	}
	if c, ok := CDSSubject("Particle Physics - Experiment"); !ok || c != "Experiment-HEP" {
		t.Errorf("CDSSubject: got %q", c)
	}
	if r, ok := Rank("phd student"); !ok || r != "PHD" {
		t.Errorf("Rank: got %q", r)
	}
	if c, ok := CountryCode("Switzerland"); !ok || c != "CH" {
		t.Errorf("CountryCode: got %q", c)
	}
	if n, ok := CountryName("it"); !ok || n != "Italy" {
		t.Errorf("CountryName: got %q", n)
	}
}
