package helpers

import (
	"testing"

	"github.com/lehigh-university-libraries/inspire-dojson/config"
)

func useConfig(t *testing.T, mutate func(*config.Config)) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	prev := config.Set(cfg)
	t.Cleanup(func() { config.Set(prev) })
}

func TestGetRecordRef(t *testing.T) {
	useConfig(t, nil)

	ref := GetRecordRef("433620", "literature")
	if ref["$ref"] != "http://inspirehep.net/api/literature/433620" {
		t.Errorf("GetRecordRef: got %v", ref)
	}
	if GetRecordRef("abc", "literature") != nil {
		t.Error("non-numeric recid should give nil")
	}
	if GetRecordRef(0, "authors") != nil {
		t.Error("zero recid should give nil")
	}
}

func TestGetRecordRefScheme(t *testing.T) {
	useConfig(t, func(c *config.Config) {
		c.PreferredURLScheme = "https"
		c.ServerName = "localhost:5000"
	})

	ref := GetRecordRef(1, "conferences")
	if ref["$ref"] != "https://localhost:5000/api/conferences/1" {
		t.Errorf("GetRecordRef: got %v", ref)
	}
	if SchemaURL("hep") != "https://localhost:5000/schemas/records/hep.json" {
		t.Errorf("SchemaURL: got %q", SchemaURL("hep"))
	}
}

func TestGetRecid(t *testing.T) {
	tests := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{map[string]any{"$ref": "http://x/api/literature/123"}, 123, true},
		{"http://x/api/authors/7/", 7, true},
		{map[string]any{"$ref": "http://x/api/literature/abc"}, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := GetRecid(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("GetRecid(%v) = %d, %v", tt.in, got, ok)
		}
	}
	if RefEndpoint(map[string]any{"$ref": "http://x/api/journals/9"}) != "journals" {
		t.Error("RefEndpoint mismatch")
	}
}
