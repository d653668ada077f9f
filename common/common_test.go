package common

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lehigh-university-libraries/inspire-dojson/config"
	"github.com/lehigh-university-libraries/inspire-dojson/engine"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

func forward(t *testing.T, xml string) map[string]any {
	t.Helper()
	rec, err := marc.ParseRecord([]byte(xml))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	o := engine.New[marc.Field]("test")
	Forward(o, "literature")
	out, err := o.Do(rec.Items())
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	return out
}

func TestForward(t *testing.T) {
	prev := config.Set(config.Default())
	t.Cleanup(func() { config.Set(prev) })

	got := forward(t, `<record>
  <controlfield tag="001">1403324</controlfield>
  <datafield tag="961" ind1=" " ind2=" ">
    <subfield code="x">2015-10-30</subfield>
    <subfield code="c">20151030120000.0</subfield>
  </datafield>
  <datafield tag="970" ind1=" " ind2=" ">
    <subfield code="d">1403325</subfield>
  </datafield>
  <datafield tag="981" ind1=" " ind2=" ">
    <subfield code="a">1508668</subfield>
  </datafield>
  <datafield tag="595" ind1=" " ind2=" ">
    <subfield code="9">SPIRES-HIDDEN</subfield>
    <subfield code="a">Title changed from ALLCAPS</subfield>
  </datafield>
  <datafield tag="856" ind1="4" ind2=" ">
    <subfield code="u">http://www.mdpi.com/2218-1997/3/1/12</subfield>
    <subfield code="y">Article from MDPI</subfield>
  </datafield>
  <datafield tag="856" ind1="4" ind2=" ">
    <subfield code="u">http://inspirehep.net/record/1403324/files/fig1.png</subfield>
  </datafield>
  <datafield tag="980" ind1=" " ind2=" ">
    <subfield code="c">DELETED</subfield>
  </datafield>
</record>`)

	want := map[string]any{
		"control_number":       1403324,
		"legacy_creation_date": "2015-10-30",
		"legacy_version":       "20151030120000.0",
		"new_record":           map[string]any{"$ref": "http://inspirehep.net/api/literature/1403325"},
		"deleted_records":      []any{map[string]any{"$ref": "http://inspirehep.net/api/literature/1508668"}},
		"_private_notes":       []any{map[string]any{"value": "Title changed from ALLCAPS", "source": "SPIRES-HIDDEN"}},
		"urls":                 []any{map[string]any{"value": "http://www.mdpi.com/2218-1997/3/1/12", "description": "Article from MDPI"}},
		"deleted":              true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("forward mismatch (-want +got):\n%s", diff)
	}
}

func TestLegacyVersionPrefers005(t *testing.T) {
	got := forward(t, `<record>
  <controlfield tag="005">20170101000000.0</controlfield>
  <datafield tag="961" ind1=" " ind2=" "><subfield code="c">19990101</subfield></datafield>
</record>`)
	if got["legacy_version"] != "20170101000000.0" {
		t.Errorf("legacy_version = %v", got["legacy_version"])
	}
}

func TestBadControlNumber(t *testing.T) {
	rec, _ := marc.ParseRecord([]byte(`<record><controlfield tag="001">abc</controlfield></record>`))
	o := engine.New[marc.Field]("test")
	Forward(o, "literature")
	_, err := o.Do(rec.Items())
	var te *engine.TranslationError
	if !errors.As(err, &te) || te.Key != "001" {
		t.Fatalf("expected TranslationError on 001, got %v", err)
	}
}

func TestReverse(t *testing.T) {
	o := engine.New[any]("test2marc")
	Reverse(o)
	got, err := o.Do(engine.Sorted(map[string]any{
		"control_number":  4328,
		"new_record":      map[string]any{"$ref": "http://inspirehep.net/api/literature/12"},
		"deleted_records": []any{map[string]any{"$ref": "http://inspirehep.net/api/literature/13"}},
		"_private_notes":  []any{map[string]any{"value": "note", "source": "SPIRES"}},
		"deleted":         true,
		"urls":            []any{map[string]any{"value": "http://example.org"}},
	}))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"001":   []any{"4328"},
		"970__": []any{map[string]any{"d": "12"}},
		"981__": []any{map[string]any{"a": "13"}},
		"595__": []any{map[string]any{"a": "note", "9": "SPIRES"}},
		"980__": []any{map[string]any{"c": "DELETED"}},
		"8564_": []any{map[string]any{"u": "http://example.org", "y": nil}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reverse mismatch (-want +got):\n%s", diff)
	}
}
