package api

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func codes(r *ValidationResult) []string {
	var out []string
	for _, e := range r.Errors {
		out = append(out, e.Field+" "+e.Code)
	}
	return out
}

func TestValidateTranslatedRecords(t *testing.T) {
	useDefaultConfig(t)
	for _, body := range []string{
		"",
		marker("DATA"),
		marker("HEPNAMES"),
		`<datafield tag="100" ind1=" " ind2=" "><subfield code="a">Smith, J</subfield><subfield code="u">CERN</subfield></datafield>` +
			`<datafield tag="999" ind1="C" ind2="5"><subfield code="h">Doe, J.</subfield><subfield code="h">Doe, J.</subfield></datafield>`,
	} {
		rec, err := MarcxmlToRecord(record(body))
		if err != nil {
			t.Fatalf("%q: %v", body, err)
		}
		if res := Validate(rec); !res.IsValid() {
			t.Errorf("%q: unexpected errors %v", body, codes(res))
		}
	}
}

func TestValidateReportsViolations(t *testing.T) {
	rec := map[string]any{
		"$schema":      "http://inspirehep.net/schemas/records/hep.json",
		"_collections": []any{},
		"titles":       []any{map[string]any{"title": "A"}, map[string]any{"title": "A"}},
		"abstracts":    []any{map[string]any{"value": ""}},
		"documents": []any{
			map[string]any{"key": "a.pdf"},
			map[string]any{"key": "a.pdf"},
		},
		"references": []any{
			map[string]any{"record": map[string]any{"$ref": "http://inspirehep.net/api/literature/abc"}},
			map[string]any{"record": map[string]any{"$ref": "http://inspirehep.net/api/literature/abc"}},
		},
	}
	got := codes(Validate(rec))
	want := []string{
		"_collections required",
		"document_type required",
		"curated required",
		"documents[1].key duplicate",
		"_collections empty",
		"abstracts[0].value empty",
		"documents[1] duplicate",
		"references[0].record.$ref invalid_ref",
		"references[1].record.$ref invalid_ref",
		"titles[1] duplicate",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	got := codes(Validate(map[string]any{"$schema": "foo.json", "_collections": []any{"Foo"}}))
	if diff := cmp.Diff([]string{"$schema unknown_schema"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	got = codes(Validate(map[string]any{"_collections": []any{"Foo"}}))
	if diff := cmp.Diff([]string{"$schema required"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
