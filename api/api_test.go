package api

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lehigh-university-libraries/inspire-dojson/config"
	"github.com/lehigh-university-libraries/inspire-dojson/engine"
)

func useDefaultConfig(t *testing.T) {
	t.Helper()
	prev := config.Set(config.Default())
	t.Cleanup(func() { config.Set(prev) })
}

func record(body string) []byte {
	return []byte("<record>" + body + "</record>")
}

func marker(a string) string {
	return `<datafield tag="980" ind1=" " ind2=" "><subfield code="a">` + a + `</subfield></datafield>`
}

func TestEntitySelection(t *testing.T) {
	useDefaultConfig(t)
	tests := []struct {
		marker string
		schema string
	}{
		{"JOURNALSNEW", "journals.json"},
		{"journals", "journals.json"},
		{"CONFERENCES", "conferences.json"},
		{"EXPERIMENT", "experiments.json"},
		{"HEPNAMES", "authors.json"},
		{"INSTITUTION", "institutions.json"},
		{"DATA", "data.json"},
		{"HEP", "hep.json"},
		{"CORE", "hep.json"},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			got, err := MarcxmlToRecord(record(marker(tt.marker)))
			if err != nil {
				t.Fatalf("MarcxmlToRecord: %v", err)
			}
			if s, _ := got["$schema"].(string); !strings.HasSuffix(s, "/"+tt.schema) {
				t.Errorf("$schema = %q, want suffix %q", s, tt.schema)
			}
		})
	}
}

func TestEmptyRecordFallsBackToLiterature(t *testing.T) {
	useDefaultConfig(t)
	got, err := MarcxmlToRecord([]byte("<record/>"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"$schema":       "http://inspirehep.net/schemas/records/hep.json",
		"_collections":  []any{"Literature"},
		"document_type": []any{"article"},
		"curated":       true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDataOnlyRecord(t *testing.T) {
	useDefaultConfig(t)
	got, err := MarcxmlToRecord(record(marker("DATA")))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"$schema":      "http://inspirehep.net/schemas/records/data.json",
		"_collections": []any{"Data"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestJobsAreRefused(t *testing.T) {
	for _, m := range []string{"JOB", "JOBHIDDEN"} {
		_, err := MarcxmlToRecord(record(marker(m)))
		var nse *NotSupportedError
		if !errors.As(err, &nse) {
			t.Fatalf("%s: err = %v, want NotSupportedError", m, err)
		}
		if nse.Kind != "jobs" {
			t.Errorf("Kind = %q", nse.Kind)
		}
	}
}

func TestTranslateAsForcesJobRules(t *testing.T) {
	useDefaultConfig(t)
	doc := record(`<datafield tag="245" ind1=" " ind2=" "><subfield code="a">Postdoc</subfield></datafield>` + marker("JOBHIDDEN"))
	got, err := MarcxmlToRecordsAs("jobs", doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records", len(got))
	}
	if s, _ := got[0]["$schema"].(string); !strings.HasSuffix(s, "/jobs.json") {
		t.Errorf("$schema = %q", s)
	}
	if got[0]["position"] != "Postdoc" || got[0]["status"] != "closed" {
		t.Errorf("got %v", got[0])
	}

	if _, err := MarcxmlToRecordsAs("recipes", doc); err == nil {
		t.Error("unknown entity accepted")
	}
}

func TestControlNumberToMarcxml(t *testing.T) {
	got, err := RecordToMarcxml(map[string]any{
		"$schema":        "http://localhost:5000/schemas/records/hep.json",
		"control_number": 4328,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `<controlfield tag="001">4328</controlfield>`) {
		t.Errorf("control field missing from:\n%s", got)
	}
}

func TestReverseNotImplemented(t *testing.T) {
	for _, s := range []string{"data.json", "journals.json", "", "unknown.json"} {
		_, err := RecordToMarcxml(map[string]any{"$schema": s})
		var nie *NotImplementedError
		if !errors.As(err, &nie) {
			t.Errorf("%q: err = %v, want NotImplementedError", s, err)
		}
	}
}

func TestAuthorRecordToMarcxml(t *testing.T) {
	got, err := RecordToMarcxml(map[string]any{
		"$schema": "authors.json",
		"name":    map[string]any{"value": "Smith, John"},
		"status":  "active",
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`<datafield tag="100" ind1=" " ind2=" ">`, `<subfield code="a">Smith, John</subfield>`, `<subfield code="g">active</subfield>`} {
		if !strings.Contains(string(got), want) {
			t.Errorf("missing %s in:\n%s", want, got)
		}
	}
}

func TestScenarios(t *testing.T) {
	useDefaultConfig(t)

	t.Run("author normalisation", func(t *testing.T) {
		got, err := MarcxmlToRecord(record(`<datafield tag="100" ind1=" " ind2=" "><subfield code="a">Tagliente, G</subfield></datafield>`))
		if err != nil {
			t.Fatal(err)
		}
		authors := got["authors"].([]any)
		if name := authors[0].(map[string]any)["full_name"]; name != "Tagliente, G." {
			t.Errorf("full_name = %v", name)
		}
	})

	t.Run("arXiv extraction", func(t *testing.T) {
		got, err := MarcxmlToRecord(record(`
<datafield tag="037" ind1=" " ind2=" ">
  <subfield code="9">arXiv</subfield>
  <subfield code="a">arXiv:1505.01843</subfield>
  <subfield code="c">hep-ph</subfield>
</datafield>
<datafield tag="650" ind1="1" ind2="7"><subfield code="2">arXiv</subfield><subfield code="a">hep-ph</subfield></datafield>
<datafield tag="650" ind1="1" ind2="7"><subfield code="2">arXiv</subfield><subfield code="a">hep-ph</subfield></datafield>`))
		if err != nil {
			t.Fatal(err)
		}
		want := []any{map[string]any{"value": "1505.01843", "categories": []any{"hep-ph"}}}
		if diff := cmp.Diff(want, got["arxiv_eprints"]); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("reference curation", func(t *testing.T) {
		got, err := MarcxmlToRecord(record(`<datafield tag="999" ind1="C" ind2="5">
  <subfield code="r">solv-int/9611008</subfield>
  <subfield code="0">433620</subfield>
</datafield>`))
		if err != nil {
			t.Fatal(err)
		}
		want := []any{map[string]any{
			"curated_relation": false,
			"record":           map[string]any{"$ref": "http://inspirehep.net/api/literature/433620"},
			"reference":        map[string]any{"arxiv_eprint": "solv-int/9611008"},
		}}
		if diff := cmp.Diff(want, got["references"]); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestMarcxmlToRecords(t *testing.T) {
	useDefaultConfig(t)
	doc := []byte(`<collection>` +
		`<record><controlfield tag="001">1</controlfield></record>` +
		`<record><controlfield tag="001">2</controlfield>` + marker("HEPNAMES") + `</record>` +
		`</collection>`)
	got, err := MarcxmlToRecords(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records", len(got))
	}
	if got[0]["control_number"] != 1 || got[1]["control_number"] != 2 {
		t.Errorf("control numbers = %v, %v", got[0]["control_number"], got[1]["control_number"])
	}
	if !strings.HasSuffix(got[1]["$schema"].(string), "/authors.json") {
		t.Errorf("second record schema = %v", got[1]["$schema"])
	}
}

func TestTranslationErrorSurfaces(t *testing.T) {
	_, err := MarcxmlToRecord(record(`<controlfield tag="001">not-a-number</controlfield>`))
	var te *engine.TranslationError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TranslationError", err)
	}
	if te.Key != "001" {
		t.Errorf("Key = %q", te.Key)
	}
}

func TestCDSMarcxmlToRecord(t *testing.T) {
	useDefaultConfig(t)
	got, err := CDSMarcxmlToRecord(record(`
<controlfield tag="001">2270264</controlfield>
<datafield tag="100" ind1=" " ind2=" ">
  <subfield code="a">Ellis, John</subfield>
  <subfield code="0">AUTHOR|(SzGeCERN)388906</subfield>
</datafield>
<datafield tag="245" ind1=" " ind2=" "><subfield code="a">A CDS paper</subfield></datafield>
<datafield tag="980" ind1=" " ind2=" "><subfield code="a">ARTICLE</subfield></datafield>`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{map[string]any{"schema": "CDS", "value": "2270264"}}, got["external_system_identifiers"]); diff != "" {
		t.Errorf("external ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{map[string]any{"title": "A CDS paper"}}, got["titles"]); diff != "" {
		t.Errorf("titles (-want +got):\n%s", diff)
	}
	author := got["authors"].([]any)[0].(map[string]any)
	if diff := cmp.Diff([]any{map[string]any{"schema": "CERN", "value": "CERN-388906"}}, author["ids"]); diff != "" {
		t.Errorf("author ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"Literature"}, got["_collections"]); diff != "" {
		t.Errorf("collections (-want +got):\n%s", diff)
	}
}
