package data

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lehigh-university-libraries/inspire-dojson/config"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

func TestData(t *testing.T) {
	prev := config.Set(config.Default())
	t.Cleanup(func() { config.Set(prev) })

	rec, err := marc.ParseRecord([]byte(`<record>
  <controlfield tag="001">1</controlfield>
  <datafield tag="024" ind1="7" ind2=" ">
    <subfield code="2">DOI</subfield>
    <subfield code="a">doi:10.17182/hepdata.1234</subfield>
    <subfield code="9">HEPData</subfield>
  </datafield>
  <datafield tag="245" ind1=" " ind2=" ">
    <subfield code="a">Cross sections at 13 TeV</subfield>
  </datafield>
  <datafield tag="520" ind1=" " ind2=" ">
    <subfield code="a">Tables of measured cross sections.</subfield>
  </datafield>
  <datafield tag="786" ind1=" " ind2=" ">
    <subfield code="w">1234567</subfield>
  </datafield>
  <datafield tag="980" ind1=" " ind2=" ">
    <subfield code="a">DATA</subfield>
  </datafield>
</record>`))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Translate(rec)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"$schema":        "http://inspirehep.net/schemas/records/data.json",
		"_collections":   []any{"Data"},
		"control_number": 1,
		"dois":           []any{map[string]any{"value": "10.17182/hepdata.1234", "source": "HEPData"}},
		"titles":         []any{map[string]any{"title": "Cross sections at 13 TeV"}},
		"abstracts":      []any{map[string]any{"value": "Tables of measured cross sections."}},
		"literature": []any{map[string]any{
			"record": map[string]any{"$ref": "http://inspirehep.net/api/literature/1234567"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
