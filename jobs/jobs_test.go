package jobs

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lehigh-university-libraries/inspire-dojson/config"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

func TestJob(t *testing.T) {
	prev := config.Set(config.Default())
	t.Cleanup(func() { config.Set(prev) })

	rec, err := marc.ParseRecord([]byte(`<record>
  <controlfield tag="001">1642356</controlfield>
  <datafield tag="046" ind1=" " ind2=" ">
    <subfield code="i">2017-12-31</subfield>
  </datafield>
  <datafield tag="110" ind1=" " ind2=" ">
    <subfield code="a">DESY</subfield>
    <subfield code="z">902770</subfield>
  </datafield>
  <datafield tag="245" ind1=" " ind2=" ">
    <subfield code="a">Postdoctoral position in theory</subfield>
  </datafield>
  <datafield tag="270" ind1=" " ind2=" ">
    <subfield code="m">jobs@desy.de</subfield>
  </datafield>
  <datafield tag="371" ind1=" " ind2=" ">
    <subfield code="a">Europe</subfield>
  </datafield>
  <datafield tag="371" ind1=" " ind2=" ">
    <subfield code="a">Hamburg</subfield>
    <subfield code="d">Germany</subfield>
  </datafield>
  <datafield tag="520" ind1=" " ind2=" ">
    <subfield code="a">&lt;p&gt;Apply &lt;b&gt;now&lt;/b&gt;&lt;/p&gt;</subfield>
  </datafield>
  <datafield tag="650" ind1="1" ind2="7">
    <subfield code="a">hep-th</subfield>
    <subfield code="a">not-a-category</subfield>
  </datafield>
  <datafield tag="656" ind1=" " ind2=" ">
    <subfield code="a">POSTDOC</subfield>
  </datafield>
  <datafield tag="693" ind1=" " ind2=" ">
    <subfield code="e">DESY-HERA-H1</subfield>
  </datafield>
  <datafield tag="980" ind1=" " ind2=" ">
    <subfield code="a">JOBHIDDEN</subfield>
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
		"$schema":        "http://inspirehep.net/schemas/records/jobs.json",
		"_collections":   []any{"Jobs"},
		"control_number": 1642356,
		"deadline_date":  "2017-12-31",
		"institutions": []any{map[string]any{
			"value":            "DESY",
			"record":           map[string]any{"$ref": "http://inspirehep.net/api/institutions/902770"},
			"curated_relation": true,
		}},
		"position":                "Postdoctoral position in theory",
		"contact_details":         []any{map[string]any{"email": "jobs@desy.de"}},
		"regions":                 []any{"Europe"},
		"address":                 []any{map[string]any{"cities": []any{"Hamburg"}, "country_code": "DE"}},
		"description":             "<p>Apply <b>now</b></p>",
		"arxiv_categories":        []any{"hep-th"},
		"ranks":                   []any{"POSTDOC"},
		"accelerator_experiments": []any{map[string]any{"legacy_name": "DESY-HERA-H1"}},
		"status":                  "closed",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
