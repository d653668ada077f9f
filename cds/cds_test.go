package cds

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

const cdsRecord = `<record>
  <controlfield tag="001">2270264</controlfield>
  <datafield tag="035" ind1=" " ind2=" ">
    <subfield code="9">Inspire</subfield>
    <subfield code="a">1620526</subfield>
  </datafield>
  <datafield tag="035" ind1=" " ind2=" ">
    <subfield code="9">arXiv</subfield>
    <subfield code="a">oai:arXiv.org:1707.05226</subfield>
  </datafield>
  <datafield tag="088" ind1=" " ind2=" ">
    <subfield code="a">CERN-TH-2017-123</subfield>
  </datafield>
  <datafield tag="100" ind1=" " ind2=" ">
    <subfield code="a">Ellis, John</subfield>
    <subfield code="u">CERN</subfield>
    <subfield code="0">AUTHOR|(INSPIRE)INSPIRE-00123456</subfield>
    <subfield code="0">AUTHOR|(SzGeCERN)388906</subfield>
    <subfield code="0">AUTHOR|(CDS)2108556</subfield>
  </datafield>
  <datafield tag="245" ind1="1" ind2="0">
    <subfield code="a">Supersymmetry after the LHC</subfield>
  </datafield>
  <datafield tag="300" ind1=" " ind2=" ">
    <subfield code="a">42 p</subfield>
  </datafield>
  <datafield tag="650" ind1="1" ind2="7">
    <subfield code="2">SzGeCERN</subfield>
    <subfield code="a">Particle Physics - Theory</subfield>
  </datafield>
  <datafield tag="650" ind1="1" ind2="7">
    <subfield code="2">SzGeCERN</subfield>
    <subfield code="a">Chemistry</subfield>
  </datafield>
  <datafield tag="700" ind1=" " ind2=" ">
    <subfield code="a">Doe, Jane</subfield>
    <subfield code="0">(ORCID)0000-0002-1825-0097</subfield>
  </datafield>
  <datafield tag="856" ind1="4" ind2=" ">
    <subfield code="u">https://cds.cern.ch/record/2270264/files/paper.pdf</subfield>
    <subfield code="y">Fulltext</subfield>
  </datafield>
  <datafield tag="856" ind1="4" ind2=" ">
    <subfield code="u">https://example.org/talk</subfield>
  </datafield>
  <datafield tag="980" ind1=" " ind2=" ">
    <subfield code="a">PREPRINT</subfield>
  </datafield>
  <datafield tag="980" ind1=" " ind2=" ">
    <subfield code="a">BOOK</subfield>
  </datafield>
</record>`

func TestTranslateToMarcJSON(t *testing.T) {
	rec, err := marc.ParseRecord([]byte(cdsRecord))
	if err != nil {
		t.Fatal(err)
	}
	got, err := TranslateToMarcJSON(rec)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"035__": []any{
			map[string]any{"9": "CDS", "a": "2270264"},
			map[string]any{"9": []any{"arXiv"}, "a": []any{"oai:arXiv.org:1707.05226"}},
		},
		"037__": []any{map[string]any{"a": []any{"CERN-TH-2017-123"}}},
		"100__": []any{map[string]any{
			"a": []any{"Ellis, John"},
			"u": []any{"CERN"},
			"i": []any{"INSPIRE-00123456"},
			"j": []any{"CCID-388906"},
		}},
		"245__": []any{map[string]any{"a": []any{"Supersymmetry after the LHC"}}},
		"300__": []any{map[string]any{"a": "42"}},
		"65017": []any{
			map[string]any{"2": "INSPIRE", "a": "Theory-HEP"},
			map[string]any{"2": "INSPIRE", "a": "Other"},
		},
		"700__": []any{map[string]any{
			"a": []any{"Doe, Jane"},
			"j": []any{"ORCID:0000-0002-1825-0097"},
		}},
		"FFT__": []any{map[string]any{
			"a": "https://cds.cern.ch/record/2270264/files/paper.pdf",
			"d": "Fulltext",
			"t": "CDS",
		}},
		"8564_": []any{map[string]any{"u": "https://example.org/talk", "y": ""}},
		"980__": []any{
			map[string]any{"a": "Book"},
			map[string]any{"a": "HEP"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateSortsRecord(t *testing.T) {
	rec, err := marc.ParseRecord([]byte(cdsRecord))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Translate(rec)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Values("035__", "9"); !cmp.Equal(got, []string{"CDS", "arXiv"}) {
		t.Errorf("035 sources = %v", got)
	}
	if got := out.Values("980__", "a"); !cmp.Equal(got, []string{"Book", "HEP"}) {
		t.Errorf("980 markers = %v", got)
	}
	if len(out.Get("8564_")) != 1 || len(out.Get("FFT__")) != 1 {
		t.Errorf("links were not split between 8564 and FFT: %v", out.Fields)
	}
}

func TestAddHEPIsIdempotent(t *testing.T) {
	out := map[string]any{"980__": []any{map[string]any{"a": "HEP"}}}
	got, err := addHEP(out, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(got["980__"].([]any)); n != 1 {
		t.Errorf("980 entries = %d, want 1", n)
	}
}
