package marc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleRecord = `<?xml version="1.0" encoding="UTF-8"?>
<collection xmlns="http://www.loc.gov/MARC21/slim">
  <record>
    <controlfield tag="001">4328</controlfield>
    <datafield tag="100" ind1=" " ind2=" ">
      <subfield code="a">Tagliente, G</subfield>
      <subfield code="u">INFN, Bari</subfield>
    </datafield>
    <datafield tag="650" ind1="1" ind2="7">
      <subfield code="2">arXiv</subfield>
      <subfield code="a">hep-ph</subfield>
    </datafield>
    <datafield tag="700" ind1="" ind2="">
      <subfield code="a">Doe, J.</subfield>
    </datafield>
    <datafield tag="650" ind1="1" ind2="7">
      <subfield code="2">INSPIRE</subfield>
      <subfield code="a">Phenomenology-HEP</subfield>
    </datafield>
    <datafield tag="980">
      <subfield code="a">HEP</subfield>
    </datafield>
  </record>
  <record>
    <controlfield tag="001">2</controlfield>
  </record>
</collection>`

func TestParseRecords(t *testing.T) {
	records, err := ParseRecords(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	r := records[0]
	var keys []string
	for k := range r.Items() {
		keys = append(keys, k)
	}
	want := []string{"001", "100__", "65017", "65017", "700__", "980__"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("Items keys mismatch (-want +got):\n%s", diff)
	}

	authors := r.Get("100__")
	if len(authors) != 1 || authors[0].Get("a") != "Tagliente, G" {
		t.Errorf("100__: got %+v", authors)
	}
	if got := r.Values("65017", "a"); len(got) != 2 || got[1] != "Phenomenology-HEP" {
		t.Errorf("65017 a: got %v", got)
	}
	if r.Get("001")[0].Value != "4328" {
		t.Error("control field value mismatch")
	}
}

func TestParseRecordEmpty(t *testing.T) {
	r, err := ParseRecord([]byte(`<record/>`))
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}
	if len(r.Fields) != 0 {
		t.Errorf("expected no fields, got %d", len(r.Fields))
	}
}

func TestParseRecordMalformed(t *testing.T) {
	_, err := ParseRecord([]byte(`<record><datafield tag="100"></record>`))
	if err == nil {
		t.Fatal("expected syntax error")
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Errorf("expected *SyntaxError, got %T", err)
	}
}

func TestMarshal(t *testing.T) {
	r := &Record{}
	r.Append(Field{Tag: "980", Ind1: "_", Ind2: "_", Subfields: []Subfield{{"a", "HEP"}}})
	r.Append(Field{Tag: "100", Ind1: "_", Ind2: "_", Subfields: []Subfield{{"u", "CERN"}, {"a", "Smith, J."}}})
	r.Append(Field{Tag: "001", Value: "4328"})
	r.Append(Field{Tag: "773", Ind1: "1", Ind2: "_", Subfields: []Subfield{{"p", "Phys.Rev."}}})
	r.Append(Field{Tag: "773", Ind1: "_", Ind2: "_", Subfields: []Subfield{{"p", "Nature"}}})

	got := string(Marshal(r))
	want := `<?xml version="1.0" encoding="UTF-8"?>
<record>
  <controlfield tag="001">4328</controlfield>
  <datafield tag="100" ind1=" " ind2=" ">
    <subfield code="a">Smith, J.</subfield>
    <subfield code="u">CERN</subfield>
  </datafield>
  <datafield tag="773" ind1=" " ind2=" ">
    <subfield code="p">Nature</subfield>
  </datafield>
  <datafield tag="773" ind1="1" ind2=" ">
    <subfield code="p">Phys.Rev.</subfield>
  </datafield>
  <datafield tag="980" ind1=" " ind2=" ">
    <subfield code="a">HEP</subfield>
  </datafield>
</record>
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Marshal mismatch (-want +got):\n%s", diff)
	}
	// input order untouched
	if r.Fields[0].Tag != "980" || r.Fields[1].Subfields[0].Code != "u" {
		t.Error("Marshal mutated its input")
	}
}

func TestStripInvalidXMLChars(t *testing.T) {
	in := "ok\x00 \x0bvalue￾\U0001F600"
	once := StripInvalidXMLChars(in)
	if once != "ok value\U0001F600" {
		t.Errorf("StripInvalidXMLChars: got %q", once)
	}
	if StripInvalidXMLChars(once) != once {
		t.Error("not idempotent")
	}

	r := &Record{}
	r.Append(Field{Tag: "245", Subfields: []Subfield{{"a", "Title\x01 <b>"}}})
	if !strings.Contains(string(Marshal(r)), `<subfield code="a">Title &lt;b&gt;</subfield>`) {
		t.Errorf("unexpected output:\n%s", Marshal(r))
	}
}

func TestFromMarcJSON(t *testing.T) {
	in := map[string]any{
		"001": 4328,
		"100": map[string]any{"a": "Smith, J.", "u": []any{"CERN", "DESY"}},
		"7731": []any{
			map[string]any{"p": "Phys.Rev."},
		},
		"999C5": []any{map[string]any{"r": "hep-th/9711200", "0": 1, "z": ""}},
	}
	r, err := FromMarcJSON(in)
	if err != nil {
		t.Fatalf("FromMarcJSON failed: %v", err)
	}
	var keys []string
	for _, f := range r.Fields {
		keys = append(keys, f.Key())
	}
	if diff := cmp.Diff([]string{"001", "100__", "7731_", "999C5"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if got := r.Fields[1].GetAll("u"); len(got) != 2 {
		t.Errorf("100 u: %v", got)
	}
	if got := r.Fields[3].Subfields; len(got) != 2 || got[0].Code != "0" {
		t.Errorf("999C5 subfields: %+v", got)
	}

	if _, err := FromMarcJSON(map[string]any{"1": "x"}); err == nil {
		t.Error("expected error for short key")
	}

	back := ToMarcJSON(r)
	if back["001"] != "4328" {
		t.Errorf("ToMarcJSON 001: %v", back["001"])
	}
	groups := back["100__"].([]any)
	if u := groups[0].(map[string]any)["u"]; len(u.([]any)) != 2 {
		t.Errorf("ToMarcJSON 100 u: %v", u)
	}
}
