package schema

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		markers []string
		want    string
	}{
		{nil, "hep"},
		{[]string{"HEP", "CORE"}, "hep"},
		{[]string{"JOURNALSNEW"}, "journals"},
		{[]string{"journals"}, "journals"},
		{[]string{"HEPNAMES"}, "hepnames"},
		{[]string{"DATA"}, "data"},
		{[]string{"EXPERIMENT"}, "experiments"},
		{[]string{"INSTITUTION"}, "institutions"},
		{[]string{"CONFERENCES"}, "conferences"},
		{[]string{"JOBHIDDEN"}, "jobs"},
		// conferences outranks data
		{[]string{"DATA", "CONFERENCES"}, "conferences"},
	}
	for _, tt := range tests {
		got := Default.Detect(tt.markers)
		if got == nil || got.Name != tt.want {
			t.Errorf("Detect(%v) = %v, want %s", tt.markers, got, tt.want)
		}
	}
}

func TestBySchema(t *testing.T) {
	e, ok := Default.BySchema(Stem("http://localhost:5000/schemas/records/authors.json"))
	if !ok || e.Name != "hepnames" || !e.Reverse {
		t.Fatalf("BySchema(authors): got %+v, %v", e, ok)
	}
	e, ok = Default.BySchema(Stem("data.json"))
	if !ok || e.Reverse {
		t.Fatalf("data should exist without reverse rules: %+v", e)
	}
	if e, _ := Default.Get("jobs"); !e.Refused {
		t.Error("jobs should be refused")
	}
}

func TestEntityURL(t *testing.T) {
	e, _ := Default.Get("hep")
	if got := e.URL("http://inspirehep.net/"); got != "http://inspirehep.net/schemas/records/hep.json" {
		t.Errorf("URL: got %q", got)
	}
	if e.Endpoint != "literature" || e.Collection != "Literature" {
		t.Errorf("unexpected hep entity %+v", e)
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadFromYAML([]byte("entities:\n  - {name: a, schema: a, markers: [x]}\n  - {name: b, schema: b}\n")); err != nil {
		t.Fatal(err)
	}
	r.Register(&Entity{Name: "a", Schema: "a2", Markers: []string{"y"}})
	if got := r.Detect([]string{"y"}); got.Name != "a" {
		t.Errorf("Detect after replace: got %s", got.Name)
	}
	if _, ok := r.BySchema("a"); ok {
		t.Error("old schema still indexed")
	}
	if len(r.List()) != 2 {
		t.Errorf("List: got %d entities", len(r.List()))
	}
	if err := r.LoadFromYAML([]byte("entities:\n  - {name: c}\n")); err == nil {
		t.Error("expected error for entity without schema")
	}
}
