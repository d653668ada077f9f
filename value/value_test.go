package value

import (
	"encoding/json"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{4328, "4328"},
		{float64(4328), "4328"},
		{1.5, "1.5"},
		{json.Number("12"), "12"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Errorf("Text(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if TextOr("", "d") != "d" {
		t.Error("TextOr default not applied")
	}
}

func TestInt(t *testing.T) {
	if i, ok := IntOK("  42 "); !ok || i != 42 {
		t.Errorf("IntOK string: %d %v", i, ok)
	}
	if _, ok := IntOK(1.5); ok {
		t.Error("1.5 is not an integer")
	}
	if i, ok := IntOK(json.Number("7")); !ok || i != 7 {
		t.Errorf("IntOK json.Number: %d %v", i, ok)
	}
	if IntOr("abc", -1) != -1 {
		t.Error("IntOr default not applied")
	}
}

func TestBool(t *testing.T) {
	if !Bool("True") || Bool("no") || !Bool(1) || Bool(nil) {
		t.Error("unexpected Bool results")
	}
	m := map[string]any{"core": false}
	if set, val := IsSet(m, "core"); !set || val {
		t.Errorf("IsSet(core) = %v %v", set, val)
	}
	if set, _ := IsSet(m, "curated"); set {
		t.Error("missing key reported as set")
	}
}

func TestContainers(t *testing.T) {
	if List(nil) != nil {
		t.Error("List(nil) should be nil")
	}
	if got := List("a"); len(got) != 1 {
		t.Errorf("List scalar: %v", got)
	}
	if got := Strings([]any{"a", "", 3}); len(got) != 2 || got[1] != "3" {
		t.Errorf("Strings: %v", got)
	}
	maps := Maps(map[string]any{"a": 1})
	if len(maps) != 1 {
		t.Errorf("Maps single: %v", maps)
	}
}

func TestGet(t *testing.T) {
	rec := map[string]any{
		"thesis_info": map[string]any{
			"institutions": []any{map[string]any{"name": "CERN"}},
		},
	}
	if got := GetText(rec, "thesis_info.institutions.0.name"); got != "CERN" {
		t.Errorf("Get: %q", got)
	}
	if Get(rec, "thesis_info.institutions.3.name") != nil {
		t.Error("out of range index should give nil")
	}
	if Get(rec, "missing.path") != nil {
		t.Error("missing path should give nil")
	}
}
