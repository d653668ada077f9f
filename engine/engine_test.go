package engine

import (
	"errors"
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type kv struct {
	key string
	val string
}

func seq(items ...kv) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, it := range items {
			if !yield(it.key, it.val) {
				return
			}
		}
	}
}

func TestPatternMatching(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"^037..", "037__", true},
		{"^037..", "03712", true},
		{"^037..", "035__", false},
		{"^100", "100__", true},
		{"^245[_1].", "2451_", true},
		{"^245[_1].", "2452_", false},
		{"^FFT", "FFT__", true},
		{"^authors$", "authors", true},
		{"^authors$", "authors_extra", false},
		{"^titles", "title_translations", false},
		{"999C5", "999C5", true},
		{"^773..", "773", false},
	}
	for _, tt := range tests {
		p, err := compile(tt.pattern)
		if err != nil {
			t.Fatalf("compile(%q): %v", tt.pattern, err)
		}
		if got := p.match(tt.key); got != tt.want {
			t.Errorf("%q matching %q = %v, want %v", tt.pattern, tt.key, got, tt.want)
		}
	}
	if _, err := compile("^24[5"); err == nil {
		t.Error("expected error for unterminated class")
	}
}

func TestDoOrderAndSideEffects(t *testing.T) {
	o := New[string]("test")
	o.Each("report_numbers", func(acc map[string]any, key, v string) (any, error) {
		if v == "arXiv:1505.01843" {
			Append(acc, "arxiv_eprints", map[string]any{"value": v[6:]})
			return Skip, nil
		}
		return map[string]any{"value": v}, nil
	}, "^037..")
	o.Over("control_number", func(acc map[string]any, key, v string) (any, error) {
		return v, nil
	}, "^001")

	got, err := o.Do(seq(
		kv{"001", "1"},
		kv{"037__", "CERN-TH-1"},
		kv{"037__", "arXiv:1505.01843"},
		kv{"03712", "FERMILAB-2"},
		kv{"999__", "ignored"},
	))
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	want := map[string]any{
		"control_number": "1",
		"report_numbers": []any{
			map[string]any{"value": "CERN-TH-1"},
			map[string]any{"value": "FERMILAB-2"},
		},
		"arxiv_eprints": []any{map[string]any{"value": "1505.01843"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Do mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistrationOrder(t *testing.T) {
	o := New[string]("test")
	var calls []string
	o.Over("a", func(acc map[string]any, key, v string) (any, error) {
		calls = append(calls, "first")
		return Skip, nil
	}, "^100")
	o.Over("b", func(acc map[string]any, key, v string) (any, error) {
		calls = append(calls, "second")
		return Skip, nil
	}, "^1", "^10")

	if _, err := o.Do(seq(kv{"100__", "x"})); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"first", "second", "second"}, calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslationError(t *testing.T) {
	cause := errors.New("bad pages")
	o := New[string]("hep")
	o.Over("publication_info", func(acc map[string]any, key, v string) (any, error) {
		return nil, cause
	}, "^773")

	out, err := o.Do(seq(kv{"773__", "12-"}))
	if out != nil {
		t.Error("partial output returned on error")
	}
	var te *TranslationError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TranslationError, got %T", err)
	}
	if te.Key != "773__" || te.Value != "12-" || te.Engine != "hep" {
		t.Errorf("unexpected error fields: %+v", te)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not preserved")
	}
}

func TestPanicBecomesTranslationError(t *testing.T) {
	o := New[string]("hep")
	o.Over("x", func(acc map[string]any, key, v string) (any, error) {
		var m map[string]any
		m["boom"] = 1
		return nil, nil
	}, "^245")

	_, err := o.Do(seq(kv{"245__", "t"}))
	var te *TranslationError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TranslationError, got %v", err)
	}
}

func TestFlatten(t *testing.T) {
	o := New[string]("test")
	o.Flat("keywords", func(acc map[string]any, key, v string) (any, error) {
		return []any{v + "1", v + "2"}, nil
	}, "^653")

	got, err := o.Do(seq(kv{"6531_", "a"}, kv{"6531_", "b"}))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{"a1", "a2", "b1", "b2"}, got["keywords"]); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestPipelineIdempotent(t *testing.T) {
	p := Pipeline[string]{
		AddSchema[string]("hep"),
		AddCollection[string]("Literature"),
		StripEmptyValues[string](),
		DedupeAllLists[string]("references"),
	}
	in := map[string]any{
		"titles":     []any{map[string]any{"title": "x"}, map[string]any{"title": "x"}},
		"references": []any{"r", "r"},
		"empty":      "",
	}
	once, err := p.Apply(in, "")
	if err != nil {
		t.Fatal(err)
	}
	twice, err := p.Apply(once, "")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("pipeline not idempotent (-once +twice):\n%s", diff)
	}
	if len(once["titles"].([]any)) != 1 || len(once["references"].([]any)) != 2 {
		t.Errorf("unexpected dedupe result: %v", once)
	}
	if _, ok := once["empty"]; ok {
		t.Error("empty value kept")
	}
	if diff := cmp.Diff([]any{"Literature"}, once["_collections"]); diff != "" {
		t.Errorf("_collections mismatch:\n%s", diff)
	}
}

func TestSorted(t *testing.T) {
	var keys []string
	for k := range Sorted(map[string]any{"b": 1, "a": 2, "$schema": 3}) {
		keys = append(keys, k)
	}
	if diff := cmp.Diff([]string{"$schema", "a", "b"}, keys); diff != "" {
		t.Errorf("Sorted mismatch:\n%s", diff)
	}
}
