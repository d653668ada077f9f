package helpers

import "testing"

func TestLanguageLookup(t *testing.T) {
	for in, want := range map[string]string{"ger": "de", "deu": "de", "German": "de", "fr": "fr"} {
		if got, ok := LanguageCode(in); !ok || got != want {
			t.Errorf("LanguageCode(%q) = %q", in, got)
		}
	}
	if name, _ := LanguageName("it"); name != "italian" {
		t.Errorf("LanguageName(it) = %q", name)
	}
}

func TestSplitLanguages(t *testing.T) {
	tests := map[string]int{
		"English/French":      2,
		"eng, ger":            2,
		"Russian and English": 2,
		"Italian":             1,
	}
	for in, want := range tests {
		if got := SplitLanguages(in); len(got) != want {
			t.Errorf("SplitLanguages(%q) = %v", in, got)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	text := "Die Ergebnisse der Messungen werden mit den theoretischen Vorhersagen verglichen und diskutiert."
	if got := DetectLanguage(text); got != "de" {
		t.Errorf("DetectLanguage: got %q", got)
	}
	if DetectLanguage("") != "" {
		t.Error("empty text should give empty code")
	}
}

func TestSanitizeHTML(t *testing.T) {
	got := SanitizeHTML(`<p onclick="x()">Hello <script>alert(1)</script><b>world</b></p>`)
	if got != "<p>Hello <b>world</b></p>" {
		t.Errorf("SanitizeHTML: got %q", got)
	}
	if StripHTML("<i>a</i> &amp; b") != "a & b" {
		t.Errorf("StripHTML: got %q", StripHTML("<i>a</i> &amp; b"))
	}
	if SanitizeHTML("plain text") != "plain text" {
		t.Error("plain text changed")
	}
}
