package helpers

import (
	"regexp"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/lehigh-university-libraries/inspire-dojson/mapping"
)

var languageSeparators = regexp.MustCompile(`\s*(?:/|,|\band\b|;)\s*`)

// LanguageCode maps an ISO 639-1 or 639-2 code or an English language name
// to its ISO 639-1 code.
func LanguageCode(s string) (string, bool) {
	l, ok := mapping.LookupLanguage(s)
	if !ok {
		return "", false
	}
	return l.Code, true
}

// LanguageName returns the lower-case English name for an ISO 639-1 code.
func LanguageName(code string) (string, bool) {
	l, ok := mapping.LookupLanguage(code)
	if !ok {
		return "", false
	}
	return l.Name, true
}

// SplitLanguages splits historical multi-language values such as
// "English/French", "eng, ger" or "Russian and English".
func SplitLanguages(s string) []string {
	var out []string
	for _, part := range languageSeparators.Split(strings.TrimSpace(s), -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DetectLanguage guesses the ISO 639-1 code of a text. It returns "" when
// the detector is not confident or the language has no two-letter code.
func DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	if info.Confidence < 0.3 {
		return ""
	}
	return info.Lang.Iso6391()
}
