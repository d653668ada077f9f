package helpers

import (
	"html"
	"regexp"
	"strings"

	"github.com/kennygrant/sanitize"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	multiSpaceRegex = regexp.MustCompile(`\s+`)

	// Tags kept in abstracts and descriptions.
	allowedTags = []string{"a", "b", "br", "div", "em", "i", "li", "ol", "p", "strong", "sub", "sup", "u", "ul"}
)

// SanitizeHTML removes scripts, styles, attributes other than href and any
// tag outside a small formatting whitelist.
func SanitizeHTML(s string) string {
	if s == "" || !IsHTML(s) {
		return strings.TrimSpace(s)
	}
	clean, err := sanitize.HTMLAllowing(s, allowedTags, []string{"href"})
	if err != nil {
		return StripHTML(s)
	}
	return strings.TrimSpace(clean)
}

// StripHTML removes HTML tags from a string and decodes HTML entities.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = sanitize.HTML(s)
	s = html.UnescapeString(s)
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// IsHTML checks if a string appears to contain HTML markup.
func IsHTML(s string) bool {
	return htmlTagRegex.MatchString(s)
}

// NormalizeWhitespace normalizes all whitespace to single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(multiSpaceRegex.ReplaceAllString(s, " "))
}
