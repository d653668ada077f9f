package helpers

import (
	"strings"
	"unicode"
)

// SplitPageArtid splits a 773__c value. "12-34" gives a page range; a single
// number is a start page; anything else is an article id.
func SplitPageArtid(s string) (start, end, artid string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", ""
	}
	s = strings.NewReplacer("--", "-", "–", "-", "—", "-").Replace(s)
	if a, b, ok := strings.Cut(s, "-"); ok {
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		if a != "" && b != "" {
			return a, b, ""
		}
		s = a + b
	}
	if isDigits(s) {
		return s, "", ""
	}
	return "", "", s
}

// JoinPages is the inverse of SplitPageArtid.
func JoinPages(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + "-" + end
	default:
		return start
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
