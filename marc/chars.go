package marc

import "strings"

// IsValidXMLChar reports whether r is allowed in an XML 1.0 document.
func IsValidXMLChar(r rune) bool {
	return r == 0x9 || r == 0xA || r == 0xD ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// StripInvalidXMLChars removes every character outside the XML 1.0 range.
// Applying it twice gives the same result as applying it once.
func StripInvalidXMLChars(s string) string {
	clean := true
	for _, r := range s {
		if !IsValidXMLChar(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	return strings.Map(func(r rune) rune {
		if IsValidXMLChar(r) {
			return r
		}
		return -1
	}, s)
}
