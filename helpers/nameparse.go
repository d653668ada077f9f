package helpers

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ParsedName holds the parts of a personal name.
type ParsedName struct {
	Family string
	Given  string
	Suffix string
}

// Inverted renders "Family, Given, Suffix" omitting empty parts.
func (p ParsedName) Inverted() string {
	out := p.Family
	if p.Given != "" {
		out += ", " + p.Given
	}
	if p.Suffix != "" {
		out += ", " + p.Suffix
	}
	return out
}

// NameParser parses personal names into components.
type NameParser struct{}

var (
	// Suffixes that appear after a name
	suffixes = []string{"Jr.", "Jr", "Sr.", "Sr", "III", "II", "IV"}

	// Name prefixes (nobiliary particles)
	prefixes = []string{"van", "von", "de", "del", "della", "di", "da", "le", "la", "du", "des", "den", "der", "ter", "ten", "dos", "do"}

	multiSpace  = regexp.MustCompile(`\s+`)
	spaceComma  = regexp.MustCompile(`\s*,\s*`)
	initialsRun = regexp.MustCompile(`^(\p{Lu}\.)+$`)
)

// Parse parses a name string into its components.
// Handles both "First Last" and "Last, First" formats.
func (p *NameParser) Parse(name string) (ParsedName, bool) {
	name = cleanName(name)
	if name == "" {
		return ParsedName{}, false
	}

	var result ParsedName
	if family, rest, ok := strings.Cut(name, ","); ok {
		result.Family = strings.TrimSpace(family)
		rest = strings.TrimSpace(rest)
		if given, suffix, ok := strings.Cut(rest, ","); ok && isSuffix(strings.TrimSpace(suffix)) {
			rest, result.Suffix = strings.TrimSpace(given), strings.TrimSpace(suffix)
		} else if isSuffix(rest) {
			rest, result.Suffix = "", rest
		}
		result.Given = normalizeGiven(rest)
		return result, true
	}

	name, result.Suffix = extractSuffix(name)
	parts := strings.Fields(name)
	if len(parts) == 1 {
		result.Family = parts[0]
		return result, true
	}

	familyStart := len(parts) - 1
	for familyStart > 1 && isPrefix(parts[familyStart-1]) {
		familyStart--
	}
	result.Family = strings.Join(parts[familyStart:], " ")
	result.Given = normalizeGiven(strings.Join(parts[:familyStart], " "))
	return result, true
}

// NormalizeName brings an author name into "Family, Given" form: Unicode is
// composed, whitespace collapsed, stray commas removed, single-letter
// initials get a period and all-caps names are title-cased.
// "Tagliente, G" gives "Tagliente, G.".
func NormalizeName(name string) string {
	p := &NameParser{}
	parsed, ok := p.Parse(name)
	if !ok {
		return ""
	}
	if isAllUpper(parsed.Family + parsed.Given) {
		parsed.Family = titleCase(parsed.Family)
		parsed.Given = titleCase(parsed.Given)
	}
	return parsed.Inverted()
}

func cleanName(name string) string {
	name = norm.NFC.String(name)
	name = multiSpace.ReplaceAllString(strings.TrimSpace(name), " ")
	name = spaceComma.ReplaceAllString(name, ", ")
	name = strings.Trim(name, " ,")
	return name
}

// normalizeGiven adds periods to bare initials and joins runs of initials:
// "J R" and "J. R." both give "J.R.".
func normalizeGiven(given string) string {
	given = strings.TrimSpace(given)
	if given == "" {
		return ""
	}
	var (
		out      []string
		initials strings.Builder
	)
	flush := func() {
		if initials.Len() > 0 {
			out = append(out, initials.String())
			initials.Reset()
		}
	}
	for _, tok := range strings.Fields(given) {
		switch {
		case isBareInitial(tok):
			initials.WriteString(tok + ".")
		case initialsRun.MatchString(tok):
			initials.WriteString(tok)
		default:
			flush()
			out = append(out, tok)
		}
	}
	flush()
	return strings.Join(out, " ")
}

func isBareInitial(tok string) bool {
	r, size := utf8.DecodeRuneInString(tok)
	return size == len(tok) && unicode.IsUpper(r)
}

// extractSuffix extracts a suffix from a name string.
func extractSuffix(name string) (string, string) {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, " "+suffix) {
			return strings.TrimSuffix(name, " "+suffix), suffix
		}
	}
	return name, ""
}

func isSuffix(s string) bool {
	for _, suffix := range suffixes {
		if s == suffix {
			return true
		}
	}
	return false
}

// isPrefix checks if a word is a nobiliary particle.
func isPrefix(word string) bool {
	lower := strings.ToLower(word)
	for _, prefix := range prefixes {
		if lower == prefix {
			return true
		}
	}
	return false
}

func isAllUpper(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters > 3
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if initialsRun.MatchString(w) {
			continue
		}
		var b strings.Builder
		upper := true
		for _, r := range w {
			if upper {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			upper = r == '-' || r == '\''
		}
		words[i] = b.String()
	}
	return strings.Join(words, " ")
}

// SplitNames splits a string containing multiple names on semicolons or
// " and ".
func SplitNames(names string) []string {
	if names == "" {
		return nil
	}
	var parts []string
	switch {
	case strings.Contains(names, ";"):
		parts = strings.Split(names, ";")
	case strings.Contains(names, " and "):
		parts = strings.Split(names, " and ")
	default:
		parts = []string{names}
	}
	var result []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
