package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	doiRegex       = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
	doiPrefixRegex = regexp.MustCompile(`(?i)^(doi:\s*|https?://(dx\.)?doi\.org/)`)

	arxivNewRegex    = regexp.MustCompile(`^\d{4}\.\d{4,5}$`)
	arxivOldRegex    = regexp.MustCompile(`^[a-z][a-z\-]+(\.[A-Za-z]{2})?/\d{7}$`)
	arxivPrefixRegex = regexp.MustCompile(`(?i)^(arxiv:\s*|https?://arxiv\.org/abs/)`)
	arxivVersion     = regexp.MustCompile(`v\d+$`)

	orcidRegex       = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)
	orcidPrefixRegex = regexp.MustCompile(`(?i)^(orcid:\s*|https?://(www\.)?orcid\.org/)`)

	issnRegex   = regexp.MustCompile(`^(\d{4})-?(\d{3}[\dXx])$`)
	baiRegex    = regexp.MustCompile(`^((\p{L}|[\-'])+\.)+\d+$`)
	inspireID   = regexp.MustCompile(`^INSPIRE-\d{8}$`)
	handleRegex = regexp.MustCompile(`^\d+(\.\d+)*/\S+$`)
	cnumRegex   = regexp.MustCompile(`^C\d{2}-\d{2}-\d{2}(\.\d+)?$`)
	cernIDRegex = regexp.MustCompile(`^(?i)CERN-?(\d+)$`)
	kakenRegex  = regexp.MustCompile(`^(?i)KAKEN-?(\d+)$`)
)

// NormalizeDOI strips doi: and resolver prefixes.
func NormalizeDOI(s string) string {
	return doiPrefixRegex.ReplaceAllString(strings.TrimSpace(s), "")
}

// IsDOI reports whether s is a DOI, with or without prefix.
func IsDOI(s string) bool {
	return doiRegex.MatchString(NormalizeDOI(s))
}

// NormalizeArxiv strips the arXiv: prefix and any version suffix.
func NormalizeArxiv(s string) string {
	s = arxivPrefixRegex.ReplaceAllString(strings.TrimSpace(s), "")
	return arxivVersion.ReplaceAllString(s, "")
}

// IsArxiv reports whether s is an old- or new-style arXiv identifier.
func IsArxiv(s string) bool {
	s = NormalizeArxiv(s)
	return arxivNewRegex.MatchString(s) || arxivOldRegex.MatchString(s)
}

// NormalizeORCID strips ORCID: and URL prefixes.
func NormalizeORCID(s string) string {
	return strings.ToUpper(orcidPrefixRegex.ReplaceAllString(strings.TrimSpace(s), ""))
}

// IsORCID checks format and the ISO 7064 11-2 check digit.
func IsORCID(s string) bool {
	s = NormalizeORCID(s)
	if !orcidRegex.MatchString(s) {
		return false
	}
	digits := strings.ReplaceAll(s, "-", "")
	total := 0
	for _, c := range digits[:15] {
		total = (total + int(c-'0')) * 2
	}
	check := (12 - total%11) % 11
	want := strconv.Itoa(check)
	if check == 10 {
		want = "X"
	}
	return digits[15:] == want
}

// NormalizeISSN renders an ISSN as NNNN-NNNC.
func NormalizeISSN(s string) (string, error) {
	m := issnRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", fmt.Errorf("invalid ISSN %q", s)
	}
	return m[1] + "-" + strings.ToUpper(m[2]), nil
}

// NormalizeISBN returns the hyphenless ISBN-13 form, converting ISBN-10.
func NormalizeISBN(s string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= '0' && r <= '9') || r == 'X' {
			b.WriteRune(r)
		}
	}
	isbn := b.String()
	switch len(isbn) {
	case 13:
		if strings.Contains(isbn, "X") || isbn13Check(isbn[:12]) != isbn[12] {
			return "", fmt.Errorf("invalid ISBN %q", s)
		}
		return isbn, nil
	case 10:
		if !isbn10Valid(isbn) {
			return "", fmt.Errorf("invalid ISBN %q", s)
		}
		body := "978" + isbn[:9]
		return body + string(isbn13Check(body)), nil
	default:
		return "", fmt.Errorf("invalid ISBN %q", s)
	}
}

func isbn13Check(body string) byte {
	sum := 0
	for i, c := range body {
		d := int(c - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}

func isbn10Valid(isbn string) bool {
	sum := 0
	for i, c := range isbn {
		var d int
		switch {
		case c == 'X' && i == 9:
			d = 10
		case c >= '0' && c <= '9':
			d = int(c - '0')
		default:
			return false
		}
		sum += d * (10 - i)
	}
	return sum%11 == 0
}

// IsBAI reports whether s is an INSPIRE author identifier such as J.Smith.1.
func IsBAI(s string) bool {
	return baiRegex.MatchString(s)
}

// IsInspireID reports whether s is an INSPIRE-NNNNNNNN identifier.
func IsInspireID(s string) bool {
	return inspireID.MatchString(s)
}

// IsHandle reports whether s is a handle, with or without hdl: prefix.
func IsHandle(s string) bool {
	s = strings.TrimPrefix(strings.TrimSpace(s), "hdl:")
	return handleRegex.MatchString(s) && !doiRegex.MatchString(s)
}

// IsURN reports whether s is a URN.
func IsURN(s string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "urn:")
}

// NormalizeCNUM upper-cases a conference number and uses dashes as
// separators: c16-03-17 and C17/05/14 give C16-03-17 and C17-05-14.
func NormalizeCNUM(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "/", "-")
}

// IsCNUM reports whether s is a normalised conference number.
func IsCNUM(s string) bool {
	return cnumRegex.MatchString(s)
}

// NormalizeCERNID synthesises CERN-<digits> from the spellings found in
// legacy records ("CERN12345", "cern-12345").
func NormalizeCERNID(s string) (string, bool) {
	m := cernIDRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	return "CERN-" + m[1], true
}

// NormalizeKAKENID synthesises KAKEN-<digits>.
func NormalizeKAKENID(s string) (string, bool) {
	m := kakenRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	return "KAKEN-" + m[1], true
}
