// Package helpers provides utility functions for parsing and normalising
// values met in bibliographic records: record references, legacy URLs,
// dates, personal names, identifiers, languages and HTML fragments, plus the
// deep list deduplication and empty-value stripping used by the filters.
package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	// Year only: 1978
	yearOnlyRegex = regexp.MustCompile(`^(\d{4})$`)

	// Year-month: 1978-03 or 1978-3
	yearMonthRegex = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)

	// Full date: 1978-03-15
	fullDateRegex = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

	// Compact full date: 19780315
	compactDateRegex = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)

	// Month name and year: "March 1978", "Mar. 1978"
	monthYearRegex = regexp.MustCompile(`^([A-Za-z]+)\.?,?\s+(\d{4})$`)

	// ISO timestamp: 2024-12-13T22:43:14+00:00
	timestampRegex = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[T ]\d{2}:\d{2}`)

	anyYearRegex = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)
)

// PartialDate is a date whose month and day may be unknown.
type PartialDate struct {
	Year, Month, Day int
}

// String renders the date keeping its precision: YYYY, YYYY-MM or YYYY-MM-DD.
func (d PartialDate) String() string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// valid checks the month and day against the calendar.
func (d PartialDate) valid() bool {
	if d.Year < 1000 || d.Year > 2999 {
		return false
	}
	if d.Month == 0 {
		return d.Day == 0
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	if d.Day == 0 {
		return true
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Day() == d.Day && int(t.Month()) == d.Month
}

// ParseDate parses a date keeping the precision present in the input.
func ParseDate(s string) (PartialDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PartialDate{}, fmt.Errorf("empty date")
	}

	var d PartialDate
	switch {
	case yearOnlyRegex.MatchString(s):
		d.Year = atoi(s)
	case yearMonthRegex.MatchString(s):
		m := yearMonthRegex.FindStringSubmatch(s)
		d = PartialDate{Year: atoi(m[1]), Month: atoi(m[2])}
	case fullDateRegex.MatchString(s):
		m := fullDateRegex.FindStringSubmatch(s)
		d = PartialDate{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
	case compactDateRegex.MatchString(s):
		m := compactDateRegex.FindStringSubmatch(s)
		d = PartialDate{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
	case timestampRegex.MatchString(s):
		m := timestampRegex.FindStringSubmatch(s)
		d = PartialDate{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
	case monthYearRegex.MatchString(s):
		m := monthYearRegex.FindStringSubmatch(s)
		t, err := parseMonthYear(m[1] + " " + m[2])
		if err != nil {
			return PartialDate{}, fmt.Errorf("parsing date %q: %w", s, err)
		}
		d = PartialDate{Year: t.Year(), Month: int(t.Month())}
	default:
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return PartialDate{}, fmt.Errorf("parsing date %q: %w", s, err)
		}
		d = PartialDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	}

	if !d.valid() {
		return d, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}

// NormalizeDate renders a date as YYYY, YYYY-MM or YYYY-MM-DD. Invalid input
// yields an error.
func NormalizeDate(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// NormalizeDateAggressively drops whatever part of a date is invalid instead
// of failing: 2015-02-30 gives 2015-02, 2015-13-01 gives 2015. Input with no
// recognisable year gives "".
func NormalizeDateAggressively(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if d, err := ParseDate(s); err == nil {
		return d.String()
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '/' || r == '.' || r == ' ' })
	if len(parts) > 0 && len(parts[0]) == 4 {
		d := PartialDate{Year: atoi(parts[0])}
		if d.valid() {
			for i, field := range []*int{&d.Month, &d.Day} {
				if len(parts) <= i+1 {
					break
				}
				*field = atoi(parts[i+1])
				if !d.valid() {
					*field = 0
					break
				}
			}
			return d.String()
		}
	}
	if m := anyYearRegex.FindString(s); m != "" {
		return m
	}
	return ""
}

// ParseYear extracts a four-digit year, or 0.
func ParseYear(s string) int {
	if m := anyYearRegex.FindString(s); m != "" {
		return atoi(m)
	}
	return 0
}

func parseMonthYear(s string) (time.Time, error) {
	t, err := time.Parse("January 2006", s)
	if err != nil {
		t, err = time.Parse("Jan 2006", s)
	}
	return t, err
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
