package hep

import (
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/helpers"
	"github.com/lehigh-university-libraries/inspire-dojson/marc"
)

func ref(f marc.Field, code, endpoint string) map[string]any {
	return helpers.GetRecordRef(f.Get(code), endpoint)
}

// recid renders the id of a $ref for a MARC subfield, or "".
func recid(ref any) string {
	if id, ok := helpers.GetRecid(ref); ok {
		return strconv.Itoa(id)
	}
	return ""
}

func isCurator(source string) bool {
	return strings.EqualFold(strings.TrimSpace(source), "CURATOR")
}

// source drops the CURATOR marker, which records who touched a field rather
// than where its value came from.
func source(s string) string {
	if isCurator(s) {
		return ""
	}
	return s
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func setIf(m map[string]any, key string, v any) {
	switch val := v.(type) {
	case nil:
		return
	case string:
		if val == "" {
			return
		}
	case map[string]any:
		if len(val) == 0 {
			return
		}
	case []any:
		if len(val) == 0 {
			return
		}
	}
	m[key] = v
}
