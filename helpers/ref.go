package helpers

import (
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/config"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

// AbsoluteURL joins a path onto the configured scheme and server name.
func AbsoluteURL(path string) string {
	return config.Current().BaseURL() + "/" + strings.TrimPrefix(path, "/")
}

// SchemaURL is the $schema value for a schema stem such as "hep".
func SchemaURL(stem string) string {
	return AbsoluteURL("schemas/records/" + stem + ".json")
}

// GetRecordRef builds {"$ref": "<scheme>://<server>/api/<endpoint>/<recid>"}.
// It returns nil when recid is not a positive integer, so callers can store
// the result unconditionally and let empty-value stripping drop it.
func GetRecordRef(recid any, endpoint string) map[string]any {
	id, ok := value.IntOK(recid)
	if !ok || id <= 0 {
		return nil
	}
	if endpoint == "" {
		endpoint = "literature"
	}
	return map[string]any{"$ref": AbsoluteURL("api/" + endpoint + "/" + strconv.Itoa(id))}
}

// GetRecid extracts the trailing integer of a $ref. It accepts the
// reference object itself or the bare URL.
func GetRecid(ref any) (int, bool) {
	var url string
	switch r := ref.(type) {
	case map[string]any:
		url = value.Text(r["$ref"])
	default:
		url = value.Text(r)
	}
	url = strings.TrimRight(url, "/")
	if url == "" {
		return 0, false
	}
	if i := strings.LastIndex(url, "/"); i >= 0 {
		url = url[i+1:]
	}
	id, err := strconv.Atoi(url)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// RefEndpoint returns the endpoint segment of a $ref ("literature",
// "authors", ...).
func RefEndpoint(ref any) string {
	url := value.Text(value.Map(ref)["$ref"])
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}
