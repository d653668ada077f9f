package helpers

import (
	"net/url"
	"strings"

	"github.com/lehigh-university-libraries/inspire-dojson/config"
)

var legacyPrefixes = []string{
	"/opt/cds-invenio/",
	"/opt/venvs/inspire-legacy/",
}

// AFSURL rewrites legacy file paths. Paths under the old installation
// prefixes or the configured AFS path become URLs on the AFS HTTP service
// when one is configured, file:// URLs under the AFS path otherwise.
// Anything else, including http URLs, is returned unchanged.
func AFSURL(path string) string {
	cfg := config.Current()
	afs := strings.TrimRight(cfg.LegacyAFSPath, "/")

	rel := ""
	for _, p := range legacyPrefixes {
		if strings.HasPrefix(path, p) {
			rel = strings.TrimPrefix(path, p)
			break
		}
	}
	if rel == "" && afs != "" && strings.HasPrefix(path, afs+"/") {
		rel = strings.TrimPrefix(path, afs+"/")
	}
	if rel == "" {
		return path
	}
	if cfg.LabsAFSHTTPService != "" {
		return strings.TrimRight(cfg.LabsAFSHTTPService, "/") + "/" + rel
	}
	return "file://" + afs + "/" + rel
}

// IsLegacyURL reports whether u points at the legacy site itself.
func IsLegacyURL(u string) bool {
	legacy := config.Current().LegacyBaseURL
	if legacy == "" {
		return false
	}
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.TrimPrefix(parsed.Host, "www.")
	legacy = strings.TrimPrefix(legacy, "www.")
	if lu, err := url.Parse(legacy); err == nil && lu.Host != "" {
		legacy = strings.TrimPrefix(lu.Host, "www.")
	}
	return strings.EqualFold(host, legacy)
}

// IsURL reports whether s looks like an absolute http(s) or ftp URL.
func IsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
		return true
	}
	return false
}

// FileName returns the last path element of a path or URL.
func FileName(p string) string {
	p = strings.TrimRight(p, "/")
	if u, err := url.Parse(p); err == nil && u.Path != "" {
		p = u.Path
	}
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
