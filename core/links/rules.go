// Package links normalises provenance URLs and tells document kinds apart
// by their URL when an adapter has nothing better to go on.
package links

import (
	"net/url"
	"path"
	"strings"
)

// pdfExtensions are the extensions served as PDF by legislature sites.
var pdfExtensions = map[string]bool{
	".pdf": true,
}

// IsPDF reports whether a URL points at a PDF by its path extension.
func IsPDF(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return pdfExtensions[ext]
}

// IsAbsolute reports whether rawURL carries a scheme and a host.
func IsAbsolute(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}

// NormalizeURL trims whitespace and strips fragments for deduplication.
// Trailing slashes are significant on legislature sites and are kept.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	// Remove fragment.
	parsed.Fragment = ""
	parsed.RawFragment = ""

	return parsed.String()
}

// TrimSuffixPath removes suffix from the end of the URL path, e.g. turning
// a ".../senator/smith/contact" page into the profile URL.
func TrimSuffixPath(rawURL, suffix string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return strings.TrimSuffix(rawURL, suffix)
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, suffix)
	return parsed.String()
}
