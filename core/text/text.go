// Package text holds the pure string normalisers applied to extracted
// fragments. The normalisers are idempotent: f(f(x)) == f(x), with the
// exception of TextAfterLineNumbers, which consumes layout.
package text

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// nbspMapper maps the no-break space family onto an ordinary space.
var nbspMapper = runes.Map(func(r rune) rune {
	switch r {
	case '\u00a0', '\u202f', '\u2007':
		return ' '
	}
	return r
})

// StripNBSP replaces non-breaking-space code points with ordinary spaces.
func StripNBSP(s string) string {
	return nbspMapper.String(s)
}

// Sanitize replaces ill-formed UTF-8 with U+FFFD. PDF text extraction can
// leave undecodable glyph bytes behind.
func Sanitize(s string) string {
	out, _, err := transform.String(runes.ReplaceIllFormed(), s)
	if err != nil {
		return s
	}
	return out
}

// CollapseSpace trims s and collapses internal whitespace runs to one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanName is the cleanup every extracted name passes through before storage.
func CleanName(s string) string {
	return CollapseSpace(StripNBSP(s))
}

var ordinalRe = regexp.MustCompile(`(?i)^(\d+)(?:st|nd|rd|th)$`)

// StripOrdinalSuffix turns "23rd" into "23". Anything that is not a digit
// run followed by an ordinal suffix is returned trimmed but otherwise as is.
func StripOrdinalSuffix(s string) string {
	s = strings.TrimSpace(s)
	if m := ordinalRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// SplitNameList splits a comma-joined name string into trimmed tokens,
// dropping empty ones.
func SplitNameList(s string) []string {
	parts := strings.Split(StripNBSP(s), ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = CollapseSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// StripTitle removes one leading title token (e.g. "Sen.", "Rep.") from s.
// It reports which title was removed, or "" when none matched.
func StripTitle(s string, titles ...string) (string, string) {
	s = CollapseSpace(StripNBSP(s))
	for _, t := range titles {
		if strings.HasPrefix(s, t+" ") || s == t {
			return strings.TrimSpace(strings.TrimPrefix(s, t)), t
		}
	}
	return s, ""
}

// DeobfuscateEmail undoes the "name [at] host [dot] gov" spam guard.
func DeobfuscateEmail(s string) string {
	s = CollapseSpace(StripNBSP(s))
	s = strings.ReplaceAll(s, " [at] ", "@")
	s = strings.ReplaceAll(s, " [dot] ", ".")
	return s
}

// pageNumberRe matches a bare PDF page number line such as " -12-".
var pageNumberRe = regexp.MustCompile(`^\s*-\d+-\s*$`)

// PaginationOptions tunes StripPDFPagination.
type PaginationOptions struct {
	// Marker, when set, drops every line before the first line containing it.
	// A marker that never occurs keeps all lines.
	Marker string
}

// StripPDFPagination removes bare page-number lines from PDF-derived lines.
func StripPDFPagination(lines []string, opts PaginationOptions) []string {
	if opts.Marker != "" {
		for i, line := range lines {
			if strings.Contains(line, opts.Marker) {
				lines = lines[i:]
				break
			}
		}
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if pageNumberRe.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

var lineNumberRe = regexp.MustCompile(`^\s*\d+\s+(.*)$`)

// TextAfterLineNumbers keeps only the lines of a numbered-line document
// (as bill PDFs are), without their leading line numbers.
func TextAfterLineNumbers(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if m := lineNumberRe.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			out = append(out, m[1])
		}
	}
	return strings.Join(out, "\n")
}
