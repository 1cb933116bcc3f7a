package textclean

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	newlineRunRe    = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes raw extracted text so that every later cleaning
// pass can assume a predictable character set. It applies Unicode NFKC,
// collapses all whitespace variants (non-breaking, thin, ideographic, ...)
// to ASCII space, strips control characters except newline and tab, removes
// BOM/replacement/zero-width characters, trims trailing whitespace before
// newlines, collapses 3+ newlines to 2, and trims the ends.
// Normalize is pure and idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r == '\r':
			// Dropped entirely; \r\n collapses to \n.
		case isUnsafeRune(r):
		case unicode.IsControl(r):
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	out := trailingSpaceRe.ReplaceAllString(b.String(), "\n")
	out = newlineRunRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// isUnsafeRune reports whether r is a BOM, replacement, object-replacement or
// zero-width character. These survive PDF extraction and corrupt previews.
func isUnsafeRune(r rune) bool {
	switch r {
	case '\uFEFF', '\uFFFD', '\uFFFE', '\uFFFF', '\uFFFC':
		return true
	case '\u200B', '\u200C', '\u200D', '\u2060':
		return true
	}
	return false
}
