package textclean

import "strings"

// Dewrap removes the hard line-wraps reintroduced by the source document's
// pagination: every single newline not adjacent to another newline becomes a
// space, double newlines stay as paragraph breaks, space runs collapse, and
// the result is trimmed.
//
// Dewrap must run after StripHeadingLines. Once the lines are joined, a
// heading fuses into the adjacent prose and cannot be removed cleanly; the
// pipeline order Filter -> Extract -> StripHeadingLines -> Dewrap ->
// StripInlineHeaders is load-bearing.
func Dewrap(text string) string {
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\t' {
			b.WriteByte(' ')
			continue
		}
		if c != '\n' {
			b.WriteByte(c)
			continue
		}
		prevNL := i > 0 && s[i-1] == '\n'
		nextNL := i+1 < len(s) && s[i+1] == '\n'
		if prevNL || nextNL {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}

	out := spaceRunRe.ReplaceAllString(b.String(), " ")
	out = newlineRunRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
