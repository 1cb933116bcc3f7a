package textclean

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxPreviewRunes caps the preview text disclosed to callers before an
	// explicit full-passage lookup.
	MaxPreviewRunes = 900

	// Ellipsis marks truncation in previews and window-tier excerpts.
	Ellipsis = "…"

	minUnitLen   = 60
	windowRadius = 350
)

var (
	numberedLineRe = regexp.MustCompile(`^\s*\d+\.\s+`)
	paraBreakRe    = regexp.MustCompile(`\n[ \t]*\n`)
)

// Unit is a reconstructed logical unit of a source text: a numbered saying,
// a paragraph, or a bounded window around the match. Preview is Full
// truncated to MaxPreviewRunes with an ellipsis appended when shortened.
type Unit struct {
	Full    string
	Preview string
}

// ExtractUnit locates the first case-insensitive occurrence of any query
// term (terms scanned in order, first hit wins; no hit anchors at offset 0)
// and expands it to a complete logical unit by strict priority:
//
//  1. numbered-item boundaries ("110. ..."), when the text has at least two
//     such markers and the bounded unit is at least 60 characters;
//  2. blank-line-delimited paragraph of at least 60 characters;
//  3. a fixed-radius window around the anchor, ellipsis-marked when clipped.
//
// The tiers trade precision for guaranteed non-empty output.
func ExtractUnit(text string, terms []string) Unit {
	anchor := anchorOffset(text, terms)

	if starts := numberedItemStarts(text); len(starts) >= 2 {
		s := 0
		for _, st := range starts {
			if st <= anchor {
				s = st
			}
		}
		e := len(text)
		for _, st := range starts {
			if st > anchor {
				e = st
				break
			}
		}
		unit := strings.TrimSpace(text[s:e])
		if len(unit) >= minUnitLen {
			return makeUnit(unit)
		}
	}

	pStart, pEnd := 0, len(text)
	for _, m := range paraBreakRe.FindAllStringIndex(text, -1) {
		if m[0] < anchor {
			pStart = m[0]
		}
		if m[0] > anchor && pEnd == len(text) {
			pEnd = m[0]
		}
	}
	if para := strings.TrimSpace(text[pStart:pEnd]); len(para) >= minUnitLen {
		return makeUnit(para)
	}

	start := anchor - windowRadius
	if start < 0 {
		start = 0
	}
	end := anchor + windowRadius
	if end > len(text) {
		end = len(text)
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	snip := strings.TrimSpace(text[start:end])
	if start > 0 {
		snip = Ellipsis + snip
	}
	if end < len(text) {
		snip += Ellipsis
	}
	return makeUnit(snip)
}

// TruncatePreview shortens full text to MaxPreviewRunes, appending an
// ellipsis when anything was cut. The result is always equal to the input or
// a trimmed strict prefix of it.
func TruncatePreview(full string) string {
	runes := []rune(full)
	if len(runes) <= MaxPreviewRunes {
		return full
	}
	return strings.TrimRight(string(runes[:MaxPreviewRunes]), " \t\n") + Ellipsis
}

func makeUnit(full string) Unit {
	full = strings.TrimSpace(full)
	return Unit{Full: full, Preview: TruncatePreview(full)}
}

// anchorOffset returns the byte offset of the first query term found in
// text, scanning terms in their given order. Unmatched queries anchor at 0.
func anchorOffset(text string, terms []string) int {
	lower := strings.ToLower(text)
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if i := strings.Index(lower, term); i >= 0 {
			return i
		}
	}
	return 0
}

// numberedItemStarts returns the byte offsets of lines opening a numbered
// item ("123. ..."), the boundary markers of saying-style sources.
func numberedItemStarts(text string) []int {
	var starts []int
	pos := 0
	for _, line := range strings.Split(text, "\n") {
		if numberedLineRe.MatchString(line) {
			starts = append(starts, pos)
		}
		pos += len(line) + 1
	}
	return starts
}
