package textclean

import (
	"regexp"
	"strings"
	"unicode"
)

// Classifier thresholds. These were tuned empirically against scanned-PDF
// extractions of the source library; treat them as configuration, not truth.
const (
	dotLeaderMinRuns  = 2
	pageRefMinCount   = 4
	shortLineMaxLen   = 40
	shortLineMinCount = 6
	shortLineRatio    = 0.7
)

var (
	dotLeaderRe     = regexp.MustCompile(`\.{5,}`)
	pageRefRe       = regexp.MustCompile(`(?i)\bp\.\s*\d+`)
	tocHeadingRe    = regexp.MustCompile(`(?im)^\s*(table of contents|contents|index)\s*$`)
	pageNumLineRe   = regexp.MustCompile(`^\s*\d{1,4}\s*$`)
	pageRefLineRe   = regexp.MustCompile(`(?i)^\s*p\.\s*\d+\s*$`)
	chapterOrdinals = `([0-9]+|[ivxlcdm]+|one|two|three|four|five|six|seven|eight|nine|ten|` +
		`eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty|` +
		`first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)`
	chapterHeadingRe = regexp.MustCompile(`(?i)^\s*(chapter|book|part|section)\s+` + chapterOrdinals + `\b[.:]?\s*$`)
	romanLineRe      = regexp.MustCompile(`^\s*[IVXLCDM]+[.:]?\s*$`)

	inlineChapterRe   = regexp.MustCompile(`(?i)\b(chapter|book|part|section)\s+([0-9]+|[ivxlcdm]+)\b[.:]?\s*([A-Z][^.!?]{0,60}[.!?])?`)
	runTogetherPageRe = regexp.MustCompile(`\b(?:[A-Z][A-Za-z']*\s+){0,6}[A-Z][A-Za-z']*\d{2,4}\b`)
	spaceRunRe        = regexp.MustCompile(`[ \t]{2,}`)
)

// runningHeaderLineRes matches running headers that repeat on every page of
// the source library's PDFs and survive text extraction as standalone lines.
var runningHeaderLineRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*the sayings of the desert fathers\s*$`),
	regexp.MustCompile(`(?i)^\s*the philokalia(\s+vol(ume)?\.?\s*\w+)?\s*$`),
	regexp.MustCompile(`(?i)^\s*the ladder of divine ascent\s*$`),
	regexp.MustCompile(`(?i)^\s*the way of a pilgrim\s*$`),
}

// LooksLikeNoise reports whether text reads like table-of-contents or index
// clutter rather than prose. The signals are combined conservatively so that
// legitimate cross-references ("cf. Matt. 5:3", a single "p. 12") do not
// classify a real passage as noise. Empty input counts as noise.
func LooksLikeNoise(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}

	if tocHeadingRe.MatchString(trimmed) {
		return true
	}

	dotRuns := len(dotLeaderRe.FindAllString(trimmed, -1))
	pageRefs := len(pageRefRe.FindAllString(trimmed, -1))

	if dotRuns >= dotLeaderMinRuns {
		return true
	}
	if pageRefs >= pageRefMinCount {
		return true
	}
	if dotRuns >= 1 && pageRefs >= 2 {
		return true
	}

	// Many short lines plus at least one dot leader is the shape of a
	// contents page whose leaders were partially mangled by extraction.
	lines := strings.Split(trimmed, "\n")
	if len(lines) >= shortLineMinCount && dotRuns >= 1 {
		short := 0
		for _, line := range lines {
			if len(strings.TrimSpace(line)) <= shortLineMaxLen {
				short++
			}
		}
		if float64(short) > shortLineRatio*float64(len(lines)) {
			return true
		}
	}

	return false
}

// StripHeaderFooterLines removes lines that are pure page numbers, "p. N"
// references, or known running headers. Blank lines are always preserved so
// paragraph boundaries survive for the extractor.
func StripHeaderFooterLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			kept = append(kept, line)
			continue
		}
		if pageNumLineRe.MatchString(line) || pageRefLineRe.MatchString(line) {
			continue
		}
		if matchesAny(runningHeaderLineRes, line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// StripHeadingLines removes chapter/book/part/section heading lines, bare
// roman numeral lines, and short all-caps lines. It must run before Dewrap:
// once lines are joined, heading text fuses into the surrounding prose and
// can no longer be removed cleanly.
func StripHeadingLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if chapterHeadingRe.MatchString(line) || romanLineRe.MatchString(line) || isShortAllCaps(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// StripInlineHeaders removes noise that only becomes visible after reflow:
// chapter markers joined into prose, word runs duplicated by overlapping
// index chunks, and running headers fused directly onto page numbers.
func StripInlineHeaders(text string) string {
	paras := strings.Split(text, "\n\n")
	for i, para := range paras {
		para = inlineChapterRe.ReplaceAllString(para, " ")
		para = runTogetherPageRe.ReplaceAllString(para, " ")
		para = collapseRepeatedRuns(para)
		paras[i] = strings.TrimSpace(spaceRunRe.ReplaceAllString(para, " "))
	}
	out := strings.Join(paras, "\n\n")
	return strings.TrimSpace(newlineRunRe.ReplaceAllString(out, "\n\n"))
}

// collapseRepeatedRuns drops an immediate back-to-back repeat of 2 to 8
// consecutive words, keeping the first copy. Overlapping index chunks often
// stitch the same phrase twice at the seam.
func collapseRepeatedRuns(s string) string {
	words := strings.Fields(s)
	if len(words) < 4 {
		return s
	}

	out := make([]string, 0, len(words))
	i := 0
	for i < len(words) {
		run := 0
		for n := 8; n >= 2; n-- {
			if i+2*n <= len(words) && equalRun(words, i, n) {
				run = n
				break
			}
		}
		if run > 0 {
			out = append(out, words[i:i+run]...)
			i += 2 * run
			continue
		}
		out = append(out, words[i])
		i++
	}
	return strings.Join(out, " ")
}

// equalRun reports whether words[i:i+n] equals words[i+n:i+2n].
func equalRun(words []string, i, n int) bool {
	for k := 0; k < n; k++ {
		if words[i+k] != words[i+n+k] {
			return false
		}
	}
	return true
}

// isShortAllCaps reports whether line is at most five words, contains at
// least one letter, and every letter is upper case. Such lines are almost
// always section headings in the source library.
func isShortAllCaps(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if len(strings.Fields(trimmed)) > 5 {
		return false
	}
	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
