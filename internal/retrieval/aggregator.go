package retrieval

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"versefinder/internal/contextutil"
	"versefinder/internal/textclean"
)

const (
	minFullLen    = 60
	minPreviewLen = 40
)

// Aggregator fans a question out to every usable book's search index,
// collects the raw hits, and reduces each one to a cleaned candidate
// passage. Retrieval is pure: the aggregator has no side effects beyond
// logging.
type Aggregator struct {
	search        SearchService
	perBook       int
	searchTimeout time.Duration
}

// NewAggregator creates an Aggregator issuing up to perBook hits per book,
// with searchTimeout bounding each book's index query.
func NewAggregator(search SearchService, perBook int, searchTimeout time.Duration) *Aggregator {
	return &Aggregator{
		search:        search,
		perBook:       perBook,
		searchTimeout: searchTimeout,
	}
}

// Collect queries every book concurrently and returns the flattened
// candidate list in book order. A failed or timed-out book query degrades to
// zero candidates from that book; it never fails the whole request.
func (a *Aggregator) Collect(ctx context.Context, question string, books []Book) []Candidate {
	terms := strings.Fields(question)

	perBook := make([][]Candidate, len(books))
	g, gctx := errgroup.WithContext(ctx)
	for i, book := range books {
		g.Go(func() error {
			perBook[i] = a.collectBook(gctx, question, terms, book)
			return nil
		})
	}
	_ = g.Wait()

	var out []Candidate
	for _, cands := range perBook {
		out = append(out, cands...)
	}
	return out
}

func (a *Aggregator) collectBook(ctx context.Context, question string, terms []string, book Book) []Candidate {
	logger := contextutil.LoggerFromContext(ctx)

	if book.IndexHandle == "" {
		logger.WarnContext(ctx, "book has no index, skipping", "book_id", book.ID)
		return nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, a.searchTimeout)
	defer cancel()

	hits, err := a.search.Search(queryCtx, book.IndexHandle, question, a.perBook)
	if err != nil {
		logger.WarnContext(ctx, "book search failed, degrading to zero candidates",
			"book_id", book.ID, "book_title", book.Title, "error", err)
		return nil
	}

	candidates := make([]Candidate, 0, len(hits))
	for _, hit := range hits {
		if candidate, ok := buildCandidate(book, hit, terms); ok {
			candidates = append(candidates, candidate)
		}
	}

	logger.DebugContext(ctx, "book search completed",
		"book_id", book.ID, "hits", len(hits), "candidates", len(candidates))
	return candidates
}

// buildCandidate runs the cleaning pipeline over one raw hit. The pass order
// is load-bearing: heading lines must be stripped before extraction and
// reflow, and inline-header stripping only works on reflowed prose.
func buildCandidate(book Book, hit SearchHit, terms []string) (Candidate, bool) {
	text := textclean.Normalize(hit.Text)
	if text == "" || textclean.LooksLikeNoise(text) {
		return Candidate{}, false
	}

	text = textclean.StripHeadingLines(text)
	unit := textclean.ExtractUnit(text, terms)

	full := textclean.StripHeaderFooterLines(unit.Full)
	full = textclean.Dewrap(full)
	full = textclean.StripInlineHeaders(full)

	// Preview is re-derived from the finished full text so it always stays
	// a clean prefix of what a full-passage lookup would later return.
	preview := textclean.TruncatePreview(full)

	if textclean.LooksLikeNoise(full) || textclean.LooksLikeNoise(preview) {
		return Candidate{}, false
	}
	if len(full) < minFullLen || len(preview) < minPreviewLen {
		return Candidate{}, false
	}

	return Candidate{
		BookID:    book.ID,
		BookTitle: book.Title,
		Score:     hit.Score,
		Preview:   preview,
		FullText:  full,
	}, true
}
