package retrieval

import (
	"context"
	"sort"
	"time"

	"versefinder/internal/contextutil"
)

// Ranker orders candidates most-relevant-first. When an external reranker is
// configured it is asked to reorder a bounded prefix of the candidates; the
// deterministic score sort is always available as the fallback and is the
// behavior when no reranker is set.
//
// Whatever the external model returns, the output is a permutation of the
// input: malformed rankings are repaired, never trusted to drop content.
type Ranker struct {
	reranker      Reranker
	maxCandidates int
	timeout       time.Duration
}

// NewRanker creates a Ranker. reranker may be nil, in which case ranking is
// the pure score sort. maxCandidates bounds how many candidates are shown to
// the external model.
func NewRanker(reranker Reranker, maxCandidates int, timeout time.Duration) *Ranker {
	return &Ranker{
		reranker:      reranker,
		maxCandidates: maxCandidates,
		timeout:       timeout,
	}
}

// Rank returns the same candidates reordered, most relevant first.
func (r *Ranker) Rank(ctx context.Context, question string, candidates []Candidate) []Candidate {
	if len(candidates) <= 1 {
		return candidates
	}

	if r.reranker != nil {
		if ordered, ok := r.rerank(ctx, question, candidates); ok {
			return ordered
		}
	}
	return sortByScore(candidates)
}

func (r *Ranker) rerank(ctx context.Context, question string, candidates []Candidate) ([]Candidate, bool) {
	logger := contextutil.LoggerFromContext(ctx)

	pool := candidates
	if len(pool) > r.maxCandidates {
		pool = pool[:r.maxCandidates]
	}

	passages := make([]RerankPassage, len(pool))
	for i, c := range pool {
		passages[i] = RerankPassage{BookTitle: c.BookTitle, Text: c.Preview}
	}

	rankCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	indices, err := r.reranker.RankIndices(rankCtx, question, passages)
	if err != nil {
		logger.WarnContext(ctx, "rerank failed, falling back to score sort", "error", err)
		return nil, false
	}
	return applyRanking(candidates, len(pool), indices)
}

// applyRanking maps a model-returned index list onto the candidates. Indices
// out of [0, poolSize) and duplicates are ignored; every candidate the model
// did not rank is appended afterward in original order, so the result is
// always a total ordering of the input. An empty usable ranking reports
// failure so the caller falls back to score sort.
func applyRanking(candidates []Candidate, poolSize int, indices []int) ([]Candidate, bool) {
	used := make(map[int]bool, len(indices))
	out := make([]Candidate, 0, len(candidates))
	for _, i := range indices {
		if i < 0 || i >= poolSize || used[i] {
			continue
		}
		used[i] = true
		out = append(out, candidates[i])
	}
	if len(out) == 0 {
		return nil, false
	}
	for i := range candidates {
		if !used[i] {
			out = append(out, candidates[i])
		}
	}
	return out, true
}

// sortByScore returns the candidates in descending index-score order. A
// missing score sorts as zero and ties keep their input order.
func sortByScore(candidates []Candidate) []Candidate {
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return scoreOf(out[i]) > scoreOf(out[j])
	})
	return out
}

func scoreOf(c Candidate) float32 {
	if c.Score == nil {
		return 0
	}
	return *c.Score
}
