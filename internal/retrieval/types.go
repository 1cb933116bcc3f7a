package retrieval

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_search_service.go -package=mocks versefinder/internal/retrieval SearchService
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_reranker.go -package=mocks versefinder/internal/retrieval Reranker

import "context"

// Book identifies a searchable source text. IndexHandle is the opaque
// reference to the book's externally managed search index; a book without
// one is not usable for retrieval.
type Book struct {
	ID          string
	Title       string
	IndexHandle string
}

// Candidate is an in-memory retrieved passage before deduplication and
// ranking. It is never persisted in this form.
type Candidate struct {
	BookID    string
	BookTitle string
	Score     *float32
	Preview   string
	FullText  string
}

// SearchHit is one scored text fragment returned by a book's search index.
type SearchHit struct {
	Text  string
	Score *float32
}

// SearchService queries a single book's semantic index.
type SearchService interface {
	// Search returns up to maxResults scored fragments for the query.
	Search(ctx context.Context, indexHandle, query string, maxResults int) ([]SearchHit, error)
}

// RerankPassage is the view of a candidate shown to the external relevance
// model: the book title and the preview text, nothing else.
type RerankPassage struct {
	BookTitle string
	Text      string
}

// Reranker orders passages by relevance to a question. Implementations must
// only reorder: they return indices into the given slice and never see or
// touch passage content beyond reading it.
type Reranker interface {
	// RankIndices returns indices into passages, most relevant first. An
	// empty result means the reranker could not produce a usable ordering.
	RankIndices(ctx context.Context, question string, passages []RerankPassage) ([]int, error)
}
