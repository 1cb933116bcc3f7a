package retrieval

import (
	"context"
	"fmt"
	"strings"

	"versefinder/internal/vectorstore"
)

// Embedder turns texts into query vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IndexSearcher implements SearchService over an embeddings client and a
// vector store. The index handle is the name of the book's collection; the
// fragment text travels in the point payload, so a hit needs no further
// lookups.
type IndexSearcher struct {
	embedder Embedder
	store    vectorstore.VectorStore
}

// NewIndexSearcher creates an IndexSearcher.
func NewIndexSearcher(embedder Embedder, store vectorstore.VectorStore) *IndexSearcher {
	return &IndexSearcher{embedder: embedder, store: store}
}

// Search embeds the query and runs a top-k search against the book's
// collection.
func (s *IndexSearcher) Search(ctx context.Context, indexHandle, query string, maxResults int) ([]SearchHit, error) {
	vectors, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := s.store.Search(ctx, indexHandle, vectors[0], maxResults)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}

	hits := make([]SearchHit, 0, len(results))
	for _, result := range results {
		text := payloadText(result.Meta)
		if text == "" {
			continue
		}
		score := result.Score
		hits = append(hits, SearchHit{Text: text, Score: &score})
	}
	return hits, nil
}

// payloadText assembles the fragment text from a point payload. Multi-part
// content is joined with newlines.
func payloadText(meta map[string]any) string {
	switch v := meta["text"].(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}
