package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks versefinder/internal/indexer Embedder

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"versefinder/internal/contextutil"
	"versefinder/internal/textclean"
	"versefinder/internal/vectorstore"
)

// embedBatchSize bounds the number of chunk texts sent to the
// embeddings API in one request.
const embedBatchSize = 16

// Embedder generates embedding vectors for texts.
// This interface is defined from the indexer's perspective (consumer-first).
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline chunks, embeds, and indexes book texts. Each book gets its
// own collection so that deletion and per-book search stay trivial.
type Pipeline struct {
	chunker    *Chunker
	embedder   Embedder
	store      vectorstore.VectorStore
	vectorSize int
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(embedder Embedder, store vectorstore.VectorStore, vectorSize int) *Pipeline {
	return &Pipeline{
		chunker:    NewChunker(),
		embedder:   embedder,
		store:      store,
		vectorSize: vectorSize,
	}
}

// IndexBook indexes the book text and returns the index handle and the
// number of chunks written.
func (p *Pipeline) IndexBook(ctx context.Context, bookID, text string) (string, int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	chunks := p.chunker.Chunk(textclean.Normalize(text))
	if len(chunks) == 0 {
		return "", 0, fmt.Errorf("book produced no indexable chunks")
	}

	handle := collectionName(bookID)
	if err := p.store.EnsureCollection(ctx, handle, p.vectorSize); err != nil {
		return "", 0, fmt.Errorf("failed to create index: %w", err)
	}

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return "", 0, fmt.Errorf("failed to embed chunks %d-%d: %w", start, end-1, err)
		}

		points := make([]vectorstore.Point, len(batch))
		for i, c := range batch {
			points[i] = vectorstore.Point{
				ID:  uuid.New().String(),
				Vec: vectors[i],
				Meta: map[string]any{
					"text":        c.Text,
					"book_id":     bookID,
					"chunk_index": c.Index,
					"section":     c.Section,
				},
			}
		}

		if err := p.store.Upsert(ctx, handle, points); err != nil {
			return "", 0, fmt.Errorf("failed to index chunks %d-%d: %w", start, end-1, err)
		}
	}

	logger.InfoContext(ctx, "book indexed", "book_id", bookID, "chunks", len(chunks))
	return handle, len(chunks), nil
}

// DeleteIndex removes a book's index.
func (p *Pipeline) DeleteIndex(ctx context.Context, handle string) error {
	if err := p.store.DeleteCollection(ctx, handle); err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	return nil
}

func collectionName(bookID string) string {
	return "book_" + bookID
}
