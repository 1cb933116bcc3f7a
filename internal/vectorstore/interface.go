package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks versefinder/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with payload metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a scored point returned by similarity search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore is the interface to the semantic index service. Each book owns
// one collection, named by its opaque index handle.
type VectorStore interface {
	// EnsureCollection creates the collection if absent and validates its
	// vector size if present.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// DeleteCollection removes a collection and all its points.
	DeleteCollection(ctx context.Context, collection string) error

	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a top-k similarity search.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// CollectionExists reports whether the collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}
