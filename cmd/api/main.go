package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"versefinder/internal/auth"
	"versefinder/internal/config"
	"versefinder/internal/http"
	"versefinder/internal/indexer"
	"versefinder/internal/llm"
	"versefinder/internal/retrieval"
	"versefinder/internal/service"
	"versefinder/internal/storage"
	"versefinder/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers reader questions with verbatim passages retrieved from an
// indexed library of books. Passages are quoted exactly as written; the API
// never generates or paraphrases answer text.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: VerseFinder API
//   description: |
//     Verbatim passage retrieval API. Readers ask questions against the book
//     library and receive the most relevant passages quoted word for word,
//     threaded into conversations.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

const (
	searchTimeout = 10 * time.Second
	rerankTimeout = 20 * time.Second
)

// sampleQuestions seeds the suggestion pool shown to readers on first visit.
var sampleQuestions = []string{
	"What did the elders teach about humility?",
	"How should a beginner approach prayer?",
	"What is said about judging one's neighbor?",
	"Why is silence valued so highly?",
	"What advice is given for dealing with anger?",
	"How does one acquire patience in trials?",
}

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	bookRepo := storage.NewBookRepo(db)
	convRepo := storage.NewConversationRepo(db)
	usageRepo := storage.NewUsageRepo(db)
	requestRepo := storage.NewRequestRepo(db)
	questionRepo := storage.NewQuestionRepo(db)

	ctx := context.Background()

	if err := questionRepo.Seed(ctx, sampleQuestions); err != nil {
		log.Fatalf("Failed to seed sample questions: %v", err)
	}

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// Create indexing pipeline for book uploads
	indexerPipeline := indexer.NewPipeline(embedder, vectorStore, cfg.QdrantVectorSize)

	// Retrieval: per-book vector search, cross-book aggregation, ranking
	searcher := retrieval.NewIndexSearcher(embedder, vectorStore)
	aggregator := retrieval.NewAggregator(searcher, cfg.CandidatesPerBook, searchTimeout)

	var reranker retrieval.Reranker
	if cfg.RerankEnabled {
		reranker = llm.NewRerankClient(cfg.RerankBaseURL, cfg.RerankAPIKey, cfg.RerankModel)
		slog.Info("Reranker enabled", "model", cfg.RerankModel)
	} else {
		slog.Info("Reranker disabled, using score ordering")
	}
	ranker := retrieval.NewRanker(reranker, cfg.MaxRerankCandidates, rerankTimeout)

	// Service layer
	askService := service.NewAskService(
		bookRepo,
		convRepo,
		usageRepo,
		requestRepo,
		aggregator,
		ranker,
		service.AskConfig{
			DailyQuota:  cfg.DailyQuota,
			TopPassages: cfg.TopPassages,
		},
	)
	conversationService := service.NewConversationService(convRepo)
	libraryService := service.NewLibraryService(bookRepo, indexerPipeline, cfg.LibraryDir)

	verifier := auth.NewHTTPVerifier(cfg.AuthServiceURL)

	// Create router with dependencies
	deps := &http.Deps{
		AskService:          askService,
		ConversationService: conversationService,
		LibraryService:      libraryService,
		Questions:           questionRepo,
		Verifier:            verifier,
		DB:                  db,
		VectorStore:         vectorStore,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("Retrieval configuration",
		"candidates_per_book", cfg.CandidatesPerBook,
		"top_passages", cfg.TopPassages,
		"daily_quota", cfg.DailyQuota)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
