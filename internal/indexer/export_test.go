package indexer

// EmbedBatchSize exposes the embedding batch size to external tests.
const EmbedBatchSize = embedBatchSize
