package vectorDB

import (
	"context"

	"github.com/docurag/DocuRAG/internal/domain/commonModels"
)

type DataProcessor interface {
	// Query returns raw similarity candidates with their vector score.
	// contentType is an optional payload pre-filter; empty means none.
	Query(ctx context.Context, collectionName string, vector []float32, limit uint64, contentType commonModels.ContentType) ([]commonModels.SearchCandidate, error)

	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error

	// EnsureCollection is idempotent: creating an existing collection is a
	// no-op, and a lost create race against a concurrent first-writer is
	// not an error.
	EnsureCollection(ctx context.Context, collectionName string) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.Chunk) error
}
