package embedding

import "context"

type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)

	// BatchEmbedding embeds every text, one vector per input in input
	// order. Implementations bound their concurrency against the provider.
	BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}
