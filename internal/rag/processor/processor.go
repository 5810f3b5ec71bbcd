package processor

import (
	"context"
	"time"

	"github.com/docurag/DocuRAG/internal/adapter/utils"
	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/commonModels"
	"github.com/docurag/DocuRAG/internal/metrics"
	"github.com/docurag/DocuRAG/internal/rag/embedding"
	"github.com/docurag/DocuRAG/internal/rag/vectorDB"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

// Processor is the document chunking, enrichment and semantic-search core.
// Both collaborators are injected so tests can substitute fakes and nothing
// here is process-global.
type Processor struct {
	embedder embedding.Embedder
	store    vectorDB.DataProcessor
	logger   *logger_i.Logger
}

func New(em embedding.Embedder, store vectorDB.DataProcessor) *Processor {
	return &Processor{
		embedder: em,
		store:    store,
		logger:   logger_i.NewLogger("Processor"),
	}
}

// ProcessDocuments runs the ingestion pipeline: segment each raw document,
// classify every chunk, drop what the quality filter rejects, and assign
// contiguous chunk indexes to the survivors. Zero survivors is a success
// that stores nothing, not an error.
func (p *Processor) ProcessDocuments(rawDocs []commonModels.RawDocument, sourceName string, collectionId string) ([]commonModels.Chunk, error) {
	if len(rawDocs) == 0 {
		return nil, &InputError{Reason: "empty document set"}
	}

	processedAt := time.Now().UTC()
	dropped := 0
	var chunks []commonModels.Chunk

	for _, doc := range rawDocs {
		for _, segment := range Segment(doc.Text, config.ChunkTargetSize, config.ChunkOverlap) {
			if !IsAcceptable(segment) {
				dropped++
				continue
			}
			derived := Classify(segment)
			derived.ProcessedAt = processedAt

			chunks = append(chunks, commonModels.Chunk{
				Id:      utils.GetNewUUID(),
				Content: segment,
				Source: commonModels.SourceMetadata{
					SourceId:     sourceName,
					CollectionId: collectionId,
					PageNumber:   doc.PageNumber,
				},
				Derived: derived,
			})
		}
	}

	for i := range chunks {
		chunks[i].Source.ChunkIndex = i
		chunks[i].Source.TotalChunks = len(chunks)
	}

	metrics.AddDroppedChunks(dropped)
	if len(chunks) == 0 {
		p.logger.Warn("All chunks rejected by quality filter", "source", sourceName, "dropped", dropped)
	} else {
		p.logger.Debug("Processed documents", "source", sourceName, "chunks", len(chunks), "dropped", dropped)
	}
	return chunks, nil
}

// StoreDocuments embeds and upserts chunks in fixed-size batches. Batches
// are written sequentially; a failure carries the failing batch index so the
// job layer can resume there instead of starting over. Once the surrounding
// context is cancelled no further batches are started, but the batch already
// in flight completes.
func (p *Processor) StoreDocuments(ctx context.Context, chunks []commonModels.Chunk, collectionName string) error {
	if err := p.store.EnsureCollection(ctx, collectionName); err != nil {
		return &ProviderError{Op: "ensure collection", Err: err}
	}
	if len(chunks) == 0 {
		p.logger.Warn("Nothing to store", "collection", collectionName)
		return nil
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunk_storage", time.Since(start)) }()

	batchIndex := 0
	for offset := 0; offset < len(chunks); offset += config.StoreBatchSize {
		if err := ctx.Err(); err != nil {
			return &StorageError{Batch: batchIndex, Err: err}
		}

		end := offset + config.StoreBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[offset:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		vectors, err := p.embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return &StorageError{Batch: batchIndex, Err: &ProviderError{Op: "batch embedding", Err: err}}
		}
		for i := range batch {
			batch[i].Embedding = vectors[i]
		}

		if err := p.store.UpsertBatch(ctx, collectionName, batch); err != nil {
			return &StorageError{Batch: batchIndex, Err: &ProviderError{Op: "upsert", Err: err}}
		}

		p.logger.Debug("Stored batch", "collection", collectionName, "batch", batchIndex, "size", len(batch))
		batchIndex++
	}

	metrics.AddStoredChunks(len(chunks))
	return nil
}

// SemanticSearch embeds the query, pre-filters by intent, fetches extra raw
// candidates and re-ranks them. Provider failures come back as typed errors
// so the caller can decide whether to degrade to an empty context or to
// surface the failure.
func (p *Processor) SemanticSearch(ctx context.Context, query string, collectionName string, opts commonModels.SearchOptions) ([]commonModels.SearchCandidate, error) {
	if query == "" {
		return nil, &InputError{Reason: "empty query"}
	}

	k := opts.K
	if k <= 0 {
		k = config.DefaultSearchK
	}
	threshold := opts.SimilarityThreshold
	if threshold <= 0 {
		threshold = config.DefaultSimilarityThreshold
	}
	contentFilter := opts.ContentTypeFilter
	if contentFilter == "" {
		contentFilter = IntentFilter(AnalyzeIntent(query))
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("semantic_search", time.Since(start)) }()

	vector := opts.QueryVector
	if vector == nil {
		var err error
		vector, err = p.embedder.GetEmbedding(ctx, query)
		if err != nil {
			return nil, &ProviderError{Op: "query embedding", Err: err}
		}
	}

	fetchLimit := uint64(k * config.CandidateFetchMultiplier)
	candidates, err := p.store.Query(ctx, collectionName, vector, fetchLimit, contentFilter)
	if err != nil {
		return nil, &ProviderError{Op: "vector query", Err: err}
	}

	ranked := Rerank(candidates, query, threshold)
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	p.logger.Debug("Semantic search complete", "collection", collectionName, "raw", len(candidates), "returned", len(ranked))
	return ranked, nil
}
