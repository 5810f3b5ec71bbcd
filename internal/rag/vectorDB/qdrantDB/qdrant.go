package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/commonModels"
	"github.com/docurag/DocuRAG/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

var dimension = uint64(config.EmbeddingOutputDimensionality)

// Store wraps the Qdrant gRPC client. Constructed once in main and passed
// down; the collection cache has an explicit lifecycle so tests can reset it.
type Store struct {
	client *qdrant.Client
	cache  *CollectionCache
	logger *logger_i.Logger
}

func NewQdrantStore(ctx context.Context) (*Store, error) {
	logger := logger_i.NewLogger("Qdrant")

	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))
	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "err", err)
		return nil, err
	}

	store := &Store{
		client: client,
		cache:  NewCollectionCache(),
		logger: logger,
	}

	if err := store.EnsureCollection(ctx, config.SemanticCacheCollection); err != nil {
		logger.Error("Semantic cache collection creation failed", "error", err)
		return nil, err
	}

	go store.closeOnDone(ctx)
	return store, nil
}

func (db *Store) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	db.logger.Info("Shutting down Qdrant")
	if err := db.client.Close(); err != nil {
		db.logger.Error("could not close Qdrant", "err", err)
	}
	db.logger.Info("Closed Qdrant")
}

// EnsureCollection creates the collection if it does not exist. Losing the
// create race to a concurrent first-writer is fine: the collection exists
// either way, which is the only postcondition that matters.
func (db *Store) EnsureCollection(ctx context.Context, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}
	if db.cache.Has(collectionName) {
		return nil
	}

	exists, err := db.client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		db.cache.Set(collectionName)
		return nil
	}

	err = db.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		// a concurrent writer may have created it between our check and
		// the create call
		if exists, checkErr := db.client.CollectionExists(ctx, collectionName); checkErr == nil && exists {
			db.cache.Set(collectionName)
			return nil
		}
		return err
	}

	db.cache.Set(collectionName)
	return nil
}

func (db *Store) UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.Chunk) error {
	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))

	for i, chunk := range chunks {
		if chunk.Embedding == nil {
			return fmt.Errorf("chunk %s has no embedding", chunk.Id)
		}

		keyPhrases := make([]any, len(chunk.Derived.KeyPhrases))
		for j, phrase := range chunk.Derived.KeyPhrases {
			keyPhrases[j] = phrase
		}

		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.Id),
			Vectors: qdrant.NewVectors(chunk.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":       chunk.Content,
				"source_id":     chunk.Source.SourceId,
				"collection_id": chunk.Source.CollectionId,
				"page_num":      chunk.Source.PageNumber,
				"chunk_index":   chunk.Source.ChunkIndex,
				"total_chunks":  chunk.Source.TotalChunks,
				"content_type":  string(chunk.Derived.ContentType),
				"complexity":    string(chunk.Derived.Complexity),
				"has_headers":   chunk.Derived.HasHeaders,
				"has_lists":     chunk.Derived.HasLists,
				"has_numbers":   chunk.Derived.HasNumbers,
				"key_phrases":   keyPhrases,
				"processed_at":  chunk.Derived.ProcessedAt.Unix(),
			}),
		}
	}

	_, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *Store) Query(ctx context.Context, collectionName string, vector []float32, limit uint64, contentType commonModels.ContentType) ([]commonModels.SearchCandidate, error) {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	queryPoints := &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if contentType != "" {
		queryPoints.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("content_type", string(contentType)),
			},
		}
	}

	result, err := db.client.Query(ctx, queryPoints)
	if err != nil {
		loggr.Error("Error querying Qdrant", "err", err)
		return nil, err
	}

	candidates := make([]commonModels.SearchCandidate, 0, len(result))
	for _, hit := range result {
		candidates = append(candidates, hitToCandidate(hit))
	}

	loggr.Debug("Qdrant query complete", "candidates", len(candidates))
	return candidates, nil
}

func hitToCandidate(hit *qdrant.ScoredPoint) commonModels.SearchCandidate {
	payload := hit.Payload

	var keyPhrases []string
	if list := payload["key_phrases"].GetListValue(); list != nil {
		for _, value := range list.Values {
			keyPhrases = append(keyPhrases, value.GetStringValue())
		}
	}

	return commonModels.SearchCandidate{
		Content: payload["content"].GetStringValue(),
		Source: commonModels.SourceMetadata{
			SourceId:     payload["source_id"].GetStringValue(),
			CollectionId: payload["collection_id"].GetStringValue(),
			PageNumber:   int(payload["page_num"].GetIntegerValue()),
			ChunkIndex:   int(payload["chunk_index"].GetIntegerValue()),
			TotalChunks:  int(payload["total_chunks"].GetIntegerValue()),
		},
		Derived: commonModels.DerivedMetadata{
			ContentType: commonModels.ContentType(payload["content_type"].GetStringValue()),
			Complexity:  commonModels.Complexity(payload["complexity"].GetStringValue()),
			HasHeaders:  payload["has_headers"].GetBoolValue(),
			HasLists:    payload["has_lists"].GetBoolValue(),
			HasNumbers:  payload["has_numbers"].GetBoolValue(),
			KeyPhrases:  keyPhrases,
		},
		RawScore: float64(hit.Score),
	}
}
