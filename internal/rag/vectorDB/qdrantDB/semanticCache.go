package qdrantDB

import (
	"context"
	"time"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/qdrant/go-client/qdrant"
)

// The answer cache is a separate collection keyed by query embedding. Two
// queries that embed close enough (cutoff 0.97) are treated as the same
// question and share an answer.

func (db *Store) GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error) {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	searchResult, err := db.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: config.SemanticCacheCollection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil || len(searchResult) == 0 {
		return "", false, err
	}

	if searchResult[0].Score < config.CacheSimilarityCutoff {
		return "", false, nil
	}

	loggr.Info("Semantic cache hit", "score", searchResult[0].Score)
	answer := searchResult[0].Payload["answer"].GetStringValue()
	return answer, true, nil
}

func (db *Store) SaveToCache(ctx context.Context, id string, vector []float32, answer string) error {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	_, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: config.SemanticCacheCollection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"answer":    answer,
					"timestamp": time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		loggr.Error("Saving answer to cache failed", "error", err)
	}
	return err
}
