package rag_test

import (
	"context"

	"github.com/docurag/DocuRAG/internal/domain/commonModels"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnQuery            func(ctx context.Context, collection string, vector []float32, limit uint64, contentType commonModels.ContentType) ([]commonModels.SearchCandidate, error)
	OnGetCachedAnswer  func(ctx context.Context, queryVector []float32) (string, bool, error)
	OnSaveToCache      func(ctx context.Context, id string, vector []float32, answer string) error
	OnEnsureCollection func(ctx context.Context, name string) error
	OnUpsertBatch      func(ctx context.Context, name string, chunks []commonModels.Chunk) error
}

func (m *MockVectorDB) Query(ctx context.Context, collection string, vector []float32, limit uint64, contentType commonModels.ContentType) ([]commonModels.SearchCandidate, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, collection, vector, limit, contentType)
	}
	return []commonModels.SearchCandidate{
		{Content: "default context about the test question topic", RawScore: 0.95},
	}, nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, v []float32) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v)
	}
	return "", false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, id string, v []float32, a string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, a)
	}
	return nil
}

func (m *MockVectorDB) EnsureCollection(ctx context.Context, name string) error {
	if m.OnEnsureCollection != nil {
		return m.OnEnsureCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, name string, chunks []commonModels.Chunk) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, chunks)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, texts)
	}
	// Return dummy vectors matching input size
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{0.1}
	}
	return vectors, nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, query string, docContext []commonModels.SearchCandidate, history []string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, q string, docContext []commonModels.SearchCandidate, hist []string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, docContext, hist)
	}
	return "mocked llm response", nil
}
