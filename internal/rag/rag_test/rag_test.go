package rag_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/commonModels"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
	"github.com/docurag/DocuRAG/internal/rag"
	"github.com/docurag/DocuRAG/internal/rag/processor"
)

func newTestService(e *MockEmbedder, v *MockVectorDB, l *MockLLM) rag.Service {
	return rag.NewService(processor.New(e, v), v, l, e)
}

func TestProcessRequest_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedStep   jobModel.InternalStatus
		expectedAnswer string
		expectedErr    string
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
					return "", false, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, docContext []commonModels.SearchCandidate, h []string) (string, error) {
					return "final answer", nil
				}
			},
			expectedStep:   jobModel.Complete,
			expectedAnswer: "final answer",
		},
		{
			name: "Success_Cache_Hit",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
					return "cached answer", true, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, docContext []commonModels.SearchCandidate, h []string) (string, error) {
					t.Error("LLM should not be called on a cache hit")
					return "", nil
				}
			},
			expectedStep:   jobModel.Complete,
			expectedAnswer: "cached answer",
		},
		{
			// the vector store being down degrades the search to an empty
			// context, it does not fail the job
			name: "Success_Degraded_Vector_Search",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnQuery = func(ctx context.Context, collection string, vector []float32, limit uint64, contentType commonModels.ContentType) ([]commonModels.SearchCandidate, error) {
					return nil, errors.New("db timeout")
				}
				l.OnGenerate = func(ctx context.Context, q string, docContext []commonModels.SearchCandidate, h []string) (string, error) {
					if len(docContext) != 0 {
						t.Errorf("expected empty context after degraded search, got %d candidates", len(docContext))
					}
					return "answer without documents", nil
				}
			},
			expectedStep:   jobModel.Complete,
			expectedAnswer: "answer without documents",
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedErr:    "EMBEDDING_FAILURE",
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, docContext []commonModels.SearchCandidate, h []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedErr:    "LLM_GENERATION_FAILURE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mVec, mLLM)

			s := newTestService(mEmbed, mVec, mLLM)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			job := jobModel.Job{
				Id: "test-job",
				JobPayload: jobModel.JobPayload{
					Question:     "test question",
					CollectionId: "user1",
				},
			}

			result := s.ProcessRequest(ctx, job, []string{})

			if tt.expectedErr != "" {
				if result.Status != jobModel.JobStatusError {
					t.Errorf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
				}
				if result.Error.Code != http.StatusInternalServerError {
					t.Errorf("Error Code got %d, want %d for %s", result.Error.Code, http.StatusInternalServerError, tt.expectedErr)
				}
				return
			}

			if result.CurrentStep != tt.expectedStep {
				t.Errorf("Step got %v, want %v", result.CurrentStep, tt.expectedStep)
			}
			if result.JobPayload.Answer != tt.expectedAnswer {
				t.Errorf("Answer got %s, want %s", result.JobPayload.Answer, tt.expectedAnswer)
			}
		})
	}
}

func TestProcessRequest_SourcesPopulated(t *testing.T) {
	mVec := &MockVectorDB{
		OnQuery: func(ctx context.Context, collection string, vector []float32, limit uint64, contentType commonModels.ContentType) ([]commonModels.SearchCandidate, error) {
			return []commonModels.SearchCandidate{
				{
					Content:  "everything there is to know about the test question",
					RawScore: 0.95,
					Source:   commonModels.SourceMetadata{SourceId: "handbook.pdf", PageNumber: 4},
				},
			}, nil
		},
	}

	s := newTestService(&MockEmbedder{}, mVec, &MockLLM{})

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	result := s.ProcessRequest(ctx, jobModel.Job{
		Id:         "test-job",
		JobPayload: jobModel.JobPayload{Question: "test question", CollectionId: "user1"},
	}, nil)

	if len(result.JobPayload.Sources) != 1 {
		t.Fatalf("Sources got %d entries, want 1", len(result.JobPayload.Sources))
	}
}

const ingestFixture = "this paragraph holds enough meaningful text to survive the quality filter during ingestion tests."

func TestIngestDocument_Scenarios(t *testing.T) {
	dummyFile := "test_ingest.txt"
	os.WriteFile(dummyFile, []byte(ingestFixture), 0644)
	defer os.Remove(dummyFile)

	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB)
		expectedStatus jobModel.JobStatus
		expectedBatch  int
	}{
		{
			name:           "Ingestion_Success",
			setupMocks:     func(e *MockEmbedder, v *MockVectorDB) {},
			expectedStatus: jobModel.JobStatusComplete,
		},
		{
			name: "Failure_Collection_Creation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnEnsureCollection = func(ctx context.Context, name string) error {
					return errors.New("connection refused")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedBatch:  -1,
		},
		{
			name: "Failure_Batch_Upsert",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnUpsertBatch = func(ctx context.Context, coll string, chunks []commonModels.Chunk) error {
					return errors.New("disk full")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedBatch:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}

			tt.setupMocks(mEmbed, mVec)

			s := newTestService(mEmbed, mVec, &MockLLM{})

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")
			job := jobModel.Job{
				Id: "ingest-job-1",
				JobPayload: jobModel.JobPayload{
					IngestFileName: "test_ingest.txt",
					IngestURL:      dummyFile,
					CollectionId:   "user1",
				},
			}

			// Re-create file if deleted by previous successful test run
			if _, err := os.Stat(dummyFile); os.IsNotExist(err) {
				os.WriteFile(dummyFile, []byte(ingestFixture), 0644)
			}

			result := s.IngestDocument(ctx, job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}

			if tt.expectedStatus == jobModel.JobStatusError && result.Error.FailedBatch != tt.expectedBatch {
				t.Errorf("FailedBatch got %d, want %d", result.Error.FailedBatch, tt.expectedBatch)
			}
		})
	}
}
