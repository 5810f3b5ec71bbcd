package rag

import (
	"context"
	"time"

	"github.com/docurag/DocuRAG/internal/adapter/utils"
	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
	"github.com/docurag/DocuRAG/internal/metrics"
	"github.com/docurag/DocuRAG/internal/rag/embedding"
	"github.com/docurag/DocuRAG/internal/rag/ingest"
	"github.com/docurag/DocuRAG/internal/rag/llm"
	"github.com/docurag/DocuRAG/internal/rag/processor"
	"github.com/docurag/DocuRAG/internal/rag/vectorDB"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

// Service is the only surface the worker sees - it doesn't need to know
// about the processor, the LLM or the vector store behind it.
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	proc        *processor.Processor
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	logger      *logger_i.Logger
}

// NewService wires the query and ingestion flows. Every collaborator is
// injected so tests can swap in fakes.
func NewService(proc *processor.Processor, vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder) Service {
	return &service{
		proc:        proc,
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	jobt.CurrentStep = jobModel.RAGCall

	intent := processor.AnalyzeIntent(jobt.JobPayload.Question)
	inMethodLogger.Debug("Query intent", "type", intent.Type)

	// Embedding
	queryVector, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	// Cache Check
	cachedAnswer, found := s.executeCacheCheckStep(ctx, inMethodLogger, &jobt, queryVector)
	if found {
		return returnOutput(jobt, cachedAnswer)
	}

	// Semantic Search - degrades to answering from history alone when the
	// vector store is unreachable, so the chat still works
	candidates := s.executeSearchStep(processContext, inMethodLogger, &jobt, queryVector)

	// LLM Generation
	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, candidates, messageHistory)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	//Background Cache Save
	go func() {
		if err := s.vectorDB.SaveToCache(ctx, utils.GetNewUUID(), queryVector, answer); err != nil {
			s.logger.Error("Failed to save to cache")
		}
	}()

	return returnOutput(jobt, answer)
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()

	j := ingest.ProcessDocumentIngestion(ctx, job, s.proc)
	if j.Status != jobModel.JobStatusComplete {
		s.logger.Error("INGESTION_FAILURE", "jobId", j.Id, "failedBatch", j.Error.FailedBatch)
	}
	return j
}
