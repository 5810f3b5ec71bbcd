package rag

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/commonModels"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
	"github.com/docurag/DocuRAG/internal/metrics"
	"github.com/docurag/DocuRAG/internal/rag/processor"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

func returnOutput(job jobModel.Job, ans string) jobModel.Job {
	job.JobPayload.Answer = ans
	job.CurrentStep = jobModel.Complete
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessRequest", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:        http.StatusInternalServerError,
		Message:     "Internal Server Error",
		Retry:       canRetry,
		FailedBatch: -1,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) executeEmbeddingStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) ([]float32, error) {
	*job = logOutput(*job, jobModel.EmbeddingAPICall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, job.JobPayload.Question)
}

func (s *service) executeCacheCheckStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, queryVector []float32) (string, bool) {
	*job = logOutput(*job, jobModel.CacheCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	ans, found, _ := s.vectorDB.GetCachedAnswer(ctx, queryVector)
	return ans, found
}

// executeSearchStep runs the intent-filtered semantic search. A provider
// failure is deliberately swallowed down to an empty context: availability
// beats completeness on the chat path. Anything else (bad input) is logged
// and also yields no context.
func (s *service) executeSearchStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, queryVector []float32) []commonModels.SearchCandidate {
	*job = logOutput(*job, jobModel.VectorDBCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	collectionName := config.CollectionNamePrefix + job.JobPayload.CollectionId
	candidates, err := s.proc.SemanticSearch(ctx, job.JobPayload.Question, collectionName, commonModels.SearchOptions{
		K:                   config.DefaultSearchK,
		SimilarityThreshold: config.ChatSimilarityThreshold,
		QueryVector:         queryVector,
	})
	if err != nil {
		var providerErr *processor.ProviderError
		if errors.As(err, &providerErr) {
			log.Warn("Semantic search degraded to empty context", "op", providerErr.Op, "error", err)
		} else {
			log.Error("Semantic search rejected", "error", err)
		}
		return nil
	}

	job.JobPayload.Sources = formatSources(candidates)
	return candidates
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, candidates []commonModels.SearchCandidate, history []string) (string, error) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, job.JobPayload.Question, candidates, history)
}

func formatSources(candidates []commonModels.SearchCandidate) []string {
	sources := make([]string, 0, len(candidates))
	for _, c := range candidates {
		sources = append(sources, fmt.Sprintf("%s p.%d (%s, score %.3f)",
			c.Source.SourceId, c.Source.PageNumber, c.Derived.ContentType, c.EnhancedScore))
	}
	return sources
}
