package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/docurag/DocuRAG/internal/config"
	jobmodel "github.com/docurag/DocuRAG/internal/domain/jobModel"
	"github.com/docurag/DocuRAG/internal/metrics"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobExecutionTimeout)
	defer cancel()
	log := logger.With("traceId", job.TraceId, "jobId", job.Id)
	log.Debug("Picked up job", "type", job.JobType)

	saveJobState(ctx, job, jobmodel.JobStatusRunning, log)

	if job.JobType == jobmodel.JobTypeIngest {
		job.CurrentStep = jobmodel.IngestProcessing
		job = _ragService.IngestDocument(ctx, job)
	} else {
		job.CurrentStep = jobmodel.RedisCall
		job = processQuery(ctx, job, log)
	}

	job.EndTime = time.Now()
	finalStatus := jobmodel.JobStatusComplete
	if job.Status == jobmodel.JobStatusError {
		finalStatus = jobmodel.JobStatusError
	}
	saveJobState(ctx, job, finalStatus, log)
}

func processQuery(ctx context.Context, job jobmodel.Job, log *logger_i.Logger) jobmodel.Job {
	err, messageHistory := _jobService.MessageStore.GetMessageHistory(ctx, job.ChatId)
	if err != nil {
		log.Error("Failed to get message history", "err", err)
	}
	job = _ragService.ProcessRequest(ctx, job, messageHistory)
	if job.Status != jobmodel.JobStatusError {
		if err := _jobService.MessageStore.TrySaveChat(ctx, job.ChatId, job.JobPayload); err != nil {
			log.Error("Failed to save chat history", "err", err)
		}
	}
	return job
}

func removeWorker(reason string) {
	atomic.AddInt64(&currentWorkerCount, -1)
	metrics.DecrementActiveWorkerCount()
	logger.Info("Worker retired", "reason", reason, "workers", atomic.LoadInt64(&currentWorkerCount))
	workerWaitGroup.Done()
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus, log *logger_i.Logger) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		log.Error("Failed to persist job state", "status", jobStatus, "err", err)
	}
}
