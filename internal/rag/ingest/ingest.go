package ingest

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
	"github.com/docurag/DocuRAG/internal/rag/processor"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

// ProcessDocumentIngestion drives one ingest job: load the uploaded file
// into raw page documents, run the chunking pipeline, and store the
// surviving chunks in the user's collection. The temp file is removed only
// after a successful store so a retry can re-read it.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, proc *processor.Processor) jobModel.Job {
	log := logger_i.NewLogger("Document Ingestion").With("traceId", ctx.Value(config.TRACE_ID_KEY))

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestURL
	log.Debug("Processing document", "filename", docName, "path", docPath)

	job.CurrentStep = jobModel.IngestProcessing

	docType := getDocType(docPath)
	if docType == unsupportedDoc {
		log.Error("Unsupported document type", "path", docPath)
		return failJob(job, "Unsupported document type", false, -1)
	}

	rawDocs, err := extractText(docPath, docType, log)
	if err != nil {
		log.Error("Error extracting document content", "error", err)
		return failJob(job, "Error extracting document content", false, -1)
	}
	log.Debug("Processing document", "pages", len(rawDocs))

	chunks, err := proc.ProcessDocuments(rawDocs, docName, job.JobPayload.CollectionId)
	if err != nil {
		log.Error("Error processing document", "error", err)
		return failJob(job, "Error processing document", false, -1)
	}
	log.Debug("Processing document", "chunks", len(chunks))

	collectionName := config.CollectionNamePrefix + job.JobPayload.CollectionId
	if err := proc.StoreDocuments(ctx, chunks, collectionName); err != nil {
		var storageErr *processor.StorageError
		if errors.As(err, &storageErr) {
			log.Error("Error storing chunks", "error", err, "failedBatch", storageErr.Batch)
			return failJob(job, "Error storing chunks", true, storageErr.Batch)
		}
		log.Error("Error storing chunks", "error", err)
		return failJob(job, "Error storing chunks", true, -1)
	}

	if err := os.Remove(docPath); err != nil {
		log.Error("Error removing file", "error", err)
	}

	job.Status = jobModel.JobStatusComplete
	return job
}

func failJob(job jobModel.Job, message string, canRetry bool, failedBatch int) jobModel.Job {
	job.Status = jobModel.JobStatusError
	job.Error = jobModel.JobError{
		Code:        http.StatusInternalServerError,
		Message:     message,
		Retry:       canRetry,
		FailedBatch: failedBatch,
	}
	return job
}
