package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/docurag/DocuRAG/internal/api"
	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
	"github.com/docurag/DocuRAG/internal/job"
	"github.com/docurag/DocuRAG/internal/metrics"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	log := logJH.With("traceId", newJob.traceId, "jobId", newJob.id)
	handlerInstance.pushToJobChannel(newJob, log)
	if newJob.isNewChat {
		log.Info("Creating new chat", "chatId", newJob.chatId)
		handlerInstance.initNewChat(newJob.chatId, newJob.traceId)
	}
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func ValidateChatRequest(chatReq api.ChatRequest) bool {
	if handlerInstance == nil {
		return false
	}
	logJH.Debug("Validating chat id", "chatId", chatReq.ChatID)
	if chatReq.Message == "" {
		return false
	}
	if chatReq.ChatID == "" {
		return true
	}
	return handlerInstance.service.MessageStore.ValidateChatId(context.Background(), chatReq.ChatID)
}

func (h *JobHandler) pushToJobChannel(newJob newJobData, log *logger_i.Logger) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobPayload.CollectionId = newJob.collectionId

	if newJob.isDocumentIngest {
		_job.CurrentStep = jobModel.IngestInit
		_job.JobType = jobModel.JobTypeIngest
		_job.JobPayload.IngestFileName = newJob.documentName
		_job.JobPayload.IngestURL = newJob.documentSource

	} else {
		_job.JobType = jobModel.JobTypeQuery
		_job.ChatId = newJob.chatId
		_job.JobPayload.Question = newJob.message
		_job.CurrentStep = jobModel.UserQueryInit
	}

	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send, backpressure when the queue is full
	log.Info("Queued job", "type", _job.JobType)

	//signal the dispatcher every N requests, and always for ingestion since
	//batch embedding ties a worker up for a while
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType == jobModel.JobTypeIngest {
		metrics.StartDispatcherSignalCount()
		log.Debug("Requesting extra worker", "requestCount", accurateCount)
		h.service.DispatcherChannel <- true
	}
}

func (h *JobHandler) initNewChat(chatId string, traceId string) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if err := h.service.MessageStore.InitNewChat(ctxC, chatId); err != nil {
		logJH.Error("Error initiating new chat", "chatId", chatId, "err", err)
	}
}
