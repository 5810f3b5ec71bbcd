package job

import (
	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
)

// Service owns the job queue shared by the HTTP handlers and the worker
// pool. Handlers push jobs and signal the dispatcher; workers drain.
type Service struct {
	JobChannel        chan jobModel.Job
	DispatcherChannel chan bool
	RequestCount      int64
	JobStore          jobModel.JobStore
	MessageStore      jobModel.MessageStore
}

func NewService(jobStore jobModel.JobStore, messageStore jobModel.MessageStore) *Service {
	return &Service{
		JobChannel:        make(chan jobModel.Job, config.BufferLimit),
		DispatcherChannel: make(chan bool, 1),
		JobStore:          jobStore,
		MessageStore:      messageStore,
	}
}
