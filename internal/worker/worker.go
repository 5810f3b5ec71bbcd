package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/job"
	"github.com/docurag/DocuRAG/internal/metrics"
	"github.com/docurag/DocuRAG/internal/rag"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

// The pool is elastic: the dispatcher spawns a worker per queue signal up to
// MaxWorkerCount, and idle workers retire down to minWorkerCount.
var (
	_jobService        *job.Service
	_ragService        rag.Service
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	dispatcherChannel  chan bool
	currentWorkerCount int64
	minWorkerCount     = config.MinWorkerCount
	logger             *logger_i.Logger
)

func InitServices(jobService *job.Service, ragService rag.Service) {
	_jobService = jobService
	_ragService = ragService
	dispatcherChannel = jobService.DispatcherChannel
}

func InitWorkerPool(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger = logger_i.NewLogger("WorkerPool")
	go dispatcher()
	logger.Info("Worker pool started", "min", minWorkerCount, "max", config.MaxWorkerCount)
}

func dispatcher() {
	createWorker()
	for range dispatcherChannel {
		if atomic.LoadInt64(&currentWorkerCount) >= config.MaxWorkerCount {
			continue
		}
		logger.Info("Scaling up", "workers", atomic.LoadInt64(&currentWorkerCount))
		createWorker()
	}
}

func createWorker() {
	workerWaitGroup.Add(1)
	atomic.AddInt64(&currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	go worker()
}

func worker() {
	for {
		select {
		case currentJob := <-_jobService.JobChannel:
			executeJob(currentJob)
			metrics.DecrementJobsInQueue()

		case <-stopWorkerChannel:
			removeWorker("shutdown signal")
			return

		case <-time.After(config.IdleWorkerTimeout):
			if atomic.LoadInt64(&currentWorkerCount) > atomic.LoadInt64(&minWorkerCount) {
				removeWorker("idle timeout")
				return
			}
		}
	}
}
