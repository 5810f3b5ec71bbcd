// @title           DocuRAG API
// @version         1.0
// @description     Asynchronous document ingestion, semantic search and chat over user document collections.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/data/store"
	jobmodel "github.com/docurag/DocuRAG/internal/domain/jobModel"
	"github.com/docurag/DocuRAG/internal/handlers"
	"github.com/docurag/DocuRAG/internal/job"
	"github.com/docurag/DocuRAG/internal/rag"
	"github.com/docurag/DocuRAG/internal/rag/embedding/googleEmbedding"
	"github.com/docurag/DocuRAG/internal/rag/llm/gemini"
	"github.com/docurag/DocuRAG/internal/rag/processor"
	"github.com/docurag/DocuRAG/internal/rag/vectorDB/qdrantDB"
	"github.com/docurag/DocuRAG/internal/server"
	"github.com/docurag/DocuRAG/internal/worker"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

var (
	listenAddr        string
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Error("GEMINI_API_KEY is not set")
		return
	}

	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//job queue backed by Redis, in-memory when Redis is offline
	var jobStore jobmodel.JobStore
	var messageStore jobmodel.MessageStore
	if redisJobs := store.GetRedisJobStore(serviceContext); redisJobs != nil {
		jobStore = redisJobs
	}
	if redisMessages := store.GetRedisMessageStore(serviceContext); redisMessages != nil {
		messageStore = redisMessages
	}
	if jobStore == nil || messageStore == nil {
		logger.Error("Redis stores are offline, falling back to in-memory stores")
		jobStore = store.InitInMemoryJobStore()
		messageStore = store.InitMessageStore()
	}
	service := job.NewService(jobStore, messageStore)
	logger.Info("Starting job service")

	vectorStore, err := qdrantDB.NewQdrantStore(serviceContext)
	if err != nil {
		logger.Error("Failed to connect to Qdrant. Shutting down.", "err", err)
		return
	}

	embeddingService, err := googleEmbedding.NewGoogleEmbedder(serviceContext, config.GoogleEmbeddingModel, apiKey)
	if err != nil {
		logger.Error("Failed to initialize the embedding client. Shutting down.", "err", err)
		return
	}

	llmProvider, err := gemini.NewGeminiClient(serviceContext, config.GeminiModelName, apiKey)
	if err != nil {
		logger.Error("Failed to initialize the LLM client. Shutting down.", "err", err)
		return
	}

	proc := processor.New(embeddingService, vectorStore)
	ragService := rag.NewService(proc, vectorStore, llmProvider, embeddingService)

	handlers.InitJobHandler(service)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
