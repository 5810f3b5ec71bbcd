package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                     = false
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY                = "traceId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5
	RateLimiterEvictionInterval = 10 * time.Minute

	//auth - bypass is for local development only
	NoAuthBypass = true
	AuthToken    = ""

	//embeddings
	//text-embedding-004 produces 768-dim vectors; the collection dimension
	//must match or Qdrant rejects the upsert
	EmbeddingOutputDimensionality int32 = 768
	GoogleEmbeddingModel                = "text-embedding-004"
	GeminiModelName                     = "gemini-2.0-flash-exp"

	//collections are partitioned per user-owned content set
	CollectionNamePrefix    = "user-"
	SemanticCacheCollection = "semantic-cache"
	CacheSimilarityCutoff   = 0.97

	//segmenter - 150/800 gives ~19% overlap overhead, the price of not
	//losing context at cut boundaries
	ChunkTargetSize = 800
	ChunkOverlap    = 150

	//quality filter bounds
	MinChunkLength = 30
	MaxChunkLength = 3000

	//key phrase extraction
	KeyPhraseLimit       = 5
	KeyPhraseMinWordSize = 4 //tokens of 3 chars or fewer are noise

	//storage + embedding backpressure
	//these were tuned empirically upstream; treat as tunable, not optimal
	StoreBatchSize       = 50
	EmbeddingConcurrency = 5

	//re-ranker blend weights (must sum to 1.0) and thresholds
	WordOverlapWeight          = 0.4
	PhraseMatchWeight          = 0.3
	TypeRelevanceWeight        = 0.3
	ChatSimilarityThreshold    = 0.6 //lower for recall in the chat path
	DefaultSimilarityThreshold = 0.7
	DefaultSearchK             = 6
	CandidateFetchMultiplier   = 2 //fetch 2k raw so threshold rejection leaves headroom

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	JobExecutionTimeout             = 60 * time.Second

	//outbound http connection pooling
	MaxIdleConns        = 20
	MaxIdleConnsPerHost = 10
	IdleConnTimeout     = 90 * time.Second

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = ""
	QdrantPort              = 6333 //http
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false
	QdrantPoolSize          = 1 //2-5 is preferred for prod according to documentation

	ModelTemperature float32 = 0.7
	ModelContext             = "You are an expert AI assistant answering questions about the user's documents. " +
		"Base your answers on the provided document context and conversation history. " +
		"If the context doesn't contain relevant information, clearly state this. " +
		"Be concise but comprehensive, and avoid speculation."

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore     = 0
	RedisMessageStore = 1

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisMessageStoreTTL = 24 * time.Hour

	//how many past turns feed the chat prompt
	ChatHistoryWindow int64 = 5
)
