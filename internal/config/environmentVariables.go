package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// load .env before the vars below read the environment
var _ = godotenv.Load()

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 120 * time.Second //question fan-out can take a while on cold documents
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	//document download
	DownloadProbeTimeout   = 30 * time.Second
	DownloadTimeout        = 120 * time.Second
	MaxDownloadSizeMB      = 100
	MaxBinarySkipSizeMB    = 50
	MaxArchiveMemberSizeMB = 100

	//embedding cache on disk
	CacheDir = "embedding_cache"

	//llm
	LLMBaseURL           = "https://integrate.api.nvidia.com/v1"
	LLMModelName         = "meta/llama-4-maverick-17b-128e-instruct"
	LLMAttemptTimeout    = 40 * time.Second
	LLMMaxRetries        = 2
	LLMRetryBackoff      = 2 * time.Second
	LLMTopP              = 0.9
	LLMFrequencyPenalty  = 0.1
	LLMPresencePenalty   = 0.1
	NvidiaKeyEnvPrefix   = "NVIDIA_API_KEY_"
	NvidiaKeyCount       = 5

	//embeddings
	GoogleEmbeddingModel                = "gemini-embedding-001"
	EmbeddingOutputDimensionality int32 = 1536
	EmbeddingBatchSize                  = 100

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis DB slot for the extracted-content cache
	RedisContentCache = 0

	//extracted slide-deck/spreadsheet text is expensive to rebuild, keep it around
	RedisContentCacheTTL = 7 * 24 * time.Hour

	//session continuity
	SessionCapacity       = 2
	SessionSnippetLength  = 80
	SessionQuestionPrefix = 2
)

var (
	NoAuthBypass  = os.Getenv("API_AUTH_TOKEN") == ""
	AuthToken     = os.Getenv("API_AUTH_TOKEN")
	RedisPassword = os.Getenv("REDIS_PASSWORD")

	GoogleEmbeddingAPIKey = os.Getenv("GOOGLE_API_KEY")
)
