// @title           Policy RAG API
// @version         1.0
// @description     This API answers questions about remote documents with retrieval-augmented generation
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/config"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/handlers"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/keypool"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/contentstore"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/embedding/googleEmbedding"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/ingest"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/llm/nvidia"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/server"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	apiKeys := keypool.FromEnv()
	if apiKeys.Size() == 0 {
		logger.Error("No upstream API keys configured. Shutting down.")
		return
	}
	logger.Info("API key pool ready", "keys", apiKeys.Size())

	indexStore, err := contentstore.NewStore(config.CacheDir)
	if err != nil {
		logger.Error("Couldn't create the index cache directory. Shutting down.", "error", err)
		return
	}

	//redis-backed extraction cache, degrades to a no-op when redis is offline
	contentCache := contentstore.NewContentCache(serviceContext)
	if !contentCache.Available() {
		logger.Warn("Redis content cache is offline, extraction results won't be reused")
	}

	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey)
	llmProvider := nvidia.NewClient()

	if embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	downloader := ingest.NewDownloader()
	extractor := ingest.NewExtractor(contentCache)

	ragService := rag.NewService(downloader, extractor, indexStore, embeddingService, llmProvider, apiKeys)

	handlers.Init(ragService, indexStore)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
