package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/api"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/config"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/contentstore"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/pkg/logger_i"
)

var (
	handlerInstance *RagHandler //private singleton
	once            sync.Once
	logRH           *logger_i.Logger
	logCH           *logger_i.Logger
)

type RagHandler struct {
	service rag.Service
	store   *contentstore.Store
}

func Init(ragService rag.Service, indexStore *contentstore.Store) {
	once.Do(func() {
		handlerInstance = &RagHandler{service: ragService, store: indexStore}

		logRH = logger_i.NewLogger("RequestHandler")
		logCH = logger_i.NewLogger("CacheHandler")
		logRH.Info("Starting request handler")
	})
}

// ValidateRunRequest only requires a document reference. An empty question
// list is a valid request and answers with an empty array.
func ValidateRunRequest(runReq api.RunRequest) bool {
	if handlerInstance == nil {
		return false
	}
	return runReq.Documents != ""
}

// RunHandler godoc
// @Summary      Answer questions about a document
// @Description  Downloads the document at the given URL, builds or reuses its vector index, and answers every question in one pass.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.RunRequest     true  "Document URL and the questions to answer"
// @Success      200      {object}  api.RunResponse    "One answer per question, in request order"
// @Failure      400      {object}  api.ErrorResponse  "Invalid request data"
// @Failure      500      {object}  api.ErrorResponse  "Document processing failed"
// @Router       /hackrx/run [post]
func RunHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.RunRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Run handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || !ValidateRunRequest(requestData) {
			logRH.Warn("Bad Run Request: ", "error:", err, "document:", requestData.Documents)
			WriteErrorResponse(w, http.StatusBadRequest, requestData.Documents, "Bad Request")
			return
		}

		logRH.With("traceId", request.Context().Value(config.TRACE_ID_KEY).(string))
		logRH.Info("Run request accepted", "questions", len(requestData.Questions))

		answers, err := handlerInstance.service.AnswerAll(request.Context(), requestData.Documents, requestData.Questions)
		if err != nil {
			logRH.Error("Run request failed", "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, requestData.Documents, err.Error())
			return
		}

		writeJsonResponse(w, http.StatusOK, api.RunResponse{Answers: answers})
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Reports service liveness and the embedding model in use.
// @Tags         Operations
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{
		Status:         "healthy",
		Message:        "RAG server is running",
		EmbeddingModel: config.GoogleEmbeddingModel,
	})
}
