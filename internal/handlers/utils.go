package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/api"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/config"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateContext(ctx context.Context) bool {
	logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY).(string))
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	if id != "" {
		logRH.Warn("Error response", "id", id, "httpCode", httpCode)
	}
	writeJsonResponse(w, httpCode, api.ErrorResponse{Error: error})
}
