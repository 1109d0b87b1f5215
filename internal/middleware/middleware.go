package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/handlers"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/metrics"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

var RunHandler = Wrap(handlers.RunHandler)
var HealthHandler = Wrap(handlers.HealthHandler)
var CacheStatsHandler = Wrap(handlers.CacheStatsHandler)
var CacheClearHandler = Wrap(handlers.CacheClearHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}
		start := time.Now()
		next(rec, re.req)

		metrics.CaptureRequestMetrics(r.URL.Path, time.Since(start))                          //metrics
		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}
func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Info("New request received")
	//TODO:make this cleaner
	re = injectTrace(re)
	re = authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	re = rateLimiter(re)
	if re.badRequest.isBadRequest {
		return re //stop here if rate limit fails
	}

	return re
}
