package customHttpClient

import (
	"net/http"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// NewPooledClient returns a client sharing the process-wide connection pool.
// Document downloads and probe requests reuse connections this way instead of
// paying the handshake per request.
func NewPooledClient() *http.Client {
	return &http.Client{
		Transport: customTransport,
	}
}
