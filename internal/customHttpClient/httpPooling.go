package customHttpClient

import (
	"net/http"

	"github.com/docurag/DocuRAG/internal/config"
)

var pooledTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// New returns a client backed by the shared pooled transport. The embedding
// and LLM clients hit the same Google endpoints, so sharing idle connections
// between them cuts TLS handshakes on the hot path.
func New() *http.Client {
	return &http.Client{Transport: pooledTransport}
}
