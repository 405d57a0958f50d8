package client

import (
	"context"
	"github.com/agentops/haruspex/internal/db/postgrest/model"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

const restPathPrefix = "/rest/v1/"

type StoreClient interface {
	// Fetch returns the rows of a table matching every equality filter.
	// A nil or empty filter map fetches the whole table. Transport errors,
	// non-2xx statuses and malformed payloads are returned as errors so
	// callers can tell an empty table apart from a failed fetch.
	Fetch(ctx context.Context, table string, filters map[string]string) ([]model.Row, error)
	// Ping reports whether the store's REST root answers with 200. The
	// probe is best-effort and never returns an error.
	Ping(ctx context.Context) bool
}

type PostgrestClientImpl struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewPostgrestClientImpl creates a client for a PostgREST-compatible store
// rooted at baseURL. The same key is sent as both the apikey header and the
// bearer token. Requests carry no client-level timeout; deadlines come from
// the caller's context.
func NewPostgrestClientImpl(baseURL string, apiKey string, logger *zap.Logger) *PostgrestClientImpl {
	return &PostgrestClientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (pc *PostgrestClientImpl) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", pc.apiKey)
	req.Header.Set("Authorization", "Bearer "+pc.apiKey)
	req.Header.Set("Accept", "application/json")
}
