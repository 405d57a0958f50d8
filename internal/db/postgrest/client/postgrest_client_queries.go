package client

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/agentops/haruspex/internal/db/postgrest/model"
	"go.uber.org/zap"
	"io"
	"net/http"
)

func (pc *PostgrestClientImpl) Fetch(
	ctx context.Context,
	table string,
	filters map[string]string,
) ([]model.Row, error) {
	queryURL := pc.baseURL + restPathPrefix + table
	if query := buildFilterQuery(filters); query != "" {
		queryURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for table %s: %w", table, err)
	}
	pc.setAuthHeaders(req)

	res, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("failed to query table %s: status %d: %s", table, res.StatusCode, string(body))
	}

	var rows []model.Row
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows for table %s: %w", table, err)
	}
	return rows, nil
}

func (pc *PostgrestClientImpl) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pc.baseURL+restPathPrefix, nil)
	if err != nil {
		pc.logger.Warn("Failed to create store probe request", zap.Error(err))
		return false
	}
	pc.setAuthHeaders(req)

	res, err := pc.httpClient.Do(req)
	if err != nil {
		pc.logger.Warn("Store probe failed", zap.Error(err))
		return false
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK
}
