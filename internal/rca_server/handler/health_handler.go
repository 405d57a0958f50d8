package handler

import (
	"context"
	"encoding/json"
	"github.com/agentops/haruspex/internal/rca_server/service/health"
	"go.uber.org/zap"
	"net/http"
	"time"
)

const (
	serviceMessage = "AgentOps RCA Backend"
	serviceVersion = "1.0.0"
)

var serviceEndpoints = []string{
	"GET /",
	"GET /health",
	"GET /incidents",
	"GET /incidents/{id}",
	"GET /incidents/{id}/full",
	"POST /rca/analyze",
	"GET /spans",
	"GET /artifacts",
}

// HealthCheckHandler creates a handler reporting service liveness and the
// outcome of the dependency probes.
// @Summary Get service health.
// @Tags health
// @Produce json
// @Success 200 {object} HealthCheckResponseDTO "The health report"
// @Router /health [get]
func HealthCheckHandler(
	ctx context.Context,
	hcs health.HealthCheckService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := hcs.CheckHealth(ctx)
		response := HealthCheckResponseDTO{
			Status: status.Status,
			Checks: HealthChecksDTO{
				Supabase:  status.Checks.Supabase,
				Groq:      status.Checks.Groq,
				Timestamp: status.Checks.Timestamp.Format(time.RFC3339),
			},
		}

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(response)
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}

// RootHandler creates a handler serving the service banner with the list of
// available endpoints.
// @Summary Get the service banner.
// @Tags health
// @Produce json
// @Success 200 {object} ServiceInfoResponseDTO "The service banner"
// @Router / [get]
func RootHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := ServiceInfoResponseDTO{
			Status:    "healthy",
			Message:   serviceMessage,
			Version:   serviceVersion,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Endpoints: serviceEndpoints,
		}

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(response)
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}
