package main

import (
	"context"
	"github.com/agentops/haruspex/internal/config"
	postgrestClient "github.com/agentops/haruspex/internal/db/postgrest/client"
	llmClient "github.com/agentops/haruspex/internal/llm/client"
	"github.com/agentops/haruspex/internal/rca_server/router"
	"github.com/agentops/haruspex/internal/rca_server/service/analysis"
	"github.com/agentops/haruspex/internal/rca_server/service/health"
	"github.com/agentops/haruspex/internal/rca_server/service/incident"
	"go.uber.org/zap"
	"net/http"
)

// @title AgentOps RCA API
// @version 1.0
// @description Root cause analysis backend for agent-operated order workflows.

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	sc := postgrestClient.NewPostgrestClientImpl(cfg.SupabaseURL, cfg.SupabaseKey, logger)
	lc := llmClient.NewGroqClientImpl(llmClient.DefaultBaseURL, cfg.GroqAPIKey, cfg.GroqModel, logger)

	incidentQueryService := incident.NewIncidentQueryServiceImpl(sc, cfg.ArtifactFetchConcurrency, logger)
	rcaAnalysisService := analysis.NewRCAAnalysisServiceImpl(lc, logger)
	healthCheckService := health.NewHealthCheckServiceImpl(
		sc,
		lc,
		cfg.SupabaseURL != "" && cfg.SupabaseKey != "",
		cfg.GroqAPIKey != "",
		logger,
	)

	ctx := context.Background()
	reportStartupHealth(ctx, healthCheckService, logger)

	r := router.CreateRouter(ctx, incidentQueryService, rcaAnalysisService, healthCheckService, logger)
	logger.Info("Starting RCA server", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("Failed to serve", zap.Error(err))
	}
}

// reportStartupHealth probes the upstream dependencies once so a
// misconfigured deployment shows up in the logs right away.
func reportStartupHealth(ctx context.Context, hcs health.HealthCheckService, logger *zap.Logger) {
	status := hcs.CheckHealth(ctx)
	if supabase, ok := status.Checks.Supabase.(bool); ok && !supabase {
		logger.Warn("Supabase connection check failed")
	}
	if groq, ok := status.Checks.Groq.(bool); ok && !groq {
		logger.Warn("Groq connection check failed")
	}
}
