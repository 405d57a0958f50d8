package router

import (
	"context"
	"github.com/agentops/haruspex/internal/rca_server/handler"
	"github.com/agentops/haruspex/internal/rca_server/service/analysis"
	"github.com/agentops/haruspex/internal/rca_server/service/health"
	"github.com/agentops/haruspex/internal/rca_server/service/incident"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
)

func CreateRouter(
	ctx context.Context,
	is incident.IncidentQueryService,
	as analysis.RCAAnalysisService,
	hcs health.HealthCheckService,
	logger *zap.Logger,
) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestIdMiddleware(logger))

	r.Handle("/", handler.RootHandler(logger)).Methods("GET")
	r.Handle("/health", handler.HealthCheckHandler(ctx, hcs, logger)).Methods("GET")
	r.Handle("/incidents", handler.IncidentListHandler(ctx, is, logger)).Methods("GET")
	r.Handle("/incidents/{id}", handler.IncidentDetailHandler(ctx, is, logger)).Methods("GET")
	r.Handle("/incidents/{id}/full", handler.IncidentWithRelationsHandler(ctx, is, logger)).Methods("GET")
	r.Handle("/rca/analyze", handler.RCAAnalyzeHandler(ctx, is, as, logger)).Methods("POST")
	r.Handle("/spans", handler.SpanListHandler(ctx, is, logger)).Methods("GET")
	r.Handle("/artifacts", handler.ArtifactListHandler(ctx, is, logger)).Methods("GET")

	return CORS(r)
}
