package health

import (
	"context"
	postgrestClient "github.com/agentops/haruspex/internal/db/postgrest/client"
	llmClient "github.com/agentops/haruspex/internal/llm/client"
	"go.uber.org/zap"
	"time"
)

const probeTimeout = 10 * time.Second

// NotConfigured is reported for a dependency whose credentials are absent.
// No network probe is attempted in that case.
const NotConfigured = "not_configured"

// HealthStatus reports the liveness of the service and the outcome of the
// dependency probes. The service itself is always reported healthy; failed
// probes only show up in the per-dependency checks.
type HealthStatus struct {
	Status string
	Checks HealthChecks
}

// HealthChecks holds one entry per upstream dependency. Supabase and Groq
// are probe booleans, or NotConfigured when credentials are absent.
type HealthChecks struct {
	Supabase  interface{}
	Groq      interface{}
	Timestamp time.Time
}

type HealthCheckService interface {
	// CheckHealth probes the upstream dependencies. Probes are best-effort
	// and never fail the check itself.
	CheckHealth(ctx context.Context) HealthStatus
}

type HealthCheckServiceImpl struct {
	sc              postgrestClient.StoreClient
	lc              llmClient.LLMClient
	storeConfigured bool
	llmConfigured   bool
	logger          *zap.Logger
}

func NewHealthCheckServiceImpl(
	sc postgrestClient.StoreClient,
	lc llmClient.LLMClient,
	storeConfigured bool,
	llmConfigured bool,
	logger *zap.Logger,
) *HealthCheckServiceImpl {
	return &HealthCheckServiceImpl{
		sc:              sc,
		lc:              lc,
		storeConfigured: storeConfigured,
		llmConfigured:   llmConfigured,
		logger:          logger,
	}
}

func (hcs *HealthCheckServiceImpl) CheckHealth(ctx context.Context) HealthStatus {
	var supabaseCheck interface{} = NotConfigured
	if hcs.storeConfigured {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		supabaseCheck = hcs.sc.Ping(probeCtx)
		cancel()
	}

	var groqCheck interface{} = NotConfigured
	if hcs.llmConfigured {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		groqCheck = hcs.lc.Ping(probeCtx)
		cancel()
	}

	return HealthStatus{
		Status: "healthy",
		Checks: HealthChecks{
			Supabase:  supabaseCheck,
			Groq:      groqCheck,
			Timestamp: time.Now().UTC(),
		},
	}
}
