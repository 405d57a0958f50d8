package analysis

import (
	"context"
	"fmt"
	llmClient "github.com/agentops/haruspex/internal/llm/client"
	llmModel "github.com/agentops/haruspex/internal/llm/model"
	analysisModel "github.com/agentops/haruspex/internal/rca_server/service/analysis/model"
	incidentModel "github.com/agentops/haruspex/internal/rca_server/service/incident/model"
	"go.uber.org/zap"
	"time"
)

const (
	analysisTimeout     = 30 * time.Second
	maxAnalysisTokens   = 2000
	analysisTemperature = 0.1

	systemInstruction = "You are an expert Root Cause Analysis specialist. Always respond with valid JSON."
)

type RCAAnalysisService interface {
	// AnalyzeIncident renders the analysis prompt for the aggregate, runs a
	// single chat completion, and normalizes the reply into a report. Only
	// a failed completion surfaces as an error; a malformed reply yields
	// the fallback report.
	AnalyzeIncident(
		ctx context.Context,
		details *incidentModel.IncidentWithRelations,
	) (*analysisModel.RCAReport, error)
}

type RCAAnalysisServiceImpl struct {
	lc     llmClient.LLMClient
	logger *zap.Logger
}

func NewRCAAnalysisServiceImpl(lc llmClient.LLMClient, logger *zap.Logger) *RCAAnalysisServiceImpl {
	return &RCAAnalysisServiceImpl{
		lc:     lc,
		logger: logger,
	}
}

func (ras *RCAAnalysisServiceImpl) AnalyzeIncident(
	ctx context.Context,
	details *incidentModel.IncidentWithRelations,
) (*analysisModel.RCAReport, error) {
	prompt, err := buildAnalysisPrompt(details)
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis prompt: %w", err)
	}
	messages := []llmModel.ChatMessage{
		{Role: llmModel.RoleSystem, Content: systemInstruction},
		{Role: llmModel.RoleUser, Content: prompt},
	}

	completionCtx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()
	content, err := ras.lc.ChatCompletion(completionCtx, messages, maxAnalysisTokens, analysisTemperature)
	if err != nil {
		ras.logger.Error(
			"Failed to get analysis completion",
			zap.String("incident_id", details.Incident.IncidentID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to analyze incident %s: %w", details.Incident.IncidentID, err)
	}

	report := normalizeAnalysisResponse(content)
	report.IncidentID = details.Incident.IncidentID
	report.AnalysisTimestamp = time.Now().UTC()
	return &report, nil
}
