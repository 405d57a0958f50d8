package handler

import (
	"context"
	"github.com/agentops/haruspex/internal/db/postgrest/model"
	analysisModel "github.com/agentops/haruspex/internal/rca_server/service/analysis/model"
	"github.com/agentops/haruspex/internal/rca_server/service/health"
	incidentModel "github.com/agentops/haruspex/internal/rca_server/service/incident/model"
	"time"
)

// incidentQueryServiceFake serves canned results and records the requested
// incident id.
type incidentQueryServiceFake struct {
	rows          []model.Row
	rowsErr       error
	incidentRow   model.Row
	incidentErr   error
	details       *incidentModel.IncidentWithRelations
	detailsErr    error
	gotIncidentId string
}

func (iqsf *incidentQueryServiceFake) GetIncidents(ctx context.Context) ([]model.Row, error) {
	return iqsf.rows, iqsf.rowsErr
}

func (iqsf *incidentQueryServiceFake) GetSpans(ctx context.Context) ([]model.Row, error) {
	return iqsf.rows, iqsf.rowsErr
}

func (iqsf *incidentQueryServiceFake) GetArtifacts(ctx context.Context) ([]model.Row, error) {
	return iqsf.rows, iqsf.rowsErr
}

func (iqsf *incidentQueryServiceFake) GetIncident(
	ctx context.Context,
	incidentId string,
) (model.Row, error) {
	iqsf.gotIncidentId = incidentId
	if iqsf.incidentErr != nil {
		return nil, iqsf.incidentErr
	}
	return iqsf.incidentRow, nil
}

func (iqsf *incidentQueryServiceFake) GetIncidentWithRelations(
	ctx context.Context,
	incidentId string,
) (*incidentModel.IncidentWithRelations, error) {
	iqsf.gotIncidentId = incidentId
	if iqsf.detailsErr != nil {
		return nil, iqsf.detailsErr
	}
	return iqsf.details, nil
}

// analysisServiceFake returns a canned report and records the aggregate it
// was asked to analyze.
type analysisServiceFake struct {
	report     *analysisModel.RCAReport
	err        error
	gotDetails *incidentModel.IncidentWithRelations
}

func (asf *analysisServiceFake) AnalyzeIncident(
	ctx context.Context,
	details *incidentModel.IncidentWithRelations,
) (*analysisModel.RCAReport, error) {
	asf.gotDetails = details
	if asf.err != nil {
		return nil, asf.err
	}
	return asf.report, nil
}

// healthCheckServiceFake returns a canned health status.
type healthCheckServiceFake struct {
	status health.HealthStatus
}

func (hcsf *healthCheckServiceFake) CheckHealth(ctx context.Context) health.HealthStatus {
	return hcsf.status
}

func detailsFixture() *incidentModel.IncidentWithRelations {
	return &incidentModel.IncidentWithRelations{
		Incident: incidentModel.Incident{
			IncidentID:   "inc-1",
			OrderID:      "ord-1",
			IncidentType: "eta_slip",
			Severity:     "high",
			Status:       "open",
			Description:  "Shipment delayed at customs",
			CreatedAt:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Metadata:     map[string]interface{}{},
		},
		Spans: []incidentModel.Span{
			{
				SpanID:       "span-1",
				Tool:         "carrier_lookup",
				StartTS:      1705314600,
				EndTS:        1705314605,
				ArgsDigest:   "sha256:aaa",
				ResultDigest: "sha256:bbb",
				Attributes:   map[string]interface{}{},
				CreatedAt:    time.Date(2024, 1, 15, 10, 30, 5, 0, time.UTC),
				OrderID:      "ord-1",
			},
		},
		Artifacts: []incidentModel.Artifact{
			{
				Digest:    "sha256:aaa",
				MimeType:  "application/json",
				Length:    2048,
				FilePath:  "artifacts/sha256:aaa.json",
				Metadata:  map[string]interface{}{},
				CreatedAt: time.Date(2024, 1, 15, 10, 29, 58, 0, time.UTC),
			},
		},
	}
}

func reportFixture() *analysisModel.RCAReport {
	return &analysisModel.RCAReport{
		IncidentID:          "inc-1",
		Summary:             "Carrier API outage delayed the shipment",
		RootCause:           "Upstream carrier API returned stale ETAs",
		ContributingFactors: []string{"No retry on stale data", "Missing alerting"},
		Recommendations:     []string{"Add freshness checks"},
		EmailDraft:          "Dear team, the delay was caused by a carrier API outage.",
		AnalysisTimestamp:   time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC),
	}
}
