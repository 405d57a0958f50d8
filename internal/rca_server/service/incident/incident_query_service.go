package incident

import (
	"context"
	"errors"
	"fmt"
	"github.com/agentops/haruspex/internal/db/postgrest/client"
	"github.com/agentops/haruspex/internal/db/postgrest/model"
	"github.com/agentops/haruspex/internal/rca_server/service/incident/helper"
	incidentModel "github.com/agentops/haruspex/internal/rca_server/service/incident/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"sort"
)

const (
	incidentTable = "incidents"
	spanTable     = "spans"
	artifactTable = "artifacts"
)

// ErrIncidentNotFound signals that no incident matches the requested
// identifier. A failed lookup of the initiating incident collapses to the
// same signal so callers see one shape for both.
var ErrIncidentNotFound = errors.New("incident not found")

type IncidentQueryService interface {
	// GetIncidents returns every raw incident row.
	GetIncidents(ctx context.Context) ([]model.Row, error)
	// GetSpans returns every raw span row.
	GetSpans(ctx context.Context) ([]model.Row, error)
	// GetArtifacts returns every raw artifact row.
	GetArtifacts(ctx context.Context) ([]model.Row, error)
	// GetIncident returns the raw row of a single incident, or
	// ErrIncidentNotFound when no row matches.
	GetIncident(ctx context.Context, incidentId string) (model.Row, error)
	// GetIncidentWithRelations assembles the incident, the spans of its
	// order, and the artifacts those spans reference. Span and artifact
	// hydration failures degrade to a partial aggregate; only a missing or
	// malformed incident fails the assembly.
	GetIncidentWithRelations(ctx context.Context, incidentId string) (*incidentModel.IncidentWithRelations, error)
}

type IncidentQueryServiceImpl struct {
	sc         client.StoreClient
	fetchWidth int
	logger     *zap.Logger
}

// NewIncidentQueryServiceImpl creates the query service. fetchWidth caps how
// many artifact lookups run at once; 1 keeps hydration strictly sequential.
func NewIncidentQueryServiceImpl(
	sc client.StoreClient,
	fetchWidth int,
	logger *zap.Logger,
) *IncidentQueryServiceImpl {
	if fetchWidth < 1 {
		fetchWidth = 1
	}
	return &IncidentQueryServiceImpl{
		sc:         sc,
		fetchWidth: fetchWidth,
		logger:     logger,
	}
}

func (iqs *IncidentQueryServiceImpl) GetIncidents(ctx context.Context) ([]model.Row, error) {
	return iqs.sc.Fetch(ctx, incidentTable, nil)
}

func (iqs *IncidentQueryServiceImpl) GetSpans(ctx context.Context) ([]model.Row, error) {
	return iqs.sc.Fetch(ctx, spanTable, nil)
}

func (iqs *IncidentQueryServiceImpl) GetArtifacts(ctx context.Context) ([]model.Row, error) {
	return iqs.sc.Fetch(ctx, artifactTable, nil)
}

func (iqs *IncidentQueryServiceImpl) GetIncident(
	ctx context.Context,
	incidentId string,
) (model.Row, error) {
	rows, err := iqs.sc.Fetch(ctx, incidentTable, map[string]string{"incident_id": incidentId})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incident %s: %w", incidentId, err)
	}
	if len(rows) == 0 {
		return nil, ErrIncidentNotFound
	}
	return rows[0], nil
}

func (iqs *IncidentQueryServiceImpl) GetIncidentWithRelations(
	ctx context.Context,
	incidentId string,
) (*incidentModel.IncidentWithRelations, error) {
	rows, err := iqs.sc.Fetch(ctx, incidentTable, map[string]string{"incident_id": incidentId})
	if err != nil {
		iqs.logger.Error(
			"Failed to fetch incident for assembly",
			zap.String("incident_id", incidentId),
			zap.Error(err),
		)
		return nil, ErrIncidentNotFound
	}
	if len(rows) == 0 {
		return nil, ErrIncidentNotFound
	}
	incident, err := helper.IncidentFromRow(rows[0])
	if err != nil {
		iqs.logger.Error(
			"Failed to convert incident row",
			zap.String("incident_id", incidentId),
			zap.Error(err),
		)
		return nil, ErrIncidentNotFound
	}

	spans := iqs.getSpansForOrder(ctx, incident.OrderID)
	artifacts := iqs.getArtifactsForSpans(ctx, spans)

	return &incidentModel.IncidentWithRelations{
		Incident:  incident,
		Spans:     spans,
		Artifacts: artifacts,
	}, nil
}

func (iqs *IncidentQueryServiceImpl) getSpansForOrder(
	ctx context.Context,
	orderId string,
) []incidentModel.Span {
	rows, err := iqs.sc.Fetch(ctx, spanTable, map[string]string{"order_id": orderId})
	if err != nil {
		iqs.logger.Error(
			"Failed to fetch spans for order",
			zap.String("order_id", orderId),
			zap.Error(err),
		)
		return []incidentModel.Span{}
	}

	spans := make([]incidentModel.Span, 0, len(rows))
	for _, row := range rows {
		span, err := helper.SpanFromRow(row)
		if err != nil {
			iqs.logger.Warn(
				"Skipping malformed span row",
				zap.String("order_id", orderId),
				zap.Error(err),
			)
			continue
		}
		if span.OrderID != orderId {
			iqs.logger.Warn(
				"Skipping span with mismatched order id",
				zap.String("span_id", span.SpanID),
				zap.String("expected_order_id", orderId),
				zap.String("actual_order_id", span.OrderID),
			)
			continue
		}
		spans = append(spans, span)
	}
	return spans
}

func (iqs *IncidentQueryServiceImpl) getArtifactsForSpans(
	ctx context.Context,
	spans []incidentModel.Span,
) []incidentModel.Artifact {
	digests := distinctDigests(spans)
	results := make([]*incidentModel.Artifact, len(digests))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(iqs.fetchWidth)
	for i, digest := range digests {
		g.Go(func() error {
			rows, err := iqs.sc.Fetch(groupCtx, artifactTable, map[string]string{"digest": digest})
			if err != nil {
				iqs.logger.Error(
					"Failed to fetch artifact",
					zap.String("digest", digest),
					zap.Error(err),
				)
				return nil
			}
			if len(rows) == 0 {
				return nil
			}
			artifact, err := helper.ArtifactFromRow(rows[0])
			if err != nil {
				iqs.logger.Warn(
					"Skipping malformed artifact row",
					zap.String("digest", digest),
					zap.Error(err),
				)
				return nil
			}
			results[i] = &artifact
			return nil
		})
	}
	_ = g.Wait()

	artifacts := make([]incidentModel.Artifact, 0, len(digests))
	for _, artifact := range results {
		if artifact != nil {
			artifacts = append(artifacts, *artifact)
		}
	}
	return artifacts
}

// distinctDigests collects every digest the spans reference as input or
// output, deduplicated and sorted for a stable hydration order. Empty
// digests reference nothing and are dropped.
func distinctDigests(spans []incidentModel.Span) []string {
	seen := make(map[string]struct{})
	for _, span := range spans {
		if span.ArgsDigest != "" {
			seen[span.ArgsDigest] = struct{}{}
		}
		if span.ResultDigest != "" {
			seen[span.ResultDigest] = struct{}{}
		}
	}
	digests := make([]string, 0, len(seen))
	for digest := range seen {
		digests = append(digests, digest)
	}
	sort.Strings(digests)
	return digests
}
