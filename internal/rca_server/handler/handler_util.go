package handler

import (
	"errors"
	analysisModel "github.com/agentops/haruspex/internal/rca_server/service/analysis/model"
	incidentModel "github.com/agentops/haruspex/internal/rca_server/service/incident/model"
)

var ErrNoIncidentId = errors.New("no incident_id provided")

func convertIncidentToDTO(incident incidentModel.Incident) IncidentDTO {
	return IncidentDTO{
		IncidentID:    incident.IncidentID,
		OrderID:       incident.OrderID,
		IncidentType:  incident.IncidentType,
		Severity:      incident.Severity,
		Status:        incident.Status,
		ETADeltaHours: incident.ETADeltaHours,
		Description:   incident.Description,
		CreatedAt:     incident.CreatedAt,
		ResolvedAt:    incident.ResolvedAt,
		Metadata:      incident.Metadata,
	}
}

func convertSpansToDTOs(spans []incidentModel.Span) []SpanDTO {
	spanDTOs := make([]SpanDTO, len(spans))
	for i, span := range spans {
		spanDTOs[i] = SpanDTO{
			SpanID:       span.SpanID,
			ParentID:     span.ParentID,
			Tool:         span.Tool,
			StartTS:      span.StartTS,
			EndTS:        span.EndTS,
			ArgsDigest:   span.ArgsDigest,
			ResultDigest: span.ResultDigest,
			Attributes:   span.Attributes,
			CreatedAt:    span.CreatedAt,
			OrderID:      span.OrderID,
		}
	}
	return spanDTOs
}

func convertArtifactsToDTOs(artifacts []incidentModel.Artifact) []ArtifactDTO {
	artifactDTOs := make([]ArtifactDTO, len(artifacts))
	for i, artifact := range artifacts {
		artifactDTOs[i] = ArtifactDTO{
			Digest:    artifact.Digest,
			MimeType:  artifact.MimeType,
			Length:    artifact.Length,
			PIIMasked: artifact.PIIMasked,
			FilePath:  artifact.FilePath,
			Metadata:  artifact.Metadata,
			CreatedAt: artifact.CreatedAt,
		}
	}
	return artifactDTOs
}

func convertIncidentWithRelationsToDTO(details *incidentModel.IncidentWithRelations) IncidentWithRelationsResponseDTO {
	return IncidentWithRelationsResponseDTO{
		Incident:  convertIncidentToDTO(details.Incident),
		Spans:     convertSpansToDTOs(details.Spans),
		Artifacts: convertArtifactsToDTOs(details.Artifacts),
	}
}

func convertReportToDTO(report *analysisModel.RCAReport) RCAReportResponseDTO {
	return RCAReportResponseDTO{
		IncidentID:          report.IncidentID,
		Summary:             report.Summary,
		RootCause:           report.RootCause,
		ContributingFactors: report.ContributingFactors,
		Recommendations:     report.Recommendations,
		EmailDraft:          report.EmailDraft,
		AnalysisTimestamp:   report.AnalysisTimestamp,
	}
}
