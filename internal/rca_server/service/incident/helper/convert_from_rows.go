package helper

import (
	"fmt"
	"github.com/agentops/haruspex/internal/db/postgrest/model"
	incidentModel "github.com/agentops/haruspex/internal/rca_server/service/incident/model"
	"time"
)

const (
	defaultSeverity = "medium"
	defaultStatus   = "open"

	zonelessLayout = "2006-01-02T15:04:05.999999999"
)

// IncidentFromRow validates and types a raw incidents row. Rows missing a
// required field are rejected rather than propagated half-populated.
func IncidentFromRow(row model.Row) (incidentModel.Incident, error) {
	doc := incidentModel.Incident{}

	incidentId, ok := row["incident_id"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert incident_id to string %v", row["incident_id"])
	}
	doc.IncidentID = incidentId

	orderId, ok := row["order_id"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert order_id to string %v", row["order_id"])
	}
	doc.OrderID = orderId

	incidentType, ok := row["incident_type"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert incident_type to string %v", row["incident_type"])
	}
	doc.IncidentType = incidentType

	severity, ok := row["severity"].(string)
	if ok && severity != "" {
		doc.Severity = severity
	} else {
		doc.Severity = defaultSeverity
	}

	status, ok := row["status"].(string)
	if ok && status != "" {
		doc.Status = status
	} else {
		doc.Status = defaultStatus
	}

	if etaDelta, ok := toFloat64(row["eta_delta_hours"]); ok {
		doc.ETADeltaHours = &etaDelta
	}

	description, ok := row["description"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert description to string %v", row["description"])
	}
	doc.Description = description

	createdAtRaw, ok := row["created_at"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert created_at to string %v", row["created_at"])
	}
	createdAt, err := parseTimestamp(createdAtRaw)
	if err != nil {
		return doc, fmt.Errorf("failed to parse created_at: %w", err)
	}
	doc.CreatedAt = createdAt

	if resolvedAtRaw, ok := row["resolved_at"].(string); ok {
		resolvedAt, err := parseTimestamp(resolvedAtRaw)
		if err != nil {
			return doc, fmt.Errorf("failed to parse resolved_at: %w", err)
		}
		doc.ResolvedAt = &resolvedAt
	}

	doc.Metadata = typeMetadata(row["metadata"])
	return doc, nil
}

// SpanFromRow validates and types a raw spans row.
func SpanFromRow(row model.Row) (incidentModel.Span, error) {
	doc := incidentModel.Span{}

	spanId, ok := row["span_id"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert span_id to string %v", row["span_id"])
	}
	doc.SpanID = spanId

	if parentId, ok := row["parent_id"].(string); ok {
		doc.ParentID = &parentId
	}

	tool, ok := row["tool"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert tool to string %v", row["tool"])
	}
	doc.Tool = tool

	startTs, ok := toInt64(row["start_ts"])
	if !ok {
		return doc, fmt.Errorf("failed to convert start_ts to int64 %v", row["start_ts"])
	}
	doc.StartTS = startTs

	endTs, ok := toInt64(row["end_ts"])
	if !ok {
		return doc, fmt.Errorf("failed to convert end_ts to int64 %v", row["end_ts"])
	}
	doc.EndTS = endTs

	argsDigest, ok := row["args_digest"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert args_digest to string %v", row["args_digest"])
	}
	doc.ArgsDigest = argsDigest

	resultDigest, ok := row["result_digest"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert result_digest to string %v", row["result_digest"])
	}
	doc.ResultDigest = resultDigest

	doc.Attributes = typeMetadata(row["attributes"])

	createdAtRaw, ok := row["created_at"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert created_at to string %v", row["created_at"])
	}
	createdAt, err := parseTimestamp(createdAtRaw)
	if err != nil {
		return doc, fmt.Errorf("failed to parse created_at: %w", err)
	}
	doc.CreatedAt = createdAt

	orderId, ok := row["order_id"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert order_id to string %v", row["order_id"])
	}
	doc.OrderID = orderId

	return doc, nil
}

// ArtifactFromRow validates and types a raw artifacts row.
func ArtifactFromRow(row model.Row) (incidentModel.Artifact, error) {
	doc := incidentModel.Artifact{}

	digest, ok := row["digest"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert digest to string %v", row["digest"])
	}
	doc.Digest = digest

	mimeType, ok := row["mime_type"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert mime_type to string %v", row["mime_type"])
	}
	doc.MimeType = mimeType

	length, ok := toInt64(row["length"])
	if !ok {
		return doc, fmt.Errorf("failed to convert length to int64 %v", row["length"])
	}
	doc.Length = length

	if piiMasked, ok := row["pii_masked"].(bool); ok {
		doc.PIIMasked = piiMasked
	}

	filePath, ok := row["file_path"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert file_path to string %v", row["file_path"])
	}
	doc.FilePath = filePath

	doc.Metadata = typeMetadata(row["metadata"])

	createdAtRaw, ok := row["created_at"].(string)
	if !ok {
		return doc, fmt.Errorf("failed to convert created_at to string %v", row["created_at"])
	}
	createdAt, err := parseTimestamp(createdAtRaw)
	if err != nil {
		return doc, fmt.Errorf("failed to parse created_at: %w", err)
	}
	doc.CreatedAt = createdAt

	return doc, nil
}

// parseTimestamp accepts the store's RFC 3339 timestamps with or without an
// explicit zone; zoneless values are taken as UTC.
func parseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(zonelessLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %s", value)
	}
	return ts, nil
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func typeMetadata(value interface{}) map[string]interface{} {
	if metadata, ok := value.(map[string]interface{}); ok {
		return metadata
	}
	return map[string]interface{}{}
}
