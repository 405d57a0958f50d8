package handler

import (
	"time"
)

type IncidentDTO struct {
	IncidentID    string                 `json:"incident_id"`
	OrderID       string                 `json:"order_id"`
	IncidentType  string                 `json:"incident_type"`
	Severity      string                 `json:"severity"`
	Status        string                 `json:"status"`
	ETADeltaHours *float64               `json:"eta_delta_hours,omitempty"`
	Description   string                 `json:"description"`
	CreatedAt     time.Time              `json:"created_at"`
	ResolvedAt    *time.Time             `json:"resolved_at,omitempty"`
	Metadata      map[string]interface{} `json:"metadata"`
}

type SpanDTO struct {
	SpanID       string                 `json:"span_id"`
	ParentID     *string                `json:"parent_id,omitempty"`
	Tool         string                 `json:"tool"`
	StartTS      int64                  `json:"start_ts"`
	EndTS        int64                  `json:"end_ts"`
	ArgsDigest   string                 `json:"args_digest"`
	ResultDigest string                 `json:"result_digest"`
	Attributes   map[string]interface{} `json:"attributes"`
	CreatedAt    time.Time              `json:"created_at"`
	OrderID      string                 `json:"order_id"`
}

type ArtifactDTO struct {
	Digest    string                 `json:"digest"`
	MimeType  string                 `json:"mime_type"`
	Length    int64                  `json:"length"`
	PIIMasked bool                   `json:"pii_masked"`
	FilePath  string                 `json:"file_path"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// IncidentWithRelationsResponseDTO is the aggregate served for an incident
// joined with the spans of its order and the artifacts they reference.
type IncidentWithRelationsResponseDTO struct {
	Incident  IncidentDTO   `json:"incident"`
	Spans     []SpanDTO     `json:"spans"`
	Artifacts []ArtifactDTO `json:"artifacts"`
}
