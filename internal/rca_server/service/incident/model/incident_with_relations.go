package model

// IncidentWithRelations joins an incident with the spans of its order and
// the artifacts those spans reference. Every span carries the incident's
// order ID; artifacts are deduplicated by digest.
type IncidentWithRelations struct {
	Incident  Incident   `json:"incident"`
	Spans     []Span     `json:"spans"`
	Artifacts []Artifact `json:"artifacts"`
}
