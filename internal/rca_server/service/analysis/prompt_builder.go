package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	incidentModel "github.com/agentops/haruspex/internal/rca_server/service/incident/model"
	"strconv"
	"text/template"
	"time"
)

const (
	notSpecified = "Not specified"
	notResolved  = "Not resolved"
)

const analysisPromptTemplate = `You are an expert Root Cause Analysis specialist. Analyze the following incident data and provide a detailed analysis.

INCIDENT DETAILS:
- ID: {{.IncidentID}}
- Order ID: {{.OrderID}}
- Incident Type: {{.IncidentType}}
- Severity: {{.Severity}}
- Status: {{.Status}}
- ETA Delta: {{.ETADelta}} hours
- Description: {{.Description}}
- Metadata: {{.Metadata}}
- Created: {{.CreatedAt}}
- Resolved: {{.ResolvedAt}}

SPANS (Execution Traces):
{{.SpansJSON}}

ARTIFACTS:
{{.ArtifactsJSON}}

Please provide a comprehensive Root Cause Analysis including:
1. A concise summary of the incident
2. The root cause of the problem
3. Contributing factors that led to this incident
4. Specific recommendations to prevent similar incidents
5. A professional email draft summarizing the findings for stakeholders

Format your response as JSON with these exact keys:
{
    "summary": "Brief incident summary",
    "root_cause": "Main root cause",
    "contributing_factors": ["factor1", "factor2", "factor3"],
    "recommendations": ["rec1", "rec2", "rec3"],
    "email_draft": "Professional email content"
}`

var promptTemplate = template.Must(template.New("analysis_prompt").Parse(analysisPromptTemplate))

type promptParams struct {
	IncidentID    string
	OrderID       string
	IncidentType  string
	Severity      string
	Status        string
	ETADelta      string
	Description   string
	Metadata      string
	CreatedAt     string
	ResolvedAt    string
	SpansJSON     string
	ArtifactsJSON string
}

// buildAnalysisPrompt renders the fixed analysis prompt with every incident
// field plus the span and artifact lists as indented JSON.
func buildAnalysisPrompt(details *incidentModel.IncidentWithRelations) (string, error) {
	spansJSON, err := json.MarshalIndent(details.Spans, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal spans for prompt: %w", err)
	}
	artifactsJSON, err := json.MarshalIndent(details.Artifacts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal artifacts for prompt: %w", err)
	}
	metadataJSON, err := json.Marshal(details.Incident.Metadata)
	if err != nil {
		return "", fmt.Errorf("failed to marshal incident metadata for prompt: %w", err)
	}

	incident := details.Incident
	params := promptParams{
		IncidentID:    incident.IncidentID,
		OrderID:       incident.OrderID,
		IncidentType:  incident.IncidentType,
		Severity:      incident.Severity,
		Status:        incident.Status,
		ETADelta:      notSpecified,
		Description:   incident.Description,
		Metadata:      string(metadataJSON),
		CreatedAt:     incident.CreatedAt.Format(time.RFC3339),
		ResolvedAt:    notResolved,
		SpansJSON:     string(spansJSON),
		ArtifactsJSON: string(artifactsJSON),
	}
	if incident.ETADeltaHours != nil {
		params.ETADelta = strconv.FormatFloat(*incident.ETADeltaHours, 'f', -1, 64)
	}
	if incident.ResolvedAt != nil {
		params.ResolvedAt = incident.ResolvedAt.Format(time.RFC3339)
	}

	var rendered bytes.Buffer
	if err := promptTemplate.Execute(&rendered, params); err != nil {
		return "", fmt.Errorf("failed to render analysis prompt: %w", err)
	}
	return rendered.String(), nil
}
