package analysis

import (
	incidentModel "github.com/agentops/haruspex/internal/rca_server/service/incident/model"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func detailsFixture() *incidentModel.IncidentWithRelations {
	etaDelta := 6.5
	parentId := "span-0"
	return &incidentModel.IncidentWithRelations{
		Incident: incidentModel.Incident{
			IncidentID:    "inc-1",
			OrderID:       "ord-1",
			IncidentType:  "eta_slip",
			Severity:      "high",
			Status:        "open",
			ETADeltaHours: &etaDelta,
			Description:   "Shipment delayed at customs",
			CreatedAt:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Metadata:      map[string]interface{}{"region": "EMEA"},
		},
		Spans: []incidentModel.Span{
			{
				SpanID:       "span-1",
				ParentID:     &parentId,
				Tool:         "carrier_lookup",
				StartTS:      1705314600,
				EndTS:        1705314605,
				ArgsDigest:   "sha256:aaa",
				ResultDigest: "sha256:bbb",
				Attributes:   map[string]interface{}{"carrier": "DHL"},
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

func TestBuildAnalysisPrompt(t *testing.T) {
	t.Run("renders every incident field", func(t *testing.T) {
		prompt, err := buildAnalysisPrompt(detailsFixture())
		assert.NoError(t, err)
		assert.Contains(t, prompt, "- ID: inc-1")
		assert.Contains(t, prompt, "- Order ID: ord-1")
		assert.Contains(t, prompt, "- Incident Type: eta_slip")
		assert.Contains(t, prompt, "- Severity: high")
		assert.Contains(t, prompt, "- Status: open")
		assert.Contains(t, prompt, "- ETA Delta: 6.5 hours")
		assert.Contains(t, prompt, "- Description: Shipment delayed at customs")
		assert.Contains(t, prompt, `- Metadata: {"region":"EMEA"}`)
		assert.Contains(t, prompt, "- Created: 2024-01-15T10:30:00Z")
		assert.Contains(t, prompt, "- Resolved: Not resolved")
	})

	t.Run("embeds spans and artifacts as JSON", func(t *testing.T) {
		prompt, err := buildAnalysisPrompt(detailsFixture())
		assert.NoError(t, err)
		assert.Contains(t, prompt, "SPANS (Execution Traces):")
		assert.Contains(t, prompt, `"span_id": "span-1"`)
		assert.Contains(t, prompt, `"tool": "carrier_lookup"`)
		assert.Contains(t, prompt, "ARTIFACTS:")
		assert.Contains(t, prompt, `"digest": "sha256:aaa"`)
	})

	t.Run("instructs the exact response keys", func(t *testing.T) {
		prompt, err := buildAnalysisPrompt(detailsFixture())
		assert.NoError(t, err)
		assert.Contains(t, prompt, "Format your response as JSON with these exact keys:")
		assert.Contains(t, prompt, `"summary"`)
		assert.Contains(t, prompt, `"root_cause"`)
		assert.Contains(t, prompt, `"contributing_factors"`)
		assert.Contains(t, prompt, `"recommendations"`)
		assert.Contains(t, prompt, `"email_draft"`)
	})

	t.Run("marks absent optional fields", func(t *testing.T) {
		details := detailsFixture()
		details.Incident.ETADeltaHours = nil
		details.Incident.ResolvedAt = nil
		prompt, err := buildAnalysisPrompt(details)
		assert.NoError(t, err)
		assert.Contains(t, prompt, "- ETA Delta: Not specified hours")
		assert.Contains(t, prompt, "- Resolved: Not resolved")
	})

	t.Run("renders the resolution time when set", func(t *testing.T) {
		details := detailsFixture()
		resolvedAt := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
		details.Incident.ResolvedAt = &resolvedAt
		prompt, err := buildAnalysisPrompt(details)
		assert.NoError(t, err)
		assert.Contains(t, prompt, "- Resolved: 2024-01-15T12:00:00Z")
	})

	t.Run("renders empty span and artifact lists", func(t *testing.T) {
		details := detailsFixture()
		details.Spans = []incidentModel.Span{}
		details.Artifacts = []incidentModel.Artifact{}
		prompt, err := buildAnalysisPrompt(details)
		assert.NoError(t, err)
		assert.Contains(t, prompt, "SPANS (Execution Traces):\n[]")
		assert.Contains(t, prompt, "ARTIFACTS:\n[]")
	})
}
