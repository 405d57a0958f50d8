package analysis

import (
	"encoding/json"
	analysisModel "github.com/agentops/haruspex/internal/rca_server/service/analysis/model"
	"strings"
)

const (
	jsonFenceMarker = "```json"
	fenceMarker     = "```"

	defaultSummary    = "Analysis summary not available"
	defaultRootCause  = "Root cause not identified"
	defaultEmailDraft = "Email draft not available"

	fallbackSummary    = "LLM analysis completed but response format was invalid"
	fallbackRootCause  = "Analysis completed but root cause details unavailable"
	fallbackEmailDraft = "Analysis completed. Please review the incident details manually."
)

// analysisPayload mirrors the JSON object the model is instructed to emit.
// Pointer fields distinguish a missing key from a present-but-empty value.
type analysisPayload struct {
	Summary             *string   `json:"summary"`
	RootCause           *string   `json:"root_cause"`
	ContributingFactors *[]string `json:"contributing_factors"`
	Recommendations     *[]string `json:"recommendations"`
	EmailDraft          *string   `json:"email_draft"`
}

// extractionStrategy returns a candidate JSON substring of the reply, or
// ok=false when the reply does not match the strategy's shape.
type extractionStrategy func(content string) (string, bool)

// extractionStrategies are tried in fixed priority order. The first match
// provides the only candidate that gets parsed.
var extractionStrategies = []extractionStrategy{
	extractJSONFenced,
	extractFenced,
	extractVerbatim,
}

// normalizeAnalysisResponse coerces the model's free-form reply into report
// fields. Replies may be bare JSON, a ```json fence, or an untagged fence.
// A candidate that fails to parse degrades to the fixed fallback report
// rather than surfacing an error.
func normalizeAnalysisResponse(content string) analysisModel.RCAReport {
	candidate := extractCandidate(strings.TrimSpace(content))
	var payload analysisPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return fallbackReport()
	}
	return reportFromPayload(payload)
}

func extractCandidate(content string) string {
	for _, strategy := range extractionStrategies {
		if candidate, ok := strategy(content); ok {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

// extractJSONFenced pulls the substring between the first ```json marker
// and the last ``` marker. Replies where the closing marker does not come
// after the opening yield no candidate.
func extractJSONFenced(content string) (string, bool) {
	start := strings.Index(content, jsonFenceMarker)
	if start < 0 {
		return "", false
	}
	start += len(jsonFenceMarker)
	end := strings.LastIndex(content, fenceMarker)
	if end <= start {
		return "", false
	}
	return content[start:end], true
}

// extractFenced pulls the substring between the first and last ``` markers.
func extractFenced(content string) (string, bool) {
	start := strings.Index(content, fenceMarker)
	if start < 0 {
		return "", false
	}
	start += len(fenceMarker)
	end := strings.LastIndex(content, fenceMarker)
	if end <= start {
		return "", false
	}
	return content[start:end], true
}

// extractVerbatim accepts the reply as-is. It terminates the strategy chain.
func extractVerbatim(content string) (string, bool) {
	return content, true
}

func reportFromPayload(payload analysisPayload) analysisModel.RCAReport {
	report := analysisModel.RCAReport{
		Summary:             defaultSummary,
		RootCause:           defaultRootCause,
		ContributingFactors: []string{},
		Recommendations:     []string{},
		EmailDraft:          defaultEmailDraft,
	}
	if payload.Summary != nil {
		report.Summary = *payload.Summary
	}
	if payload.RootCause != nil {
		report.RootCause = *payload.RootCause
	}
	if payload.ContributingFactors != nil {
		report.ContributingFactors = *payload.ContributingFactors
	}
	if payload.Recommendations != nil {
		report.Recommendations = *payload.Recommendations
	}
	if payload.EmailDraft != nil {
		report.EmailDraft = *payload.EmailDraft
	}
	return report
}

func fallbackReport() analysisModel.RCAReport {
	return analysisModel.RCAReport{
		Summary:             fallbackSummary,
		RootCause:           fallbackRootCause,
		ContributingFactors: []string{"Analysis completed"},
		Recommendations:     []string{"Review incident data manually"},
		EmailDraft:          fallbackEmailDraft,
	}
}
