package handler

import (
	"time"
)

type RCAAnalyzeRequestDTO struct {
	IncidentID string `json:"incident_id"`
}

type RCAReportResponseDTO struct {
	IncidentID          string    `json:"incident_id"`
	Summary             string    `json:"summary"`
	RootCause           string    `json:"root_cause"`
	ContributingFactors []string  `json:"contributing_factors"`
	Recommendations     []string  `json:"recommendations"`
	EmailDraft          string    `json:"email_draft"`
	AnalysisTimestamp   time.Time `json:"analysis_timestamp"`
}
