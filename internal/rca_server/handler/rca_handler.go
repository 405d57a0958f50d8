package handler

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/agentops/haruspex/internal/rca_server/service/analysis"
	"github.com/agentops/haruspex/internal/rca_server/service/incident"
	"go.uber.org/zap"
	"io"
	"net/http"
)

// RCAAnalyzeHandler creates a handler for running root cause analysis on a
// single incident.
// @Summary Run root cause analysis for an incident.
// @Tags rca
// @Accept json
// @Produce json
// @Param analyze body RCAAnalyzeRequestDTO true "The incident to analyze"
// @Success 200 {object} RCAReportResponseDTO "The analysis report"
// @Failure 400 {object} ErrorMessage "Invalid request payload"
// @Failure 404 {object} ErrorMessage "Incident not found"
// @Failure 500 {object} ErrorMessage "Analysis failed"
// @Router /rca/analyze [post]
func RCAAnalyzeHandler(
	ctx context.Context,
	is incident.IncidentQueryService,
	as analysis.RCAAnalysisService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RCAAnalyzeRequestDTO
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Error("Error encountered when decoding request body", zap.Error(err))
			HttpError(w, "Invalid request payload", http.StatusBadRequest, logger)
			return
		}

		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logger.Error("Error encountered when closing request body", zap.Error(err))
			}
		}(r.Body)

		if req.IncidentID == "" {
			HttpError(w, ErrNoIncidentId.Error(), http.StatusBadRequest, logger)
			return
		}

		details, err := is.GetIncidentWithRelations(ctx, req.IncidentID)
		if err != nil {
			if errors.Is(err, incident.ErrIncidentNotFound) {
				HttpError(w, "Incident not found", http.StatusNotFound, logger)
				return
			}
			logger.Error(
				"Error encountered when assembling incident",
				zap.String("incident_id", req.IncidentID),
				zap.Error(err),
			)
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}

		report, err := as.AnalyzeIncident(ctx, details)
		if err != nil {
			logger.Error(
				"Error encountered when analyzing incident",
				zap.String("incident_id", req.IncidentID),
				zap.Error(err),
			)
			HttpError(w, "Analysis failed", http.StatusInternalServerError, logger)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(convertReportToDTO(report))
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}
