package handler

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/agentops/haruspex/internal/db/postgrest/model"
	"github.com/agentops/haruspex/internal/rca_server/service/incident"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
)

// IncidentListHandler creates a handler for listing every incident row.
// @Summary Get all incidents.
// @Tags incidents
// @Produce json
// @Success 200 {array} model.Row "Raw incident rows"
// @Router /incidents [get]
func IncidentListHandler(
	ctx context.Context,
	is incident.IncidentQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := is.GetIncidents(ctx)
		if err != nil {
			// Listing endpoints degrade to an empty result on store failure.
			logger.Error("Error encountered when fetching incidents", zap.Error(err))
			rows = []model.Row{}
		}
		encodeRows(w, rows, logger)
	}
}

// SpanListHandler creates a handler for listing every span row.
// @Summary Get all spans.
// @Tags spans
// @Produce json
// @Success 200 {array} model.Row "Raw span rows"
// @Router /spans [get]
func SpanListHandler(
	ctx context.Context,
	is incident.IncidentQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := is.GetSpans(ctx)
		if err != nil {
			logger.Error("Error encountered when fetching spans", zap.Error(err))
			rows = []model.Row{}
		}
		encodeRows(w, rows, logger)
	}
}

// ArtifactListHandler creates a handler for listing every artifact row.
// @Summary Get all artifacts.
// @Tags artifacts
// @Produce json
// @Success 200 {array} model.Row "Raw artifact rows"
// @Router /artifacts [get]
func ArtifactListHandler(
	ctx context.Context,
	is incident.IncidentQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := is.GetArtifacts(ctx)
		if err != nil {
			logger.Error("Error encountered when fetching artifacts", zap.Error(err))
			rows = []model.Row{}
		}
		encodeRows(w, rows, logger)
	}
}

// IncidentDetailHandler creates a handler for fetching a single incident row.
// @Summary Get one incident by id.
// @Tags incidents
// @Produce json
// @Param id path string true "The incident identifier"
// @Success 200 {object} model.Row "Raw incident row"
// @Failure 404 {object} ErrorMessage "Incident not found"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /incidents/{id} [get]
func IncidentDetailHandler(
	ctx context.Context,
	is incident.IncidentQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		incidentId := mux.Vars(r)["id"]
		row, err := is.GetIncident(ctx, incidentId)
		if err != nil {
			if errors.Is(err, incident.ErrIncidentNotFound) {
				HttpError(w, "Incident not found", http.StatusNotFound, logger)
				return
			}
			logger.Error(
				"Error encountered when fetching incident",
				zap.String("incident_id", incidentId),
				zap.Error(err),
			)
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(row)
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}

// IncidentWithRelationsHandler creates a handler for fetching an incident
// joined with its spans and artifacts.
// @Summary Get one incident with its spans and artifacts.
// @Tags incidents
// @Produce json
// @Param id path string true "The incident identifier"
// @Success 200 {object} IncidentWithRelationsResponseDTO "The assembled incident"
// @Failure 404 {object} ErrorMessage "Incident not found"
// @Router /incidents/{id}/full [get]
func IncidentWithRelationsHandler(
	ctx context.Context,
	is incident.IncidentQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		incidentId := mux.Vars(r)["id"]
		details, err := is.GetIncidentWithRelations(ctx, incidentId)
		if err != nil {
			if errors.Is(err, incident.ErrIncidentNotFound) {
				HttpError(w, "Incident not found", http.StatusNotFound, logger)
				return
			}
			logger.Error(
				"Error encountered when assembling incident",
				zap.String("incident_id", incidentId),
				zap.Error(err),
			)
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(convertIncidentWithRelationsToDTO(details))
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}

func encodeRows(w http.ResponseWriter, rows []model.Row, logger *zap.Logger) {
	if rows == nil {
		rows = []model.Row{}
	}
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(rows)
	if err != nil {
		logger.Error("Error encountered when encoding response", zap.Error(err))
		HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
	}
}
