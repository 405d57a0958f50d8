package handler

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/agentops/haruspex/internal/db/postgrest/model"
	"github.com/agentops/haruspex/internal/rca_server/service/incident"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveIncidentRoutes(iqsf *incidentQueryServiceFake) *mux.Router {
	logger := zap.NewNop()
	ctx := context.Background()
	r := mux.NewRouter()
	r.Handle("/incidents", IncidentListHandler(ctx, iqsf, logger)).Methods("GET")
	r.Handle("/incidents/{id}", IncidentDetailHandler(ctx, iqsf, logger)).Methods("GET")
	r.Handle("/incidents/{id}/full", IncidentWithRelationsHandler(ctx, iqsf, logger)).Methods("GET")
	r.Handle("/spans", SpanListHandler(ctx, iqsf, logger)).Methods("GET")
	r.Handle("/artifacts", ArtifactListHandler(ctx, iqsf, logger)).Methods("GET")
	return r
}

func TestIncidentListHandler(t *testing.T) {
	t.Run("returns raw rows", func(t *testing.T) {
		iqsf := &incidentQueryServiceFake{rows: []model.Row{{"incident_id": "inc-1"}, {"incident_id": "inc-2"}}}
		rec := httptest.NewRecorder()
		serveIncidentRoutes(iqsf).ServeHTTP(rec, httptest.NewRequest("GET", "/incidents", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var rows []map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		assert.Len(t, rows, 2)
	})

	t.Run("degrades to an empty array on store failure", func(t *testing.T) {
		iqsf := &incidentQueryServiceFake{rowsErr: errors.New("store unavailable")}
		rec := httptest.NewRecorder()
		serveIncidentRoutes(iqsf).ServeHTTP(rec, httptest.NewRequest("GET", "/incidents", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("serves an empty array instead of null", func(t *testing.T) {
		iqsf := &incidentQueryServiceFake{rows: nil}
		rec := httptest.NewRecorder()
		serveIncidentRoutes(iqsf).ServeHTTP(rec, httptest.NewRequest("GET", "/incidents", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestSpanAndArtifactListHandlers(t *testing.T) {
	t.Run("serve raw rows from their tables", func(t *testing.T) {
		iqsf := &incidentQueryServiceFake{rows: []model.Row{{"span_id": "span-1"}}}
		router := serveIncidentRoutes(iqsf)

		for _, path := range []string{"/spans", "/artifacts"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			var rows []map[string]interface{}
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
			assert.Len(t, rows, 1)
		}
	})

	t.Run("degrade to empty arrays on store failure", func(t *testing.T) {
		iqsf := &incidentQueryServiceFake{rowsErr: errors.New("store unavailable")}
		router := serveIncidentRoutes(iqsf)

		for _, path := range []string{"/spans", "/artifacts"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, "[]", rec.Body.String())
		}
	})
}

func TestIncidentDetailHandler(t *testing.T) {
	t.Run("returns the raw incident row", func(t *testing.T) {
		iqsf := &incidentQueryServiceFake{incidentRow: model.Row{"incident_id": "inc-1", "severity": "high"}}
		rec := httptest.NewRecorder()
		serveIncidentRoutes(iqsf).ServeHTTP(rec, httptest.NewRequest("GET", "/incidents/inc-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "inc-1", iqsf.gotIncidentId)
		var row map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
		assert.Equal(t, "high", row["severity"])
	})

	t.Run("answers 404 with the error envelope for an unknown id", func(t *testing.T) {
		iqsf := &incidentQueryServiceFake{incidentErr: incident.ErrIncidentNotFound}
		rec := httptest.NewRecorder()
		serveIncidentRoutes(iqsf).ServeHTTP(rec, httptest.NewRequest("GET", "/incidents/inc-404", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message": "Incident not found"}`, rec.Body.String())
	})

	t.Run("answers 500 with the error envelope on store failure", func(t *testing.T) {
		iqsf := &incidentQueryServiceFake{incidentErr: errors.New("store unavailable")}
		rec := httptest.NewRecorder()
		serveIncidentRoutes(iqsf).ServeHTTP(rec, httptest.NewRequest("GET", "/incidents/inc-1", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"message": "Internal server error"}`, rec.Body.String())
	})
}

func TestIncidentWithRelationsHandler(t *testing.T) {
	t.Run("returns the assembled aggregate", func(t *testing.T) {
		iqsf := &incidentQueryServiceFake{details: detailsFixture()}
		rec := httptest.NewRecorder()
		serveIncidentRoutes(iqsf).ServeHTTP(rec, httptest.NewRequest("GET", "/incidents/inc-1/full", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "inc-1", iqsf.gotIncidentId)
		var response IncidentWithRelationsResponseDTO
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "inc-1", response.Incident.IncidentID)
		assert.Len(t, response.Spans, 1)
		assert.Equal(t, "carrier_lookup", response.Spans[0].Tool)
		assert.Len(t, response.Artifacts, 1)
		assert.Equal(t, "sha256:aaa", response.Artifacts[0].Digest)
	})

	t.Run("answers 404 for an unknown id", func(t *testing.T) {
		iqsf := &incidentQueryServiceFake{detailsErr: incident.ErrIncidentNotFound}
		rec := httptest.NewRecorder()
		serveIncidentRoutes(iqsf).ServeHTTP(rec, httptest.NewRequest("GET", "/incidents/inc-404/full", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message": "Incident not found"}`, rec.Body.String())
	})
}
