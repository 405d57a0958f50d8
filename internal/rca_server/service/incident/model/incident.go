package model

import (
	"time"
)

// Incident is a recorded operational problem tied to an order. Incidents
// are written by an upstream monitoring process and are read-only here.
type Incident struct {
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
