package handler

type HealthCheckResponseDTO struct {
	Status string          `json:"status"`
	Checks HealthChecksDTO `json:"checks"`
}

// HealthChecksDTO reports one entry per upstream dependency: a probe
// boolean, or "not_configured" when credentials are absent.
type HealthChecksDTO struct {
	Supabase  interface{} `json:"supabase"`
	Groq      interface{} `json:"groq"`
	Timestamp string      `json:"timestamp"`
}

type ServiceInfoResponseDTO struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Timestamp string   `json:"timestamp"`
	Endpoints []string `json:"endpoints"`
}
