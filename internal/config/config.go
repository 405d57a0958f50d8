package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort                     = "8000"
	defaultArtifactFetchConcurrency = 1
)

// Config carries the static process configuration. It is loaded once at
// startup and never mutated afterwards.
type Config struct {
	SupabaseURL string
	SupabaseKey string
	GroqAPIKey  string
	GroqModel   string
	Port        string
	// ArtifactFetchConcurrency caps how many artifact lookups the assembler
	// issues at once. 1 keeps hydration sequential.
	ArtifactFetchConcurrency int
}

// Load reads configuration from the environment after a best-effort .env
// load. Missing required values fail the load; the error names every
// missing variable.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:              os.Getenv("SUPABASE_URL"),
		SupabaseKey:              os.Getenv("SUPABASE_KEY"),
		GroqAPIKey:               os.Getenv("GROQ_API_KEY"),
		GroqModel:                os.Getenv("GROQ_MODEL"),
		Port:                     os.Getenv("PORT"),
		ArtifactFetchConcurrency: defaultArtifactFetchConcurrency,
	}

	var missing []string
	if cfg.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if cfg.SupabaseKey == "" {
		missing = append(missing, "SUPABASE_KEY")
	}
	if cfg.GroqAPIKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if raw := os.Getenv("ARTIFACT_FETCH_CONCURRENCY"); raw != "" {
		width, err := strconv.Atoi(raw)
		if err != nil || width < 1 {
			return nil, fmt.Errorf("invalid ARTIFACT_FETCH_CONCURRENCY %q: must be a positive integer", raw)
		}
		cfg.ArtifactFetchConcurrency = width
	}

	return cfg, nil
}
