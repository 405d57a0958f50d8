package model

import (
	"time"
)

// Artifact is a stored payload addressed by its content digest. Spans
// reference artifacts through their args and result digests.
type Artifact struct {
	Digest    string                 `json:"digest"`
	MimeType  string                 `json:"mime_type"`
	Length    int64                  `json:"length"`
	PIIMasked bool                   `json:"pii_masked"`
	FilePath  string                 `json:"file_path"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}
