package model

import (
	"time"
)

// Span is one recorded execution step of an order's workflow, typically a
// tool invocation. The parent edge is referential only and is never
// traversed here.
type Span struct {
	SpanID       string                 `json:"span_id"`
	ParentID     *string                `json:"parent_id,omitempty"`
	Tool         string                 `json:"tool"`
	StartTS      int64                  `json:"start_ts"`
	EndTS        int64                  `json:"end_ts"`
	ArgsDigest   string                 `json:"args_digest"`
	ResultDigest string                 `json:"result_digest"`
	Attributes   map[string]interface{} `json:"attributes"`
	CreatedAt    time.Time              `json:"created_at"`
	OrderID      string                 `json:"order_id"`
}
