// Package domain defines the scrub coordinator's request, result and audit types.
package domain

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
)

// Request is a single scrub call. Exactly one of Text or Record is scrubbed;
// a nil Strategy selects the context default.
type Request struct {
	Text      string
	Record    map[string]any
	Context   piiDomain.Context
	Strategy  piiDomain.Strategy
	Detail    piiDomain.DetailLevel
	RequestID uuid.UUID
}

// IsRecord reports whether the request carries a structured record.
func (r Request) IsRecord() bool {
	return r.Record != nil
}

// Detection is one masked span in the result. Path locates the record leaf
// (e.g. "customer.emails[1]") and is empty for text requests.
type Detection struct {
	Category piiDomain.Category     `json:"category"`
	Pattern  string                 `json:"pattern"`
	Strategy piiDomain.StrategyKind `json:"strategy_applied"`
	Path     string                 `json:"path,omitempty"`
	Start    int                    `json:"start"`
	End      int                    `json:"end"`
	Token    string                 `json:"token,omitempty"`
	Original string                 `json:"original,omitempty"`
}

// Summary aggregates the detections of one request.
type Summary struct {
	Total      int                        `json:"total"`
	ByCategory map[piiDomain.Category]int `json:"by_category"`
	Categories []piiDomain.Category       `json:"categories"`
	Strategy   piiDomain.StrategyKind     `json:"strategy"`
	Context    piiDomain.Context          `json:"context"`
	DurationMs int64                      `json:"duration_ms"`
}

// Summarize builds the summary of detections.
func Summarize(
	detections []Detection,
	strategy piiDomain.StrategyKind,
	ctx piiDomain.Context,
	elapsed time.Duration,
) Summary {
	byCategory := make(map[piiDomain.Category]int)
	for _, d := range detections {
		byCategory[d.Category]++
	}

	categories := make([]piiDomain.Category, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	slices.Sort(categories)

	return Summary{
		Total:      len(detections),
		ByCategory: byCategory,
		Categories: categories,
		Strategy:   strategy,
		Context:    ctx,
		DurationMs: elapsed.Milliseconds(),
	}
}

// Result is the outcome of a scrub call.
type Result struct {
	RequestID    uuid.UUID      `json:"request_id"`
	MaskedText   string         `json:"masked_text,omitempty"`
	MaskedRecord map[string]any `json:"masked_record,omitempty"`
	Detections   []Detection    `json:"detections"`
	Summary      Summary        `json:"summary"`
	Tokens       []string       `json:"tokens,omitempty"`
	Truncated    bool           `json:"truncated"`

	// Fallback is set when the token store was exhausted and the fallback
	// strategy was applied instead of Tokenize.
	Fallback bool `json:"fallback"`
}

// AuthorizationCheck decides whether the caller may restore token.
type AuthorizationCheck func(ctx context.Context, token string) bool

// DetokenizeOutcome is the per-token result of a detokenize call. Err is one of
// ErrUnauthorized, the token store's not-found or expired errors, or nil.
type DetokenizeOutcome struct {
	Token string
	Value string
	Err   error
}

// Restored reports whether the token was resolved to its value.
func (o DetokenizeOutcome) Restored() bool {
	return o.Err == nil
}

// DetokenizeTextResult is the outcome of restoring tokens embedded in text.
type DetokenizeTextResult struct {
	Text     string
	Outcomes []DetokenizeOutcome
}

// Audit operations.
const (
	AuditOperationScrub      = "scrub"
	AuditOperationDetokenize = "detokenize"
)

// AuditEvent is emitted once per scrub or detokenize call.
type AuditEvent struct {
	RequestID  uuid.UUID
	Operation  string
	Context    piiDomain.Context
	Strategy   piiDomain.StrategyKind
	Total      int
	ByCategory map[piiDomain.Category]int
	Truncated  bool
	Fallback   bool
	Restored   int
	Denied     int
	Failed     int
	OccurredAt time.Time
}

// AuditSink receives audit events. Persisting them is the sink's concern.
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent) error
}
