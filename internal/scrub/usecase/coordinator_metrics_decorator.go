package usecase

import (
	"context"
	"time"

	"github.com/allisson/piiguard/internal/metrics"
	scrubDomain "github.com/allisson/piiguard/internal/scrub/domain"
)

const metricsDomain = "scrub"

// coordinatorWithMetrics decorates Coordinator with metrics instrumentation.
type coordinatorWithMetrics struct {
	next    Coordinator
	metrics metrics.BusinessMetrics
}

// NewCoordinatorWithMetrics wraps a Coordinator with metrics recording. Scrub
// results also feed the per-category detection counter.
func NewCoordinatorWithMetrics(coordinator Coordinator, m metrics.BusinessMetrics) Coordinator {
	return &coordinatorWithMetrics{
		next:    coordinator,
		metrics: m,
	}
}

func (c *coordinatorWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	c.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (c *coordinatorWithMetrics) recordDetections(ctx context.Context, result *scrubDomain.Result) {
	if result == nil {
		return
	}
	for category, count := range result.Summary.ByCategory {
		c.metrics.RecordDetections(ctx, result.Summary.Context.String(), category.String(), count)
	}
}

// Scrub records metrics for scrub operations.
func (c *coordinatorWithMetrics) Scrub(
	ctx context.Context,
	req scrubDomain.Request,
) (*scrubDomain.Result, error) {
	start := time.Now()
	result, err := c.next.Scrub(ctx, req)
	c.record(ctx, "scrub", start, err)
	c.recordDetections(ctx, result)
	return result, err
}

// ScrubBatch records metrics for batch scrub operations.
func (c *coordinatorWithMetrics) ScrubBatch(
	ctx context.Context,
	reqs []scrubDomain.Request,
	concurrency int,
) ([]*scrubDomain.Result, error) {
	start := time.Now()
	results, err := c.next.ScrubBatch(ctx, reqs, concurrency)
	c.record(ctx, "scrub_batch", start, err)
	for _, result := range results {
		c.recordDetections(ctx, result)
	}
	return results, err
}

// Detokenize records metrics for detokenize operations.
func (c *coordinatorWithMetrics) Detokenize(
	ctx context.Context,
	tokens []string,
	authorize scrubDomain.AuthorizationCheck,
) ([]scrubDomain.DetokenizeOutcome, error) {
	start := time.Now()
	outcomes, err := c.next.Detokenize(ctx, tokens, authorize)
	c.record(ctx, "detokenize", start, err)
	return outcomes, err
}

// DetokenizeText records metrics for text detokenize operations.
func (c *coordinatorWithMetrics) DetokenizeText(
	ctx context.Context,
	text string,
	authorize scrubDomain.AuthorizationCheck,
) (*scrubDomain.DetokenizeTextResult, error) {
	start := time.Now()
	result, err := c.next.DetokenizeText(ctx, text, authorize)
	c.record(ctx, "detokenize_text", start, err)
	return result, err
}
