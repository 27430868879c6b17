package usecase

import (
	"context"
	"time"

	"github.com/allisson/piiguard/internal/metrics"
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	tokenstoreDomain "github.com/allisson/piiguard/internal/tokenstore/domain"
)

const metricsDomain = "tokenstore"

// tokenStoreWithMetrics decorates TokenStore with metrics instrumentation.
type tokenStoreWithMetrics struct {
	next    TokenStore
	metrics metrics.BusinessMetrics
}

// NewTokenStoreWithMetrics wraps a TokenStore with metrics recording.
func NewTokenStoreWithMetrics(store TokenStore, m metrics.BusinessMetrics) TokenStore {
	return &tokenStoreWithMetrics{
		next:    store,
		metrics: m,
	}
}

func (t *tokenStoreWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	t.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Store records metrics for explicit token stores.
func (t *tokenStoreWithMetrics) Store(
	ctx context.Context,
	token string,
	value string,
	category piiDomain.Category,
	ttl time.Duration,
) (*tokenstoreDomain.StoreResult, error) {
	start := time.Now()
	result, err := t.next.Store(ctx, token, value, category, ttl)
	t.record(ctx, "store", start, err)
	return result, err
}

// StoreOrReuse records metrics for reuse-or-store operations.
func (t *tokenStoreWithMetrics) StoreOrReuse(
	ctx context.Context,
	value string,
	category piiDomain.Category,
	ttl time.Duration,
	generate GenerateFunc,
) (*tokenstoreDomain.StoreResult, error) {
	start := time.Now()
	result, err := t.next.StoreOrReuse(ctx, value, category, ttl, generate)
	t.record(ctx, "store_or_reuse", start, err)
	return result, err
}

// Retrieve records metrics for token retrievals.
func (t *tokenStoreWithMetrics) Retrieve(ctx context.Context, token string) (string, error) {
	start := time.Now()
	value, err := t.next.Retrieve(ctx, token)
	t.record(ctx, "retrieve", start, err)
	return value, err
}

// FindTokenFor records metrics for reverse index lookups.
func (t *tokenStoreWithMetrics) FindTokenFor(ctx context.Context, value string) (string, error) {
	start := time.Now()
	token, err := t.next.FindTokenFor(ctx, value)
	t.record(ctx, "find_token", start, err)
	return token, err
}

// Erase records metrics for token erasure.
func (t *tokenStoreWithMetrics) Erase(ctx context.Context, token string) error {
	start := time.Now()
	err := t.next.Erase(ctx, token)
	t.record(ctx, "erase", start, err)
	return err
}

// EraseValue records metrics for value erasure.
func (t *tokenStoreWithMetrics) EraseValue(ctx context.Context, value string) (int, error) {
	start := time.Now()
	count, err := t.next.EraseValue(ctx, value)
	t.record(ctx, "erase_value", start, err)
	return count, err
}

// CleanupExpired records metrics for expired token cleanup operations.
func (t *tokenStoreWithMetrics) CleanupExpired(ctx context.Context) (int, error) {
	start := time.Now()
	count, err := t.next.CleanupExpired(ctx)
	t.record(ctx, "cleanup_expired", start, err)
	return count, err
}

// Stats is not instrumented.
func (t *tokenStoreWithMetrics) Stats(ctx context.Context) (*tokenstoreDomain.Stats, error) {
	return t.next.Stats(ctx)
}
