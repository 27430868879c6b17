package metrics

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNewBusinessMetrics(t *testing.T) {
	t.Run("Success_CreateBusinessMetrics", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)

		businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

		require.NoError(t, err)
		assert.NotNil(t, businessMetrics)
	})
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()
	assert.NotNil(t, noOpMetrics)
	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	assert.NotPanics(t, func() {
		ctx := context.Background()
		noOpMetrics.RecordOperation(ctx, "scrub", "scrub", "success")
		noOpMetrics.RecordDuration(ctx, "tokenstore", "retrieve", 20*time.Millisecond, "error")
		noOpMetrics.RecordDetections(ctx, "general", "email", 3)
	})
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()

	bm.RecordOperation(ctx, "scrub", "scrub", "success")
	bm.RecordOperation(ctx, "scrub", "scrub", "success")
	bm.RecordOperation(ctx, "scrub", "scrub", "error")
	bm.RecordOperation(ctx, "tokenstore", "retrieve", "success")

	bm.RecordDuration(ctx, "scrub", "scrub", 5*time.Millisecond, "success")
	bm.RecordDuration(ctx, "scrub", "scrub", 7*time.Millisecond, "success")
	bm.RecordDuration(ctx, "tokenstore", "retrieve", time.Millisecond, "success")

	bm.RecordDetections(ctx, "financial", "credit_card", 2)
	bm.RecordDetections(ctx, "financial", "credit_card", 1)
	bm.RecordDetections(ctx, "general", "email", 0)

	var buf bytes.Buffer
	require.NoError(t, provider.WriteText(&buf))
	output := buf.String()

	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="scrub".*operation="scrub".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="scrub".*operation="scrub".*status="error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="tokenstore".*operation="retrieve".*status="success"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="scrub".*operation="scrub".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_detections_total`,
		`category="credit_card".*context="financial"`,
		`3`,
	)
	assert.NotContains(t, output, `category="email"`)
}
