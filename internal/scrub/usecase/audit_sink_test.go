package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	scrubDomain "github.com/allisson/piiguard/internal/scrub/domain"
)

func TestLogAuditSink_Record(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogAuditSink(slog.New(slog.NewJSONHandler(&buf, nil)))
	requestID := uuid.Must(uuid.NewV7())

	err := sink.Record(context.Background(), scrubDomain.AuditEvent{
		RequestID:  requestID,
		Operation:  scrubDomain.AuditOperationScrub,
		Context:    piiDomain.ContextFinancial,
		Strategy:   piiDomain.StrategyTokenize,
		Total:      2,
		ByCategory: map[piiDomain.Category]int{piiDomain.CategorySSN: 2},
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "audit", entry["msg"])
	assert.Equal(t, requestID.String(), entry["request_id"])
	assert.Equal(t, "financial", entry["context"])
	assert.Equal(t, "tokenize", entry["strategy"])
	assert.Equal(t, float64(2), entry["total"])
	assert.Equal(t, map[string]any{"ssn": float64(2)}, entry["by_category"])
}

func TestLogAuditSink_NilLogger(t *testing.T) {
	sink := NewLogAuditSink(nil)

	assert.NoError(t, sink.Record(context.Background(), scrubDomain.AuditEvent{}))
}
