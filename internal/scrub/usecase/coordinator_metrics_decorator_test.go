package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	scrubDomain "github.com/allisson/piiguard/internal/scrub/domain"
	scrubUsecase "github.com/allisson/piiguard/internal/scrub/usecase"
	scrubMocks "github.com/allisson/piiguard/internal/scrub/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordDetections(ctx context.Context, detectionContext, category string, count int) {
	m.Called(ctx, detectionContext, category, count)
}

func expectMetrics(m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", mock.Anything, "scrub", operation, status).Once()
	m.On("RecordDuration", mock.Anything, "scrub", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestCoordinatorWithMetrics_Scrub(t *testing.T) {
	ctx := context.Background()
	req := scrubDomain.Request{Text: "jane@example.com 555-123-4567"}

	t.Run("Success_RecordsOperationAndDetections", func(t *testing.T) {
		coordinator := &scrubMocks.MockCoordinator{}
		metrics := &mockBusinessMetrics{}
		result := &scrubDomain.Result{
			Summary: scrubDomain.Summary{
				Total:   3,
				Context: piiDomain.ContextHealthcare,
				ByCategory: map[piiDomain.Category]int{
					piiDomain.CategoryEmail:       1,
					piiDomain.CategoryPhoneNumber: 2,
				},
			},
		}
		coordinator.On("Scrub", ctx, req).Return(result, nil).Once()
		expectMetrics(metrics, "scrub", "success")
		metrics.On("RecordDetections", mock.Anything, "healthcare", "email", 1).Once()
		metrics.On("RecordDetections", mock.Anything, "healthcare", "phone_number", 2).Once()

		decorator := scrubUsecase.NewCoordinatorWithMetrics(coordinator, metrics)
		got, err := decorator.Scrub(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, result, got)
		coordinator.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorStatus", func(t *testing.T) {
		coordinator := &scrubMocks.MockCoordinator{}
		metrics := &mockBusinessMetrics{}
		expectedErr := errors.New("boom")
		coordinator.On("Scrub", ctx, req).Return(nil, expectedErr).Once()
		expectMetrics(metrics, "scrub", "error")

		decorator := scrubUsecase.NewCoordinatorWithMetrics(coordinator, metrics)
		got, err := decorator.Scrub(ctx, req)

		assert.Nil(t, got)
		assert.Equal(t, expectedErr, err)
		metrics.AssertExpectations(t)
		metrics.AssertNotCalled(t, "RecordDetections", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCoordinatorWithMetrics_ScrubBatch(t *testing.T) {
	ctx := context.Background()
	reqs := []scrubDomain.Request{{Text: "a"}, {Text: "b"}}
	results := []*scrubDomain.Result{
		{Summary: scrubDomain.Summary{
			Context:    piiDomain.ContextGeneral,
			ByCategory: map[piiDomain.Category]int{piiDomain.CategorySSN: 1},
		}},
		{Summary: scrubDomain.Summary{Context: piiDomain.ContextGeneral}},
	}

	coordinator := &scrubMocks.MockCoordinator{}
	metrics := &mockBusinessMetrics{}
	coordinator.On("ScrubBatch", ctx, reqs, 2).Return(results, nil).Once()
	expectMetrics(metrics, "scrub_batch", "success")
	metrics.On("RecordDetections", mock.Anything, "general", "ssn", 1).Once()

	decorator := scrubUsecase.NewCoordinatorWithMetrics(coordinator, metrics)
	got, err := decorator.ScrubBatch(ctx, reqs, 2)

	require.NoError(t, err)
	assert.Equal(t, results, got)
	metrics.AssertExpectations(t)
}

func TestCoordinatorWithMetrics_Detokenize(t *testing.T) {
	ctx := context.Background()
	tokens := []string{"TKN_SSN_AAAAAAAAAAAAAAAA"}

	tests := []struct {
		name           string
		outcomes       []scrubDomain.DetokenizeOutcome
		err            error
		expectedStatus string
	}{
		{
			name:           "Success_RecordsSuccessMetrics",
			outcomes:       []scrubDomain.DetokenizeOutcome{{Token: tokens[0], Value: "123-45-6789"}},
			expectedStatus: "success",
		},
		{
			name:           "Error_RecordsErrorMetrics",
			err:            scrubDomain.ErrRateLimited,
			expectedStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coordinator := &scrubMocks.MockCoordinator{}
			metrics := &mockBusinessMetrics{}
			coordinator.On("Detokenize", ctx, tokens, mock.Anything).Return(tt.outcomes, tt.err).Once()
			expectMetrics(metrics, "detokenize", tt.expectedStatus)

			decorator := scrubUsecase.NewCoordinatorWithMetrics(coordinator, metrics)
			outcomes, err := decorator.Detokenize(ctx, tokens, nil)

			assert.Equal(t, tt.outcomes, outcomes)
			assert.Equal(t, tt.err, err)
			coordinator.AssertExpectations(t)
			metrics.AssertExpectations(t)
		})
	}
}

func TestCoordinatorWithMetrics_DetokenizeText(t *testing.T) {
	ctx := context.Background()
	coordinator := &scrubMocks.MockCoordinator{}
	metrics := &mockBusinessMetrics{}
	result := &scrubDomain.DetokenizeTextResult{Text: "restored"}
	coordinator.On("DetokenizeText", ctx, "masked", mock.Anything).Return(result, nil).Once()
	expectMetrics(metrics, "detokenize_text", "success")

	decorator := scrubUsecase.NewCoordinatorWithMetrics(coordinator, metrics)
	got, err := decorator.DetokenizeText(ctx, "masked", nil)

	require.NoError(t, err)
	assert.Equal(t, result, got)
	metrics.AssertExpectations(t)
}
