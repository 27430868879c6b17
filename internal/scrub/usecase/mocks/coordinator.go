// Package mocks provides mock implementations of the scrub coordinator for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	scrubDomain "github.com/allisson/piiguard/internal/scrub/domain"
)

// MockCoordinator is a mock implementation of Coordinator for testing.
type MockCoordinator struct {
	mock.Mock
}

// Scrub mocks the Scrub method of Coordinator.
func (m *MockCoordinator) Scrub(ctx context.Context, req scrubDomain.Request) (*scrubDomain.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrubDomain.Result), args.Error(1)
}

// ScrubBatch mocks the ScrubBatch method of Coordinator.
func (m *MockCoordinator) ScrubBatch(
	ctx context.Context,
	reqs []scrubDomain.Request,
	concurrency int,
) ([]*scrubDomain.Result, error) {
	args := m.Called(ctx, reqs, concurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scrubDomain.Result), args.Error(1)
}

// Detokenize mocks the Detokenize method of Coordinator.
func (m *MockCoordinator) Detokenize(
	ctx context.Context,
	tokens []string,
	authorize scrubDomain.AuthorizationCheck,
) ([]scrubDomain.DetokenizeOutcome, error) {
	args := m.Called(ctx, tokens, authorize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scrubDomain.DetokenizeOutcome), args.Error(1)
}

// DetokenizeText mocks the DetokenizeText method of Coordinator.
func (m *MockCoordinator) DetokenizeText(
	ctx context.Context,
	text string,
	authorize scrubDomain.AuthorizationCheck,
) (*scrubDomain.DetokenizeTextResult, error) {
	args := m.Called(ctx, text, authorize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrubDomain.DetokenizeTextResult), args.Error(1)
}

// MockAuditSink is a mock implementation of AuditSink for testing.
type MockAuditSink struct {
	mock.Mock
}

// Record mocks the Record method of AuditSink.
func (m *MockAuditSink) Record(ctx context.Context, event scrubDomain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
