// Package mocks provides mock implementations of the token store for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	tokenstoreDomain "github.com/allisson/piiguard/internal/tokenstore/domain"
	tokenstoreUsecase "github.com/allisson/piiguard/internal/tokenstore/usecase"
)

// MockTokenStore is a mock implementation of TokenStore for testing.
type MockTokenStore struct {
	mock.Mock
}

// Store mocks the Store method of TokenStore.
func (m *MockTokenStore) Store(
	ctx context.Context,
	token string,
	value string,
	category piiDomain.Category,
	ttl time.Duration,
) (*tokenstoreDomain.StoreResult, error) {
	args := m.Called(ctx, token, value, category, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenstoreDomain.StoreResult), args.Error(1)
}

// StoreOrReuse mocks the StoreOrReuse method of TokenStore.
func (m *MockTokenStore) StoreOrReuse(
	ctx context.Context,
	value string,
	category piiDomain.Category,
	ttl time.Duration,
	generate tokenstoreUsecase.GenerateFunc,
) (*tokenstoreDomain.StoreResult, error) {
	args := m.Called(ctx, value, category, ttl, generate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenstoreDomain.StoreResult), args.Error(1)
}

// Retrieve mocks the Retrieve method of TokenStore.
func (m *MockTokenStore) Retrieve(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// FindTokenFor mocks the FindTokenFor method of TokenStore.
func (m *MockTokenStore) FindTokenFor(ctx context.Context, value string) (string, error) {
	args := m.Called(ctx, value)
	return args.String(0), args.Error(1)
}

// Erase mocks the Erase method of TokenStore.
func (m *MockTokenStore) Erase(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// EraseValue mocks the EraseValue method of TokenStore.
func (m *MockTokenStore) EraseValue(ctx context.Context, value string) (int, error) {
	args := m.Called(ctx, value)
	return args.Int(0), args.Error(1)
}

// CleanupExpired mocks the CleanupExpired method of TokenStore.
func (m *MockTokenStore) CleanupExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// Stats mocks the Stats method of TokenStore.
func (m *MockTokenStore) Stats(ctx context.Context) (*tokenstoreDomain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenstoreDomain.Stats), args.Error(1)
}
