package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/piiguard/internal/errors"
)

func TestErrors_Kinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{name: "Success_InvalidContext", err: ErrInvalidContext, kind: errors.ErrInvalidInput},
		{name: "Success_InvalidStrategy", err: ErrInvalidStrategy, kind: errors.ErrInvalidInput},
		{name: "Success_UnsupportedStrategy", err: ErrUnsupportedStrategy, kind: errors.ErrUnsupported},
		{name: "Success_UnsupportedHashAlgorithm", err: ErrUnsupportedHashAlgorithm, kind: errors.ErrUnsupported},
		{name: "Success_PatternCompile", err: ErrPatternCompile, kind: errors.ErrInvalidInput},
		{name: "Success_InvalidMatchSet", err: ErrInvalidMatchSet, kind: errors.ErrInvalidInput},
		{name: "Success_TokenStoreUnavailable", err: ErrTokenStoreUnavailable, kind: errors.ErrUnsupported},
		{name: "Success_HashKeyRequired", err: ErrHashKeyRequired, kind: errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.kind))
			assert.True(t, errors.Is(errors.Wrap(tt.err, "context"), tt.err))
		})
	}
}
