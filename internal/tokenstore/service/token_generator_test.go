package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpperAlphanumericGenerator_Generate(t *testing.T) {
	gen := NewUpperAlphanumericGenerator()

	t.Run("Success_Length16", func(t *testing.T) {
		token, err := gen.Generate(16)
		require.NoError(t, err)
		assert.Len(t, token, 16)
		assert.NoError(t, gen.Validate(token))
		assert.Equal(t, strings.ToUpper(token), token)
	})

	t.Run("Success_Unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			token, err := gen.Generate(16)
			require.NoError(t, err)
			assert.False(t, seen[token])
			seen[token] = true
		}
	})

	t.Run("Error_ZeroLength", func(t *testing.T) {
		_, err := gen.Generate(0)
		assert.Error(t, err)
	})

	t.Run("Error_TooLong", func(t *testing.T) {
		_, err := gen.Generate(MaxTokenLength + 1)
		assert.Error(t, err)
	})
}

func TestUpperAlphanumericGenerator_Validate(t *testing.T) {
	gen := NewUpperAlphanumericGenerator()

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "Valid", token: "ABC123XYZ", wantErr: false},
		{name: "Empty", token: "", wantErr: true},
		{name: "LowerCase", token: "abc123", wantErr: true},
		{name: "Symbol", token: "ABC_123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gen.Validate(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
