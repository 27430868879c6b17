package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	defaults := StrategyDefaults{
		MaskChar:       '#',
		FullMaskLength: 8,
		HashAlgorithm:  HashSHA512,
		HashWidth:      12,
		TokenPrefix:    "PII",
		TokenTTL:       time.Hour,
	}

	tests := []struct {
		name    string
		input   string
		want    Strategy
		wantErr bool
	}{
		{name: "Success_FullMask", input: "full_mask", want: FullMask{MaskChar: '#', FixedLength: 8}},
		{name: "Success_PartialAlias", input: "Partial", want: PartialMask{MaskChar: '#'}},
		{name: "Success_Tokenize", input: "tokenize", want: Tokenize{Prefix: "PII", TTL: time.Hour}},
		{
			name:  "Success_Hash",
			input: "hash",
			want:  HashReplace{Algorithm: HashSHA512, Width: 12, Prefix: DefaultHashPrefix},
		},
		{name: "Success_Placeholder", input: "placeholder", want: HashReplace{UsePlaceholder: true}},
		{name: "Success_Remove", input: "remove", want: Remove{}},
		{name: "Error_Unknown", input: "shred", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.input, defaults)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStrategy)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStrategy_ZeroDefaults(t *testing.T) {
	s, err := ParseStrategy("tokenize", StrategyDefaults{})
	require.NoError(t, err)
	assert.Equal(t, Tokenize{Prefix: DefaultTokenPrefix, TTL: DefaultTokenTTL}, s)

	s, err = ParseStrategy("hash", StrategyDefaults{})
	require.NoError(t, err)
	assert.Equal(t, HashReplace{Algorithm: HashSHA256, Width: DefaultHashWidth, Prefix: DefaultHashPrefix}, s)

	s, err = ParseStrategy("full_mask", StrategyDefaults{})
	require.NoError(t, err)
	assert.Equal(t, FullMask{MaskChar: DefaultMaskChar}, s)
}

func TestStrategy_Kind(t *testing.T) {
	assert.Equal(t, StrategyFullMask, FullMask{}.Kind())
	assert.Equal(t, StrategyPartialMask, PartialMask{}.Kind())
	assert.Equal(t, StrategyTokenize, Tokenize{}.Kind())
	assert.Equal(t, StrategyHash, HashReplace{}.Kind())
	assert.Equal(t, StrategyRemove, Remove{}.Kind())
}
