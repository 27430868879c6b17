package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/piiguard/internal/pii/catalog"
)

func TestRunListPatterns(t *testing.T) {
	cat := catalog.Default(discardLogger())

	t.Run("Success_Text", func(t *testing.T) {
		var out bytes.Buffer

		err := RunListPatterns(cat, &out, "general", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "NAME")
		assert.Contains(t, out.String(), "email")
		assert.Contains(t, out.String(), "# context=general")
	})

	t.Run("Success_JSONOrderedByPriority", func(t *testing.T) {
		var out bytes.Buffer

		err := RunListPatterns(cat, &out, "financial", "json")

		require.NoError(t, err)
		var decoded struct {
			Context  string `json:"context"`
			Patterns []struct {
				Name              string `json:"name"`
				EffectivePriority int    `json:"effective_priority"`
			} `json:"patterns"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, "financial", decoded.Context)
		require.NotEmpty(t, decoded.Patterns)
		for i := 1; i < len(decoded.Patterns); i++ {
			assert.GreaterOrEqual(t, decoded.Patterns[i-1].EffectivePriority, decoded.Patterns[i].EffectivePriority)
		}
	})

	t.Run("Error_InvalidContext", func(t *testing.T) {
		err := RunListPatterns(cat, &bytes.Buffer{}, "retail", "text")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid context")
	})

	t.Run("Error_InvalidFormat", func(t *testing.T) {
		err := RunListPatterns(cat, &bytes.Buffer{}, "general", "yaml")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}
