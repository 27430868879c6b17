package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/piiguard/internal/errors"
)

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "PHONE_NUMBER", CategoryPhoneNumber.Label())
	assert.Equal(t, "EMAIL", CategoryEmail.Label())
	assert.Equal(t, "ssn", CategorySSN.String())
}

func TestParseContext(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Context
		wantErr bool
	}{
		{name: "Success_Financial", input: "financial", want: ContextFinancial},
		{name: "Success_MixedCaseAndSpaces", input: "  HealthCare ", want: ContextHealthcare},
		{name: "Success_General", input: "general", want: ContextGeneral},
		{name: "Error_Unknown", input: "medical", wantErr: true},
		{name: "Error_Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContext(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidContext)
				assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContext_OrGeneral(t *testing.T) {
	assert.Equal(t, ContextLegal, ContextLegal.OrGeneral())
	assert.Equal(t, ContextGeneral, Context("unknown").OrGeneral())
	assert.Equal(t, ContextGeneral, Context("").OrGeneral())
}

func TestAllContexts(t *testing.T) {
	contexts := AllContexts()
	assert.Len(t, contexts, 5)
	for _, c := range contexts {
		assert.NoError(t, c.Validate())
	}
}
