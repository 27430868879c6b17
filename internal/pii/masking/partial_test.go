package masking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
)

func TestPartialMask(t *testing.T) {
	email := piiDomain.MaskTemplate{Style: piiDomain.StyleEmail, VisiblePrefix: 1}
	last4 := piiDomain.MaskTemplate{Style: piiDomain.StyleDigits, VisibleSuffix: 4}
	edges := piiDomain.DefaultTemplate

	tests := []struct {
		name     string
		value    string
		template piiDomain.MaskTemplate
		expected string
	}{
		{"Success_Email", "john.doe@example.com", email, "j***@e***.com"},
		{"Success_EmailSubdomain", "ann@mail.example.co", email, "a***@m***.co"},
		{"Success_EmailWithoutDot", "root@localhost", email, "r***@l***"},
		{"Success_EmailMalformedFallsBackToEdges", "@example", email, "@*******"},
		{"Success_DigitsPhone", "555-123-4567", last4, "***-***-4567"},
		{"Success_DigitsSSN", "123-45-6789", last4, "***-**-6789"},
		{"Success_DigitsCard", "4111 1111 1111 1111", last4, "**** **** **** 1111"},
		{"Success_DigitsTooShortMasksAll", "1234", last4, "****"},
		{
			"Success_DigitsPrefixAndSuffix",
			"12345678",
			piiDomain.MaskTemplate{Style: piiDomain.StyleDigits, VisiblePrefix: 2, VisibleSuffix: 2},
			"12****78",
		},
		{"Success_DigitsNoDigitsFallsBackToEdges", "abcdef", last4, "**cdef"},
		{"Success_Edges", "AB1234567", edges, "AB*****67"},
		{"Success_EdgesTooShort", "AB12", edges, "****"},
		{"Success_EdgesMultibyte", "ñandú123", edges, "ña****23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, partialMask(tt.value, tt.template, '*'))
		})
	}
}

func TestFullMask(t *testing.T) {
	assert.Equal(t, "*****", fullMask("héllo", 0, '*'))
	assert.Equal(t, "xxx", fullMask("anything long", 3, 'x'))
	assert.Equal(t, "", fullMask("", 0, '*'))
}
