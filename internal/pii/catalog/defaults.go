package catalog

import (
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
)

var (
	digitsLast4  = piiDomain.MaskTemplate{Style: piiDomain.StyleDigits, VisibleSuffix: 4}
	emailFirst1  = piiDomain.MaskTemplate{Style: piiDomain.StyleEmail, VisiblePrefix: 1}
	edgesDefault = piiDomain.DefaultTemplate
)

// DefaultTemplates returns the built-in partial-mask template per category.
func DefaultTemplates() map[piiDomain.Category]piiDomain.MaskTemplate {
	return map[piiDomain.Category]piiDomain.MaskTemplate{
		piiDomain.CategoryEmail:         emailFirst1,
		piiDomain.CategoryPhoneNumber:   digitsLast4,
		piiDomain.CategorySSN:           digitsLast4,
		piiDomain.CategoryCreditCard:    digitsLast4,
		piiDomain.CategoryAccountNumber: digitsLast4,
		piiDomain.CategoryBankRouting:   digitsLast4,
		piiDomain.CategoryDateOfBirth:   digitsLast4,
		piiDomain.CategoryIPAddress:     edgesDefault,
		piiDomain.CategoryPassport:      edgesDefault,
		piiDomain.CategoryDriverLicense: edgesDefault,
	}
}

// DefaultProfiles returns the built-in context profiles.
func DefaultProfiles() map[piiDomain.Context]Profile {
	return map[piiDomain.Context]Profile{
		piiDomain.ContextFinancial: {
			Preferred: []piiDomain.Category{
				piiDomain.CategorySSN,
				piiDomain.CategoryCreditCard,
				piiDomain.CategoryAccountNumber,
				piiDomain.CategoryBankRouting,
			},
			DefaultStrategy: piiDomain.StrategyTokenize,
		},
		piiDomain.ContextHealthcare: {
			Preferred: []piiDomain.Category{
				piiDomain.CategorySSN,
				piiDomain.CategoryDateOfBirth,
				piiDomain.CategoryPhoneNumber,
			},
			DefaultStrategy: piiDomain.StrategyHash,
		},
		piiDomain.ContextLegal: {
			Preferred: []piiDomain.Category{
				piiDomain.CategorySSN,
				piiDomain.CategoryDriverLicense,
				piiDomain.CategoryPassport,
			},
			DefaultStrategy: piiDomain.StrategyFullMask,
		},
		piiDomain.ContextGovernment: {
			Preferred: []piiDomain.Category{
				piiDomain.CategorySSN,
				piiDomain.CategoryPassport,
				piiDomain.CategoryDriverLicense,
				piiDomain.CategoryDateOfBirth,
			},
			DefaultStrategy: piiDomain.StrategyFullMask,
		},
		piiDomain.ContextGeneral: {
			Preferred: []piiDomain.Category{
				piiDomain.CategoryEmail,
				piiDomain.CategoryPhoneNumber,
				piiDomain.CategorySSN,
			},
			DefaultStrategy: piiDomain.StrategyPartialMask,
		},
	}
}

// DefaultDefinitions returns the built-in pattern definitions.
func DefaultDefinitions() []PatternDefinition {
	return []PatternDefinition{
		// Credit cards
		{Category: piiDomain.CategoryCreditCard, Name: "card_visa", Priority: 90, Confidence: 0.9,
			Expression: `\b4\d{3}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`},
		{Category: piiDomain.CategoryCreditCard, Name: "card_mastercard", Priority: 90, Confidence: 0.9,
			Expression: `\b5[1-5]\d{2}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`},
		{Category: piiDomain.CategoryCreditCard, Name: "card_amex", Priority: 90, Confidence: 0.9,
			Expression: `\b3[47]\d{2}[\s-]?\d{6}[\s-]?\d{5}\b`},
		{Category: piiDomain.CategoryCreditCard, Name: "card_discover", Priority: 90, Confidence: 0.9,
			Expression: `\b6011[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`},

		// Social security numbers
		{Category: piiDomain.CategorySSN, Name: "ssn_dashed", Priority: 85, Confidence: 0.95,
			Expression: `\b\d{3}-\d{2}-\d{4}\b`},
		{Category: piiDomain.CategorySSN, Name: "ssn_spaced", Priority: 85, Confidence: 0.85,
			Expression: `\b\d{3}\s\d{2}\s\d{4}\b`},
		// A bare nine-digit run is read as a routing number in financial text.
		{Category: piiDomain.CategorySSN, Name: "ssn_compact", Priority: 85, Confidence: 0.5,
			Expression: `\b\d{9}\b`,
			Contexts: []piiDomain.Context{
				piiDomain.ContextHealthcare,
				piiDomain.ContextLegal,
				piiDomain.ContextGovernment,
				piiDomain.ContextGeneral,
			}},

		// Email
		{Category: piiDomain.CategoryEmail, Name: "email", Priority: 80, Confidence: 0.95,
			Expression: `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`},

		// Phone numbers
		{Category: piiDomain.CategoryPhoneNumber, Name: "phone_parenthesized", Priority: 70, Confidence: 0.9,
			Expression: `\(\d{3}\)\s?\d{3}-\d{4}\b`},
		{Category: piiDomain.CategoryPhoneNumber, Name: "phone_dashed", Priority: 70, Confidence: 0.85,
			Expression: `\b\d{3}-\d{3}-\d{4}\b`},
		{Category: piiDomain.CategoryPhoneNumber, Name: "phone_dotted", Priority: 70, Confidence: 0.85,
			Expression: `\b\d{3}\.\d{3}\.\d{4}\b`},
		{Category: piiDomain.CategoryPhoneNumber, Name: "phone_compact", Priority: 70, Confidence: 0.5,
			Expression: `\b\d{10}\b`},

		// Network
		{Category: piiDomain.CategoryIPAddress, Name: "ipv4", Priority: 60, Confidence: 0.8,
			Expression: `\b(?:(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\.){3}(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\b`},

		// Dates of birth
		{Category: piiDomain.CategoryDateOfBirth, Name: "date_mdy_slash", Priority: 50, Confidence: 0.6,
			Expression: `\b\d{1,2}/\d{1,2}/\d{4}\b`},
		{Category: piiDomain.CategoryDateOfBirth, Name: "date_mdy_dash", Priority: 50, Confidence: 0.6,
			Expression: `\b\d{1,2}-\d{1,2}-\d{4}\b`},
		{Category: piiDomain.CategoryDateOfBirth, Name: "date_iso", Priority: 50, Confidence: 0.6,
			Expression: `\b\d{4}-\d{1,2}-\d{1,2}\b`},

		// Identity documents are only detected next to a label.
		{Category: piiDomain.CategoryPassport, Name: "passport_labeled", Priority: 50, Confidence: 0.8,
			Expression: `\bpassport(?:\s+(?:no|number|num))?\.?\s*[:#]?\s*(?P<value>[A-Z]{0,2}\d{6,9})\b`},
		{Category: piiDomain.CategoryDriverLicense, Name: "driver_license_labeled", Priority: 45, Confidence: 0.75,
			Expression: `\b(?:driver'?s?\s+licen[cs]e|DL)(?:\s+(?:no|number|num))?\.?\s*[:#]?\s*(?P<value>[A-Z]{0,2}\d{5,13})\b`},

		// Banking
		{Category: piiDomain.CategoryBankRouting, Name: "bank_routing", Priority: 40, Confidence: 0.5,
			Expression: `\b\d{9}\b`},
		{Category: piiDomain.CategoryAccountNumber, Name: "account_number", Priority: 30, Confidence: 0.4,
			Expression: `\b\d{8,17}\b`},
	}
}
