// Package domain defines the core PII model shared by the catalog, detection and masking engines.
// Categories and contexts are closed string enums; matches and strategies are plain values.
package domain

import (
	"strings"
)

// Category identifies a kind of personally identifiable information.
type Category string

const (
	CategoryEmail         Category = "email"
	CategoryPhoneNumber   Category = "phone_number"
	CategorySSN           Category = "ssn"
	CategoryCreditCard    Category = "credit_card"
	CategoryAccountNumber Category = "account_number"
	CategoryDateOfBirth   Category = "date_of_birth"
	CategoryBankRouting   Category = "bank_routing"
	CategoryIPAddress     Category = "ip_address"
	CategoryPassport      Category = "passport"
	CategoryDriverLicense Category = "driver_license"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// Label returns the upper-case form used in tokens and placeholders (e.g. PHONE_NUMBER).
func (c Category) Label() string {
	return strings.ToUpper(string(c))
}

// Context is a caller-supplied hint that reweights which categories win overlap resolution.
type Context string

const (
	ContextFinancial  Context = "financial"
	ContextHealthcare Context = "healthcare"
	ContextLegal      Context = "legal"
	ContextGovernment Context = "government"
	ContextGeneral    Context = "general"
)

// AllContexts lists every supported context in declaration order.
func AllContexts() []Context {
	return []Context{ContextFinancial, ContextHealthcare, ContextLegal, ContextGovernment, ContextGeneral}
}

// Validate checks if the context is one of the supported values.
func (c Context) Validate() error {
	switch c {
	case ContextFinancial, ContextHealthcare, ContextLegal, ContextGovernment, ContextGeneral:
		return nil
	default:
		return ErrInvalidContext
	}
}

// String returns the string representation of the context.
func (c Context) String() string {
	return string(c)
}

// ParseContext converts a case-insensitive name into a Context.
func ParseContext(s string) (Context, error) {
	c := Context(strings.ToLower(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// OrGeneral returns c when valid and ContextGeneral otherwise. Detection is a total
// function, so an unknown context never fails a scan.
func (c Context) OrGeneral() Context {
	if c.Validate() != nil {
		return ContextGeneral
	}
	return c
}
