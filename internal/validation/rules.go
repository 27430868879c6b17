// Package validation provides custom validation rules shared by the engine packages.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/piiguard/internal/errors"
)

// WrapValidationError wraps validation errors as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// RegexpSyntax validates that a string compiles as an RE2 expression.
var RegexpSyntax = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := regexp.Compile(s)
		return err == nil
	},
	validation.NewError("validation_regexp_syntax", "must be a valid regular expression"),
)

// TokenPrefix validates a token prefix: upper-case letters, digits and underscores.
var TokenPrefix = validation.NewStringRuleWithError(
	func(s string) bool {
		for _, r := range s {
			if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_token_prefix", "must contain only A-Z, 0-9 and underscores"),
)

// In returns a rule that accepts only the given string values.
func In[T ~string](values ...T) validation.Rule {
	allowed := make([]any, 0, len(values))
	for _, v := range values {
		allowed = append(allowed, v)
	}
	return validation.In(allowed...)
}
