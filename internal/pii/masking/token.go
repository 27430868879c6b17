package masking

import (
	"regexp"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	tokenstoreDomain "github.com/allisson/piiguard/internal/tokenstore/domain"
	tokenstoreUsecase "github.com/allisson/piiguard/internal/tokenstore/usecase"
)

// DefaultTokenBodyLength is the number of random [A-Z0-9] characters in a token.
const DefaultTokenBodyLength = 16

// TokenPattern returns a matcher for tokens minted under prefix:
// <PREFIX>_<CATEGORY>_<16 upper alphanumerics>.
func TokenPattern(prefix string) *regexp.Regexp {
	if prefix == "" {
		prefix = piiDomain.DefaultTokenPrefix
	}
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(prefix) + `_[A-Z]+(?:_[A-Z]+)*_[A-Z0-9]{16}\b`)
}

func composeToken(prefix string, category piiDomain.Category, body string) string {
	return prefix + "_" + category.Label() + "_" + body
}

// tokenGenerator returns a GenerateFunc that rejects candidates any catalog
// pattern would detect, so masked output never re-triggers detection.
func (e *Engine) tokenGenerator(prefix string, category piiDomain.Category) tokenstoreUsecase.GenerateFunc {
	return func() (string, error) {
		for range e.config.MaxTokenAttempts {
			body, err := e.generator.Generate(e.config.TokenBodyLength)
			if err != nil {
				return "", err
			}
			token := composeToken(prefix, category, body)
			if e.catalog.MatchesAny(token) {
				continue
			}
			return token, nil
		}
		return "", tokenstoreDomain.ErrTokenGenerationFailed
	}
}
