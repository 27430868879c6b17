// Package masking rewrites detected PII spans under a masking strategy.
package masking

import (
	"context"
	"slices"
	"time"

	"github.com/allisson/piiguard/internal/errors"
	"github.com/allisson/piiguard/internal/pii/catalog"
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	tokenstoreDomain "github.com/allisson/piiguard/internal/tokenstore/domain"
	tokenstoreService "github.com/allisson/piiguard/internal/tokenstore/service"
	tokenstoreUsecase "github.com/allisson/piiguard/internal/tokenstore/usecase"
)

// DefaultMaxTokenAttempts bounds how many candidates are drawn before giving up
// on a token that no catalog pattern matches.
const DefaultMaxTokenAttempts = 8

// TokenIssuer is the part of the token store the masking engine depends on.
// Reuse is keyed by value alone: a reused token keeps the prefix and category it
// was minted with.
type TokenIssuer interface {
	StoreOrReuse(
		ctx context.Context,
		value string,
		category piiDomain.Category,
		ttl time.Duration,
		generate tokenstoreUsecase.GenerateFunc,
	) (*tokenstoreDomain.StoreResult, error)

	// Erase withdraws a token minted by a call that later failed.
	Erase(ctx context.Context, token string) error
}

// Config holds masking engine settings.
type Config struct {
	HashKey          []byte
	TokenBodyLength  int
	MaxTokenAttempts int
}

// MaskedMatch describes one rewritten span. Start and End refer to the input text.
type MaskedMatch struct {
	Category piiDomain.Category
	Pattern  string
	Strategy piiDomain.StrategyKind
	Start    int
	End      int
	Token    string
	Reused   bool

	// Original is only populated with DetailFull.
	Original string
}

// Result is the outcome of Apply.
type Result struct {
	MaskedText string
	Matches    []MaskedMatch

	// Tokens lists distinct tokens in text order; empty unless the strategy is Tokenize.
	Tokens    []string
	Truncated bool
}

// Engine applies masking strategies. It holds no per-request state and is safe
// for concurrent use.
type Engine struct {
	catalog   *catalog.Catalog
	store     TokenIssuer
	generator tokenstoreService.TokenGenerator
	config    Config
}

// NewEngine creates a masking engine. store may be nil when Tokenize is never used
// and generator defaults to the upper alphanumeric generator.
func NewEngine(
	cat *catalog.Catalog,
	store TokenIssuer,
	generator tokenstoreService.TokenGenerator,
	config Config,
) *Engine {
	if generator == nil {
		generator = tokenstoreService.NewUpperAlphanumericGenerator()
	}
	if config.TokenBodyLength <= 0 {
		config.TokenBodyLength = DefaultTokenBodyLength
	}
	if config.MaxTokenAttempts <= 0 {
		config.MaxTokenAttempts = DefaultMaxTokenAttempts
	}
	config.HashKey = slices.Clone(config.HashKey)

	return &Engine{
		catalog:   cat,
		store:     store,
		generator: generator,
		config:    config,
	}
}

// Apply rewrites every span of set in text. When set is truncated only the scanned
// prefix is returned. Any tokenization failure aborts the call so that unmasked
// text is never produced, and the tokens the call minted are erased again.
func (e *Engine) Apply(
	ctx context.Context,
	text string,
	set piiDomain.ResolvedMatchSet,
	strategy piiDomain.Strategy,
	detail piiDomain.DetailLevel,
) (*Result, error) {
	if strategy == nil {
		return nil, piiDomain.ErrInvalidStrategy
	}

	scanned := text
	if set.Truncated && set.ScannedLength <= len(text) {
		scanned = text[:set.ScannedLength]
	}
	if err := checkSet(scanned, set); err != nil {
		return nil, err
	}

	result := &Result{
		Matches:   make([]MaskedMatch, 0, len(set.Matches)),
		Truncated: set.Truncated,
	}
	replacements := make([]string, len(set.Matches))
	seen := make(map[string]struct{})
	var minted []string

	for i, m := range set.Matches {
		masked := MaskedMatch{
			Category: m.Category,
			Pattern:  m.Pattern,
			Strategy: strategy.Kind(),
			Start:    m.Start,
			End:      m.End,
		}
		if detail == piiDomain.DetailFull {
			masked.Original = m.Text
		}

		replacement, stored, err := e.replace(ctx, m, strategy)
		if err != nil {
			return nil, e.rollback(ctx, minted, err)
		}
		if stored != nil {
			masked.Token = stored.Token
			masked.Reused = stored.Reused
			if !stored.Reused {
				minted = append(minted, stored.Token)
			}
			if _, ok := seen[stored.Token]; !ok {
				seen[stored.Token] = struct{}{}
				result.Tokens = append(result.Tokens, stored.Token)
			}
		}

		replacements[i] = replacement
		result.Matches = append(result.Matches, masked)
	}

	result.MaskedText = splice(scanned, set.Matches, replacements)
	return result, nil
}

func (e *Engine) replace(
	ctx context.Context,
	m piiDomain.Match,
	strategy piiDomain.Strategy,
) (string, *tokenstoreDomain.StoreResult, error) {
	switch s := strategy.(type) {
	case piiDomain.FullMask:
		return fullMask(m.Text, s.FixedLength, maskCharOrDefault(s.MaskChar)), nil, nil

	case piiDomain.PartialMask:
		template, ok := s.Templates[m.Category]
		if !ok {
			template = e.catalog.Template(m.Category)
		}
		return partialMask(m.Text, template, maskCharOrDefault(s.MaskChar)), nil, nil

	case piiDomain.Tokenize:
		stored, err := e.tokenize(ctx, m, s)
		if err != nil {
			return "", nil, err
		}
		return stored.Token, stored, nil

	case piiDomain.HashReplace:
		if s.UsePlaceholder {
			return placeholder(m.Category), nil, nil
		}
		sum, err := digest(m.Text, s.Algorithm, s.Width, e.config.HashKey)
		if err != nil {
			return "", nil, err
		}
		prefix := s.Prefix
		if prefix == "" {
			prefix = piiDomain.DefaultHashPrefix
		}
		return prefix + sum, nil, nil

	case piiDomain.Remove:
		return "", nil, nil

	default:
		return "", nil, piiDomain.ErrUnsupportedStrategy
	}
}

func (e *Engine) tokenize(
	ctx context.Context,
	m piiDomain.Match,
	s piiDomain.Tokenize,
) (*tokenstoreDomain.StoreResult, error) {
	if e.store == nil {
		return nil, piiDomain.ErrTokenStoreUnavailable
	}

	prefix := s.Prefix
	if prefix == "" {
		prefix = piiDomain.DefaultTokenPrefix
	}

	stored, err := e.store.StoreOrReuse(ctx, m.Text, m.Category, s.TTL, e.tokenGenerator(prefix, m.Category))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to tokenize %s", m.Category)
	}
	return stored, nil
}

// rollback erases minted tokens so a failed call leaves none of them live. It
// runs even when ctx is cancelled.
func (e *Engine) rollback(ctx context.Context, minted []string, cause error) error {
	ctx = context.WithoutCancel(ctx)
	errs := []error{cause}
	for _, token := range minted {
		if err := e.store.Erase(ctx, token); err != nil && !errors.Is(err, tokenstoreDomain.ErrTokenNotFound) {
			errs = append(errs, errors.Wrap(err, "failed to roll back token"))
		}
	}
	return errors.Join(errs...)
}

func checkSet(text string, set piiDomain.ResolvedMatchSet) error {
	if !set.Valid() {
		return piiDomain.ErrInvalidMatchSet
	}
	for _, m := range set.Matches {
		if m.Start < 0 || m.End > len(text) || text[m.Start:m.End] != m.Text {
			return piiDomain.ErrInvalidMatchSet
		}
	}
	return nil
}

// splice substitutes replacements from the last span to the first so that
// earlier offsets stay valid while later spans change length.
func splice(text string, matches []piiDomain.Match, replacements []string) string {
	out := []byte(text)
	for i := len(matches) - 1; i >= 0; i-- {
		out = slices.Replace(out, matches[i].Start, matches[i].End, []byte(replacements[i])...)
	}
	return string(out)
}

func maskCharOrDefault(r rune) rune {
	if r == 0 {
		return piiDomain.DefaultMaskChar
	}
	return r
}
