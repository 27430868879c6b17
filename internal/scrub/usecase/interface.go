// Package usecase implements the scrub coordinator.
package usecase

import (
	"context"

	"github.com/allisson/piiguard/internal/pii/catalog"
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	"github.com/allisson/piiguard/internal/pii/masking"
	scrubDomain "github.com/allisson/piiguard/internal/scrub/domain"
)

// Detector finds PII spans in text.
type Detector interface {
	Detect(text string, ctx piiDomain.Context) piiDomain.ResolvedMatchSet
}

// Masker rewrites detected spans.
type Masker interface {
	Apply(
		ctx context.Context,
		text string,
		set piiDomain.ResolvedMatchSet,
		strategy piiDomain.Strategy,
		detail piiDomain.DetailLevel,
	) (*masking.Result, error)
}

// ProfileSource resolves the profile of a detection context.
type ProfileSource interface {
	Profile(ctx piiDomain.Context) catalog.Profile
}

// TokenVault restores token values and withdraws tokens minted by a failed scrub.
type TokenVault interface {
	Retrieve(ctx context.Context, token string) (string, error)
	Erase(ctx context.Context, token string) error
}

// Coordinator is the engine's entry point.
type Coordinator interface {
	// Scrub detects and masks PII in a text or record request.
	Scrub(ctx context.Context, req scrubDomain.Request) (*scrubDomain.Result, error)

	// ScrubBatch scrubs requests with at most concurrency in flight. Results keep
	// request order; the first error cancels the remaining requests.
	ScrubBatch(ctx context.Context, reqs []scrubDomain.Request, concurrency int) ([]*scrubDomain.Result, error)

	// Detokenize restores each token the authorization check approves.
	Detokenize(
		ctx context.Context,
		tokens []string,
		authorize scrubDomain.AuthorizationCheck,
	) ([]scrubDomain.DetokenizeOutcome, error)

	// DetokenizeText restores approved tokens embedded in text. Refused or
	// unresolvable tokens stay in place.
	DetokenizeText(
		ctx context.Context,
		text string,
		authorize scrubDomain.AuthorizationCheck,
	) (*scrubDomain.DetokenizeTextResult, error)
}
