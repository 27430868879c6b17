package domain

import (
	"github.com/allisson/piiguard/internal/errors"
)

// Scrub coordinator error definitions.
var (
	// ErrUnauthorized indicates the authorization check refused a detokenization.
	ErrUnauthorized = errors.Wrap(errors.ErrUnauthorized, "detokenization not authorized")

	// ErrRateLimited indicates the detokenize throttle rejected the call.
	ErrRateLimited = errors.Wrap(errors.ErrRateLimited, "detokenization rate limit exceeded")

	// ErrInvalidRequest indicates a request carrying both text and a record.
	ErrInvalidRequest = errors.Wrap(errors.ErrInvalidInput, "request must carry either text or a record")
)
