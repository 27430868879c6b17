package domain

import (
	"github.com/allisson/piiguard/internal/errors"
)

// Detection and masking error definitions.
var (
	// ErrInvalidContext indicates an unknown detection context was supplied.
	ErrInvalidContext = errors.Wrap(errors.ErrInvalidInput, "invalid context")

	// ErrInvalidStrategy indicates an unknown masking strategy name was supplied.
	ErrInvalidStrategy = errors.Wrap(errors.ErrInvalidInput, "invalid masking strategy")

	// ErrUnsupportedStrategy indicates the masking engine has no handler for the strategy variant.
	ErrUnsupportedStrategy = errors.Wrap(errors.ErrUnsupported, "unsupported masking strategy")

	// ErrUnsupportedHashAlgorithm indicates an unknown HashReplace digest algorithm.
	ErrUnsupportedHashAlgorithm = errors.Wrap(errors.ErrUnsupported, "unsupported hash algorithm")

	// ErrPatternCompile indicates a pattern definition failed validation or compilation.
	ErrPatternCompile = errors.Wrap(errors.ErrInvalidInput, "pattern compile error")

	// ErrInvalidMatchSet indicates a match set that is unsorted, overlapping or out of bounds.
	ErrInvalidMatchSet = errors.Wrap(errors.ErrInvalidInput, "invalid match set")

	// ErrTokenStoreUnavailable indicates Tokenize was requested without a token store.
	ErrTokenStoreUnavailable = errors.Wrap(errors.ErrUnsupported, "token store unavailable")

	// ErrHashKeyRequired indicates hmac-sha256 was requested without a hash key.
	ErrHashKeyRequired = errors.Wrap(errors.ErrInvalidInput, "hash key required for keyed hashing")
)
