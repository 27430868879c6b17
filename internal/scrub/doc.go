// Package scrub coordinates detection, masking and tokenization for callers.
//
// The coordinator accepts plain text or structured records, picks the masking
// strategy from the request or the context profile, falls back to an alternate
// strategy when the token store is exhausted and gates detokenization behind a
// caller-supplied authorization check. Audit events carry counts and categories
// only, never raw values.
package scrub
