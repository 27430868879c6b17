// Package tokenstore implements the reversible side of PII masking: an encrypted,
// expiring token store with a keyed reverse index for idempotent tokenization.
//
// Values are sealed with an AEAD cipher bound to the token, the reverse index is
// keyed by HMAC-SHA256 digests so raw values never appear as map keys, and expired
// records are purged opportunistically or by a Janitor on a caller-chosen cadence.
package tokenstore
