package domain

import (
	"strings"
	"time"
)

// StrategyKind names a masking strategy variant.
type StrategyKind string

const (
	StrategyFullMask    StrategyKind = "full_mask"
	StrategyPartialMask StrategyKind = "partial_mask"
	StrategyTokenize    StrategyKind = "tokenize"
	StrategyHash        StrategyKind = "hash"
	StrategyRemove      StrategyKind = "remove"
)

// String returns the string representation of the strategy kind.
func (k StrategyKind) String() string {
	return string(k)
}

// Strategy is the closed set of masking strategies. The unexported marker keeps
// the set sealed to this package; the masking engine switches over the concrete types.
type Strategy interface {
	Kind() StrategyKind
	isStrategy()
}

// FullMask replaces a span with a run of MaskChar. FixedLength of zero masks
// proportionally, one mask rune per input rune.
type FullMask struct {
	MaskChar    rune
	FixedLength int
}

// PartialMask keeps a template-controlled portion of each span visible. Templates
// override the catalog template per category.
type PartialMask struct {
	MaskChar  rune
	Templates map[Category]MaskTemplate
}

// Tokenize replaces a span with a reversible opaque token backed by the token store.
type Tokenize struct {
	Prefix string
	TTL    time.Duration
}

// HashReplace replaces a span with a truncated hex digest of the value, or with a
// category placeholder such as [EMAIL] when UsePlaceholder is set.
type HashReplace struct {
	Algorithm      HashAlgorithm
	Width          int
	Prefix         string
	UsePlaceholder bool
}

// Remove deletes the span.
type Remove struct{}

func (FullMask) Kind() StrategyKind    { return StrategyFullMask }
func (PartialMask) Kind() StrategyKind { return StrategyPartialMask }
func (Tokenize) Kind() StrategyKind    { return StrategyTokenize }
func (HashReplace) Kind() StrategyKind { return StrategyHash }
func (Remove) Kind() StrategyKind      { return StrategyRemove }

func (FullMask) isStrategy()    {}
func (PartialMask) isStrategy() {}
func (Tokenize) isStrategy()    {}
func (HashReplace) isStrategy() {}
func (Remove) isStrategy()      {}

// HashAlgorithm names the digest used by HashReplace.
type HashAlgorithm string

const (
	HashSHA256     HashAlgorithm = "sha256"
	HashSHA512     HashAlgorithm = "sha512"
	HashBLAKE2b    HashAlgorithm = "blake2b"
	HashHMACSHA256 HashAlgorithm = "hmac-sha256"
)

// Default strategy parameters.
const (
	DefaultMaskChar    = '*'
	DefaultHashPrefix  = "HASH_"
	DefaultHashWidth   = 16
	DefaultTokenPrefix = "TKN"
	DefaultTokenTTL    = 24 * time.Hour
)

// StrategyDefaults carries the parameters ParseStrategy uses to populate a variant.
type StrategyDefaults struct {
	MaskChar       rune
	FullMaskLength int
	HashAlgorithm  HashAlgorithm
	HashWidth      int
	TokenPrefix    string
	TokenTTL       time.Duration
}

// ParseStrategy builds a strategy variant from its name. Zero-valued defaults fall
// back to package defaults.
func ParseStrategy(name string, d StrategyDefaults) (Strategy, error) {
	maskChar := d.MaskChar
	if maskChar == 0 {
		maskChar = DefaultMaskChar
	}

	switch StrategyKind(strings.ToLower(strings.TrimSpace(name))) {
	case StrategyFullMask, "full", "mask":
		return FullMask{MaskChar: maskChar, FixedLength: d.FullMaskLength}, nil
	case StrategyPartialMask, "partial":
		return PartialMask{MaskChar: maskChar}, nil
	case StrategyTokenize, "token":
		prefix := d.TokenPrefix
		if prefix == "" {
			prefix = DefaultTokenPrefix
		}
		ttl := d.TokenTTL
		if ttl <= 0 {
			ttl = DefaultTokenTTL
		}
		return Tokenize{Prefix: prefix, TTL: ttl}, nil
	case StrategyHash, "hash_replace":
		alg := d.HashAlgorithm
		if alg == "" {
			alg = HashSHA256
		}
		width := d.HashWidth
		if width <= 0 {
			width = DefaultHashWidth
		}
		return HashReplace{Algorithm: alg, Width: width, Prefix: DefaultHashPrefix}, nil
	case "placeholder":
		return HashReplace{UsePlaceholder: true}, nil
	case StrategyRemove, "redact":
		return Remove{}, nil
	default:
		return nil, ErrInvalidStrategy
	}
}

// DetailLevel controls whether masking results expose raw values.
type DetailLevel string

const (
	DetailSummary DetailLevel = "summary"
	DetailFull    DetailLevel = "full"
)
