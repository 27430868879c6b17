// Package detection scans text for PII using a pattern catalog and resolves
// overlapping candidates into a deterministic, non-overlapping match set.
package detection

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/allisson/piiguard/internal/pii/catalog"
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
)

// DefaultMaxInputLength is the default scan ceiling in bytes.
const DefaultMaxInputLength = 1 << 20

// Config holds detection limits.
type Config struct {
	// MaxInputLength caps the number of bytes scanned. Zero uses DefaultMaxInputLength.
	MaxInputLength int
}

// Engine runs catalog patterns over text. It holds no mutable state besides the
// optional cache and is safe for concurrent use.
type Engine struct {
	catalog  *catalog.Catalog
	maxInput int
	cache    *Cache
}

// NewEngine creates a detection engine. cache may be nil.
func NewEngine(cat *catalog.Catalog, cfg Config, cache *Cache) *Engine {
	maxInput := cfg.MaxInputLength
	if maxInput <= 0 {
		maxInput = DefaultMaxInputLength
	}
	return &Engine{catalog: cat, maxInput: maxInput, cache: cache}
}

// Catalog returns the catalog the engine scans with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

type candidate struct {
	match    piiDomain.Match
	priority int
	order    int
}

// Detect returns the resolved matches for text under ctx. It never fails: invalid
// UTF-8 and binary input are scanned as bytes, and input beyond the configured
// maximum is cut on a rune boundary with Truncated set.
func (e *Engine) Detect(text string, ctx piiDomain.Context) piiDomain.ResolvedMatchSet {
	ctx = ctx.OrGeneral()

	scanned, truncated := truncate(text, e.maxInput)

	if e.cache != nil {
		if set, ok := e.cache.get(scanned, ctx); ok {
			set.Truncated = truncated
			return set
		}
	}

	var candidates []candidate
	for _, p := range e.catalog.PatternsFor(ctx) {
		for _, span := range p.FindAll(scanned) {
			candidates = append(candidates, candidate{
				match: piiDomain.Match{
					Category:   p.Category(),
					Pattern:    p.Name(),
					Start:      span[0],
					End:        span[1],
					Text:       scanned[span[0]:span[1]],
					Priority:   p.EffectivePriority,
					Confidence: p.Confidence(),
				},
				priority: p.EffectivePriority,
				order:    p.Order(),
			})
		}
	}

	set := piiDomain.ResolvedMatchSet{
		Matches:       resolve(candidates),
		Truncated:     truncated,
		ScannedLength: len(scanned),
	}

	if e.cache != nil {
		e.cache.add(scanned, ctx, set)
	}
	return set
}

// resolve keeps the winning candidates greedily: higher priority first, then the
// longer span, then the earlier start, then category name and catalog order. A
// candidate is accepted when it overlaps nothing already accepted.
func resolve(candidates []candidate) []piiDomain.Match {
	if len(candidates) == 0 {
		return nil
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(b.priority, a.priority),
			cmp.Compare(b.match.Len(), a.match.Len()),
			cmp.Compare(a.match.Start, b.match.Start),
			cmp.Compare(a.match.Category, b.match.Category),
			cmp.Compare(a.order, b.order),
		)
	})

	accepted := make([]piiDomain.Match, 0, len(candidates))
	for _, c := range candidates {
		if overlapsAny(accepted, c.match) {
			continue
		}
		accepted = insertSorted(accepted, c.match)
	}
	return accepted
}

// overlapsAny checks m against the accepted matches, which are kept sorted by start.
func overlapsAny(accepted []piiDomain.Match, m piiDomain.Match) bool {
	i, _ := slices.BinarySearchFunc(accepted, m.Start, func(a piiDomain.Match, start int) int {
		return cmp.Compare(a.Start, start)
	})
	if i > 0 && accepted[i-1].Overlaps(m) {
		return true
	}
	return i < len(accepted) && accepted[i].Overlaps(m)
}

func insertSorted(accepted []piiDomain.Match, m piiDomain.Match) []piiDomain.Match {
	i, _ := slices.BinarySearchFunc(accepted, m.Start, func(a piiDomain.Match, start int) int {
		return cmp.Compare(a.Start, start)
	})
	return slices.Insert(accepted, i, m)
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 sequence.
func truncate(s string, limit int) (string, bool) {
	if len(s) <= limit {
		return s, false
	}
	cut := limit
	for cut > 0 && cut > limit-utf8.UTFMax && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut], true
}
