package domain

// Match is a single detected PII span. Start and End are half-open byte offsets
// into the scanned text and Start is always strictly less than End.
type Match struct {
	Category   Category
	Pattern    string
	Start      int
	End        int
	Text       string
	Priority   int
	Confidence float64
}

// Len returns the span length in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Overlaps reports whether the two spans share at least one offset.
func (m Match) Overlaps(other Match) bool {
	return m.Start < other.End && other.Start < m.End
}

// ResolvedMatchSet is the output of detection: non-overlapping matches sorted by Start.
type ResolvedMatchSet struct {
	Matches []Match

	// Truncated is set when the input exceeded the configured maximum length and
	// only the first ScannedLength bytes were scanned.
	Truncated     bool
	ScannedLength int
}

// Len returns the number of matches.
func (s ResolvedMatchSet) Len() int {
	return len(s.Matches)
}

// CountByCategory returns the number of matches per category.
func (s ResolvedMatchSet) CountByCategory() map[Category]int {
	counts := make(map[Category]int, len(s.Matches))
	for _, m := range s.Matches {
		counts[m.Category]++
	}
	return counts
}

// Valid reports whether the set honors its ordering and non-overlap invariants.
func (s ResolvedMatchSet) Valid() bool {
	for i, m := range s.Matches {
		if m.Start >= m.End {
			return false
		}
		if i > 0 && s.Matches[i-1].End > m.Start {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the set so cached results cannot be mutated by callers.
func (s ResolvedMatchSet) Clone() ResolvedMatchSet {
	out := s
	if s.Matches != nil {
		out.Matches = make([]Match, len(s.Matches))
		copy(out.Matches, s.Matches)
	}
	return out
}
