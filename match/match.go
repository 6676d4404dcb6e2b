// Package match canonicalizes product names and scores candidate listings
// against a query by directional token overlap.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the minimum similarity score for an accepted match.
const DefaultThreshold = 0.35

// minTokenLen tokens this short or shorter carry no signal ("de", "mg", "c")
// and are dropped before scoring.
const minTokenLen = 2

// Normalize canonicalizes a product name: lowercase, diacritics stripped,
// every non-alphanumeric rune replaced by a space, whitespace collapsed.
// Idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)

	// NFD decomposition followed by combining-mark removal turns
	// "efervescente cápsula" into "efervescente capsula".
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Similarity scores how well a candidate name covers the query name.
// Both are normalized and tokenized; tokens must be strictly longer than
// minTokenLen. The score is |query ∩ candidate| / |query|: directional,
// so a candidate carrying extra tokens is not penalized. An empty query
// token set scores 0.
func Similarity(query, candidate string) float64 {
	qt := tokenSet(query)
	if len(qt) == 0 {
		return 0
	}
	ct := tokenSet(candidate)

	hits := 0
	for tok := range qt {
		if _, ok := ct[tok]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(qt))
}

// SelectBest returns the index and score of the candidate name most similar
// to the query. Ties keep the earlier candidate (extraction order). Returns
// index -1 for an empty candidate list.
func SelectBest(query string, names []string) (int, float64) {
	best := -1
	bestScore := 0.0
	for i, name := range names {
		if score := Similarity(query, name); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best, bestScore
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(Normalize(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) > minTokenLen {
			set[f] = struct{}{}
		}
	}
	return set
}
