package models

// Reason codes for a resolution that did not produce a match.
const (
	ReasonInvalidInput          = "invalid_input"
	ReasonUnsupportedCompetitor = "unsupported_competitor"
	ReasonNoResultsPage         = "no_results_page"
	ReasonNoCandidates          = "no_candidates_extracted"
	ReasonBelowThreshold        = "below_match_threshold"
	ReasonPriceUnparsable       = "price_unparsable"
	ReasonNavigationFailed      = "navigation_failed"
)

// Resolution is the outcome of resolving one product against one competitor.
// When Found is false, Reason carries a machine-readable code and Detail a
// human-readable diagnostic; the match fields are zero.
type Resolution struct {
	Found bool `json:"found"`

	// Reason is set only when Found is false.
	Reason string `json:"reason,omitempty"`

	// Detail is a human-readable diagnostic accompanying Reason.
	Detail string `json:"detail,omitempty"`

	// MatchedName is the listing name of the best-matching candidate.
	MatchedName string `json:"matched_name,omitempty"`

	// Price is the parsed competitor price. Finite and non-negative; zero
	// is a valid price, so the field always serializes when Found is true.
	Price float64 `json:"price"`

	// URL points at the matched listing, or the search page when the
	// candidate carried no link of its own.
	URL string `json:"url,omitempty"`

	// MatchScore is the directional token-overlap score in [0, 1].
	MatchScore float64 `json:"match_score,omitempty"`

	// CacheStatus indicates whether the resolution was served from cache.
	// Values: "hit", "miss", or empty (caching disabled).
	CacheStatus string `json:"cache_status,omitempty"`
}

// NotFound builds a negative Resolution with the given reason and diagnostic.
func NotFound(reason, detail string) *Resolution {
	return &Resolution{Found: false, Reason: reason, Detail: detail}
}
