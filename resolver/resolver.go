// Package resolver composes the registry, browser pipeline, matcher and
// price parser into the single Resolve operation.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/use-agent/pricescout/competitor"
	"github.com/use-agent/pricescout/match"
	"github.com/use-agent/pricescout/models"
	"github.com/use-agent/pricescout/price"
	"github.com/use-agent/pricescout/scraper"
)

// PageFetcher renders a competitor search page and returns its HTML.
// *scraper.Scraper is the production implementation.
type PageFetcher interface {
	FetchResults(ctx context.Context, cfg *competitor.Config, searchURL string) (string, error)
}

// Config tunes matching and query building.
type Config struct {
	// Threshold is the minimum accepted similarity score.
	Threshold float64

	// QueryTokens bounds how many leading product-name tokens form the
	// search query.
	QueryTokens int

	// MaxCandidates caps extraction per results page.
	MaxCandidates int
}

// Resolver resolves a product name to a listing and price on one competitor
// site. Safe for concurrent use; concurrent resolutions share only the
// browser process, never page or candidate state.
type Resolver struct {
	registry *competitor.Registry
	fetcher  PageFetcher
	pacer    *Pacer
	cfg      Config
}

// New creates a Resolver. Zero config fields fall back to defaults.
func New(registry *competitor.Registry, fetcher PageFetcher, pacer *Pacer, cfg Config) *Resolver {
	if cfg.Threshold <= 0 {
		cfg.Threshold = match.DefaultThreshold
	}
	if cfg.QueryTokens <= 0 {
		cfg.QueryTokens = 4
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 10
	}
	return &Resolver{registry: registry, fetcher: fetcher, pacer: pacer, cfg: cfg}
}

// Resolve looks the product up on the given competitor site. It never
// fails: every internal error is folded into a Resolution with a reason
// code and diagnostic. An unsupported competitor returns immediately, with
// no browser work and no pacing delay; every path that reaches the site
// pays the pacing delay before returning, success or not.
func (r *Resolver) Resolve(ctx context.Context, product models.Product, competitorKey string) *models.Resolution {
	name := strings.TrimSpace(product.Name)
	if name == "" {
		return models.NotFound(models.ReasonInvalidInput, "product name is required")
	}

	cfg, ok := r.registry.Lookup(competitorKey)
	if !ok {
		return models.NotFound(models.ReasonUnsupportedCompetitor,
			fmt.Sprintf("competitor %q is not configured", competitorKey))
	}

	defer r.pacer.Wait()

	query := searchTerm(name, r.cfg.QueryTokens)
	searchURL := cfg.SearchURL(query)
	slog.Info("resolving product", "competitor", cfg.Key, "query", query)

	rawHTML, err := r.fetcher.FetchResults(ctx, cfg, searchURL)
	if err != nil {
		slog.Warn("fetch failed", "competitor", cfg.Key, "url", searchURL, "error", err)
		return models.NotFound(models.ReasonNavigationFailed, err.Error())
	}

	outcome, err := scraper.ParseResults(cfg, rawHTML, searchURL, r.cfg.MaxCandidates)
	if err != nil {
		return models.NotFound(models.ReasonNoCandidates,
			"results page could not be parsed: "+err.Error())
	}
	if outcome.NoResults {
		return models.NotFound(models.ReasonNoResultsPage,
			fmt.Sprintf("page reported no results (%q)", outcome.MatchedPhrase))
	}
	if len(outcome.Candidates) == 0 {
		return models.NotFound(models.ReasonNoCandidates,
			"no products extracted from results page")
	}

	names := make([]string, len(outcome.Candidates))
	for i, c := range outcome.Candidates {
		names[i] = c.Name
	}
	// Ranking uses the full product name, not the truncated search query.
	idx, score := match.SelectBest(name, names)
	if idx < 0 || score < r.cfg.Threshold {
		return models.NotFound(models.ReasonBelowThreshold,
			fmt.Sprintf("best candidate scored %.2f, below threshold %.2f", score, r.cfg.Threshold))
	}

	best := outcome.Candidates[idx]
	value, ok := price.Parse(best.PriceText)
	if !ok {
		return models.NotFound(models.ReasonPriceUnparsable,
			fmt.Sprintf("price text %q could not be parsed", best.PriceText))
	}

	resultURL := best.URL
	if resultURL == "" {
		resultURL = searchURL
	}

	slog.Info("product resolved",
		"competitor", cfg.Key,
		"matched", best.Name,
		"price", value,
		"score", score,
	)
	return &models.Resolution{
		Found:       true,
		MatchedName: best.Name,
		Price:       value,
		URL:         resultURL,
		MatchScore:  score,
	}
}

// Competitors returns the supported competitor keys, sorted.
func (r *Resolver) Competitors() []string {
	return r.registry.Keys()
}

// searchTerm keeps the first limit whitespace tokens of the product name.
// Over-specific names produce zero search hits; a short prefix does not.
func searchTerm(name string, limit int) string {
	fields := strings.Fields(name)
	if len(fields) > limit {
		fields = fields[:limit]
	}
	return strings.Join(fields, " ")
}
