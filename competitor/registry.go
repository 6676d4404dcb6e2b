// Package competitor holds the static per-site scraping configuration.
// Adding a retailer means adding one entry to builtin(); the extraction
// pipeline itself is site-agnostic.
package competitor

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/andybalholm/cascadia"
)

// Selectors groups the ordered alternative CSS selectors used to pull a
// candidate out of a results page. Alternatives are tried in declared order;
// the first one that matches wins.
type Selectors struct {
	// Item locates the per-result container element.
	Item []string

	// Name locates the product name within an item.
	Name []string

	// Price locates the price text within an item.
	Price []string

	// Link locates the listing hyperlink within an item.
	Link []string
}

// Config is the immutable configuration for one supported retailer.
type Config struct {
	// Key is the unique registry identifier.
	Key string

	// DisplayName is the retailer's human-readable name.
	DisplayName string

	// SearchURL builds the search-results URL for a query string.
	SearchURL func(query string) string

	// Selectors is the extraction cascade for results pages.
	Selectors Selectors

	// NoResultPhrases are lowercase substrings that, when present in the
	// page body text, mean the search genuinely returned nothing.
	NoResultPhrases []string
}

// Registry is the immutable set of supported competitors. Loaded once at
// process start; lookups are pure map reads and safe for concurrent use.
type Registry struct {
	configs map[string]*Config
	keys    []string
}

// NewRegistry builds the embedded competitor set. Every selector is
// validated with cascadia; an invalid embedded selector is a programming
// error and panics.
func NewRegistry() *Registry {
	configs := builtin()

	keys := make([]string, 0, len(configs))
	for key, cfg := range configs {
		validateSelectors(key, cfg.Selectors)
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &Registry{configs: configs, keys: keys}
}

// Lookup returns the configuration for a competitor key, if supported.
func (r *Registry) Lookup(key string) (*Config, bool) {
	cfg, ok := r.configs[key]
	return cfg, ok
}

// Keys returns the sorted list of supported competitor keys.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func validateSelectors(key string, s Selectors) {
	for _, group := range [][]string{s.Item, s.Name, s.Price, s.Link} {
		for _, sel := range group {
			if _, err := cascadia.Parse(sel); err != nil {
				panic(fmt.Sprintf("competitor %q: invalid selector %q: %v", key, sel, err))
			}
		}
	}
}

func builtin() map[string]*Config {
	return map[string]*Config{
		"guadalajara": {
			Key:         "guadalajara",
			DisplayName: "Farmacias Guadalajara",
			SearchURL: func(q string) string {
				return "https://www.farmaciasguadalajara.com/search?text=" + url.QueryEscape(q)
			},
			Selectors: Selectors{
				Item:  []string{".product-item", "[data-product-code]", ".product__item"},
				Name:  []string{".product__name", ".name", "h2", "h3", `[class*="product-name"]`},
				Price: []string{".product-price", ".price", `[class*="price"]`, ".price__value"},
				Link:  []string{"a[href]"},
			},
			NoResultPhrases: []string{"no se encontraron", "0 resultado", "sin resultado"},
		},
		"benavides": {
			Key:         "benavides",
			DisplayName: "Farmacias Benavides",
			SearchURL: func(q string) string {
				return "https://www.benavides.com.mx/search?q=" + url.QueryEscape(q)
			},
			Selectors: Selectors{
				Item:  []string{".product-item", ".product-card", `[class*="product"]`},
				Name:  []string{".product-title", ".product-name", "h2", "h3", ".name"},
				Price: []string{".price", ".product-price", `[class*="price"]`, ".precio"},
				Link:  []string{"a[href]"},
			},
			NoResultPhrases: []string{"no se encontraron", "sin resultados", "0 product"},
		},
		"similares": {
			Key:         "similares",
			DisplayName: "Farmacias Similares",
			SearchURL: func(q string) string {
				return "https://www.farmaciassimilares.com.mx/busqueda?q=" + url.QueryEscape(q)
			},
			Selectors: Selectors{
				Item:  []string{".product", ".card", `[class*="product"]`},
				Name:  []string{".product-name", ".name", "h2", "h3", ".title"},
				Price: []string{".price", ".precio", `[class*="price"]`},
				Link:  []string{"a[href]"},
			},
			NoResultPhrases: []string{"no encontramos", "sin resultados", "no results"},
		},
	}
}
