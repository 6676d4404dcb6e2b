package scraper

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/pricescout/competitor"
	"github.com/ysmood/gson"
)

// Candidate is one extracted, unverified product entry from a results page.
// It lives only for the duration of a single resolution.
type Candidate struct {
	Name      string
	PriceText string
	URL       string
}

// Outcome is the result of extracting a results page.
type Outcome struct {
	// NoResults is true when the page body contains one of the
	// competitor's no-results phrases. Candidates is empty in that case.
	NoResults bool

	// MatchedPhrase is the no-results phrase that fired.
	MatchedPhrase string

	Candidates []Candidate
}

// ParseResults extracts candidate listings from a rendered results page.
//
// The body text is checked against the competitor's no-results phrases
// first: a genuine "nothing found" page short-circuits even when stray
// elements happen to match the item selector. Otherwise the item-selector
// cascade picks the first alternative with matches, and up to maxCandidates
// elements are read, name and price each through their own cascade. When
// the selectors yield nothing, embedded JSON-LD product data is the
// fallback. Relative listing links resolve against baseURL.
func ParseResults(cfg *competitor.Config, rawHTML, baseURL string, maxCandidates int) (*Outcome, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	bodyText := strings.ToLower(doc.Find("body").Text())
	for _, phrase := range cfg.NoResultPhrases {
		if strings.Contains(bodyText, phrase) {
			return &Outcome{NoResults: true, MatchedPhrase: phrase}, nil
		}
	}

	base, _ := url.Parse(baseURL)

	var items *goquery.Selection
	for _, alt := range cfg.Selectors.Item {
		if m := doc.Find(alt); m.Length() > 0 {
			items = m
			break
		}
	}

	var candidates []Candidate
	if items != nil {
		items.EachWithBreak(func(i int, s *goquery.Selection) bool {
			if i >= maxCandidates {
				return false
			}
			name := cascadeText(s, cfg.Selectors.Name)
			if name == "" {
				return true
			}
			candidates = append(candidates, Candidate{
				Name:      name,
				PriceText: cascadeText(s, cfg.Selectors.Price),
				URL:       cascadeLink(s, cfg.Selectors.Link, base),
			})
			return true
		})
	}

	if len(candidates) == 0 {
		candidates = extractJSONLD(doc, base, maxCandidates)
	}

	return &Outcome{Candidates: candidates}, nil
}

// cascadeText returns the trimmed text of the first alternative selector
// that matches anything inside s. The cascade stops at the first existing
// element even when its text is empty.
func cascadeText(s *goquery.Selection, alts []string) string {
	for _, alt := range alts {
		if m := s.Find(alt); m.Length() > 0 {
			return strings.TrimSpace(m.First().Text())
		}
	}
	return ""
}

// cascadeLink returns the href of the first matching hyperlink, resolved
// against the page URL so relative listing links come back absolute.
func cascadeLink(s *goquery.Selection, alts []string, base *url.URL) string {
	for _, alt := range alts {
		href, ok := s.Find(alt).First().Attr("href")
		if !ok || href == "" {
			continue
		}
		return resolveURL(base, href)
	}
	return ""
}

func resolveURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	resolved, err := base.Parse(href)
	if err != nil {
		return href
	}
	return resolved.String()
}

// extractJSONLD harvests product entries from application/ld+json metadata
// blocks. Both ItemList documents and single-Product documents are
// accepted; price values may arrive as JSON numbers or strings, and offers
// may be a single object or an array.
func extractJSONLD(doc *goquery.Document, base *url.URL, maxCandidates int) []Candidate {
	var candidates []Candidate

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return true // malformed block, keep scanning
		}
		g := gson.New(v)

		var entries []gson.JSON
		if list := g.Get("itemListElement"); isArray(list) {
			entries = list.Arr()
		} else if gsonStr(g.Get("@type")) == "Product" {
			entries = []gson.JSON{g}
		}

		for _, e := range entries {
			if len(candidates) >= maxCandidates {
				return false
			}
			item := e
			if inner := e.Get("item"); inner.Val() != nil {
				item = inner
			}
			name := gsonStr(item.Get("name"))
			if name == "" {
				continue
			}
			priceText := gsonStr(item.Get("offers.price"))
			if priceText == "" {
				priceText = gsonStr(item.Get("offers.0.price"))
			}
			itemURL := gsonStr(item.Get("url"))
			if itemURL != "" {
				itemURL = resolveURL(base, itemURL)
			}
			candidates = append(candidates, Candidate{
				Name:      name,
				PriceText: priceText,
				URL:       itemURL,
			})
		}
		return true
	})

	return candidates
}

func isArray(j gson.JSON) bool {
	_, ok := j.Val().([]any)
	return ok
}

// gsonStr renders a JSON leaf as a string, mapping absent values to "".
// JSON-LD prices in the wild are sometimes numbers and sometimes strings.
func gsonStr(j gson.JSON) string {
	v := j.Val()
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
