package scraper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/pricescout/competitor"
	"github.com/use-agent/pricescout/models"
)

// FetchResults drives a fresh browsing context to the competitor's search
// page and returns the rendered HTML.
//
// Lifecycle:
//
//  1. Acquire session        – lazy shared browser (launch error is final)
//  2. Create context         – incognito, disposed unconditionally on return
//  3. Harden page            – user agent/locale/timezone, stealth JS, hijack
//     (all before navigation: they only apply to navigations after install)
//  4. Navigate               – bounded by NavigationTimeout, no retry
//  5. Wait                   – best-effort DOM stability, then the item
//     selector cascade; a fixed settle delay when no selector appears
//  6. Extract                – rendered page.HTML()
//
// Candidate extraction from the returned HTML is pure Go; see ParseResults.
func (s *Scraper) FetchResults(ctx context.Context, cfg *competitor.Config, searchURL string) (string, error) {
	// ── 1. Shared browser session ───────────────────────────────────
	browser, err := s.session()
	if err != nil {
		return "", err
	}

	// ── 2. Isolated browsing context, one per resolution ────────────
	bctx, err := browser.Incognito()
	if err != nil {
		return "", models.NewResolveError(
			models.ErrCodeNavigation,
			"failed to create browsing context",
			err,
		)
	}
	// Disposing the context tears down its pages, cookies and storage,
	// so nothing leaks between unrelated resolutions.
	defer func() { _ = bctx.Close() }()

	s.activeContexts.Add(1)
	defer s.activeContexts.Add(-1)

	page, err := bctx.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", models.NewResolveError(
			models.ErrCodeNavigation,
			"failed to open page in browsing context",
			err,
		)
	}

	// ── 3. Realistic identity + stealth, before any page script runs ─
	_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      s.scraperCfg.UserAgent,
		AcceptLanguage: s.scraperCfg.AcceptLanguage,
		Platform:       "Win32",
	})
	_ = proto.EmulationSetTimezoneOverride{
		TimezoneID: s.scraperCfg.Timezone,
	}.Call(page)

	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without it", "error", evalErr)
	}

	router := setupHijack(page, s.scraperCfg.BlockedResourceTypes, s.scraperCfg.BlockTrackers)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	p := page.Context(ctx)

	// ── 4. Navigate to the search results ──────────────────────────
	if navErr := p.Timeout(s.scraperCfg.NavigationTimeout).Navigate(searchURL); navErr != nil {
		return "", categorizeError(navErr, "navigation to search page failed")
	}

	// ── 5. Wait for content ─────────────────────────────────────────
	if stableErr := p.Timeout(s.scraperCfg.SelectorWait).WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("DOM did not stabilise, proceeding with current state", "error", stableErr)
	}

	appeared := false
	for _, sel := range cfg.Selectors.Item {
		if _, elErr := p.Timeout(s.scraperCfg.SelectorWait).Element(sel); elErr == nil {
			appeared = true
			break
		}
	}
	if !appeared {
		// Late-rendering pages sometimes attach results without ever
		// matching a known container selector; give them a moment.
		select {
		case <-ctx.Done():
			return "", categorizeError(ctx.Err(), "aborted while waiting for results")
		case <-time.After(s.scraperCfg.SettleDelay):
		}
	}

	// ── 6. Rendered HTML ────────────────────────────────────────────
	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return "", categorizeError(htmlErr, "failed to read rendered page")
	}
	return rawHTML, nil
}

// categorizeError wraps raw errors into typed ResolveErrors so callers can
// distinguish timeouts from hard navigation failures.
func categorizeError(err error, msg string) *models.ResolveError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewResolveError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewResolveError(models.ErrCodeTimeout, "resolution canceled", err)
	default:
		return models.NewResolveError(models.ErrCodeNavigation, msg, err)
	}
}
