// Package scraper owns the shared headless browser and turns a competitor
// search URL into a list of candidate listings.
package scraper

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/use-agent/pricescout/config"
	"github.com/use-agent/pricescout/models"
)

// Scraper manages the shared browser process. The browser is launched
// lazily on the first resolution and reused by every one after it; a launch
// failure is cached and never retried. Safe for concurrent use.
type Scraper struct {
	browserCfg config.BrowserConfig
	scraperCfg config.ScraperConfig

	launchOnce sync.Once
	browser    *rod.Browser
	launchErr  error
	launched   atomic.Bool

	closeOnce      sync.Once
	activeContexts atomic.Int32
}

// New creates a Scraper. The browser process is not started here; it is
// spawned by the first call that needs it.
func New(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) *Scraper {
	return &Scraper{browserCfg: browserCfg, scraperCfg: scraperCfg}
}

// session returns the shared browser handle, launching it on first call.
// Idempotent: later calls observe the cached handle or the cached error.
func (s *Scraper) session() (*rod.Browser, error) {
	s.launchOnce.Do(s.launch)
	return s.browser, s.launchErr
}

func (s *Scraper) launch() {
	l := launcher.New().
		Headless(s.browserCfg.Headless).
		NoSandbox(s.browserCfg.NoSandbox)

	if s.browserCfg.BrowserBin != "" {
		l = l.Bin(s.browserCfg.BrowserBin)
	}

	// Strip the automation tells Chrome ships with by default.
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		s.launchErr = models.NewResolveError(
			models.ErrCodeBrowserLaunch,
			"failed to launch browser",
			err,
		)
		return
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		// The process is already running; reap it or it outlives us.
		l.Kill()
		s.launchErr = models.NewResolveError(
			models.ErrCodeBrowserLaunch,
			"failed to connect to browser",
			err,
		)
		return
	}

	s.browser = browser
	s.launched.Store(true)
}

// Stats returns a snapshot of the browser session state.
func (s *Scraper) Stats() models.BrowserStats {
	return models.BrowserStats{
		Launched:       s.launched.Load(),
		ActiveContexts: int(s.activeContexts.Load()),
	}
}

// Close kills the browser process if one was launched. Idempotent; call on
// graceful shutdown to prevent zombie Chrome processes. In-flight
// resolutions are not waited for.
func (s *Scraper) Close() {
	s.closeOnce.Do(func() {
		if !s.launched.Load() {
			return
		}
		slog.Info("scraper shutting down: closing browser")
		if err := s.browser.Close(); err != nil {
			slog.Warn("browser close failed", "error", err)
		}
	})
}
