package scraper

import (
	"errors"
	"testing"

	"github.com/use-agent/pricescout/config"
	"github.com/use-agent/pricescout/models"
)

func TestLaunchFailureIsCachedAndLeavesCleanState(t *testing.T) {
	sc := New(config.BrowserConfig{
		Headless:   true,
		NoSandbox:  true,
		BrowserBin: "/nonexistent/chrome-bin",
	}, config.ScraperConfig{})

	_, err := sc.session()
	if err == nil {
		t.Fatal("session succeeded with a nonexistent browser binary")
	}
	var re *models.ResolveError
	if !errors.As(err, &re) || re.Code != models.ErrCodeBrowserLaunch {
		t.Errorf("error = %v, want code %s", err, models.ErrCodeBrowserLaunch)
	}

	_, err2 := sc.session()
	if err2 != err {
		t.Errorf("second session() = %v, want the cached launch error", err2)
	}

	if stats := sc.Stats(); stats.Launched || stats.ActiveContexts != 0 {
		t.Errorf("stats after failed launch = %+v, want unlaunched", stats)
	}

	// Close must be a safe no-op when nothing was ever spawned.
	sc.Close()
	sc.Close()
}
