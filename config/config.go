package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Match     MatchConfig
	Pacing    PacingConfig
	Cache     CacheConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 3030
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the shared browser process.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// ScraperConfig controls per-resolution browser behavior.
type ScraperConfig struct {
	// ResolveTimeout is the hard deadline for one resolution attempt,
	// navigation through extraction.
	ResolveTimeout time.Duration // default: 45s

	// NavigationTimeout is the max time for reaching the search page.
	NavigationTimeout time.Duration // default: 25s

	// SelectorWait is the per-alternative wait for a result-item
	// container selector to appear.
	SelectorWait time.Duration // default: 7s

	// SettleDelay is the unconditional wait applied when no container
	// selector appeared, to let late-rendering content land.
	SettleDelay time.Duration // default: 2s

	// MaxCandidates caps how many result elements are inspected.
	MaxCandidates int // default: 10

	// BlockedResourceTypes lists resource types aborted during navigation.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string

	// BlockTrackers additionally aborts requests to known tracking domains.
	BlockTrackers bool // default: true

	// UserAgent is the identity presented by every browsing context.
	UserAgent string

	// AcceptLanguage is the Accept-Language header for the context.
	AcceptLanguage string // default: "es-MX,es;q=0.9"

	// Timezone is the emulated timezone ID.
	Timezone string // default: "America/Mexico_City"
}

// MatchConfig controls candidate ranking.
type MatchConfig struct {
	// Threshold is the minimum similarity score for an accepted match.
	Threshold float64 // default: 0.35

	// QueryTokens bounds how many leading product-name tokens build the
	// search query.
	QueryTokens int // default: 4
}

// PacingConfig controls the randomized post-resolution delay.
type PacingConfig struct {
	// BaseDelay is the fixed part of the delay.
	BaseDelay time.Duration // default: 4s

	// MaxJitter is the upper bound of the random part added to BaseDelay.
	MaxJitter time.Duration // default: 2s
}

// CacheConfig controls the in-memory resolution cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached resolutions.
	MaxEntries int // default: 500

	// TTL is how long a cached resolution stays valid. Zero disables
	// caching entirely.
	TTL time.Duration // default: 10m
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-identity inbound rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per identity.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per identity.
	Burst int // default: 3
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PRICESCOUT_HOST", "0.0.0.0"),
			Port: envIntOr("PRICESCOUT_PORT", 3030),
			Mode: envOr("PRICESCOUT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("PRICESCOUT_HEADLESS", true),
			NoSandbox:  envBoolOr("PRICESCOUT_NO_SANDBOX", false),
			BrowserBin: os.Getenv("PRICESCOUT_BROWSER_BIN"),
		},
		Scraper: ScraperConfig{
			ResolveTimeout:    envDurationOr("PRICESCOUT_RESOLVE_TIMEOUT", 45*time.Second),
			NavigationTimeout: envDurationOr("PRICESCOUT_NAV_TIMEOUT", 25*time.Second),
			SelectorWait:      envDurationOr("PRICESCOUT_SELECTOR_WAIT", 7*time.Second),
			SettleDelay:       envDurationOr("PRICESCOUT_SETTLE_DELAY", 2*time.Second),
			MaxCandidates:     envIntOr("PRICESCOUT_MAX_CANDIDATES", 10),
			BlockedResourceTypes: envSliceOr("PRICESCOUT_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
			BlockTrackers:  envBoolOr("PRICESCOUT_BLOCK_TRACKERS", true),
			UserAgent:      envOr("PRICESCOUT_USER_AGENT", defaultUserAgent),
			AcceptLanguage: envOr("PRICESCOUT_ACCEPT_LANGUAGE", "es-MX,es;q=0.9"),
			Timezone:       envOr("PRICESCOUT_TIMEZONE", "America/Mexico_City"),
		},
		Match: MatchConfig{
			Threshold:   envFloatOr("PRICESCOUT_MATCH_THRESHOLD", 0.35),
			QueryTokens: envIntOr("PRICESCOUT_QUERY_TOKENS", 4),
		},
		Pacing: PacingConfig{
			BaseDelay: envDurationOr("PRICESCOUT_PACE_BASE", 4*time.Second),
			MaxJitter: envDurationOr("PRICESCOUT_PACE_JITTER", 2*time.Second),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("PRICESCOUT_CACHE_MAX_ENTRIES", 500),
			TTL:        envDurationOr("PRICESCOUT_CACHE_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PRICESCOUT_AUTH_ENABLED", false),
			APIKeys: envSliceOr("PRICESCOUT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PRICESCOUT_RATE_RPS", 1.0),
			Burst:             envIntOr("PRICESCOUT_RATE_BURST", 3),
		},
		Log: LogConfig{
			Level:  envOr("PRICESCOUT_LOG_LEVEL", "info"),
			Format: envOr("PRICESCOUT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
