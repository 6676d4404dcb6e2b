package models

// ErrorResponse is the body returned when a request fails before the
// pipeline runs (bad input, auth, rate limit, internal fault).
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// StatusResponse is the body for GET /api/v1/status. It lets callers
// discover capability without triggering a scrape.
type StatusResponse struct {
	OK          bool     `json:"ok"`
	Version     string   `json:"version"`
	Competitors []string `json:"competitors"`
}

// BrowserStats is a snapshot of the shared browser session.
type BrowserStats struct {
	// Launched reports whether the browser process has been started.
	// The session is lazy, so this stays false until the first resolution.
	Launched bool `json:"launched"`

	// ActiveContexts is the number of browsing contexts currently alive,
	// one per in-flight resolution.
	ActiveContexts int `json:"active_contexts"`
}

// HealthResponse is the body for GET /api/v1/health.
type HealthResponse struct {
	Status  string       `json:"status"`
	Uptime  string       `json:"uptime"`
	Browser BrowserStats `json:"browser"`
	Version string       `json:"version"`
}
