package config

import "time"

// Security holds the request-gatekeeping options.
type Security struct {
	// RateLimitWindowMS is the fixed rate-limit window in milliseconds.
	RateLimitWindowMS int `env:"RATE_LIMIT_WINDOW_MS" envDefault:"60000"`
	// MaxRequestsPerWindow is the admission ceiling per client per window.
	MaxRequestsPerWindow int `env:"MAX_REQUESTS_PER_WINDOW" envDefault:"60"`
	// AllowedOrigins is the exact-match origin allow-list enforced in production.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	// Environment selects development, production, or test behavior.
	Environment Environment `env:"ENVIRONMENT" envDefault:"development"`
}

// RateLimitWindow returns the window as a duration.
func (s Security) RateLimitWindow() time.Duration {
	return time.Duration(s.RateLimitWindowMS) * time.Millisecond
}
