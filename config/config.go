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
	Fetch     FetchConfig
	Extract   ExtractConfig
	Batch     BatchConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls the page fetcher.
type FetchConfig struct {
	// Timeout is the per-attempt fetch timeout.
	Timeout time.Duration // default: 15s

	// MaxRetries is the number of retries after the first attempt.
	// Only transport-level failures are retried.
	MaxRetries int // default: 3

	// MaxRedirects caps redirect following per attempt.
	MaxRedirects int // default: 10

	// BackoffBase is the first retry delay; it doubles per attempt.
	BackoffBase time.Duration // default: 1s

	// BackoffMax caps the retry delay.
	BackoffMax time.Duration // default: 10s

	// MaxBodyBytes caps the response body read per page.
	MaxBodyBytes int64 // default: 10 MB
}

// ExtractConfig controls candidate extraction and scoring.
type ExtractConfig struct {
	// AcceptanceThreshold is the minimum confidence for an outcome to be
	// reported as extracted.
	AcceptanceThreshold float64 // default: 0.5

	// LegalSuffixes is the recognized set of legal-entity suffixes.
	// Dots in entries are literal ("e.V.", "S.p.A.").
	LegalSuffixes []string

	// Denylist is the set of boilerplate phrases that should never be
	// treated as a company name. Matched case-insensitively as substrings.
	Denylist []string
}

// BatchConfig controls the batch coordinator.
type BatchConfig struct {
	// Concurrency is the maximum number of URLs in flight simultaneously.
	Concurrency int // default: 10
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the outcome cache at the API boundary.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached outcomes.
	MaxEntries int // default: 1000
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// defaultLegalSuffixes covers the jurisdictions the engine is tuned for,
// German forms first. Entries with dots match both dotted and undotted
// spellings ("e.V." matches "eV").
var defaultLegalSuffixes = []string{
	"GmbH", "UG", "AG", "e.V.", "GbR", "Inc", "Ltd", "SAS", "BV", "AB",
	"S.L.", "Oy", "KG", "SE", "LLC", "PLC", "Corp", "Co.", "Limited",
	"S.A.", "NV", "S.p.A.", "LP", "LLP", "Pte. Ltd.", "S.à r.l.", "KGaA",
}

// defaultDenylist holds navigational, promotional, and courtesy phrases
// (German and English) that pages surface prominently but that are never
// company names.
var defaultDenylist = []string{
	"redirecting", "click here", "welcome to", "willkommen",
	"thank you", "vielen dank", "danke", "loading",
	"cookie", "cookies", "privacy", "datenschutz", "impressum",
	"agb", "kontakt", "contact us", "sign in", "sign up", "login",
	"anmelden", "registrieren", "jetzt starten", "mehr erfahren",
	"learn more", "get started", "subscribe", "newsletter",
	"home", "homepage", "startseite", "all rights reserved",
	"alle rechte vorbehalten", "page not found", "404",
	"javascript", "your browser", "bitte aktivieren",
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("ORGNAME_HOST", "0.0.0.0"),
			Port: envIntOr("ORGNAME_PORT", 8080),
			Mode: envOr("ORGNAME_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("ORGNAME_FETCH_TIMEOUT", 15*time.Second),
			MaxRetries:   envIntOr("ORGNAME_MAX_RETRIES", 3),
			MaxRedirects: envIntOr("ORGNAME_MAX_REDIRECTS", 10),
			BackoffBase:  envDurationOr("ORGNAME_BACKOFF_BASE", time.Second),
			BackoffMax:   envDurationOr("ORGNAME_BACKOFF_MAX", 10*time.Second),
			MaxBodyBytes: int64(envIntOr("ORGNAME_MAX_BODY_BYTES", 10<<20)),
		},
		Extract: ExtractConfig{
			AcceptanceThreshold: envFloatOr("ORGNAME_THRESHOLD", 0.5),
			LegalSuffixes:       envSliceOr("ORGNAME_LEGAL_SUFFIXES", defaultLegalSuffixes),
			Denylist:            envSliceOr("ORGNAME_DENYLIST", defaultDenylist),
		},
		Batch: BatchConfig{
			Concurrency: envIntOr("ORGNAME_CONCURRENCY", 10),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("ORGNAME_AUTH_ENABLED", false),
			APIKeys: envSliceOr("ORGNAME_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("ORGNAME_RATE_RPS", 5.0),
			Burst:             envIntOr("ORGNAME_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("ORGNAME_CACHE_MAX_ENTRIES", 1000),
		},
		Log: LogConfig{
			Level:  envOr("ORGNAME_LOG_LEVEL", "info"),
			Format: envOr("ORGNAME_LOG_FORMAT", "json"),
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
