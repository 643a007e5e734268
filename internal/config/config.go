// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database paths, search caching and
// tracking, rate limiting, and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "storefront-search")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// SearchConfig tunes the search and suggestion endpoints and their caches.
type SearchConfig struct {
	PerPage              int           // SEARCH_PER_PAGE
	CacheTTL             time.Duration // SEARCH_CACHE_TTL
	SuggestCacheTTL      time.Duration // SUGGEST_CACHE_TTL
	CacheMaxEntries      int           // CACHE_MAX_ENTRIES
	CacheEvictCount      int           // CACHE_EVICT_COUNT
	SuggestCandidates    int           // SUGGEST_CANDIDATE_LIMIT
	SuggestDefaultLimit  int           // SUGGEST_DEFAULT_LIMIT
	SuggestMaxLimit      int           // SUGGEST_MAX_LIMIT
	SuggestLocale        string        // SUGGEST_LOCALE (BCP 47)
	DefaultMaxPrice      float64       // SEARCH_DEFAULT_MAX_PRICE
	HighlightsByDefault  bool          // SEARCH_HIGHLIGHTS_DEFAULT
}

// TrackingConfig selects where search-term counts are recorded.
type TrackingConfig struct {
	Backend string        // TRACKER: db|redis|none
	Timeout time.Duration // TRACK_TIMEOUT
}

// RedisConfig configures the optional Redis connection used by the redis tracker.
type RedisConfig struct {
	Addr     string // REDIS_ADDR
	Password string // REDIS_PASSWORD
	DB       int    // REDIS_DB
	Key      string // REDIS_TERMS_KEY
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath     string // SQLite path
	SeedPath   string // optional YAML catalog loaded by `storefront seed`
	AdminToken string // optional shared secret for /admin routes

	// Search
	Search   SearchConfig
	Tracking TrackingConfig
	Redis    RedisConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies defaults,
// normalizes values, and validates the result. A variable that is set but
// does not parse is an error rather than a silent fallback to the default;
// every problem found is reported in one joined error.
func Load() (Config, error) {
	env := &envReader{}
	cfg := Config{
		// Server
		Port:              env.str("PORT", "8080"),
		ReadTimeout:       env.dur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: env.dur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      env.dur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       env.dur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    env.int("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(env.str("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(env.str("LOG_LEVEL", "info")),
		LogPretty:      env.bool("LOG_PRETTY", false),
		SwaggerEnabled: env.bool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(env.str("API_BASE_PATH", "/api/v1")),

		// App
		DBPath:     env.str("DB_PATH", "storefront.db"),
		SeedPath:   env.str("SEED_PATH", ""),
		AdminToken: env.str("ADMIN_TOKEN", ""),

		Search: SearchConfig{
			PerPage:             env.int("SEARCH_PER_PAGE", 12),
			CacheTTL:            env.dur("SEARCH_CACHE_TTL", 60*time.Second),
			SuggestCacheTTL:     env.dur("SUGGEST_CACHE_TTL", 300*time.Second),
			CacheMaxEntries:     env.int("CACHE_MAX_ENTRIES", 100),
			CacheEvictCount:     env.int("CACHE_EVICT_COUNT", 20),
			SuggestCandidates:   env.int("SUGGEST_CANDIDATE_LIMIT", 50),
			SuggestDefaultLimit: env.int("SUGGEST_DEFAULT_LIMIT", 5),
			SuggestMaxLimit:     env.int("SUGGEST_MAX_LIMIT", 20),
			SuggestLocale:       env.str("SUGGEST_LOCALE", "en"),
			DefaultMaxPrice:     env.float("SEARCH_DEFAULT_MAX_PRICE", 999999),
			HighlightsByDefault: env.bool("SEARCH_HIGHLIGHTS_DEFAULT", false),
		},
		Tracking: TrackingConfig{
			Backend: strings.ToLower(env.str("TRACKER", "db")),
			Timeout: env.dur("TRACK_TIMEOUT", 2*time.Second),
		},
		Redis: RedisConfig{
			Addr:     env.str("REDIS_ADDR", "localhost:6379"),
			Password: env.str("REDIS_PASSWORD", ""),
			DB:       env.int("REDIS_DB", 0),
			Key:      env.str("REDIS_TERMS_KEY", "storefront:search_terms"),
		},

		// Rate limiting
		RateRPS:   env.float("RATE_RPS", 20.0),
		RateBurst: env.int("RATE_BURST", 40),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(env.str("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: env.bool("ENABLE_HSTS", false),
			HSTSMaxAge: env.dur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     env.bool("OTEL_ENABLED", false),
			Endpoint:    env.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    env.bool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: env.str("OTEL_SERVICE_NAME", "storefront-search"),
			SampleRatio: env.float("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}
	if len(env.errs) > 0 {
		return cfg, errors.Join(env.errs...)
	}

	cfg.normalize()
	return cfg, cfg.Validate()
}

func (c *Config) normalize() {
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		c.GinMode = "release"
	}
	if c.Search.SuggestDefaultLimit > c.Search.SuggestMaxLimit {
		c.Search.SuggestDefaultLimit = c.Search.SuggestMaxLimit
	}
}

// Validate checks ranges and enumerations and returns every violation
// joined, or nil.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		check(false, "LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	check(strings.TrimSpace(c.Port) != "", "PORT must not be empty")
	check(c.ReadTimeout > 0 && c.ReadHeaderTimeout > 0 && c.WriteTimeout > 0 && c.IdleTimeout > 0,
		"timeouts must be positive durations")
	check(c.MaxHeaderBytes > 0, "MAX_HEADER_BYTES must be > 0")
	check(strings.TrimSpace(c.DBPath) != "", "DB_PATH must not be empty")

	s := c.Search
	check(s.PerPage >= 1 && s.PerPage <= 100, "SEARCH_PER_PAGE must be between 1 and 100")
	check(s.CacheTTL > 0 && s.SuggestCacheTTL > 0, "SEARCH_CACHE_TTL and SUGGEST_CACHE_TTL must be > 0")
	check(s.CacheMaxEntries >= 1, "CACHE_MAX_ENTRIES must be >= 1")
	check(s.CacheEvictCount >= 1 && s.CacheEvictCount <= s.CacheMaxEntries,
		"CACHE_EVICT_COUNT must be between 1 and CACHE_MAX_ENTRIES")
	check(s.SuggestCandidates >= 1, "SUGGEST_CANDIDATE_LIMIT must be >= 1")
	check(s.SuggestMaxLimit >= 1 && s.SuggestDefaultLimit >= 1,
		"SUGGEST_DEFAULT_LIMIT and SUGGEST_MAX_LIMIT must be >= 1")
	check(s.DefaultMaxPrice > 0, "SEARCH_DEFAULT_MAX_PRICE must be > 0")

	switch c.Tracking.Backend {
	case "db", "redis", "none":
	default:
		check(false, "TRACKER must be one of: db, redis, none")
	}
	check(c.Tracking.Timeout > 0, "TRACK_TIMEOUT must be > 0")
	check(c.Tracking.Backend != "redis" || strings.TrimSpace(c.Redis.Addr) != "",
		"REDIS_ADDR must not be empty when TRACKER=redis")

	check(c.RateRPS >= 0, "RATE_RPS must be >= 0")
	check(c.RateBurst >= 1, "RATE_BURST must be >= 1")
	check(c.Security.HSTSMaxAge >= 0, "HSTS_MAX_AGE must be >= 0")
	check(c.OTEL.SampleRatio >= 0 && c.OTEL.SampleRatio <= 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")

	return errors.Join(errs...)
}

// envReader reads typed environment variables. Unset or empty variables
// yield the default; malformed ones are recorded in errs.
type envReader struct {
	errs []error
}

func (e *envReader) lookup(k string) (string, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *envReader) fail(k, v, want string) {
	e.errs = append(e.errs, fmt.Errorf("%s=%q: not %s", k, v, want))
}

func (e *envReader) str(k, def string) string {
	if v, ok := e.lookup(k); ok {
		return v
	}
	return def
}

func (e *envReader) float(k string, def float64) float64 {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		e.fail(k, v, "a number")
		return def
	}
	return f
}

func (e *envReader) int(k string, def int) int {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		e.fail(k, v, "an integer")
		return def
	}
	return i
}

func (e *envReader) bool(k string, def bool) bool {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	e.fail(k, v, "a boolean")
	return def
}

func (e *envReader) dur(k string, def time.Duration) time.Duration {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		e.fail(k, v, "a duration")
		return def
	}
	return d
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}
