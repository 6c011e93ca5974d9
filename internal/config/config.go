// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, the hosted row store, the chat-completion
// provider, rate limiting, and observability.
//
// The Config value is built once at process start and passed explicitly to
// the constructors that need it; nothing in this package is global state.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers.
const (
	StoreDriverPostgREST = "postgrest"
	StoreDriverSQLite    = "sqlite"
)

// LLM providers.
const (
	ProviderMistral = "mistral"
	ProviderGemini  = "gemini"
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
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "swasth-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// StoreConfig points at the hosted row store (REST tables + identity endpoint).
type StoreConfig struct {
	Driver  string        // STORE_DRIVER: postgrest|sqlite
	URL     string        // SUPABASE_URL, project base URL without trailing slash
	APIKey  string        // SUPABASE_KEY, sent as the apikey header
	Timeout time.Duration // STORE_TIMEOUT per outbound call
}

// LLMConfig selects and parameterizes the chat-completion provider.
type LLMConfig struct {
	Provider            string        // LLM_PROVIDER: mistral|gemini
	APIKey              string        // MISTRAL_API_KEY or GEMINI_API_KEY
	URL                 string        // MISTRAL_URL (mistral only)
	Model               string        // MISTRAL_MODEL or GEMINI_MODEL
	ChatTimeout         time.Duration // CHAT_TIMEOUT
	ReflectionTimeout   time.Duration // REFLECTION_TIMEOUT
	ChatMaxTokens       int           // CHAT_MAX_TOKENS
	ReflectionMaxTokens int           // REFLECTION_MAX_TOKENS
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 40s, above the slowest upstream call
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Local database (idempotency ledger, sqlite store driver)
	DBPath string

	// Upstreams
	Store StoreConfig
	LLM   LLMConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

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

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	provider := strings.ToLower(strings.TrimSpace(getenv("LLM_PROVIDER", ProviderMistral)))

	cfg := Config{
		// Server
		Port:              getenv("PORT", "8000"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 40*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/")),

		DBPath: getenv("DB_PATH", "swasth.db"),

		Store: StoreConfig{
			Driver:  strings.ToLower(strings.TrimSpace(getenv("STORE_DRIVER", StoreDriverPostgREST))),
			URL:     strings.TrimRight(strings.TrimSpace(getenv("SUPABASE_URL", "")), "/"),
			APIKey:  getenv("SUPABASE_KEY", ""),
			Timeout: getdur("STORE_TIMEOUT", 10*time.Second),
		},

		LLM: LLMConfig{
			Provider:            provider,
			ChatTimeout:         getdur("CHAT_TIMEOUT", 15*time.Second),
			ReflectionTimeout:   getdur("REFLECTION_TIMEOUT", 10*time.Second),
			ChatMaxTokens:       getint("CHAT_MAX_TOKENS", 200),
			ReflectionMaxTokens: getint("REFLECTION_MAX_TOKENS", 100),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "swasth-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	switch provider {
	case ProviderGemini:
		cfg.LLM.APIKey = getenv("GEMINI_API_KEY", "")
		cfg.LLM.Model = getenv("GEMINI_MODEL", "gemini-1.5-flash-latest")
	default:
		cfg.LLM.APIKey = getenv("MISTRAL_API_KEY", "")
		cfg.LLM.URL = getenv("MISTRAL_URL", "https://api.mistral.ai/v1/chat/completions")
		cfg.LLM.Model = getenv("MISTRAL_MODEL", "mistral-small-latest")
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	switch cfg.Store.Driver {
	case StoreDriverPostgREST:
		if cfg.Store.URL == "" {
			return cfg, errors.New("SUPABASE_URL must be set when STORE_DRIVER=postgrest")
		}
		if !strings.HasPrefix(cfg.Store.URL, "http://") && !strings.HasPrefix(cfg.Store.URL, "https://") {
			return cfg, errors.New("SUPABASE_URL must be an http(s) URL")
		}
	case StoreDriverSQLite:
	default:
		return cfg, errors.New("STORE_DRIVER must be one of: postgrest, sqlite")
	}
	if cfg.Store.Timeout <= 0 {
		return cfg, errors.New("STORE_TIMEOUT must be > 0")
	}
	switch cfg.LLM.Provider {
	case ProviderMistral, ProviderGemini:
	default:
		return cfg, errors.New("LLM_PROVIDER must be one of: mistral, gemini")
	}
	if cfg.LLM.ChatTimeout <= 0 || cfg.LLM.ReflectionTimeout <= 0 {
		return cfg, errors.New("CHAT_TIMEOUT and REFLECTION_TIMEOUT must be > 0")
	}
	if cfg.LLM.ChatMaxTokens < 1 || cfg.LLM.ReflectionMaxTokens < 1 {
		return cfg, errors.New("CHAT_MAX_TOKENS and REFLECTION_MAX_TOKENS must be >= 1")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// envOr reads k and converts it with parse. Unset or empty variables and
// values parse rejects yield def.
func envOr[T any](k string, def T, parse func(string) (T, error)) T {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return def
	}
	out, err := parse(v)
	if err != nil {
		return def
	}
	return out
}

func getenv(k, def string) string {
	return envOr(k, def, func(v string) (string, error) { return v, nil })
}

func getfloat(k string, def float64) float64 {
	return envOr(k, def, func(v string) (float64, error) { return strconv.ParseFloat(v, 64) })
}

func getint(k string, def int) int { return envOr(k, def, strconv.Atoi) }

func getdur(k string, def time.Duration) time.Duration { return envOr(k, def, time.ParseDuration) }

func getbool(k string, def bool) bool { return envOr(k, def, parseSwitch) }

// parseSwitch accepts the usual on/off spellings, case-insensitively.
func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", v)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
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
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
