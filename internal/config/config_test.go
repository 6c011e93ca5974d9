package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Clear all env that might affect defaults. t.Setenv isolates per test.
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v1/") // no leading slash + trailing slash -> "/api/v1"

	// Local DB + upstreams
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("STORE_DRIVER", " PostgREST ")
	t.Setenv("SUPABASE_URL", "https://proj.example.co/ ")
	t.Setenv("SUPABASE_KEY", "anon-key")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("LLM_PROVIDER", "Mistral")
	t.Setenv("MISTRAL_API_KEY", "mk")
	t.Setenv("MISTRAL_MODEL", "mistral-tiny")
	t.Setenv("CHAT_MAX_TOKENS", "150")
	t.Setenv("REFLECTION_TIMEOUT", "7s")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 10

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// Idempotency
	t.Setenv("IDEMPOTENCY_TTL", "48h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Server
	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}

	// Logging / Docs
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}

	// Local DB + upstreams
	if cfg.DBPath != "db.sqlite" {
		t.Fatalf("db path unexpected: %q", cfg.DBPath)
	}
	wantStore := StoreConfig{Driver: StoreDriverPostgREST, URL: "https://proj.example.co", APIKey: "anon-key", Timeout: 3 * time.Second}
	if cfg.Store != wantStore {
		t.Fatalf("store unexpected: %+v", cfg.Store)
	}
	if cfg.LLM.Provider != ProviderMistral || cfg.LLM.APIKey != "mk" || cfg.LLM.Model != "mistral-tiny" ||
		cfg.LLM.URL != "https://api.mistral.ai/v1/chat/completions" ||
		cfg.LLM.ChatMaxTokens != 150 || cfg.LLM.ReflectionMaxTokens != 100 ||
		cfg.LLM.ChatTimeout != 15*time.Second || cfg.LLM.ReflectionTimeout != 7*time.Second {
		t.Fatalf("llm unexpected: %+v", cfg.LLM)
	}

	// Rate limiting (parse fallback to defaults)
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}

	// Web protection
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}

	// Idempotency
	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency ttl unexpected: %v", cfg.IdempotencyTTL)
	}

	// OTEL
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	setRequired(t)

	t.Run("invalid LOG_LEVEL", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		if _, err := Load(); err == nil {
			t.Fatalf("expected LOG_LEVEL validation error")
		}
	})
	t.Run("empty PORT via spaces", func(t *testing.T) {
		t.Setenv("PORT", "   ")
		if _, err := Load(); err == nil || !containsErr(err, "PORT must not be empty") {
			t.Fatalf("expected port validation error, got: %v", err)
		}
	})
	t.Run("non-positive timeouts", func(t *testing.T) {
		t.Setenv("READ_TIMEOUT", "0s")
		if _, err := Load(); err == nil || !containsErr(err, "timeouts must be positive") {
			t.Fatalf("expected timeouts validation error, got: %v", err)
		}
	})
	t.Run("max header bytes <= 0", func(t *testing.T) {
		t.Setenv("MAX_HEADER_BYTES", "0")
		if _, err := Load(); err == nil || !containsErr(err, "MAX_HEADER_BYTES") {
			t.Fatalf("expected MAX_HEADER_BYTES validation error, got: %v", err)
		}
	})
	t.Run("empty DB_PATH", func(t *testing.T) {
		t.Setenv("DB_PATH", "   ")
		if _, err := Load(); err == nil || !containsErr(err, "DB_PATH must not be empty") {
			t.Fatalf("expected DB_PATH validation error, got: %v", err)
		}
	})
	t.Run("missing SUPABASE_URL", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "")
		if _, err := Load(); err == nil || !containsErr(err, "SUPABASE_URL must be set") {
			t.Fatalf("expected SUPABASE_URL validation error, got: %v", err)
		}
	})
	t.Run("non-http SUPABASE_URL", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "ftp://proj")
		if _, err := Load(); err == nil || !containsErr(err, "http(s)") {
			t.Fatalf("expected SUPABASE_URL scheme error, got: %v", err)
		}
	})
	t.Run("unknown STORE_DRIVER", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		if _, err := Load(); err == nil || !containsErr(err, "STORE_DRIVER") {
			t.Fatalf("expected STORE_DRIVER validation error, got: %v", err)
		}
	})
	t.Run("unknown LLM_PROVIDER", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "llama")
		if _, err := Load(); err == nil || !containsErr(err, "LLM_PROVIDER") {
			t.Fatalf("expected LLM_PROVIDER validation error, got: %v", err)
		}
	})
	t.Run("max tokens < 1", func(t *testing.T) {
		t.Setenv("REFLECTION_MAX_TOKENS", "0")
		if _, err := Load(); err == nil || !containsErr(err, "MAX_TOKENS") {
			t.Fatalf("expected MAX_TOKENS validation error, got: %v", err)
		}
	})
	t.Run("rate rps negative", func(t *testing.T) {
		t.Setenv("RATE_RPS", "-1")
		if _, err := Load(); err == nil || !containsErr(err, "RATE_RPS") {
			t.Fatalf("expected RATE_RPS validation error, got: %v", err)
		}
	})
	t.Run("rate burst < 1", func(t *testing.T) {
		t.Setenv("RATE_BURST", "0")
		if _, err := Load(); err == nil || !containsErr(err, "RATE_BURST") {
			t.Fatalf("expected RATE_BURST validation error, got: %v", err)
		}
	})
	t.Run("hsts max age negative", func(t *testing.T) {
		t.Setenv("HSTS_MAX_AGE", "-1s")
		if _, err := Load(); err == nil || !containsErr(err, "HSTS_MAX_AGE") {
			t.Fatalf("expected HSTS_MAX_AGE validation error, got: %v", err)
		}
	})
	t.Run("idempotency ttl non-positive", func(t *testing.T) {
		t.Setenv("IDEMPOTENCY_TTL", "0s")
		if _, err := Load(); err == nil || !containsErr(err, "IDEMPOTENCY_TTL") {
			t.Fatalf("expected IDEMPOTENCY_TTL validation error, got: %v", err)
		}
	})
	t.Run("otel sample ratio out of range", func(t *testing.T) {
		t.Setenv("OTEL_TRACES_SAMPLER_ARG", "1.5")
		if _, err := Load(); err == nil || !containsErr(err, "OTEL_TRACES_SAMPLER_ARG") {
			t.Fatalf("expected OTEL_TRACES_SAMPLER_ARG validation error, got: %v", err)
		}
	})

	// Note: API_BASE_PATH validation is effectively unreachable due to normalizeBasePath
	// always ensuring a leading '/' and returning "/" for empty input.
}

// --- helpers ---

func TestHelpers_envParsers(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	t.Setenv("X_SET", "val")
	t.Setenv("F_VALID", "3.14")
	t.Setenv("F_BAD", "nope")
	t.Setenv("I_VALID", "42")
	t.Setenv("I_SPACED", " 42")
	t.Setenv("D_VALID", "150ms")
	t.Setenv("D_BAD", "zzz")

	if getenv("X_EMPTY", "d") != "d" || getenv("X_UNSET", "d") != "d" || getenv("X_SET", "d") != "val" {
		t.Fatal("getenv fallback or read failed")
	}
	if getfloat("F_VALID", 0) != 3.14 || getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatal("getfloat parse or fallback failed")
	}
	if getint("I_VALID", 0) != 42 || getint("I_SPACED", 7) != 7 {
		t.Fatal("getint parse or fallback failed")
	}
	if getdur("D_VALID", time.Second) != 150*time.Millisecond || getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatal("getdur parse or fallback failed")
	}
}

func TestHelpers_getbool(t *testing.T) {
	cases := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{" yes ", false, true},
		{"On", false, true},
		{"Y", false, true},
		{"0", true, false},
		{"FALSE", true, false},
		{" no ", true, false},
		{"off", true, false},
		{"", true, true},
		{"", false, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tc := range cases {
		t.Setenv("B_FLAG", tc.raw)
		if got := getbool("B_FLAG", tc.def); got != tc.want {
			t.Fatalf("getbool(%q, def=%v) = %v; want %v", tc.raw, tc.def, got, tc.want)
		}
	}
}

func TestHelpers_splitCSV_and_normalizeBasePath(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	in := " a, ,b ,  c  ,"
	want := []string{"a", "b", "c"}
	if got := splitCSV(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSV mismatch: got %#v want %#v", got, want)
	}

	// normalizeBasePath
	if normalizeBasePath("") != "/" {
		t.Fatalf("normalizeBasePath empty -> '/' failed")
	}
	if normalizeBasePath("v1") != "/v1" {
		t.Fatalf("normalizeBasePath missing leading slash failed")
	}
	if normalizeBasePath("/v1/") != "/v1" {
		t.Fatalf("normalizeBasePath trailing slash trim failed")
	}
	if normalizeBasePath(" / ") != "/" {
		t.Fatalf("normalizeBasePath whitespace failed")
	}
}

// Start from a clean environment for the variables Load validates.
func TestMain(m *testing.M) {
	os.Unsetenv("PORT")
	os.Unsetenv("STORE_DRIVER")
	os.Unsetenv("SUPABASE_URL")
	os.Unsetenv("LLM_PROVIDER")
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}

func TestLoad_Defaults_RootBasePath_And_MistralProvider(t *testing.T) {
	setRequired(t)
	// Intentionally leave API_BASE_PATH and LLM_PROVIDER unset

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIBasePath != "/" {
		t.Fatalf("API_BASE_PATH default expected '/', got %q", cfg.APIBasePath)
	}
	if cfg.LLM.Provider != ProviderMistral || cfg.LLM.Model != "mistral-small-latest" {
		t.Fatalf("llm defaults unexpected: %+v", cfg.LLM)
	}
	if cfg.LLM.ChatMaxTokens != 200 || cfg.LLM.ReflectionMaxTokens != 100 {
		t.Fatalf("token caps unexpected: %+v", cfg.LLM)
	}
}

func TestLoad_GeminiProvider_ReadsGeminiKeys(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gk")
	t.Setenv("MISTRAL_API_KEY", "mk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LLM.APIKey != "gk" || cfg.LLM.Model != "gemini-1.5-flash-latest" || cfg.LLM.URL != "" {
		t.Fatalf("gemini config unexpected: %+v", cfg.LLM)
	}
}

func TestLoad_SQLiteDriver_NoStoreURLNeeded(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SUPABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Driver != StoreDriverSQLite {
		t.Fatalf("driver unexpected: %q", cfg.Store.Driver)
	}
}

// setRequired provides the minimum environment for a valid default config.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "postgrest")
	t.Setenv("SUPABASE_URL", "https://proj.example.co")
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	setRequired(t)
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.APIBasePath == "" {
		t.Fatalf("unexpected empty config from MustLoad")
	}
}
