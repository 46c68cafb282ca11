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

	// App
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("APP_ID", "kku-app")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("MAX_PROMPT_RUNES", "500")

	// Completion
	t.Setenv("COMPLETION_BASE_URL", "http://llm.local/v1")
	t.Setenv("COMPLETION_API_KEY", "  sk-test  ")
	t.Setenv("COMPLETION_MODEL", "m1")
	t.Setenv("COMPLETION_MAX_TOKENS", "64")

	// Ledger
	t.Setenv("LEDGER_BACKEND", " REMOTE ")
	t.Setenv("LEDGER_URL", "https://script.google.com/macros/s/x/exec")
	t.Setenv("LEDGER_SAVE_ENABLED", "no")
	t.Setenv("LEDGER_ALLOWED_PREFIX", "https://script.google.com/")
	t.Setenv("LEDGER_TIMEOUT", "5s")

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

	// App
	if cfg.DBPath != "db.sqlite" || cfg.AppID != "kku-app" || cfg.SessionTTL != 2*time.Hour || cfg.MaxPromptRunes != 500 {
		t.Fatalf("app fields unexpected: %+v", cfg)
	}

	// Completion
	if cfg.Completion != (CompletionConfig{BaseURL: "http://llm.local/v1", APIKey: "sk-test", Model: "m1", MaxTokens: 64}) {
		t.Fatalf("completion unexpected: %+v", cfg.Completion)
	}

	// Ledger
	want := LedgerConfig{
		Backend:       LedgerRemote,
		URL:           "https://script.google.com/macros/s/x/exec",
		SaveEnabled:   false,
		AllowedPrefix: "https://script.google.com/",
		Timeout:       5 * time.Second,
	}
	if cfg.Ledger != want {
		t.Fatalf("ledger unexpected: %+v", cfg.Ledger)
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
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"blank port", map[string]string{"PORT": "   "}, "PORT must not be empty"},
		{"zero timeout", map[string]string{"READ_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"header bytes", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"blank db path", map[string]string{"DB_PATH": "   "}, "DB_PATH must not be empty"},
		{"session ttl", map[string]string{"SESSION_TTL": "0s"}, "SESSION_TTL"},
		{"prompt runes", map[string]string{"MAX_PROMPT_RUNES": "-1"}, "MAX_PROMPT_RUNES"},
		{"max tokens", map[string]string{"COMPLETION_MAX_TOKENS": "0"}, "COMPLETION_MAX_TOKENS"},
		{"ledger backend", map[string]string{"LEDGER_BACKEND": "sheets"}, "LEDGER_BACKEND"},
		{"remote without url", map[string]string{"LEDGER_BACKEND": "remote", "LEDGER_URL": " "}, "LEDGER_URL"},
		{"ledger timeout", map[string]string{"LEDGER_TIMEOUT": "-1s"}, "LEDGER_TIMEOUT"},
		{"rate rps", map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		{"rate burst", map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		{"hsts max age", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"idempotency ttl", map[string]string{"IDEMPOTENCY_TTL": "0s"}, "IDEMPOTENCY_TTL"},
		{"sample ratio", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); !containsErr(err, tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	t.Setenv("RATE_BURST", "0")
	t.Setenv("COMPLETION_MAX_TOKENS", "0")

	_, err := Load()
	if !containsErr(err, "RATE_BURST") || !containsErr(err, "COMPLETION_MAX_TOKENS") {
		t.Fatalf("want both problems reported, got %v", err)
	}
}

// --- helpers ---

func TestEnvHelpers(t *testing.T) {
	t.Setenv("H_EMPTY", "")
	t.Setenv("H_STR", "val")
	t.Setenv("H_FLOAT", "0.5")
	t.Setenv("H_INT", "42")
	t.Setenv("H_DUR", "150ms")
	t.Setenv("H_BAD", "zzz")

	if getenv("H_EMPTY", "d") != "d" || getenv("H_STR", "d") != "val" {
		t.Fatal("getenv")
	}
	if getfloat("H_FLOAT", 0) != 0.5 || getfloat("H_BAD", 1.5) != 1.5 {
		t.Fatal("getfloat")
	}
	if getint("H_INT", 0) != 42 || getint("H_BAD", 7) != 7 {
		t.Fatal("getint")
	}
	if getdur("H_DUR", time.Second) != 150*time.Millisecond || getdur("H_BAD", 2*time.Second) != 2*time.Second {
		t.Fatal("getdur")
	}
}

func TestGetbool(t *testing.T) {
	cases := []struct {
		in       string
		def      bool
		expected bool
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
		{"maybe", false, false},
		{"maybe", true, true},
	}
	for _, tc := range cases {
		t.Setenv("H_BOOL", tc.in)
		if got := getbool("H_BOOL", tc.def); got != tc.expected {
			t.Fatalf("getbool(%q, %v) = %v", tc.in, tc.def, got)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("want nil, got %#v", out)
	}
	got := splitCSV(" https://a.example, ,https://b.example ,")
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestNormalizeBasePath(t *testing.T) {
	for in, want := range map[string]string{
		"":          "/",
		" / ":       "/",
		"v1":        "/v1",
		"/api/v1/":  "/api/v1",
		"/api/v1//": "/api/v1",
	} {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

// Ensure tests don't leak env to others.
func TestMain(m *testing.M) {
	for _, k := range []string{"PORT", "DB_PATH", "APP_ID", "COMPLETION_API_KEY", "COMPLETION_BASE_URL",
		"COMPLETION_MODEL", "LEDGER_BACKEND", "LEDGER_URL", "LEDGER_SAVE_ENABLED", "LEDGER_ALLOWED_PREFIX", "OTEL_SERVICE_NAME"} {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("API_BASE_PATH default expected '/api/v1', got %q", cfg.APIBasePath)
	}
	if !strings.Contains(cfg.DBPath, "mode=memory") {
		t.Fatalf("expected in-memory DB default, got %q", cfg.DBPath)
	}
	if cfg.Completion.BaseURL != "https://gen.ai.kku.ac.th/api/v1" ||
		cfg.Completion.Model != "gemini-2.5-flash-lite" ||
		cfg.Completion.MaxTokens != 150 ||
		cfg.Completion.APIKey != "" {
		t.Fatalf("completion defaults unexpected: %+v", cfg.Completion)
	}
	if cfg.Ledger.Backend != LedgerLocal || !cfg.Ledger.SaveEnabled || cfg.Ledger.AllowedPrefix != "" {
		t.Fatalf("ledger defaults unexpected: %+v", cfg.Ledger)
	}
	if cfg.AppID != "local-mental-health-app-id" || cfg.OTEL.ServiceName != "go-wellbeing-backend" {
		t.Fatalf("app defaults unexpected: %+v", cfg)
	}
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	// No special env needed; defaults are valid.
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
