// Package config provides application configuration loaded from environment
// variables with defaults and validation. Values are looked up in this order:
// the process environment, a .env file (ENV_FILE, default ".env"), and an
// optional config file named by CONFIG_FILE (YAML, TOML or JSON). It
// centralizes server timeouts, logging, storage and seeding, the calendar,
// rate limiting and observability.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tbourn/priority-radar/internal/calendar"
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
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
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

	// Storage
	DBPath   string // SQLite path; ":memory:" keeps everything in process
	SeedPath string // JSON/YAML dataset; empty uses the embedded default

	// Behaviour
	SimulatedLatency time.Duration // base delay before each service call
	LatencyJitter    time.Duration // extra random delay in [0, jitter)
	Timezone         string        // IANA name used for "today"
	Location         *time.Location
	WeekStart        time.Weekday
	DefaultUserID    string // user assumed when X-User-ID is absent

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

// Calendar builds the calendar described by Timezone and WeekStart on the
// system clock.
func (c Config) Calendar() *calendar.Calendar {
	return calendar.New(nil, c.Location, c.WeekStart)
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from the layered sources, applies defaults,
// normalizes values, and validates the result.
func Load() (Config, error) {
	if err := loadDotEnv(os.Getenv("ENV_FILE")); err != nil {
		return Config{}, err
	}
	src, err := newSource(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		// Server
		Port:              src.getenv("PORT", "8080"),
		ReadTimeout:       src.getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: src.getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      src.getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       src.getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    src.getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(src.getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(src.getenv("LOG_LEVEL", "info")),
		LogPretty:      src.getbool("LOG_PRETTY", false),
		SwaggerEnabled: src.getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(src.getenv("API_BASE_PATH", "/api/v1")),

		// Storage
		DBPath:   src.getenv("DB_PATH", ":memory:"),
		SeedPath: strings.TrimSpace(src.getenv("SEED_PATH", "")),

		// Behaviour
		SimulatedLatency: src.getdur("SIMULATED_LATENCY", 0),
		LatencyJitter:    src.getdur("LATENCY_JITTER", 0),
		Timezone:         strings.TrimSpace(src.getenv("TIMEZONE", "UTC")),
		DefaultUserID:    strings.TrimSpace(src.getenv("DEFAULT_USER_ID", "user-1")),

		// Rate limiting
		RateRPS:   src.getfloat("RATE_RPS", 5.0),
		RateBurst: src.getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(src.getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: src.getbool("ENABLE_HSTS", false),
			HSTSMaxAge: src.getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: src.getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     src.getbool("OTEL_ENABLED", false),
			Endpoint:    src.getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    src.getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: src.getenv("OTEL_SERVICE_NAME", "priority-radar"),
			SampleRatio: src.getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
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
	if cfg.SimulatedLatency < 0 || cfg.LatencyJitter < 0 {
		return cfg, errors.New("SIMULATED_LATENCY and LATENCY_JITTER must be >= 0")
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return cfg, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc
	ws, err := calendar.ParseWeekday(src.getenv("WEEK_START", "sunday"))
	if err != nil {
		return cfg, fmt.Errorf("WEEK_START: %w", err)
	}
	cfg.WeekStart = ws
	if cfg.DefaultUserID == "" {
		return cfg, errors.New("DEFAULT_USER_ID must not be empty")
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

// loadDotEnv copies variables from a .env file into the environment without
// overriding ones already set. A missing default file is not an error; a
// missing file that was named explicitly is.
func loadDotEnv(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("ENV_FILE %s: %w", path, err)
}

// source resolves keys from the environment first and the config file second.
type source struct {
	file *viper.Viper
}

func newSource(path string) (source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return source{}, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return source{}, fmt.Errorf("CONFIG_FILE %s: %w", path, err)
	}
	return source{file: v}, nil
}

func (s source) lookup(k string) (string, bool) {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v, true
	}
	if s.file != nil && s.file.IsSet(k) {
		if v := s.file.GetString(k); v != "" {
			return v, true
		}
	}
	return "", false
}

func (s source) getenv(k, def string) string {
	if v, ok := s.lookup(k); ok {
		return v
	}
	return def
}

func (s source) getfloat(k string, def float64) float64 {
	if v, ok := s.lookup(k); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func (s source) getint(k string, def int) int {
	if v, ok := s.lookup(k); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return def
}

func (s source) getbool(k string, def bool) bool {
	if v, ok := s.lookup(k); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func (s source) getdur(k string, def time.Duration) time.Duration {
	if v, ok := s.lookup(k); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
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
