package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DevJWTSecret is used when JWT_SECRET is unset. It is fine for local runs
// and tests only.
const DevJWTSecret = "dev-secret-change-me"

type Config struct {
	HTTPAddr        string
	APIBaseURL      string
	DatabasePath    string
	JWTSecret       string
	JWTIssuer       string
	JWTTTL          time.Duration
	SubmissionTTL   time.Duration
	ShutdownTimeout time.Duration
	OTelLogsEnabled bool
	LogLevel        string
}

// Load reads the configuration from the process environment, applying
// defaults for unset variables.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPAddr:     stringOr(getenv("HTTP_ADDR"), ":8080"),
		APIBaseURL:   strings.TrimRight(getenv("API_BASE_URL"), "/"),
		DatabasePath: stringOr(getenv("DATABASE_PATH"), "calculations.db"),
		JWTSecret:    stringOr(getenv("JWT_SECRET"), DevJWTSecret),
		JWTIssuer:    stringOr(getenv("JWT_ISSUER"), "calculation-console"),
		LogLevel:     getenv("LOG_LEVEL"),
	}

	var errs []error

	durations := []struct {
		key string
		def time.Duration
		dst *time.Duration
	}{
		{"JWT_TTL", 30 * time.Minute, &cfg.JWTTTL},
		{"SUBMISSION_TTL", 10 * time.Minute, &cfg.SubmissionTTL},
		{"SHUTDOWN_TIMEOUT", 5 * time.Second, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, err := durationOr(getenv(d.key), d.def)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.key, err))
			continue
		}
		*d.dst = v
	}

	if raw := getenv("OTEL_LOGS_ENABLED"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("OTEL_LOGS_ENABLED: %w", err))
		}
		cfg.OTelLogsEnabled = v
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolvedAPIBaseURL returns the API base URL, defaulting to the server's own
// listen address so that the console and API share an origin.
func (c Config) ResolvedAPIBaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	host := c.HTTPAddr
	if strings.HasPrefix(host, ":") {
		host = "127.0.0.1" + host
	}
	return "http://" + host
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func durationOr(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
