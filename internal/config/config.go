package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultGroqAPIURL   = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel        = "llama3-70b-8192"
	DefaultCORSOrigins  = "https://multi-cloud-iac-agent-i3d4dp7s.devinapps.com,http://localhost:5173"
	DefaultTemperature  = 0.2
	DefaultMaxTokens    = 4000
	DefaultGenTimeout   = 60 * time.Second
	DefaultRateLimitBst = 10
)

// Config holds all configuration for the API service. It is loaded once at
// startup and must not be modified afterwards.
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Outbound chat-completion API
	GroqAPIKey        string
	GroqAPIURL        string
	Model             string
	Temperature       float64
	MaxTokens         int
	GenerationTimeout time.Duration

	// HTTP surface
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	// Telemetry
	OTLPEndpoint string

	// Warnings collects values that failed to parse and were replaced by
	// defaults, so main can log them once the logger exists.
	Warnings []string
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8000"),
		Environment:  getEnv("GO_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		GroqAPIURL:   getEnv("GROQ_API_URL", DefaultGroqAPIURL),
		Model:        getEnv("GROQ_MODEL", DefaultModel),
		CORSOrigins:  ParseOrigins(lookupEnv("CORS_ORIGINS", DefaultCORSOrigins)),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	cfg.Temperature = cfg.getFloat("GENERATION_TEMPERATURE", DefaultTemperature)
	cfg.MaxTokens = cfg.getInt("GENERATION_MAX_TOKENS", DefaultMaxTokens)
	cfg.GenerationTimeout = cfg.getDuration("GENERATION_TIMEOUT", DefaultGenTimeout)
	cfg.RateLimitRPS = cfg.getFloat("RATE_LIMIT_RPS", 0)
	cfg.RateLimitBurst = cfg.getInt("RATE_LIMIT_BURST", DefaultRateLimitBst)
	return cfg
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasCredential reports whether an outbound API key is configured
func (c *Config) HasCredential() bool {
	return c.GroqAPIKey != ""
}

// ParseOrigins splits a comma-separated origin list, dropping blanks
func ParseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// lookupEnv is getEnv for variables where an explicit empty value is
// meaningful and must not be replaced by the default.
func lookupEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func (c *Config) getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		c.Warnings = append(c.Warnings, key+": invalid integer "+strconv.Quote(v))
		return def
	}
	return n
}

func (c *Config) getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		c.Warnings = append(c.Warnings, key+": invalid number "+strconv.Quote(v))
		return def
	}
	return f
}

func (c *Config) getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		c.Warnings = append(c.Warnings, key+": invalid duration "+strconv.Quote(v))
		return def
	}
	return d
}
