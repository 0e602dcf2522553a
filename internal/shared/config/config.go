package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	LogLevel          string
	CORSAllowOrigin   []string
	RateLimitPerSec   float64
	RateLimitBurst    int
	CatalogPath       string
	CatalogWatch      bool
	CacheBackend      string
	CacheDir          string
	CacheTTL          CacheTTL
	CacheRetries      int
	RedisAddr         string
	RedisPassword     string
	DatabaseURL       string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	SSEKMSKeyID       string
	GitHubToken       string
	GitHubBaseURL     string
	FetchTimeout      time.Duration
	LLMProvider       string
	LLMModel          string
	OpenAIAPIKey      string
	GeminiAPIKey      string
	GenerationTimeout time.Duration
	Scenario          ScenarioWeights
	OTELEnabled       bool
	OTELEndpoint      string
	OTELInsecure      bool
	OTELSampleRatio   float64
	ServiceVersion    string
}

// CacheTTL holds per-kind freshness windows for the resource cache.
type CacheTTL struct {
	GitHub                 time.Duration
	ReferenceArchitectures time.Duration
	Tools                  time.Duration
	WebSearch              time.Duration
}

// ScenarioWeights overrides the scenario matcher scoring constants.
type ScenarioWeights struct {
	KeywordHint   int
	IndustryMatch int
	TypeHint      int
	TypeToken     int
	MinScore      int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	backend := normalizeCacheBackend(getEnv("CACHE_BACKEND", "file"))
	dbURL := os.Getenv("DATABASE_URL")

	if backend == "postgres" && dbURL == "" {
		log.Printf("CACHE_BACKEND=postgres requires DATABASE_URL; cache will fall back to file")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", defaultLogLevel(env)),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		RateLimitPerSec: getFloat("RATE_LIMIT_PER_SEC", 2),
		RateLimitBurst:  getInt("RATE_LIMIT_BURST", 10),
		CatalogPath:     getEnv("CATALOG_PATH", ""),
		CatalogWatch:    getBool("CATALOG_WATCH", false),
		CacheBackend:    backend,
		CacheDir:        getEnv("CACHE_DIR", "./data/cache"),
		CacheTTL: CacheTTL{
			GitHub:                 getHours("CACHE_TTL_GITHUB_HOURS", 6),
			ReferenceArchitectures: getHours("CACHE_TTL_REF_ARCH_HOURS", 24),
			Tools:                  getHours("CACHE_TTL_TOOLS_HOURS", 12),
			WebSearch:              getHours("CACHE_TTL_WEB_SEARCH_HOURS", 4),
		},
		CacheRetries:      getInt("CACHE_FETCH_ATTEMPTS", 2),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		DatabaseURL:       dbURL,
		AWSRegion:         getEnv("AWS_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", "rai-cache"),
		SSEKMSKeyID:       getEnv("SSE_KMS_KEY_ID", ""),
		GitHubToken:       getEnv("GITHUB_TOKEN", ""),
		GitHubBaseURL:     getEnv("GITHUB_API_URL", "https://api.github.com"),
		FetchTimeout:      time.Duration(getInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		LLMProvider:       normalizeProvider(getEnv("LLM_PROVIDER", "placeholder")),
		LLMModel:          getEnv("LLM_MODEL", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GenerationTimeout: time.Duration(getInt("GENERATION_TIMEOUT_SECONDS", 60)) * time.Second,
		Scenario: ScenarioWeights{
			KeywordHint:   getInt("SCENARIO_KEYWORD_HINT_WEIGHT", 12),
			IndustryMatch: getInt("SCENARIO_INDUSTRY_WEIGHT", 10),
			TypeHint:      getInt("SCENARIO_TYPE_HINT_WEIGHT", 14),
			TypeToken:     getInt("SCENARIO_TYPE_TOKEN_WEIGHT", 4),
			MinScore:      getInt("SCENARIO_MIN_SCORE", 6),
		},
		OTELEnabled:     getBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure:    getBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		OTELSampleRatio: clampRatio(getFloat("OTEL_SAMPLER_RATIO", 0.1)),
		ServiceVersion:  getEnv("SERVICE_VERSION", "dev"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config %s invalid float %q, using %v", key, raw, def)
		return def
	}
	return val
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config %s invalid bool %q, using %v", key, raw, def)
		return def
	}
	return val
}

func getHours(key string, def int) time.Duration {
	hours := getInt(key, def)
	if hours <= 0 {
		hours = def
	}
	return time.Duration(hours) * time.Hour
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeCacheBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "redis":
		return "redis"
	case "postgres", "pg":
		return "postgres"
	case "s3":
		return "s3"
	case "memory":
		return "memory"
	default:
		return "file"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "gemini", "google":
		return "gemini"
	default:
		return "placeholder"
	}
}

func clampRatio(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func defaultLogLevel(env string) string {
	if env == "production" {
		return "info"
	}
	return "debug"
}
