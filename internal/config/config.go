package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Gemini (experiment structuring)
	GeminiAPIKey        string
	GeminiModel         string
	GeminiBaseURL       string
	GeminiDisableV1Beta bool

	// Ollama (assistant)
	OllamaURL        string
	OllamaChatModel  string
	OllamaEmbedModel string

	// CORS
	AllowedOrigins []string

	// Upload limits
	MaxUploadBytes int64

	// Chunking
	ChunkSize    int
	ChunkOverlap int

	// Vector index
	IndexPath string

	// LLM call timeouts and stats
	LLMTimeout  time.Duration
	StatsWindow time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is folded in first when present; real environment
// variables win. A missing GOOGLE_API_KEY is not fatal here; the
// gateway degrades to a failed state and every generation call reports
// the configuration error instead.
func Load(defaultPort string) Config {
	godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", defaultPort),

		GeminiAPIKey:        os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:         envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:       envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiDisableV1Beta: envBool("GEMINI_DISABLE_V1BETA", false),

		OllamaURL:        envOr("OLLAMA_URL", "http://localhost:11434"),
		OllamaChatModel:  envOr("OLLAMA_CHAT_MODEL", "phi3:mini"),
		OllamaEmbedModel: envOr("OLLAMA_EMBED_MODEL", "all-minilm"),

		AllowedOrigins: []string{envOr("ALLOWED_ORIGIN", "http://localhost:5173")},

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		ChunkSize:    envInt("CHUNK_SIZE", 10000),
		ChunkOverlap: envInt("CHUNK_OVERLAP", 1000),

		IndexPath: envOr("INDEX_PATH", "labmate_index.db"),

		LLMTimeout:  envDuration("LLM_TIMEOUT", 120*time.Second),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 10000
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = 1000
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 120 * time.Second
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
