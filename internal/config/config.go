package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime configuration for the ingest pipeline.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Port     int    `env:"PORT" envDefault:"8080"`

	// Directories
	SourceDir  string `env:"SOURCE_DIR" envDefault:"source_pdfs"`
	VaultDir   string `env:"VAULT_DIR" envDefault:"memory_vault"`
	EntropyDir string `env:"ENTROPY_DIR" envDefault:"entropy_logs"`
	MemoryDir  string `env:"MEMORY_DIR" envDefault:"memory_vault/hybrid"`

	// Chunking. Overlap must stay strictly below the chunk size or the
	// chunker cursor never advances.
	ChunkSize    int `env:"CHUNK_SIZE" envDefault:"3000" validate:"gt=0"`
	ChunkOverlap int `env:"CHUNK_OVERLAP" envDefault:"500" validate:"gte=0,ltfield=ChunkSize"`

	// Cap on how much of a document is sent for reflection. Content past
	// the cap is not reflected upon.
	ReflectionMaxChars int `env:"REFLECTION_MAX_CHARS" envDefault:"3000" validate:"gt=0"`

	// Primary provider (generateContent endpoint)
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-pro"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`

	// Fallback provider (OpenAI-compatible chat completions; defaults
	// target a local LM Studio style server)
	OpenAIKey     string `env:"OPENAI_API_KEY" envDefault:"lm-studio"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"http://localhost:1234/v1"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"phi-3-mini-4k-instruct"`

	// Generation parameters
	Temperature     float64       `env:"LLM_TEMPERATURE" envDefault:"0.3"`
	MaxOutputTokens int           `env:"LLM_MAX_TOKENS" envDefault:"1000" validate:"gt=0"`
	RequestTimeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`

	// Tag recorded on entries and appended to output filenames.
	ProcessorTag string `env:"PROCESSOR_TAG" envDefault:"gemini" validate:"required"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// Validate checks field and cross-field invariants.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
