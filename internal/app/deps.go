package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"doc-ingest/internal/archive"
	"doc-ingest/internal/config"
	"doc-ingest/internal/entropy"
	"doc-ingest/internal/extract"
	"doc-ingest/internal/llm"
	"doc-ingest/internal/logger"
	"doc-ingest/internal/memory"
	"doc-ingest/internal/pipeline"
	"doc-ingest/internal/result"
)

// Deps bundles runtime dependencies shared by the CLI commands.
type Deps struct {
	Config  config.Config
	Log     *slog.Logger
	Archive archive.Store
	Results *result.Writer
}

// Build loads env and config and prepares shared components. Provider
// clients are only built for commands that process documents; see
// BuildPipeline.
func Build() (Deps, error) {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return Deps{}, fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.New(cfg.LogLevel)
	return Deps{
		Config:  cfg,
		Log:     log,
		Archive: archive.NewFileStore(filepath.Join(cfg.VaultDir, "valon", "valon_symbolic_archive.json")),
		Results: result.NewWriter(cfg.VaultDir),
	}, nil
}

// BuildPipeline wires the full orchestrator, including provider clients.
func BuildPipeline(deps Deps, link bool) (*pipeline.Orchestrator, error) {
	cfg := deps.Config

	primary, err := llm.NewGemini(llm.GeminiOptions{
		BaseURL:     cfg.GeminiBaseURL,
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxOutputTokens,
		Timeout:     cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize primary provider: %w", err)
	}
	fallback, err := llm.NewOpenAI(llm.OpenAIOptions{
		APIKey:      cfg.OpenAIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.OpenAIModel,
		Temperature: cfg.Temperature,
		Timeout:     cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fallback provider: %w", err)
	}

	// Linking needs the hybrid memory layer on disk; without it the run
	// proceeds unlinked.
	var linker memory.Linker = memory.Noop{}
	if link {
		if _, err := os.Stat(cfg.MemoryDir); err == nil {
			linker = memory.NewNodeStore(cfg.MemoryDir)
			deps.Log.Info("memory linking enabled", "dir", cfg.MemoryDir)
		} else {
			deps.Log.Warn("memory layer not present, linking disabled", "dir", cfg.MemoryDir)
		}
	}

	return &pipeline.Orchestrator{
		Extractor: extract.NewPDF(),
		Chain:     llm.NewChain(primary, fallback, deps.Log),
		Reflector: primary,
		Archive:   deps.Archive,
		Errors:    entropy.NewLog(cfg.EntropyDir),
		Results:   deps.Results,
		Memory:    linker,
		Log:       deps.Log,
		Opts: pipeline.Options{
			ChunkSize:          cfg.ChunkSize,
			ChunkOverlap:       cfg.ChunkOverlap,
			ReflectionMaxChars: cfg.ReflectionMaxChars,
			Processor:          cfg.ProcessorTag,
			Link:               link,
		},
	}, nil
}
