package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"LogLevel", cfg.LogLevel, "info"},
		{"SourceDir", cfg.SourceDir, "source_pdfs"},
		{"VaultDir", cfg.VaultDir, "memory_vault"},
		{"EntropyDir", cfg.EntropyDir, "entropy_logs"},
		{"ChunkSize", cfg.ChunkSize, 3000},
		{"ChunkOverlap", cfg.ChunkOverlap, 500},
		{"ReflectionMaxChars", cfg.ReflectionMaxChars, 3000},
		{"GeminiModel", cfg.GeminiModel, "gemini-1.5-pro"},
		{"OpenAIModel", cfg.OpenAIModel, "phi-3-mini-4k-instruct"},
		{"ProcessorTag", cfg.ProcessorTag, "gemini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	originalSize := os.Getenv("CHUNK_SIZE")
	originalTag := os.Getenv("PROCESSOR_TAG")
	defer func() {
		os.Setenv("CHUNK_SIZE", originalSize)
		os.Setenv("PROCESSOR_TAG", originalTag)
	}()

	os.Setenv("CHUNK_SIZE", "1500")
	os.Setenv("PROCESSOR_TAG", "mistral")

	cfg := Load()

	if cfg.ChunkSize != 1500 {
		t.Errorf("expected chunk size 1500, got %d", cfg.ChunkSize)
	}
	if cfg.ProcessorTag != "mistral" {
		t.Errorf("expected processor tag 'mistral', got %s", cfg.ProcessorTag)
	}
}

func TestValidateRejectsNonAdvancingOverlap(t *testing.T) {
	cfg := Load()
	cfg.ChunkSize = 500
	cfg.ChunkOverlap = 500

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error when overlap equals chunk size")
	}

	cfg.ChunkOverlap = 600
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error when overlap exceeds chunk size")
	}
}
