package einoopenai

import (
	"errors"
	"testing"
	"time"

	"github.com/vybdev/modelcat/llm/internal/args"
)

func TestChatConfig(t *testing.T) {
	t.Parallel()

	cfg, err := ChatConfig("openai", map[string]any{
		"model":       "gpt-4o",
		"api_key":     "sk-test",
		"base_url":    "https://example.invalid/v1",
		"timeout":     "30s",
		"temperature": 0.2,
		"max_tokens":  256,
		"stop":        []any{"END"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != "gpt-4o" || cfg.APIKey != "sk-test" || cfg.BaseURL != "https://example.invalid/v1" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Temperature == nil || *cfg.Temperature != float32(0.2) {
		t.Fatalf("Temperature = %v, want 0.2", cfg.Temperature)
	}
	if cfg.MaxTokens == nil || *cfg.MaxTokens != 256 {
		t.Fatalf("MaxTokens = %v, want 256", cfg.MaxTokens)
	}
	if cfg.TopP != nil {
		t.Fatalf("TopP should stay unset")
	}
	if len(cfg.Stop) != 1 || cfg.Stop[0] != "END" {
		t.Fatalf("Stop = %v", cfg.Stop)
	}
}

func TestEmbeddingConfig(t *testing.T) {
	t.Parallel()

	cfg, err := EmbeddingConfig("openai", map[string]any{"model": "text-embedding-3-small", "dimensions": 512})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dimensions == nil || *cfg.Dimensions != 512 {
		t.Fatalf("Dimensions = %v, want 512", cfg.Dimensions)
	}

	_, err = EmbeddingConfig("openai", map[string]any{"model": "m", "temperature": 0.1})
	var ae *args.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected args.Error for an embedding temperature, got %v", err)
	}
	if ae.Provider != "openai" {
		t.Fatalf("Provider = %q, want openai", ae.Provider)
	}
}
