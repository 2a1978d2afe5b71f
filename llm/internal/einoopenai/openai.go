// Package einoopenai builds OpenAI and OpenAI-compatible handles on top of
// the eino-ext openai components.
package einoopenai

import (
	"context"
	"time"

	openaiembed "github.com/cloudwego/eino-ext/components/embedding/openai"
	openaichat "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"

	"github.com/vybdev/modelcat/llm/internal/args"
)

// APIKeyArg is the argument name the OpenAI constructors read the key from.
const APIKeyArg = "api_key"

// ChatArgs are the catalog arguments accepted for chat models.
type ChatArgs struct {
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature *float32      `mapstructure:"temperature"`
	TopP        *float32      `mapstructure:"top_p"`
	MaxTokens   *int          `mapstructure:"max_tokens"`
	Stop        []string      `mapstructure:"stop"`
	ByAzure     bool          `mapstructure:"by_azure"`
	APIVersion  string        `mapstructure:"api_version"`
}

// EmbeddingArgs are the catalog arguments accepted for embedding models.
type EmbeddingArgs struct {
	Model      string        `mapstructure:"model"`
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Dimensions *int          `mapstructure:"dimensions"`
	ByAzure    bool          `mapstructure:"by_azure"`
	APIVersion string        `mapstructure:"api_version"`
}

// ChatConfig converts raw catalog arguments into the eino-ext chat config.
func ChatConfig(provider string, raw map[string]any) (*openaichat.ChatModelConfig, error) {
	var a ChatArgs
	if err := args.Decode(provider, raw, &a); err != nil {
		return nil, err
	}
	if err := args.Require(provider, "model", a.Model); err != nil {
		return nil, err
	}
	return &openaichat.ChatModelConfig{
		APIKey:      a.APIKey,
		BaseURL:     a.BaseURL,
		Model:       a.Model,
		Timeout:     a.Timeout,
		Temperature: a.Temperature,
		TopP:        a.TopP,
		MaxTokens:   a.MaxTokens,
		Stop:        a.Stop,
		ByAzure:     a.ByAzure,
		APIVersion:  a.APIVersion,
	}, nil
}

// EmbeddingConfig converts raw catalog arguments into the eino-ext embedding
// config.
func EmbeddingConfig(provider string, raw map[string]any) (*openaiembed.EmbeddingConfig, error) {
	var a EmbeddingArgs
	if err := args.Decode(provider, raw, &a); err != nil {
		return nil, err
	}
	if err := args.Require(provider, "model", a.Model); err != nil {
		return nil, err
	}
	return &openaiembed.EmbeddingConfig{
		APIKey:     a.APIKey,
		BaseURL:    a.BaseURL,
		Model:      a.Model,
		Timeout:    a.Timeout,
		Dimensions: a.Dimensions,
		ByAzure:    a.ByAzure,
		APIVersion: a.APIVersion,
	}, nil
}

// NewChatModel is the chat constructor registered for "openai" and
// "openai-compatible".
func NewChatModel(provider string) func(context.Context, map[string]any) (model.BaseChatModel, error) {
	return func(ctx context.Context, raw map[string]any) (model.BaseChatModel, error) {
		cfg, err := ChatConfig(provider, raw)
		if err != nil {
			return nil, err
		}
		cm, err := openaichat.NewChatModel(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return cm, nil
	}
}

// NewEmbedder is the embedding constructor registered for "openai" and
// "openai-compatible".
func NewEmbedder(provider string) func(context.Context, map[string]any) (embedding.Embedder, error) {
	return func(ctx context.Context, raw map[string]any) (embedding.Embedder, error) {
		cfg, err := EmbeddingConfig(provider, raw)
		if err != nil {
			return nil, err
		}
		em, err := openaiembed.NewEmbedder(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return em, nil
	}
}
