// Package ollama builds handles for models served by a local Ollama daemon.
package ollama

import (
	"context"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/vybdev/modelcat/llm/internal/args"
	"github.com/vybdev/modelcat/llm/internal/lcadapter"
)

// Provider is the identifier used in catalog documents.
const Provider = "ollama"

// Args are the catalog arguments accepted for Ollama models.
type Args struct {
	Model       string   `mapstructure:"model"`
	BaseURL     string   `mapstructure:"base_url"`
	Temperature *float64 `mapstructure:"temperature"`
}

func (a *Args) options() []ollama.Option {
	opts := []ollama.Option{ollama.WithModel(a.Model)}
	if a.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(a.BaseURL))
	}
	return opts
}

func decode(raw map[string]any) (*Args, error) {
	var a Args
	if err := args.Decode(Provider, raw, &a); err != nil {
		return nil, err
	}
	if err := args.Require(Provider, "model", a.Model); err != nil {
		return nil, err
	}
	return &a, nil
}

// NewChatModel constructs an Ollama chat model. No request is made until the
// model is used.
func NewChatModel(_ context.Context, raw map[string]any) (model.BaseChatModel, error) {
	a, err := decode(raw)
	if err != nil {
		return nil, err
	}
	client, err := ollama.New(a.options()...)
	if err != nil {
		return nil, err
	}
	var defaults []llms.CallOption
	if a.Temperature != nil {
		defaults = append(defaults, llms.WithTemperature(*a.Temperature))
	}
	return lcadapter.NewChatModel(client, defaults...), nil
}

// NewEmbedder constructs an Ollama embedding model.
func NewEmbedder(_ context.Context, raw map[string]any) (embedding.Embedder, error) {
	a, err := decode(raw)
	if err != nil {
		return nil, err
	}
	client, err := ollama.New(a.options()...)
	if err != nil {
		return nil, err
	}
	emb, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, err
	}
	return lcadapter.NewEmbedder(emb), nil
}
