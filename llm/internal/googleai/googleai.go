// Package googleai builds Gemini handles through langchaingo.
package googleai

import (
	"context"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/vybdev/modelcat/llm/internal/args"
	"github.com/vybdev/modelcat/llm/internal/lcadapter"
)

// Provider is the identifier used in catalog documents.
const Provider = "google"

// APIKeyArg is the argument name the Google constructors read the key from.
// Catalog entries may use the generic api_key instead.
const APIKeyArg = "google_api_key"

// Args are the catalog arguments accepted for Google models.
type Args struct {
	Model       string   `mapstructure:"model"`
	APIKey      string   `mapstructure:"google_api_key"`
	Temperature *float64 `mapstructure:"temperature"`
	TopP        *float64 `mapstructure:"top_p"`
	MaxTokens   *int     `mapstructure:"max_tokens"`
}

func decode(raw map[string]any) (*Args, error) {
	var a Args
	if err := args.Decode(Provider, raw, &a); err != nil {
		return nil, err
	}
	if err := args.Require(Provider, "model", a.Model); err != nil {
		return nil, err
	}
	if err := args.Require(Provider, APIKeyArg, a.APIKey); err != nil {
		return nil, err
	}
	return &a, nil
}

// CallDefaults returns the per-call options derived from a.
func (a *Args) CallDefaults() []llms.CallOption {
	var out []llms.CallOption
	if a.Temperature != nil {
		out = append(out, llms.WithTemperature(*a.Temperature))
	}
	if a.TopP != nil {
		out = append(out, llms.WithTopP(*a.TopP))
	}
	if a.MaxTokens != nil {
		out = append(out, llms.WithMaxTokens(*a.MaxTokens))
	}
	return out
}

// NewChatModel constructs a Gemini chat model.
func NewChatModel(ctx context.Context, raw map[string]any) (model.BaseChatModel, error) {
	a, err := decode(raw)
	if err != nil {
		return nil, err
	}
	client, err := googleai.New(ctx, googleai.WithAPIKey(a.APIKey), googleai.WithDefaultModel(a.Model))
	if err != nil {
		return nil, err
	}
	return lcadapter.NewChatModel(client, a.CallDefaults()...), nil
}

// NewEmbedder constructs a Gemini embedding model.
func NewEmbedder(ctx context.Context, raw map[string]any) (embedding.Embedder, error) {
	a, err := decode(raw)
	if err != nil {
		return nil, err
	}
	client, err := googleai.New(ctx, googleai.WithAPIKey(a.APIKey), googleai.WithDefaultEmbeddingModel(a.Model))
	if err != nil {
		return nil, err
	}
	emb, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, err
	}
	return lcadapter.NewEmbedder(emb), nil
}
