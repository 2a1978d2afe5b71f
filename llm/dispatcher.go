package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vybdev/modelcat/llm/internal/einoopenai"
	"github.com/vybdev/modelcat/llm/internal/googleai"
	"github.com/vybdev/modelcat/llm/internal/ollama"
)

// genericAPIKeyArg is the provider-neutral argument name catalog authors use
// for credentials.
const genericAPIKeyArg = "api_key"

var tracer = otel.Tracer("github.com/vybdev/modelcat/llm")

// Registry maps provider identifiers to their constructors. Identifiers are
// case-insensitive. A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// DefaultRegistry returns a registry holding every built-in provider.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range builtins() {
		if err := r.Register(p); err != nil {
			panic(err) // builtins never collide
		}
	}
	return r
}

func builtins() []Provider {
	openaiProvider := func(name string) Provider {
		return Provider{
			Name:         name,
			APIKeyArg:    einoopenai.APIKeyArg,
			NewChatModel: einoopenai.NewChatModel(name),
			NewEmbedder:  einoopenai.NewEmbedder(name),
		}
	}
	return []Provider{
		openaiProvider("openai"),
		openaiProvider("openai-compatible"),
		{
			Name:         googleai.Provider,
			APIKeyArg:    googleai.APIKeyArg,
			NewChatModel: googleai.NewChatModel,
			NewEmbedder:  googleai.NewEmbedder,
		},
		{
			Name:         ollama.Provider,
			NewChatModel: ollama.NewChatModel,
			NewEmbedder:  ollama.NewEmbedder,
		},
	}
}

// Register adds p. Registering the same identifier twice is an error.
func (r *Registry) Register(p Provider) error {
	key := strings.ToLower(p.Name)
	if key == "" {
		return fmt.Errorf("provider name must not be empty")
	}
	if p.NewChatModel == nil && p.NewEmbedder == nil {
		return fmt.Errorf("provider %s has no constructors", p.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[key]; exists {
		return fmt.Errorf("provider %s is already registered", p.Name)
	}
	r.providers[key] = p
	return nil
}

// Names returns the registered identifiers in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) lookup(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[strings.ToLower(name)]
	return p, ok
}

// NewChatModel builds a chat model with the given provider. args is not
// modified.
func (r *Registry) NewChatModel(ctx context.Context, provider string, args map[string]any) (model.BaseChatModel, error) {
	p, ok := r.lookup(provider)
	if !ok || p.NewChatModel == nil {
		return nil, &UnsupportedProviderError{Provider: provider, Kind: KindLLM}
	}

	ctx, span := startSpan(ctx, provider, KindLLM)
	defer span.End()

	m, err := p.NewChatModel(ctx, remapAPIKey(args, p.APIKeyArg))
	if err != nil {
		return nil, unavailable(span, provider, KindLLM, err)
	}
	return m, nil
}

// NewEmbedder builds an embedding model with the given provider. args is not
// modified.
func (r *Registry) NewEmbedder(ctx context.Context, provider string, args map[string]any) (embedding.Embedder, error) {
	p, ok := r.lookup(provider)
	if !ok || p.NewEmbedder == nil {
		return nil, &UnsupportedProviderError{Provider: provider, Kind: KindEmbedding}
	}

	ctx, span := startSpan(ctx, provider, KindEmbedding)
	defer span.End()

	e, err := p.NewEmbedder(ctx, remapAPIKey(args, p.APIKeyArg))
	if err != nil {
		return nil, unavailable(span, provider, KindEmbedding, err)
	}
	return e, nil
}

// remapAPIKey returns a copy of args where the generic api_key argument is
// renamed to the provider's own key name. The renamed value replaces any
// provider-specific key already present.
func remapAPIKey(args map[string]any, target string) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	if target == "" || target == genericAPIKeyArg {
		return out
	}
	if v, ok := out[genericAPIKeyArg]; ok {
		delete(out, genericAPIKeyArg)
		out[target] = v
	}
	return out
}

func startSpan(ctx context.Context, provider string, kind Kind) (context.Context, trace.Span) {
	return tracer.Start(ctx, "llm.construct", trace.WithAttributes(
		attribute.String("llm.provider", provider),
		attribute.String("llm.kind", kind.String()),
	))
}

func unavailable(span trace.Span, provider string, kind Kind, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return &ProviderUnavailableError{Provider: provider, Kind: kind, Err: err}
}
