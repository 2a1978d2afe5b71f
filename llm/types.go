package llm

import (
	"context"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
)

// Kind is the family of handle a caller asked a provider for.
//
// NOTE: keep the string literals lowercase, they appear in error messages
// and metric labels.
type Kind string

const (
	// KindLLM is a chat/completion handle (model.BaseChatModel).
	KindLLM Kind = "llm"

	// KindEmbedding is an embedding handle (embedding.Embedder).
	KindEmbedding Kind = "embedding"
)

func (k Kind) String() string { return string(k) }

// ChatConstructor builds a chat model from a catalog entry's arguments.
type ChatConstructor func(ctx context.Context, args map[string]any) (model.BaseChatModel, error)

// EmbedderConstructor builds an embedding model from a catalog entry's
// arguments.
type EmbedderConstructor func(ctx context.Context, args map[string]any) (embedding.Embedder, error)

// Provider describes how to construct handles for one provider identifier.
// Either constructor may be nil when the provider does not offer that kind of
// model.
type Provider struct {
	Name string

	// APIKeyArg is the argument name the constructors expect the API key
	// under. A generic "api_key" argument is renamed to it before the
	// constructor runs. Empty means no renaming.
	APIKeyArg string

	NewChatModel ChatConstructor
	NewEmbedder  EmbedderConstructor
}
