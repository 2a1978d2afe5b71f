package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRemapAPIKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		in     map[string]any
		target string
		want   map[string]any
	}{
		{
			name:   "renamed",
			in:     map[string]any{"api_key": "k", "model": "m"},
			target: "google_api_key",
			want:   map[string]any{"google_api_key": "k", "model": "m"},
		},
		{
			name:   "generic key replaces provider key",
			in:     map[string]any{"api_key": "generic", "google_api_key": "specific"},
			target: "google_api_key",
			want:   map[string]any{"google_api_key": "generic"},
		},
		{
			name:   "generic target",
			in:     map[string]any{"api_key": "k"},
			target: "api_key",
			want:   map[string]any{"api_key": "k"},
		},
		{
			name:   "no target",
			in:     map[string]any{"api_key": "k"},
			target: "",
			want:   map[string]any{"api_key": "k"},
		},
	}
	for _, c := range cases {
		snapshot := make(map[string]any, len(c.in))
		for k, v := range c.in {
			snapshot[k] = v
		}
		got := remapAPIKey(c.in, c.target)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("%s: mismatch (-want +got):\n%s", c.name, diff)
		}
		if diff := cmp.Diff(snapshot, c.in); diff != "" {
			t.Fatalf("%s: input map was modified (-before +after):\n%s", c.name, diff)
		}
	}
}

func TestRegistry_Dispatch(t *testing.T) {
	t.Parallel()

	var seen map[string]any
	fake := &recordingModel{}
	r := NewRegistry()
	require.NoError(t, r.Register(Provider{
		Name:      "Acme",
		APIKeyArg: "acme_token",
		NewChatModel: func(_ context.Context, args map[string]any) (model.BaseChatModel, error) {
			seen = args
			return fake, nil
		},
	}))

	args := map[string]any{"api_key": "secret"}
	m, err := r.NewChatModel(context.Background(), "acme", args)
	require.NoError(t, err)
	require.Same(t, fake, m)
	require.Equal(t, map[string]any{"acme_token": "secret"}, seen)
	require.Equal(t, map[string]any{"api_key": "secret"}, args, "caller args must not be modified")

	_, err = r.NewEmbedder(context.Background(), "acme", nil)
	var unsupported *UnsupportedProviderError
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, KindEmbedding, unsupported.Kind)
	require.Equal(t, "acme", unsupported.Provider)

	_, err = r.NewChatModel(context.Background(), "nobody", nil)
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, KindLLM, unsupported.Kind)
	require.Contains(t, err.Error(), "nobody")
}

func TestRegistry_ProviderUnavailable(t *testing.T) {
	t.Parallel()

	cause := errors.New("sdk not linked")
	calls := 0
	r := NewRegistry()
	require.NoError(t, r.Register(Provider{
		Name: "broken",
		NewEmbedder: func(context.Context, map[string]any) (embedding.Embedder, error) {
			calls++
			return nil, cause
		},
	}))

	_, err := r.NewEmbedder(context.Background(), "broken", map[string]any{})
	var unavailable *ProviderUnavailableError
	require.True(t, errors.As(err, &unavailable))
	require.Equal(t, KindEmbedding, unavailable.Kind)
	require.ErrorIs(t, err, cause)
	require.Equal(t, 1, calls, "construction must not be retried")
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ctor := func(context.Context, map[string]any) (model.BaseChatModel, error) { return nil, nil }

	require.Error(t, r.Register(Provider{NewChatModel: ctor}), "empty name")
	require.Error(t, r.Register(Provider{Name: "x"}), "no constructors")
	require.NoError(t, r.Register(Provider{Name: "x", NewChatModel: ctor}))
	require.Error(t, r.Register(Provider{Name: "X", NewChatModel: ctor}), "duplicate, case-insensitive")
}

func TestDefaultRegistry_ArgsErrors(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()

	// Missing model argument.
	_, err := r.NewChatModel(context.Background(), "openai", map[string]any{"api_key": "k"})
	var argsErr *ArgsError
	require.True(t, errors.As(err, &argsErr), "got %v", err)

	// Unknown arguments are rejected.
	_, err = r.NewEmbedder(context.Background(), "ollama", map[string]any{"model": "m", "temprature": 0.1})
	require.True(t, errors.As(err, &argsErr), "got %v", err)

	// Google needs a key.
	_, err = r.NewChatModel(context.Background(), "google", map[string]any{"model": "gemini-2.0-flash"})
	require.True(t, errors.As(err, &argsErr), "got %v", err)
	require.Contains(t, err.Error(), "google_api_key")
}

func TestDefaultRegistry_OpenAIChat(t *testing.T) {
	t.Parallel()

	m, err := DefaultRegistry().NewChatModel(context.Background(), "openai-compatible", map[string]any{
		"model":    "qwen-plus",
		"api_key":  "sk-test",
		"base_url": "http://127.0.0.1:1/v1",
		"timeout":  "5s",
	})
	require.NoError(t, err)
	require.NotNil(t, m)
}
