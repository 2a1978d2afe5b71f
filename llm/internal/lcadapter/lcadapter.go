// Package lcadapter exposes langchaingo models through the eino component
// interfaces used as provider handles.
package lcadapter

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
)

// ChatModel adapts an llms.Model to model.BaseChatModel.
type ChatModel struct {
	llm      llms.Model
	defaults []llms.CallOption
}

// NewChatModel wraps m. defaults are applied to every call before the
// per-call options, so per-call options win.
func NewChatModel(m llms.Model, defaults ...llms.CallOption) *ChatModel {
	return &ChatModel{llm: m, defaults: defaults}
}

func (c *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	resp, err := c.llm.GenerateContent(ctx, toContent(input), c.callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, errors.New("langchaingo: empty response")
	}
	return schema.AssistantMessage(resp.Choices[0].Content, nil), nil
}

// Stream returns the full response as a single chunk; the wrapped models are
// only driven through their blocking API.
func (c *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := c.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (c *ChatModel) callOptions(opts []model.Option) []llms.CallOption {
	out := append([]llms.CallOption(nil), c.defaults...)
	common := model.GetCommonOptions(&model.Options{}, opts...)
	if common.Model != nil {
		out = append(out, llms.WithModel(*common.Model))
	}
	if common.Temperature != nil {
		out = append(out, llms.WithTemperature(float64(*common.Temperature)))
	}
	if common.TopP != nil {
		out = append(out, llms.WithTopP(float64(*common.TopP)))
	}
	if common.MaxTokens != nil {
		out = append(out, llms.WithMaxTokens(*common.MaxTokens))
	}
	if len(common.Stop) > 0 {
		out = append(out, llms.WithStopWords(common.Stop))
	}
	return out
}

func toContent(input []*schema.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(input))
	for _, m := range input {
		if m == nil {
			continue
		}
		out = append(out, llms.TextParts(roleOf(m.Role), m.Content))
	}
	return out
}

func roleOf(r schema.RoleType) llms.ChatMessageType {
	switch r {
	case schema.System:
		return llms.ChatMessageTypeSystem
	case schema.Assistant:
		return llms.ChatMessageTypeAI
	case schema.Tool:
		return llms.ChatMessageTypeTool
	default:
		return llms.ChatMessageTypeHuman
	}
}

// Embedder adapts an embeddings.Embedder to embedding.Embedder.
type Embedder struct {
	emb embeddings.Embedder
}

// NewEmbedder wraps e.
func NewEmbedder(e embeddings.Embedder) *Embedder {
	return &Embedder{emb: e}
}

func (e *Embedder) EmbedStrings(ctx context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	vecs, err := e.emb.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(vecs))
	for i, v := range vecs {
		row := make([]float64, len(v))
		for j, f := range v {
			row[j] = float64(f)
		}
		out[i] = row
	}
	return out, nil
}

var (
	_ model.BaseChatModel = (*ChatModel)(nil)
	_ embedding.Embedder  = (*Embedder)(nil)
)
