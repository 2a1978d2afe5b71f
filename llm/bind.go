package llm

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Bind returns a view of m that applies opts to every call. m itself is not
// modified, so a cached model can be bound by many callers with different
// options at once. Options passed at call time are applied after the bound
// ones and override them.
func Bind(m model.BaseChatModel, opts ...model.Option) model.BaseChatModel {
	if len(opts) == 0 {
		return m
	}
	if b, ok := m.(*boundChatModel); ok {
		merged := make([]model.Option, 0, len(b.opts)+len(opts))
		merged = append(merged, b.opts...)
		return &boundChatModel{base: b.base, opts: append(merged, opts...)}
	}
	return &boundChatModel{base: m, opts: append([]model.Option(nil), opts...)}
}

// Unbind returns the model a bound view was created from, or m itself.
func Unbind(m model.BaseChatModel) model.BaseChatModel {
	if b, ok := m.(*boundChatModel); ok {
		return b.base
	}
	return m
}

type boundChatModel struct {
	base model.BaseChatModel
	opts []model.Option
}

func (b *boundChatModel) withCallOptions(opts []model.Option) []model.Option {
	out := make([]model.Option, 0, len(b.opts)+len(opts))
	out = append(out, b.opts...)
	return append(out, opts...)
}

func (b *boundChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return b.base.Generate(ctx, input, b.withCallOptions(opts)...)
}

func (b *boundChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return b.base.Stream(ctx, input, b.withCallOptions(opts)...)
}
