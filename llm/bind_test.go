package llm

import (
	"context"
	"sync"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

func TestBind_DoesNotAffectBase(t *testing.T) {
	t.Parallel()

	base := &recordingModel{}
	hot := Bind(base, model.WithTemperature(0.9))
	cold := Bind(base, model.WithTemperature(0.1))

	if Unbind(hot) != base || Unbind(cold) != base {
		t.Fatalf("bound views must wrap the same base model")
	}
	if Bind(base) != model.BaseChatModel(base) {
		t.Fatalf("Bind without options must return the model itself")
	}

	ctx := context.Background()
	in := []*schema.Message{schema.UserMessage("hi")}

	if _, err := hot.Generate(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := *base.last().Temperature; got != 0.9 {
		t.Fatalf("hot temperature = %v, want 0.9", got)
	}

	if _, err := base.Generate(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.last().Temperature != nil {
		t.Fatalf("unbound call saw temperature %v", *base.last().Temperature)
	}

	if _, err := cold.Generate(ctx, in, model.WithTemperature(0.5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := *base.last().Temperature; got != 0.5 {
		t.Fatalf("call-time option should win, got %v", got)
	}
}

func TestBind_Nested(t *testing.T) {
	t.Parallel()

	base := &recordingModel{}
	m := Bind(Bind(base, model.WithTemperature(0.2)), model.WithMaxTokens(64))
	if Unbind(m) != base {
		t.Fatalf("nested bind must flatten onto the base model")
	}
	if _, err := m.Generate(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := base.last()
	if got.Temperature == nil || *got.Temperature != 0.2 || got.MaxTokens == nil || *got.MaxTokens != 64 {
		t.Fatalf("unexpected options %+v", got)
	}
}

func TestBind_Concurrent(t *testing.T) {
	t.Parallel()

	base := &recordingModel{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			temp := float32(i) / 10
			m := Bind(base, model.WithTemperature(temp))
			if _, err := m.Generate(context.Background(), nil); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()
	if len(base.calls) != 20 {
		t.Fatalf("expected 20 calls, got %d", len(base.calls))
	}
}

func TestBind_Stream(t *testing.T) {
	t.Parallel()

	base := &recordingModel{}
	sr, err := Bind(base, model.WithModel("override")).Stream(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sr.Close()
	msg, err := sr.Recv()
	if err != nil || msg.Content != "ok" {
		t.Fatalf("Recv() = %v, %v", msg, err)
	}
	if got := base.last().Model; got == nil || *got != "override" {
		t.Fatalf("stream did not receive bound options")
	}
}
