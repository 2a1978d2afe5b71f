package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/spf13/cobra"
	"github.com/tiktoken-go/tokenizer"

	"github.com/vybdev/modelcat/catalog"
	"github.com/vybdev/modelcat/engine"
	"github.com/vybdev/modelcat/llm"
	"github.com/vybdev/modelcat/logging"
)

var (
	probePrompt      string
	probeSystem      string
	probeTemperature float32
	probeMaxTokens   int
)

var probeCmd = &cobra.Command{
	Use:   "probe [name]",
	Short: "Sends a prompt to a chat model, trying its fallbacks in order on failure.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine(cmd)
		if err != nil {
			return err
		}
		name, err := nameArg(e, args, catalog.ModelTypeLLM)
		if err != nil {
			return err
		}

		var opts []model.Option
		if cmd.Flags().Changed("temperature") {
			opts = append(opts, model.WithTemperature(probeTemperature))
		}
		if probeMaxTokens > 0 {
			opts = append(opts, model.WithMaxTokens(probeMaxTokens))
		}

		res, err := probe(cmd.Context(), e, name, buildMessages(probeSystem, probePrompt), opts...)
		w := cmd.OutOrStdout()
		if res != nil {
			fmt.Fprintf(w, "prompt tokens (cl100k_base): %d\n", res.PromptTokens)
			for _, a := range res.Failed {
				fmt.Fprintf(w, "%s failed: %v\n", a.Name, a.Err)
			}
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s answered:\n%s\n", res.Name, res.Answer)
		return err
	},
}

func init() {
	probeCmd.Flags().StringVarP(&probePrompt, "prompt", "p", "Reply with the single word: pong", "user prompt to send")
	probeCmd.Flags().StringVar(&probeSystem, "system", "", "optional system prompt")
	probeCmd.Flags().Float32Var(&probeTemperature, "temperature", 0, "sampling temperature bound to the call")
	probeCmd.Flags().IntVar(&probeMaxTokens, "max-tokens", 0, "maximum tokens to generate (0: provider default)")
}

type probeAttempt struct {
	Name string
	Err  error
}

type probeResult struct {
	Name         string
	Answer       string
	PromptTokens int
	Failed       []probeAttempt
}

func buildMessages(system, prompt string) []*schema.Message {
	var msgs []*schema.Message
	if system != "" {
		msgs = append(msgs, schema.SystemMessage(system))
	}
	return append(msgs, schema.UserMessage(prompt))
}

// probe sends msgs to the chat model for name and, when that fails, to each
// of its fallbacks in declared order until one answers.
func probe(ctx context.Context, e *engine.Engine, name string, msgs []*schema.Message, opts ...model.Option) (*probeResult, error) {
	res := &probeResult{}
	tokens, err := countTokens(msgs)
	if err != nil {
		return nil, err
	}
	res.PromptTokens = tokens

	primary, err := e.GetChatModel(ctx, name, opts...)
	if err != nil {
		return res, err
	}
	answer, err := primary.Generate(ctx, msgs)
	if err == nil {
		res.Name, res.Answer = name, answer.Content
		return res, nil
	}
	res.Failed = append(res.Failed, probeAttempt{Name: name, Err: err})
	logging.Log.WithError(err).WithField("model", name).Warn("primary model failed, trying fallbacks")

	names, err := e.Fallbacks(name, catalog.ModelTypeLLM)
	if err != nil {
		return res, err
	}
	fallbacks, err := e.GetFallbackChatModels(ctx, name)
	if err != nil {
		return res, err
	}
	for i, m := range fallbacks {
		answer, err := llm.Bind(m, opts...).Generate(ctx, msgs)
		if err != nil {
			res.Failed = append(res.Failed, probeAttempt{Name: names[i], Err: err})
			continue
		}
		res.Name, res.Answer = names[i], answer.Content
		return res, nil
	}

	errs := make([]error, len(res.Failed))
	for i, a := range res.Failed {
		errs[i] = fmt.Errorf("%s: %w", a.Name, a.Err)
	}
	return res, fmt.Errorf("no model answered: %w", errors.Join(errs...))
}

// countTokens estimates the prompt size with the cl100k_base encoding.
func countTokens(msgs []*schema.Message) (int, error) {
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return 0, err
	}
	var sb strings.Builder
	for _, m := range msgs {
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	tokens, _, _ := enc.Encode(sb.String())
	return len(tokens), nil
}
