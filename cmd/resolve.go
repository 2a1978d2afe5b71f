package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/vybdev/modelcat/catalog"
	"github.com/vybdev/modelcat/engine"
)

var resolveType string

var resolveCmd = &cobra.Command{
	Use:   "resolve [name]",
	Short: "Shows the model a logical name resolves to.",
	Long: `Shows the model a logical name resolves to. Without a name, the model
is picked interactively from the catalog entries of --type.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var t catalog.ModelType
		if resolveType != "" {
			parsed, err := catalog.ParseModelType(resolveType)
			if err != nil {
				return err
			}
			t = parsed
		}
		e, err := openEngine(cmd)
		if err != nil {
			return err
		}
		name, err := nameArg(e, args, t)
		if err != nil {
			return err
		}
		entry, err := e.Resolve(name, t)
		if err != nil {
			return err
		}
		return writeEntry(cmd.OutOrStdout(), name, entry)
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveType, "type", "t", "", "required model type (default: any)")
}

// nameArg returns the single positional argument, or asks the user to pick
// one of the catalog entries of type t (llm when t is empty).
func nameArg(e *engine.Engine, args []string, t catalog.ModelType) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if t == "" {
		t = catalog.ModelTypeLLM
	}
	items, err := e.ListCatalog(t)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", fmt.Errorf("catalog has no %s entries", t)
	}

	options := make([]string, len(items))
	for i, it := range items {
		options[i] = it.Name
	}
	var name string
	prompt := &survey.Select{
		Message: fmt.Sprintf("Pick a %s model:", t),
		Options: options,
		Description: func(_ string, i int) string {
			return items[i].Description
		},
	}
	if err := survey.AskOne(prompt, &name); err != nil {
		return "", err
	}
	return name, nil
}

// secretArgs are redacted when arguments are printed.
var secretArgs = []string{"key", "token", "secret", "password"}

func writeEntry(w io.Writer, name string, entry *catalog.ModelEntry) error {
	fmt.Fprintf(w, "%s -> %s\n", name, entry.Name)
	fmt.Fprintf(w, "  type:     %s\n", entry.Type)
	fmt.Fprintf(w, "  provider: %s\n", entry.Provider)
	if entry.Help != "" {
		fmt.Fprintf(w, "  help:     %s\n", entry.Help)
	}
	if len(entry.Fallbacks) > 0 {
		fmt.Fprintf(w, "  fallbacks: %s\n", strings.Join(entry.Fallbacks, ", "))
	}

	keys := make([]string, 0, len(entry.Args))
	for k := range entry.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		fmt.Fprintln(w, "  args:")
	}
	for _, k := range keys {
		_, err := fmt.Fprintf(w, "    %s: %v\n", k, redact(k, entry.Args[k]))
		if err != nil {
			return err
		}
	}
	return nil
}

func redact(key string, v any) any {
	lower := strings.ToLower(key)
	for _, s := range secretArgs {
		if strings.Contains(lower, s) {
			if str, ok := v.(string); ok && str != "" {
				return "****"
			}
		}
	}
	return v
}
