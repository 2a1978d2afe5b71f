package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/cbroglie/mustache"
	"github.com/spf13/cobra"

	"github.com/vybdev/modelcat/catalog"
)

var (
	listType     string
	listOutput   string
	listTemplate string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists catalog models and groups of one type.",
	Long: `Lists catalog models and groups of one type, models first, then ordered
by provider and name.

--template renders each row with a mustache template; the fields are
{{name}}, {{kind}}, {{type}}, {{provider}} and {{description}}.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := catalog.ParseModelType(listType)
		if err != nil {
			return err
		}
		e, err := openEngine(cmd)
		if err != nil {
			return err
		}
		items, err := e.ListCatalog(t)
		if err != nil {
			return err
		}
		return writeItems(cmd.OutOrStdout(), items, listOutput, listTemplate)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", catalog.ModelTypeLLM.String(), "model type to list")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "output format (table or json)")
	listCmd.Flags().StringVar(&listTemplate, "template", "", "mustache template rendered once per item")
}

func writeItems(w io.Writer, items []catalog.Item, output, tmpl string) error {
	if tmpl != "" {
		return renderItems(w, items, tmpl)
	}

	switch output {
	case "json":
		if items == nil {
			items = []catalog.Item{}
		}
		data, err := sonic.ConfigStd.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKIND\tPROVIDER\tDESCRIPTION")
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.Name, it.Kind, it.Provider, it.Description)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", output)
	}
}

func renderItems(w io.Writer, items []catalog.Item, tmpl string) error {
	t, err := mustache.ParseString(tmpl)
	if err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	for _, it := range items {
		line, err := t.Render(map[string]string{
			"name":        it.Name,
			"kind":        string(it.Kind),
			"type":        it.Type.String(),
			"provider":    it.Provider,
			"description": it.Description,
		})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, "\n")); err != nil {
			return err
		}
	}
	return nil
}
