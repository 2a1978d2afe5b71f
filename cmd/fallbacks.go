package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vybdev/modelcat/catalog"
)

var fallbacksType string

var fallbacksCmd = &cobra.Command{
	Use:   "fallbacks <name>",
	Short: "Lists the fallbacks declared on a model or group.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := catalog.ParseModelType(fallbacksType)
		if err != nil {
			return err
		}
		e, err := openEngine(cmd)
		if err != nil {
			return err
		}
		names, err := e.Fallbacks(args[0], t)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(names) == 0 {
			_, err := fmt.Fprintf(w, "%s declares no fallbacks\n", args[0])
			return err
		}
		for i, name := range names {
			entry, err := e.Resolve(name, t)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d. %s -> %s (%s)\n", i+1, name, entry.Name, entry.Provider)
		}
		return nil
	},
}

func init() {
	fallbacksCmd.Flags().StringVarP(&fallbacksType, "type", "t", catalog.ModelTypeLLM.String(), "declared type of the owner")
}
