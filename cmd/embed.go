package cmd

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var embedJSON bool

var embedCmd = &cobra.Command{
	Use:   "embed <name> <text>...",
	Short: "Embeds texts with an embedding model and prints the vectors' dimensions.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine(cmd)
		if err != nil {
			return err
		}
		embedder, err := e.GetEmbeddingModel(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		vectors, err := embedder.EmbedStrings(cmd.Context(), args[1:])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if embedJSON {
			data, err := sonic.Marshal(vectors)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		}
		for i, v := range vectors {
			head := v
			if len(head) > 4 {
				head = head[:4]
			}
			fmt.Fprintf(w, "%d. %d dimensions %v...\n", i+1, len(v), head)
		}
		return nil
	},
}

func init() {
	embedCmd.Flags().BoolVar(&embedJSON, "json", false, "print the full vectors as JSON")
}
