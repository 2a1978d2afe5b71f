package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vybdev/modelcat/catalog"
	"github.com/vybdev/modelcat/logging"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Loads and validates a catalog document without serving it.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Catalog.Path
		if len(args) > 0 {
			path = args[0]
		}
		src, err := catalog.FileSource(path)
		if err != nil {
			return err
		}
		set, err := catalog.Load(src)
		if err != nil {
			logging.Log.WithError(err).WithField("catalog", path).Debug("validation failed")
			return fmt.Errorf("%s is invalid: %w", path, err)
		}
		models, groups := set.Len()
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d models, %d groups (revision %s)\n",
			path, models, groups, set.Revision)
		return err
	},
}
