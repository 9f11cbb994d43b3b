package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dirCmd = &cobra.Command{
	Use:     "dir",
	Aliases: []string{"d"},
	Short:   "Print the storage root",
	Args:    exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			outputSuccess(map[string]interface{}{"path": cfg.Path, "extension": cfg.Extension}, nil)
			return nil
		}
		fmt.Fprintln(stdout, cfg.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dirCmd)
}
