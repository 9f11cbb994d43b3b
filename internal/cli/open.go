package cli

import (
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:     "open <name>",
	Aliases: []string{"o"},
	Short:   "Open notes in the editor",
	Long: `Open the note called name. When several notes share the name, the picker
lets you choose one or more of them.

Examples:
  zk open recipe
  zk open 1600000000-recipe.md`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := engine.ResolveMany(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			outputSuccess(map[string]interface{}{"items": viewsOf(notes)}, &Meta{Count: len(notes)})
			return nil
		}
		return openNotes(notes)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
