package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zkcli/zk/internal/ui"
)

var rmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete notes and the links pointing at them",
	Long: `Delete the note called name. Every other note linking to it has that link
removed first, then the file is deleted. Asks for confirmation unless
--force is given; without a terminal --force is required.

Examples:
  zk rm old-idea
  zk rm old-idea --force --json`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := engine.ResolveMany(args[0])
		if err != nil {
			return err
		}

		type removal struct {
			ID     string   `json:"id"`
			Path   string   `json:"path"`
			Edited []string `json:"edited"`
		}
		var removed []removal

		for _, n := range notes {
			if !rmForce {
				if err := confirm(fmt.Sprintf("Delete %s?", n.ID)); err != nil {
					return err
				}
			}
			edited, err := engine.RemoveWithCascade(n)
			if err != nil {
				return err
			}
			removed = append(removed, removal{ID: n.ID.String(), Path: n.Path, Edited: noteIDs(edited)})

			if !jsonOutput {
				fmt.Fprintln(stdout, ui.Successf("Deleted %s", ui.NoteID(n.ID.String())))
				for _, e := range edited {
					fmt.Fprintln(stdout, ui.Hint("  removed link from "+e.ID.String()))
				}
			}
		}

		if jsonOutput {
			outputSuccess(map[string]interface{}{"items": removed}, &Meta{Count: len(removed)})
		}
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Delete without asking")
	rootCmd.AddCommand(rmCmd)
}
