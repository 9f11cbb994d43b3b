package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/slugs"
	"github.com/zkcli/zk/internal/ui"
)

var listTag string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Long: `List every note under the storage root, optionally only those carrying
--tag. A note that cannot be read aborts the listing.`,
	Args: exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			notes []*note.Note
			err   error
		)
		if listTag != "" {
			notes, err = engine.Directory().FindByTag(slugs.Tag(listTag))
		} else {
			notes, err = engine.Directory().List()
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			outputSuccess(map[string]interface{}{"items": viewsOf(notes)}, &Meta{Count: len(notes)})
			return nil
		}
		if len(notes) == 0 {
			fmt.Fprintln(stdout, ui.Hint("No notes yet. Create one with 'zk new <name>'."))
			return nil
		}
		printNotes(notes)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only list notes carrying this tag")
	rootCmd.AddCommand(listCmd)
}
