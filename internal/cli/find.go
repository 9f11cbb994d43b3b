package cli

import (
	"github.com/spf13/cobra"

	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/slugs"
)

var findCmd = &cobra.Command{
	Use:     "find <tag>",
	Aliases: []string{"f"},
	Short:   "Pick among notes with a tag and open them",
	Long: `Show the notes carrying tag in the picker and open the selection. With
--json the matching notes are listed instead.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := slugs.Tag(args[0])
		notes, err := engine.Directory().FindByTag(tag)
		if err != nil {
			return err
		}
		return pickAndOpen("#"+tag, notes)
	},
}

var searchCmd = &cobra.Command{
	Use:     "search",
	Aliases: []string{"s"},
	Short:   "Pick among all notes and open them",
	Args:    exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := engine.Directory().List()
		if err != nil {
			return err
		}
		return pickAndOpen("search", notes)
	},
}

func pickAndOpen(prompt string, notes []*note.Note) error {
	if jsonOutput {
		outputSuccess(map[string]interface{}{"items": viewsOf(notes)}, &Meta{Count: len(notes)})
		return nil
	}
	selected, err := engine.Pick(prompt, notes, true)
	if err != nil {
		return err
	}
	return openNotes(selected)
}

func init() {
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(searchCmd)
}
