package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/slugs"
	"github.com/zkcli/zk/internal/ui"
)

var tagCmd = &cobra.Command{
	Use:     "tag <name> <tag>",
	Aliases: []string{"t"},
	Short:   "Add a tag to notes",
	Long: `Add tag to the note called name. When several notes share the name, the
picker lets you choose one or more of them. A leading '#' is dropped.

Examples:
  zk tag recipe food
  zk tag recipe "#baking"`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTag(args[0], args[1], "Tagged", (*note.Note).AddTag)
	},
}

var rmtagCmd = &cobra.Command{
	Use:     "rmtag <name> <tag>",
	Aliases: []string{"rt"},
	Short:   "Remove a tag from notes",
	Args:    exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTag(args[0], args[1], "Untagged", (*note.Note).RemoveTag)
	},
}

// runTag applies op to every selected note, stopping at the first failure.
func runTag(name, rawTag, verb string, op func(*note.Note, string) error) error {
	tag := slugs.Tag(rawTag)
	if tag == "" {
		return usageError(fmt.Sprintf("%q is not a usable tag", rawTag))
	}

	notes, err := engine.ResolveMany(name)
	if err != nil {
		return err
	}
	for _, n := range notes {
		if err := op(n, tag); err != nil {
			return err
		}
		logger.Debug("tag changed", "note", n.ID.String(), "tag", tag, "action", verb)
	}

	if jsonOutput {
		outputSuccess(map[string]interface{}{"tag": tag, "items": viewsOf(notes)}, &Meta{Count: len(notes)})
		return nil
	}
	for _, n := range notes {
		fmt.Fprintln(stdout, ui.Successf("%s %s #%s", verb, ui.NoteID(n.ID.String()), tag))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(rmtagCmd)
}
