package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/ui"
)

var linkCmd = &cobra.Command{
	Use:     "link <a> <b>",
	Aliases: []string{"l"},
	Short:   "Link two notes to each other",
	Long: `Add b to the links of a and a to the links of b. If one side already has
the link only the other side is written.

Examples:
  zk link recipe bread`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := resolvePair(args[0], args[1])
		if err != nil {
			return err
		}
		if err := engine.Link(a, b); err != nil {
			return err
		}
		return reportPair("Linked", a, b)
	},
}

var rmlinkCmd = &cobra.Command{
	Use:     "rmlink <a> <b>",
	Aliases: []string{"rl"},
	Short:   "Remove the link between two notes",
	Long: `Remove b from the links of a and a from the links of b. A side that does
not hold the link is left alone.`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := resolvePair(args[0], args[1])
		if err != nil {
			return err
		}
		if err := engine.Unlink(a, b); err != nil {
			return err
		}
		return reportPair("Unlinked", a, b)
	},
}

func resolvePair(nameA, nameB string) (*note.Note, *note.Note, error) {
	a, err := engine.Resolve(nameA)
	if err != nil {
		return nil, nil, err
	}
	b, err := engine.Resolve(nameB)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func reportPair(verb string, a, b *note.Note) error {
	if jsonOutput {
		outputSuccess(map[string]interface{}{"a": viewOf(a), "b": viewOf(b)}, nil)
		return nil
	}
	fmt.Fprintln(stdout, ui.Successf("%s %s and %s", verb, ui.NoteID(a.ID.String()), ui.NoteID(b.ID.String())))
	return nil
}

func init() {
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(rmlinkCmd)
}
