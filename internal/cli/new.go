package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zkcli/zk/internal/slugs"
	"github.com/zkcli/zk/internal/ui"
)

var newNoOpen bool

var newCmd = &cobra.Command{
	Use:     "new <name>",
	Aliases: []string{"n"},
	Short:   "Create a note and open it",
	Long: `Create a note named {timestamp}-{name}.{ext} directly under the storage
root and open it in the editor. The name is lower-cased and words are
joined with '-'.

Examples:
  zk new recipe
  zk new "Sourdough starter" --no-open`,
	Args: minArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := slugs.Name(strings.Join(args, " "))
		if name == "" {
			return usageError(fmt.Sprintf("%q does not contain a usable note name", strings.Join(args, " ")))
		}

		n, err := engine.Directory().Create(name)
		if err != nil {
			return err
		}

		if jsonOutput {
			outputSuccess(viewOf(n), nil)
			return nil
		}
		fmt.Fprintln(stdout, ui.Successf("Created %s", ui.NoteID(n.RelPath(cfg.Path))))
		if newNoOpen {
			return nil
		}
		return openNotes(notesOf(n))
	},
}

func init() {
	newCmd.Flags().BoolVar(&newNoOpen, "no-open", false, "Do not open the new note in the editor")
	rootCmd.AddCommand(newCmd)
}
