package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zkcli/zk/internal/ui"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a note rendered as markdown",
	Long: `Print the note called name with its tags and links, rendering the body as
markdown for the terminal. --raw prints the body unchanged.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := engine.Resolve(args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			outputSuccess(map[string]interface{}{
				"note":    viewOf(n),
				"content": n.Content,
			}, nil)
			return nil
		}

		title := n.Title()
		fmt.Fprintln(stdout, ui.Header(title)+"  "+ui.Hint(n.ID.String()))
		if created, ok := n.ID.Time(); ok {
			fmt.Fprintln(stdout, ui.Hint("created "+created.Format("2006-01-02 15:04 MST")))
		}
		if tags := ui.Tags(n.Matter.Tags); tags != "" {
			fmt.Fprintln(stdout, tags)
		}
		for _, l := range n.Matter.Links {
			fmt.Fprintln(stdout, ui.Hint("→ ")+ui.NoteID(l))
		}

		if showRaw {
			fmt.Fprint(stdout, n.Content)
			return nil
		}
		rendered, err := ui.RenderMarkdown(ui.StripTitle(n.Content, title), ui.TermWidth())
		if err != nil {
			return fmt.Errorf("render %s: %w", n.ID, err)
		}
		fmt.Fprint(stdout, rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the body without rendering")
	rootCmd.AddCommand(showCmd)
}
