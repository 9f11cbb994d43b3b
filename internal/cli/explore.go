package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zkcli/zk/internal/ui"
)

var exploreDepth int

var exploreCmd = &cobra.Command{
	Use:     "explore <name>",
	Aliases: []string{"e"},
	Short:   "Show the notes linked from and to a note",
	Long: `Show the notes that link to name, then follow its links outward up to
--depth hops. Each note is shown once, at its shortest distance.

Examples:
  zk explore recipe
  zk explore recipe --depth 3`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exploreDepth < 1 {
			return usageError("--depth must be at least 1")
		}
		root, err := engine.Resolve(args[0])
		if err != nil {
			return err
		}
		x, err := engine.Explore(root, exploreDepth)
		if err != nil {
			return err
		}

		if jsonOutput {
			levels := make([]map[string]interface{}, 0, len(x.Levels))
			for _, l := range x.Levels {
				levels = append(levels, map[string]interface{}{"depth": l.Depth, "items": viewsOf(l.Notes)})
			}
			var warnings []Warning
			for _, d := range x.Dangling {
				warnings = append(warnings, Warning{Code: "DANGLING_LINK", Message: "link to missing note " + d})
			}
			outputSuccessWithWarnings(map[string]interface{}{
				"note":      viewOf(x.Root),
				"backlinks": viewsOf(x.Backlinks),
				"levels":    levels,
				"dangling":  nonNil(x.Dangling),
			}, warnings, nil)
			return nil
		}

		fmt.Fprintln(stdout, ui.Header(x.Root.Title())+"  "+ui.Hint(x.Root.ID.String()))
		if len(x.Backlinks) == 0 && len(x.Levels) == 0 && len(x.Dangling) == 0 {
			fmt.Fprintln(stdout, ui.Infof("%s has no links", x.Root.ID))
			return nil
		}
		if len(x.Backlinks) > 0 {
			fmt.Fprintln(stdout, ui.Hint("← linked from"))
			for _, n := range x.Backlinks {
				fmt.Fprintln(stdout, "  "+noteLine(n))
			}
		}
		for _, l := range x.Levels {
			fmt.Fprintln(stdout, ui.Hint(fmt.Sprintf("→ depth %d", l.Depth)))
			for _, n := range l.Notes {
				fmt.Fprintln(stdout, strings.Repeat("  ", l.Depth)+noteLine(n))
			}
		}
		for _, d := range x.Dangling {
			fmt.Fprintln(stdout, ui.Warningf("link to missing note %s", d))
		}
		return nil
	},
}

func init() {
	exploreCmd.Flags().IntVarP(&exploreDepth, "depth", "d", 1, "How many link hops to follow")
	rootCmd.AddCommand(exploreCmd)
}
