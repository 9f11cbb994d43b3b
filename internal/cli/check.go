package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/zkcli/zk/internal/linker"
	"github.com/zkcli/zk/internal/ui"
)

var checkFix bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Find one-sided and dangling links",
	Long: `Report links that are not mirrored by the target note and links to notes
that no longer exist. --fix adds the missing back-links and drops the
dangling ones.`,
	Args: exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		issues, err := engine.Check()
		if err != nil {
			return err
		}

		var repaired []linker.Issue
		if checkFix && len(issues) > 0 {
			if repaired, err = engine.Repair(issues); err != nil {
				return err
			}
		}

		if jsonOutput {
			items := make([]map[string]interface{}, 0, len(issues))
			for _, i := range issues {
				item := map[string]interface{}{
					"kind":   string(i.Kind),
					"source": i.Source.ID.String(),
					"target": i.Target,
				}
				if checkFix {
					item["repaired"] = slices.Contains(repaired, i)
				}
				items = append(items, item)
			}
			var warnings []Warning
			if len(issues) > 0 && !checkFix {
				warnings = append(warnings, Warning{Code: "LINKS_INCONSISTENT", Message: "run 'zk check --fix' to repair"})
			}
			outputSuccessWithWarnings(map[string]interface{}{"issues": items, "fixed": len(repaired)}, warnings, &Meta{Count: len(issues)})
			return nil
		}

		if len(issues) == 0 {
			fmt.Fprintln(stdout, ui.Success("All links are symmetric"))
			return nil
		}
		for _, i := range issues {
			switch {
			case !checkFix:
				fmt.Fprintln(stdout, ui.Warning(describeIssue(i)))
			case slices.Contains(repaired, i):
				fmt.Fprintln(stdout, ui.Success(describeIssue(i)))
			default:
				fmt.Fprintln(stdout, ui.Hint(describeIssue(i)+" (already fixed)"))
			}
		}
		if checkFix {
			fmt.Fprintln(stdout, ui.Successf("Repaired %s", ui.Count(len(repaired), "link", "links")))
		} else {
			fmt.Fprintln(stdout, ui.Hint("Run 'zk check --fix' to repair "+ui.Count(len(issues), "issue", "issues")))
		}
		return nil
	},
}

func describeIssue(i linker.Issue) string {
	switch i.Kind {
	case linker.Asymmetric:
		return fmt.Sprintf("%s → %s is not linked back", ui.NoteID(i.Source.ID.String()), ui.NoteID(i.Target))
	case linker.Dangling:
		return fmt.Sprintf("%s → %s does not exist", ui.NoteID(i.Source.ID.String()), ui.NoteID(i.Target))
	default:
		return i.String()
	}
}

func init() {
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "Repair the reported links")
	rootCmd.AddCommand(checkCmd)
}
