package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zkcli/zk/internal/config"
	"github.com/zkcli/zk/internal/ui"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Create a storage directory and point the config at it",
	Long: `Create the storage directory (if needed) and write a config file whose
path is set to it. An existing config file is only replaced after
confirmation or with --force.

Examples:
  zk init ~/notes
  zk --config ./zk.toml init ./notes --force`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose)

		root, err := config.ExpandHome(strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}
		if root, err = filepath.Abs(root); err != nil {
			return err
		}

		cfgFile := configPath
		if cfgFile == "" {
			cfgFile = config.DefaultPath()
		}

		if config.Exists(cfgFile) && !initForce {
			if err := confirm(fmt.Sprintf("Overwrite %s?", cfgFile)); err != nil {
				return fmt.Errorf("%s: %w", cfgFile, errConfigExists)
			}
		}

		if err := os.MkdirAll(root, 0o755); err != nil {
			return fmt.Errorf("create storage directory: %w", err)
		}
		if err := config.SaveTo(cfgFile, &config.Config{Path: root}); err != nil {
			return err
		}
		logger.Debug("wrote config", "config", cfgFile, "path", root)

		if jsonOutput {
			outputSuccess(map[string]interface{}{
				"config": cfgFile,
				"path":   root,
			}, nil)
			return nil
		}
		fmt.Fprintln(stdout, ui.Successf("Storage at %s", ui.NoteID(root)))
		fmt.Fprintln(stdout, ui.Hint("Config written to "+cfgFile))
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
