// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zkcli/zk/internal/buildinfo"
	"github.com/zkcli/zk/internal/config"
	"github.com/zkcli/zk/internal/directory"
	"github.com/zkcli/zk/internal/linker"
	"github.com/zkcli/zk/internal/picker"
	"github.com/zkcli/zk/internal/ui"
)

var (
	// Global flags
	configPath string
	pathFlag   string
	verbose    bool

	// Resolved for the running command
	cfg    *config.Config
	engine *linker.Engine
	logger *slog.Logger

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "zk",
	Short: "zk - a plain-text Zettelkasten",
	Long: `zk manages a directory of markdown notes named {timestamp}-{name}.md.

Each note carries its name, tags and links in a YAML frontmatter block.
Links are kept symmetric: linking a to b also links b to a, and removing a
note strips every link pointing at it.`,
	Version:       buildinfo.String(),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "init", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}
		return setup()
	},
}

// setup loads the config and builds the engine used by every note command.
func setup() error {
	logger = newLogger(verbose)

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(pathFlag) != "" {
		if loaded.Path, err = config.ExpandHome(strings.TrimSpace(pathFlag)); err != nil {
			return err
		}
	}
	if abs, err := filepath.Abs(loaded.Path); err == nil {
		loaded.Path = abs
	}
	cfg = loaded
	ui.ConfigureTheme(cfg.UI.Accent)
	logger.Debug("config loaded", "source", cfg.Source, "path", cfg.Path, "extension", cfg.Extension)

	dir := directory.New(cfg.Path, cfg.Extension, directory.WithLogger(logger))

	var chooser linker.Chooser
	if !jsonOutput {
		chooser = picker.New(cfg.Picker)
	}
	engine = linker.New(dir, chooser, logger)
	return nil
}

func newLogger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Execute runs the CLI and returns the process exit code. Errors are
// rendered here and nowhere else.
func Execute() int {
	return execute(os.Args[1:])
}

func execute(args []string) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return exitOK
	}

	c := classify(err)
	if jsonOutput {
		outputError(c.Code, err.Error(), c.Suggestion)
	} else {
		fmt.Fprintln(stderr, ui.Error(err.Error()))
		if c.Suggestion != "" {
			fmt.Fprintln(stderr, ui.Hint(c.Suggestion))
		}
	}
	return c.Exit
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&pathFlag, "path", "", "Storage root (overrides config and ZK_PATH)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripts)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug diagnostics to stderr")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err.Error())
	})
}

// exactArgs is cobra.ExactArgs with an error classified as invalid input.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError(fmt.Sprintf("%s expects %d argument(s), got %d (usage: %s)", cmd.Name(), n, len(args), cmd.UseLine()))
		}
		return nil
	}
}

// minArgs is cobra.MinimumNArgs with an error classified as invalid input.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError(fmt.Sprintf("%s expects at least %d argument(s) (usage: %s)", cmd.Name(), n, cmd.UseLine()))
		}
		return nil
	}
}

// resetFlags restores every flag to its default value. Tests run several
// commands through the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
