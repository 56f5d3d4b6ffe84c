package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/trig29/Flowchart-Json-Editor/pkg/buildinfo"
)

// Execute runs the flowedit CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI under an externally controlled context, so
// signal cancellation propagates into long-running commands.
func ExecuteContext(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "flowedit",
		Short:        "flowedit edits branching dialogue flowcharts",
		Long:         `flowedit is an editor for branching dialogue/narrative graphs persisted as JSON: typed nodes, directed edges, undo/redo, and diagram export.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/flowedit/config.toml)")

	root.AddCommand(newNewCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newFmtCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newEditCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
