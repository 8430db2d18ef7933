package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand creates the root command with its subcommands.
// Running beatlib without a subcommand opens the browser. The caller closes
// app once the command has run; see execute.
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "beatlib",
		Short:         "Manage a catalog of Beat Saber songs and beatmaps",
		Long:          `Browse, import and edit the songs and difficulty metadata of a local beatmap catalog.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.open(cmd.Context(), configPath)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.browse(cmd)
		},
	}
	rootCmd.SetVersionTemplate("beatlib {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/beatlib/config.yaml)")

	rootCmd.AddCommand(app.createBrowseCommand())
	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createShowCommand())
	rootCmd.AddCommand(app.createNewCommand(ctx))
	rootCmd.AddCommand(app.createEditCommand(ctx))
	rootCmd.AddCommand(app.createImportCommand(ctx))
	rootCmd.AddCommand(app.createDeleteCommand(ctx))
	rootCmd.AddCommand(app.createSearchCommand())
	rootCmd.AddCommand(app.createExportCommand())

	return rootCmd
}
