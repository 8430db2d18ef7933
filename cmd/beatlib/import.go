package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// createImportCommand creates the import command
func (app *Application) createImportCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "import [package path...]",
		Short: "Import song packages into the catalog",
		Long:  `Import one or more song packages. Each path may be a song folder or its info.dat file.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.importPackages(ctx, cmd.OutOrStdout(), args)
		},
	}
}

// importPackages imports every path, reporting failures after trying all of them
func (app *Application) importPackages(ctx context.Context, w io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		song, err := app.Catalog.ImportPackage(ctx, path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "imported %s (%s) with %d difficulties\n", song.Title(), song.ID, len(song.DifficultiesByID))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d packages failed to import", failed, len(paths))
	}
	return nil
}
