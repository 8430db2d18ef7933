package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx, &Application{}, os.Args[1:])
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// execute runs the command line against app and closes it afterwards,
// whether or not the command succeeded.
func execute(ctx context.Context, app *Application, args []string) error {
	rootCmd := app.createRootCommand(ctx)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if closeErr := app.close(); err == nil {
		err = closeErr
	}
	return err
}
