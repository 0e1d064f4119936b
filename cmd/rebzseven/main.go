package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rebzseven/rebzseven/internal/config"
)

func main() {
	runner := NewRunner(RunnerOpts{})

	app := &cli.Command{
		Name:     "rebzseven",
		Usage:    "Serve and query the media catalog",
		Version:  config.Version,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rebzseven: %v\n", err)
		os.Exit(1)
	}
}
