package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "carousel",
		Usage: "Browse a stack of cards in the terminal",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the interactive carousel",
				Flags:  runFlags(),
				Action: run,
			},
			{
				Name:   "snapshot",
				Usage:  "Print one frame of the carousel and exit",
				Flags:  snapshotFlags(),
				Action: snapshot,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
