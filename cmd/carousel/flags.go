package main

import (
	"github.com/urfave/cli/v2"
)

// commonFlags returns the flags shared by every command. Defaults live in
// Config so that CAROUSEL_* variables and flags agree.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable debug logging",
			EnvVars: []string{"CAROUSEL_VERBOSE"},
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "Write logs to this file",
			EnvVars: []string{"CAROUSEL_LOG_FILE"},
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Read cards from a text file; blank lines separate cards and the first line of each is its title",
			EnvVars: []string{"CAROUSEL_FILE"},
		},
		&cli.IntFlag{
			Name:    "items",
			Aliases: []string{"n"},
			Usage:   "Number of generated cards when no file is given",
			EnvVars: []string{"CAROUSEL_ITEMS"},
		},
		&cli.IntFlag{
			Name:    "select",
			Aliases: []string{"s"},
			Usage:   "Index of the initially selected card",
			EnvVars: []string{"CAROUSEL_SELECT"},
		},
		&cli.IntFlag{
			Name:    "card-width",
			Usage:   "Card width in cells",
			EnvVars: []string{"CAROUSEL_CARD_WIDTH"},
		},
		&cli.IntFlag{
			Name:    "card-height",
			Usage:   "Card height in rows",
			EnvVars: []string{"CAROUSEL_CARD_HEIGHT"},
		},
		&cli.Float64Flag{
			Name:    "spacing",
			Usage:   "Distance between cards as a fraction of the card height",
			EnvVars: []string{"CAROUSEL_SPACING"},
		},
		&cli.BoolFlag{
			Name:    "perspective",
			Aliases: []string{"p"},
			Usage:   "Lay cards out on a cover-flow arc",
			EnvVars: []string{"CAROUSEL_PERSPECTIVE"},
		},
		&cli.BoolFlag{
			Name:    "shrink",
			Usage:   "Recycle cards that scroll out of view",
			EnvVars: []string{"CAROUSEL_SHRINK"},
		},
	}
}

func runFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.BoolFlag{
			Name:    "align",
			Usage:   "Center the selected card when a drag or fling ends",
			EnvVars: []string{"CAROUSEL_ALIGN"},
		},
		&cli.IntFlag{
			Name:    "fps",
			Usage:   "Animation frame rate",
			EnvVars: []string{"CAROUSEL_FPS"},
		},
		&cli.StringFlag{
			Name:    "metrics-addr",
			Usage:   "Serve Prometheus metrics on this address (for example :9090); empty disables",
			EnvVars: []string{"CAROUSEL_METRICS_ADDR"},
		},
	)
}

func snapshotFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.IntFlag{
			Name:    "width",
			Aliases: []string{"W"},
			Usage:   "Frame width",
			EnvVars: []string{"CAROUSEL_WIDTH"},
		},
		&cli.IntFlag{
			Name:    "height",
			Aliases: []string{"H"},
			Usage:   "Frame height",
			EnvVars: []string{"CAROUSEL_HEIGHT"},
		},
	)
}
