package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/ayn2op/carousel"
	"github.com/urfave/cli/v2"
)

func snapshot(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	sugar, err := newSugaredLogger(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return err
	}
	defer sugar.Sync() //nolint:errcheck

	tree, err := build(cfg, sugar.Desugar())
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	for _, line := range carousel.Render(tree.root, cfg.Width, cfg.Height) {
		w.WriteString(strings.TrimRight(line, " "))
		w.WriteByte('\n')
	}
	return w.Flush()
}
