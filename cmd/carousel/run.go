package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayn2op/carousel"
	"github.com/ayn2op/carousel/engine"
	"github.com/ayn2op/carousel/metrics"
	"github.com/ayn2op/carousel/stage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const detailsWidth, detailsHeight = 60, 12

// ui is the widget tree shared by the run and snapshot commands.
type ui struct {
	root     *stage.Stage
	carousel *carousel.Carousel
	cards    *carousel.SliceDataset
}

// build wires a carousel over the configured cards into a stage.
func build(cfg *Config, logger *zap.Logger, opts ...engine.Option) (*ui, error) {
	ec, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	items, err := loadItems(cfg)
	if err != nil {
		return nil, err
	}
	ec.InitialSelection = min(max(ec.InitialSelection, 0), max(len(items)-1, 0))

	c, err := carousel.NewCarousel(ec, append([]engine.Option{engine.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create carousel: %w", err)
	}
	cards := carousel.NewSliceDataset(items...)
	c.SetDataset(cards)

	s := stage.New(c, c.KeyMap())
	s.SetDetailsFunc(func() carousel.Primitive {
		index := c.Selection()
		item, ok := cards.Item(index)
		if !ok {
			return nil
		}
		title := item.Title
		if title == "" {
			title = carousel.CardTitle(index)
		}
		card := carousel.NewCard().SetContent(title, item.Body)
		card.SetElementState(carousel.ElementState{Index: index, Selected: true})
		card.SetRect(0, 0, detailsWidth, detailsHeight)
		return card
	})
	return &ui{root: s, carousel: c, cards: cards}, nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	sugar, err := newSugaredLogger(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return err
	}
	defer sugar.Sync() //nolint:errcheck
	logger := sugar.Desugar()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	tree, err := build(cfg, logger, engine.WithRecorder(m))
	if err != nil {
		return err
	}

	app := carousel.NewApplication().
		SetRoot(tree.root).
		SetLogger(logger).
		SetFrameRate(cfg.FrameRate)

	sugar.Infow("starting carousel",
		"file", cfg.File,
		"cards", tree.cards.Count(),
		"perspective", cfg.Perspective,
		"metrics_addr", cfg.MetricsAddr,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Quitting the UI cancels the group so the other goroutines stop too.
		defer stop()
		return app.Run(gctx)
	})
	if cfg.File != "" {
		g.Go(func() error {
			reloadOnHangup(gctx, app, cfg, tree.cards, sugar)
			return nil
		})
	}
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return metrics.NewServer(cfg.MetricsAddr, registry).Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		sugar.Errorw("carousel stopped", "error", err)
		return err
	}
	sugar.Info("carousel stopped")
	return nil
}

// reloadOnHangup rereads the cards file on every SIGHUP until ctx is done.
func reloadOnHangup(ctx context.Context, app *carousel.Application, cfg *Config, cards *carousel.SliceDataset, log *zap.SugaredLogger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			items, err := loadItems(cfg)
			if err != nil {
				log.Warnw("failed to reload cards", "file", cfg.File, "error", err)
				continue
			}
			if !app.QueueUpdateDraw(func() { cards.Set(items...) }) {
				return
			}
			log.Infow("cards reloaded", "file", cfg.File, "cards", len(items))
		}
	}
}
