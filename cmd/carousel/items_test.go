package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayn2op/carousel"
	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseItems(t *testing.T) {
	text := "First\nline one\nline two\n\n\n  \nSecond\r\n\r\nThird\nbody\n"

	assert.Equal(t, []carousel.Item{
		{Title: "First", Body: "line one line two"},
		{Title: "Second"},
		{Title: "Third", Body: "body"},
	}, parseItems(text))
	assert.Empty(t, parseItems("\n\n"))
}

func TestGenerateItems(t *testing.T) {
	items := generateItems(3)
	require.Len(t, items, 3)
	assert.Equal(t, "Card 1", items[0].Title)
	assert.Equal(t, "Card 3", items[2].Title)
	assert.Len(t, strings.Fields(items[1].Body), 12)
	assert.Empty(t, generateItems(0))
}

func TestLoadItemsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nx\n\nb\ny\n"), 0o600))

	items, err := loadItems(&Config{File: path, Items: 50})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = loadItems(&Config{File: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestBuildSnapshot(t *testing.T) {
	cfg, err := parseConfig(t, "--items", "4", "--select", "9", "-W", "50", "-H", "20")
	require.NoError(t, err)

	tree, err := build(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	root := tree.root
	// The initial selection is clamped to the last card.
	assert.Equal(t, 3, tree.carousel.Selection())
	assert.Equal(t, 4, tree.cards.Count())

	lines := carousel.Render(root, cfg.Width, cfg.Height)
	require.Len(t, lines, 20)
	assert.Contains(t, strings.Join(lines, "\n"), "Card 4")
	// The footer lists the carousel bindings first.
	assert.Contains(t, lines[19], "next")

	// Enter shows the selected card on top.
	root.InputHandler(tcell.NewEventKey(tcell.KeyEnter, "", tcell.ModNone))
	require.True(t, root.OverlayVisible())
	overlay := carousel.Capture(root, cfg.Width, cfg.Height)
	_, _, width, height := root.GetRect()
	assert.Equal(t, 50, width)
	assert.Equal(t, 20, height)
	assert.Contains(t, overlay.String(), "Card 4")
}
