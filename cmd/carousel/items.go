package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ayn2op/carousel"
)

// parseItems splits text into cards at blank lines. The first line of each
// block is the title.
func parseItems(text string) []carousel.Item {
	var items []carousel.Item
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		title, body, _ := strings.Cut(block, "\n")
		items = append(items, carousel.Item{
			Title: strings.TrimSpace(title),
			Body:  strings.Join(strings.Fields(body), " "),
		})
	}
	return items
}

var words = strings.Fields(`
	scroll fling window refill recycle select center align spring velocity
	edge clamp overlap stack card depth arc frame pool anchor pointer drag
`)

// generateItems returns n placeholder cards.
func generateItems(n int) []carousel.Item {
	items := make([]carousel.Item, n)
	for i := range items {
		body := make([]string, 0, 12)
		for j := range 12 {
			body = append(body, words[(i*7+j*3)%len(words)])
		}
		items[i] = carousel.Item{
			Title: fmt.Sprintf("Card %d", i+1),
			Body:  strings.Join(body, " "),
		}
	}
	return items
}

func loadItems(cfg *Config) ([]carousel.Item, error) {
	if cfg.File == "" {
		return generateItems(cfg.Items), nil
	}
	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return parseItems(string(data)), nil
}
