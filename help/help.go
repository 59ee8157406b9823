// Package help draws key binding help for a carousel: a one-line summary or
// a full view with one column per binding group.
package help

import (
	"strings"

	"github.com/ayn2op/carousel"
	"github.com/ayn2op/carousel/keybind"
	"github.com/gdamore/tcell/v3"
)

type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

// Help is a primitive that renders a KeyMap.
type Help struct {
	*carousel.Box
	Styles Styles

	keyMap    KeyMap
	showAll   bool
	separator string
	gap       string
	ellipsis  string
}

func New() *Help {
	return &Help{
		Box:       carousel.NewBox(),
		Styles:    DefaultStyles(),
		separator: " • ",
		gap:       "    ",
		ellipsis:  "…",
	}
}

// SetKeyMap sets the key map to render.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetShowAll switches between the one-line and the full view.
func (h *Help) SetShowAll(showAll bool) *Help {
	if h.showAll != showAll {
		h.showAll = showAll
		h.MarkDirty()
	}
	return h
}

func (h *Help) ShowAll() bool {
	return h.showAll
}

// SetSeparator sets the text between entries of the one-line view.
func (h *Help) SetSeparator(separator string) *Help {
	h.separator = separator
	return h
}

// SetGap sets the text between columns of the full view.
func (h *Help) SetGap(gap string) *Help {
	h.gap = gap
	return h
}

// SetEllipsis sets the marker appended when entries are cut off.
func (h *Help) SetEllipsis(ellipsis string) *Help {
	h.ellipsis = ellipsis
	return h
}

// Height returns the rows the current view needs at width.
func (h *Help) Height(width int) int {
	return max(len(h.lines(width)), 1)
}

// Lines renders the current view as plain text.
func (h *Help) Lines(width int) []string {
	styled := h.lines(width)
	out := make([]string, len(styled))
	for i, l := range styled {
		out[i] = l.String()
	}
	return out
}

// Draw draws the help.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)

	x, y, width, height := h.GetInnerRect()
	for row, l := range h.lines(width) {
		if row >= height {
			break
		}
		l.draw(screen, x, y+row, width)
	}
}

func (h *Help) lines(width int) []line {
	if h.keyMap == nil {
		return nil
	}
	if h.showAll {
		return h.full(h.keyMap.FullHelp(), width)
	}
	if l := h.short(h.keyMap.ShortHelp(), width); len(l) > 0 {
		return []line{l}
	}
	return nil
}

type segment struct {
	text  string
	style tcell.Style
}

// line is a row of styled segments.
type line []segment

func (l line) width() int {
	w := 0
	for _, s := range l {
		w += carousel.TaggedStringWidth(s.text)
	}
	return w
}

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

func (l line) draw(screen tcell.Screen, x, y, width int) {
	for _, s := range l {
		if width <= 0 {
			return
		}
		if s.text == "" {
			continue
		}
		_, w := carousel.PrintWithStyle(screen, s.text, x, y, width, carousel.AlignmentLeft, s.style)
		x += w
		width -= w
	}
}

// withEllipsis appends the ellipsis to l if it fits in width.
func (h *Help) withEllipsis(l line, width int) line {
	if h.ellipsis == "" {
		return l
	}
	tail := line{{" ", h.Styles.EllipsisStyle}, {h.ellipsis, h.Styles.EllipsisStyle}}
	if l.width()+tail.width() > width {
		return l
	}
	return append(l, tail...)
}

func (h *Help) short(bindings []keybind.Keybind, width int) line {
	sep := segment{h.separator, h.Styles.ShortSeparatorStyle}
	if sep.text == "" {
		sep.text = " "
	}

	var out line
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		item := entry(kb.Help(), h.Styles.ShortKeyStyle, h.Styles.ShortDescStyle)
		if len(item) == 0 {
			continue
		}

		next := item
		if len(out) > 0 {
			next = append(line{sep}, item...)
		}
		if width > 0 && out.width()+next.width() > width {
			if len(out) == 0 {
				return nil
			}
			return h.withEllipsis(out, width)
		}
		out = append(out, next...)
	}
	return out
}

// column is one group of the full view.
type column struct {
	keys, descs []string
	keyWidth    int
	width       int
}

func newColumn(group []keybind.Keybind) column {
	var c column
	for _, kb := range group {
		if !kb.Enabled() {
			continue
		}
		help := kb.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		c.keys = append(c.keys, help.Key)
		c.descs = append(c.descs, help.Desc)
		c.keyWidth = max(c.keyWidth, carousel.TaggedStringWidth(help.Key))
	}
	for i := range c.keys {
		w := c.keyWidth + carousel.TaggedStringWidth(c.descs[i])
		if c.keys[i] != "" && c.descs[i] != "" {
			w++
		}
		c.width = max(c.width, w)
	}
	return c
}

func (h *Help) full(groups [][]keybind.Keybind, width int) []line {
	gap := h.gap
	if gap == "" {
		gap = " "
	}
	gapWidth := carousel.TaggedStringWidth(gap)

	var (
		columns []column
		total   int
		cut     bool
	)
	for _, group := range groups {
		c := newColumn(group)
		if len(c.keys) == 0 {
			continue
		}
		w := c.width
		if len(columns) > 0 {
			w += gapWidth
		}
		if width > 0 && total+w > width {
			cut = true
			break
		}
		columns = append(columns, c)
		total += w
	}
	if len(columns) == 0 {
		if cut {
			return []line{{{h.ellipsis, h.Styles.EllipsisStyle}}}
		}
		return nil
	}

	rows := 0
	for _, c := range columns {
		rows = max(rows, len(c.keys))
	}

	lines := make([]line, rows)
	for row := range rows {
		var l line
		for i, c := range columns {
			if i > 0 {
				l = append(l, segment{gap, h.Styles.FullSeparatorStyle})
			}
			last := i == len(columns)-1
			l = append(l, h.cell(c, row, last)...)
		}
		lines[row] = l
	}
	if cut {
		lines[0] = h.withEllipsis(lines[0], width)
	}
	return lines
}

// cell renders row of c padded to the column width, unless it is the last
// column.
func (h *Help) cell(c column, row int, last bool) line {
	pad := func(l line) line {
		if n := c.width - l.width(); n > 0 && !last {
			l = append(l, segment{strings.Repeat(" ", n), h.Styles.FullDescStyle})
		}
		return l
	}
	if row >= len(c.keys) {
		return pad(nil)
	}

	key, desc := c.keys[row], c.descs[row]
	var l line
	if key != "" {
		l = append(l, segment{key, h.Styles.FullKeyStyle})
	}
	if n := c.keyWidth - carousel.TaggedStringWidth(key); n > 0 {
		l = append(l, segment{strings.Repeat(" ", n), h.Styles.FullKeyStyle})
	}
	if key != "" && desc != "" {
		l = append(l, segment{" ", h.Styles.FullDescStyle})
	}
	if desc != "" {
		l = append(l, segment{desc, h.Styles.FullDescStyle})
	}
	return pad(l)
}

func entry(help keybind.Help, keyStyle, descStyle tcell.Style) line {
	switch {
	case help.Key == "" && help.Desc == "":
		return nil
	case help.Key == "":
		return line{{help.Desc, descStyle}}
	case help.Desc == "":
		return line{{help.Key, keyStyle}}
	}
	return line{{help.Key, keyStyle}, {" ", descStyle}, {help.Desc, descStyle}}
}

var _ carousel.Primitive = &Help{}
