package carousel

import (
	"fmt"

	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
	"github.com/lucasb-eyer/go-colorful"
)

// Card is the default carousel view: a bordered box with a title and a
// word-wrapped body. Cards recede into the background as their perspective
// depth grows, and the selected card gets a thick highlighted border.
type Card struct {
	*Box

	body  string
	state ElementState

	// Scratch lines for the wrapped body; kept so a recycled card does not
	// reallocate.
	lines []string
}

// NewCard returns an empty card.
func NewCard() *Card {
	c := &Card{Box: NewBox()}
	c.SetBorders(BordersAll).
		SetBorderPadding(0, 0, 1, 1).
		SetBackgroundColor(Styles.CardBackgroundColor)
	return c
}

// SetContent sets the title and body.
func (c *Card) SetContent(title, body string) *Card {
	c.SetTitle(title)
	if c.body != body {
		c.body = body
		c.MarkDirty()
	}
	return c
}

// Body returns the body text.
func (c *Card) Body() string {
	return c.body
}

// SetElementState implements Stateful.
func (c *Card) SetElementState(state ElementState) {
	if c.state != state {
		c.state = state
		c.MarkDirty()
	}
}

// ElementState returns the state of the last draw.
func (c *Card) ElementState() ElementState {
	return c.state
}

// Draw draws the card.
func (c *Card) Draw(screen tcell.Screen) {
	background := shade(Styles.CardBackgroundColor, Styles.PrimitiveBackgroundColor, c.state.Depth)
	border := tcell.StyleDefault.Foreground(shade(Styles.BorderColor, Styles.PrimitiveBackgroundColor, c.state.Depth))
	borderSet := BorderSetRound()
	if c.state.Selected {
		border = tcell.StyleDefault.Foreground(Styles.SelectedBorderColor).Bold(true)
		borderSet = BorderSetThick()
	}

	c.SetBackgroundColor(background)
	c.SetBorderStyle(border.Background(background))
	c.SetBorderSet(borderSet)
	c.SetTitleStyle(tcell.StyleDefault.Foreground(Styles.TitleColor).Bold(c.state.Selected))
	c.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	// While dragged, cards skip the body and draw only their frame.
	if c.state.Cached {
		return
	}

	textStyle := tcell.StyleDefault.
		Foreground(shade(Styles.PrimaryTextColor, background, c.state.Depth)).
		Background(background)
	c.lines = append(c.lines[:0], WordWrap(c.body, width)...)
	for row, line := range c.lines {
		if row >= height {
			break
		}
		if row == height-1 && row < len(c.lines)-1 {
			line = truncate(line+horizontalEllipsis, width)
		}
		PrintWithStyle(screen, line, x, y+row, width, AlignmentLeft, textStyle)
	}
}

// shade blends from toward to by depth, clamped to [0, 1], in Lab space.
func shade(from, to tcell.Color, depth float64) tcell.Color {
	if depth <= 0 {
		return from
	}
	depth = min(depth, 1)

	a, b := toColorful(from), toColorful(to)
	r, g, bl := a.BlendLab(b, depth).Clamped().RGB255()
	return color.NewRGBColor(int32(r), int32(g), int32(bl))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// CardTitle formats the default title of the card at index.
func CardTitle(index int) string {
	return fmt.Sprintf("#%d", index+1)
}
