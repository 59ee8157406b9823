package carousel

import (
	"github.com/gdamore/tcell/v3"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// Print prints text in the given foreground color into the one-row box at
// (x, y, maxWidth), keeping the background already on screen. It returns the
// number of bytes and the width printed.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, fg tcell.Color) (int, int) {
	start, end, width := printWithStyle(screen, text, x, y, maxWidth, alignment, tcell.StyleDefault.Foreground(fg), true)
	return end - start, width
}

// PrintWithStyle prints text with style into the one-row box at
// (x, y, maxWidth), overwriting the background. It returns the number of
// bytes and the width printed.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	start, end, width := printWithStyle(screen, text, x, y, maxWidth, alignment, style, false)
	return end - start, width
}

// printWithStyle returns the start index, end index (exclusively) and screen
// width of the text actually printed. If maintainBackground is set, the
// style's background is replaced by whatever is on screen.
func printWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style, maintainBackground bool) (start, end, printedWidth int) {
	totalWidth, totalHeight := screen.Size()
	if maxWidth <= 0 || len(text) == 0 || y < 0 || y >= totalHeight {
		return 0, 0, 0
	}
	if maintainBackground {
		style = style.Background(tcell.ColorDefault)
	}

	textWidth := TaggedStringWidth(text)
	var state *stepState

	// Reduce all alignments to AlignmentLeft.
	switch alignment {
	case AlignmentRight:
		for len(text) > 0 && textWidth > maxWidth {
			_, text, state = step(text, state)
			textWidth -= state.Width()
			start += state.GrossLength()
		}
		x, maxWidth = x+maxWidth-textWidth, textWidth
	case AlignmentCenter:
		subtracted := (textWidth - maxWidth) / 2
		for len(text) > 0 && subtracted > 0 {
			_, text, state = step(text, state)
			subtracted -= state.Width()
			textWidth -= state.Width()
			start += state.GrossLength()
		}
		if textWidth < maxWidth {
			x, maxWidth = x+maxWidth/2-textWidth/2, textWidth
		}
	}

	end = start
	rightBorder := x + maxWidth
	for len(text) > 0 && x < rightBorder && x < totalWidth {
		var c string
		c, text, state = step(text, state)
		if c == "" {
			break
		}
		width := state.Width()
		if x+width > rightBorder {
			break
		}

		if width > 0 {
			finalStyle := style
			if maintainBackground {
				_, existing, _ := screen.Get(x, y)
				finalStyle = finalStyle.Background(existing.GetBackground())
			}
			// Trailing cells first so the wide lead is written last.
			for offset := width - 1; offset > 0; offset-- {
				screen.Put(x+offset, y, " ", finalStyle)
			}
			screen.Put(x, y, c, finalStyle)
		}

		x += width
		end += state.GrossLength()
		printedWidth += width
	}

	return
}

// fill paints the rectangle with spaces in style.
func fill(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.Put(col, row, " ", style)
		}
	}
}
