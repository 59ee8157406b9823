package carousel

import "github.com/gdamore/tcell/v3"

const subcell = 8

// GlyphSet defines the track and fractional thumb glyphs of an Indicator.
type GlyphSet struct {
	Track string

	ThumbLower [8]string
	ThumbUpper [8]string
}

// BlockGlyphSet uses the lower block elements and a light vertical track.
func BlockGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      boxLightVertical,
		ThumbLower: [8]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbUpper: [8]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},
	}
}

// Indicator is a one-column bar that shows which of count items is selected.
// The thumb moves in eighths of a cell.
type Indicator struct {
	*Box

	count     int
	selection int

	glyphs     GlyphSet
	trackStyle tcell.Style
	thumbStyle tcell.Style
}

// NewIndicator returns an empty indicator.
func NewIndicator() *Indicator {
	return &Indicator{
		Box:        NewBox(),
		glyphs:     BlockGlyphSet(),
		trackStyle: tcell.StyleDefault.Foreground(Styles.BorderColor).Dim(true),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.IndicatorColor),
	}
}

// SetPosition sets the item count and the selected index.
func (i *Indicator) SetPosition(selection, count int) *Indicator {
	if i.selection != selection || i.count != count {
		i.selection, i.count = selection, count
		i.MarkDirty()
	}
	return i
}

// SetGlyphSet applies a glyph set.
func (i *Indicator) SetGlyphSet(g GlyphSet) *Indicator {
	i.glyphs = g
	return i
}

type thumbMetrics struct {
	trackLen   int
	thumbLen   int
	thumbStart int
}

// computeThumb returns the thumb geometry in subcell units for a track of
// trackCells cells. Each item owns an equal share of the track, at least one
// cell.
func computeThumb(trackCells, count, selection int) thumbMetrics {
	trackLen := trackCells * subcell
	if trackLen == 0 || count <= 0 {
		return thumbMetrics{}
	}
	selection = min(max(selection, 0), count-1)
	if count == 1 {
		return thumbMetrics{trackLen: trackLen, thumbLen: trackLen}
	}

	thumbLen := min(max(trackLen/count, subcell), trackLen)
	travel := trackLen - thumbLen
	return thumbMetrics{
		trackLen:   trackLen,
		thumbLen:   thumbLen,
		thumbStart: travel * selection / (count - 1),
	}
}

// cellFill returns the thumb coverage of cell as a cell-local start and
// length in subcells.
func (m thumbMetrics) cellFill(cell int) (start, fillLen int) {
	if m.thumbLen == 0 {
		return 0, 0
	}
	cellStart := cell * subcell
	begin := max(m.thumbStart, cellStart)
	end := min(m.thumbStart+m.thumbLen, cellStart+subcell)
	if end <= begin {
		return 0, 0
	}
	return begin - cellStart, end - begin
}

func (i *Indicator) glyph(start, fillLen int) (string, tcell.Style) {
	switch {
	case fillLen <= 0:
		return i.glyphs.Track, i.trackStyle
	case fillLen >= subcell:
		return i.glyphs.ThumbLower[7], i.thumbStyle
	case start == 0:
		return i.glyphs.ThumbUpper[fillLen-1], i.thumbStyle
	}
	return i.glyphs.ThumbLower[fillLen-1], i.thumbStyle
}

// Draw draws the indicator in the first column of its inner rect.
func (i *Indicator) Draw(screen tcell.Screen) {
	i.DrawForSubclass(screen, i)

	x, y, width, height := i.GetInnerRect()
	if width <= 0 || height <= 0 || i.count <= 1 {
		return
	}

	m := computeThumb(height, i.count, i.selection)
	for cell := range height {
		glyph, style := i.glyph(m.cellFill(cell))
		screen.Put(x, y+cell, glyph, style.Background(i.backgroundColor))
	}
}

var _ Primitive = &Indicator{}
