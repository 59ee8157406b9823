package carousel

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type cell struct {
	text  string
	style tcell.Style
	// cont marks the trailing columns of a wide grapheme.
	cont bool
}

// Snapshot is an offscreen frame: the cells a primitive drew, without a
// terminal.
type Snapshot struct {
	width, height int
	cells         []cell
}

func newSnapshot(width, height int) *Snapshot {
	width, height = max(width, 0), max(height, 0)
	s := &Snapshot{width: width, height: height, cells: make([]cell, width*height)}
	s.clear(tcell.StyleDefault)
	return s
}

func (s *Snapshot) clear(style tcell.Style) {
	for i := range s.cells {
		s.cells[i] = cell{text: " ", style: style}
	}
}

// Size returns the snapshot dimensions.
func (s *Snapshot) Size() (width, height int) {
	return s.width, s.height
}

// Cell returns the grapheme and style at (x, y). Continuation columns of wide
// graphemes and coordinates outside the frame return "".
func (s *Snapshot) Cell(x, y int) (string, tcell.Style) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return "", tcell.StyleDefault
	}
	c := s.cells[y*s.width+x]
	if c.cont {
		return "", c.style
	}
	return c.text, c.style
}

// Line returns row y as text.
func (s *Snapshot) Line(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var b strings.Builder
	for x := range s.width {
		c := s.cells[y*s.width+x]
		if !c.cont {
			b.WriteString(c.text)
		}
	}
	return b.String()
}

// Lines returns every row as text.
func (s *Snapshot) Lines() []string {
	lines := make([]string, s.height)
	for y := range lines {
		lines[y] = s.Line(y)
	}
	return lines
}

// String returns the rows with trailing blanks trimmed, one per line.
func (s *Snapshot) String() string {
	lines := s.Lines()
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func (s *Snapshot) put(x, y int, text string, width int, style tcell.Style) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	// Match terminal clipping behavior for wide graphemes at the right edge.
	if width > 1 && x+width > s.width {
		text, width = " ", 1
	}
	row := y * s.width
	// Overwriting the tail of a wide grapheme blanks its lead.
	if s.cells[row+x].cont {
		for lead := x - 1; lead >= 0; lead-- {
			if !s.cells[row+lead].cont {
				s.cells[row+lead] = cell{text: " ", style: s.cells[row+lead].style}
				break
			}
		}
	}
	s.cells[row+x] = cell{text: text, style: style}
	for i := 1; i < width; i++ {
		s.cells[row+x+i] = cell{style: style, cont: true}
	}
}

// captureScreen satisfies tcell.Screen by drawing into a Snapshot. Methods
// that need a terminal fall through to the embedded nil Screen and must not
// be called.
type captureScreen struct {
	tcell.Screen
	snapshot     *Snapshot
	defaultStyle tcell.Style
}

func (s *captureScreen) Size() (int, int) {
	return s.snapshot.Size()
}

func (s *captureScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	text := string(primary)
	if len(combining) > 0 {
		text += string(combining)
	}
	s.snapshot.put(x, y, text, max(uniseg.StringWidth(text), 1), style)
}

func (s *captureScreen) Clear() {
	s.snapshot.clear(s.defaultStyle)
}

func (s *captureScreen) Fill(r rune, style tcell.Style) {
	for y := range s.snapshot.height {
		for x := range s.snapshot.width {
			s.SetContent(x, y, r, nil, style)
		}
	}
}

func (s *captureScreen) SetStyle(style tcell.Style) {
	s.defaultStyle = style
}

func (s *captureScreen) Get(x, y int) (str string, style tcell.Style, width int) {
	str, style = s.snapshot.Cell(x, y)
	return str, style, max(uniseg.StringWidth(str), 1)
}

func (s *captureScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if str == "" {
		return "", 0
	}

	cluster, remain, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if cluster == "" {
		r, size := utf8.DecodeRuneInString(str)
		if size == 0 {
			return "", 0
		}
		cluster, remain, width = string(r), str[size:], 1
	}
	if width <= 0 {
		return remain, 0
	}
	s.snapshot.put(x, y, cluster, width, style)
	return remain, width
}

func (s *captureScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, s.defaultStyle)
}

func (s *captureScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	for str != "" && x < s.snapshot.width {
		remain, width := s.Put(x, y, str, style)
		if width <= 0 || remain == str {
			return
		}
		x += width
		str = remain
	}
}

func (s *captureScreen) ShowCursor(x int, y int) {}

func (s *captureScreen) HideCursor() {}

func (s *captureScreen) Show() {}

// Capture lays p out at (0, 0, width, height) and draws it offscreen.
func Capture(p Primitive, width, height int) *Snapshot {
	screen := &captureScreen{snapshot: newSnapshot(width, height)}
	p.SetRect(0, 0, width, height)
	p.Draw(screen)
	return screen.snapshot
}

// Render draws p offscreen and returns its rows as text.
func Render(p Primitive, width, height int) []string {
	return Capture(p, width, height).Lines()
}
