package stage

import "github.com/gdamore/tcell/v3"

// overlayScreen applies a style to everything drawn through it.
type overlayScreen struct {
	tcell.Screen
	overlay tcell.Style
}

func newOverlayScreen(screen tcell.Screen, overlay tcell.Style) *overlayScreen {
	return &overlayScreen{Screen: screen, overlay: overlay}
}

func (s *overlayScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	s.Screen.SetContent(x, y, primary, combining, overlayStyle(style, s.overlay))
}

func (s *overlayScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	return s.Screen.Put(x, y, str, overlayStyle(style, s.overlay))
}

func (s *overlayScreen) PutStr(x int, y int, str string) {
	s.Screen.PutStrStyled(x, y, str, overlayStyle(tcell.StyleDefault, s.overlay))
}

func (s *overlayScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	s.Screen.PutStrStyled(x, y, str, overlayStyle(style, s.overlay))
}

// overlayStyle applies the colors overlay sets explicitly and adds its dim
// and reverse attributes. Attributes are never removed.
func overlayStyle(base, overlay tcell.Style) tcell.Style {
	if fg := overlay.GetForeground(); fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	if bg := overlay.GetBackground(); bg != tcell.ColorDefault {
		base = base.Background(bg)
	}
	if overlay.HasDim() {
		base = base.Dim(true)
	}
	if overlay.HasReverse() {
		base = base.Reverse(true)
	}
	return base
}
