// Package stage lays out a full-screen carousel: the main view fills the
// screen above a help footer, and an optional overlay (for example the
// details of the selected card) is drawn on top with the layers behind it
// dimmed.
package stage

import (
	"time"

	"github.com/ayn2op/carousel"
	"github.com/ayn2op/carousel/help"
	"github.com/ayn2op/carousel/keybind"
	"github.com/gdamore/tcell/v3"
)

// KeyMap holds the bindings the stage handles itself.
type KeyMap struct {
	Help    keybind.Keybind
	Details keybind.Keybind
	Close   keybind.Keybind
	Quit    keybind.Keybind
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: keybind.NewKeybind(
			keybind.WithKeys("?"),
			keybind.WithHelp("?", "help"),
		),
		Details: keybind.NewKeybind(
			keybind.WithKeys("enter", "space"),
			keybind.WithHelp("enter", "details"),
		),
		Close: keybind.NewKeybind(
			keybind.WithKeys("esc"),
			keybind.WithHelp("esc", "close"),
		),
		Quit: keybind.NewKeybind(
			keybind.WithKeys("q", "ctrl+c"),
			keybind.WithHelp("q", "quit"),
		),
	}
}

// Stage is the root primitive of the carousel application.
type Stage struct {
	*carousel.Box

	main   carousel.Primitive
	footer *help.Help

	overlay        carousel.Primitive
	overlayVisible bool
	// The style applied to the main view while the overlay is shown.
	backgroundStyle tcell.Style

	keys     KeyMap
	mainKeys help.KeyMap

	details  func() carousel.Primitive
	setFocus func(p carousel.Primitive)
}

// New returns a stage around main. mainKeys, if not nil, is listed in the
// footer ahead of the stage's own bindings.
func New(main carousel.Primitive, mainKeys help.KeyMap) *Stage {
	s := &Stage{
		Box:             carousel.NewBox(),
		main:            main,
		footer:          help.New(),
		keys:            DefaultKeyMap(),
		mainKeys:        mainKeys,
		backgroundStyle: tcell.StyleDefault.Dim(true),
	}
	s.footer.SetKeyMap(s)
	return s
}

// SetKeyMap replaces the stage bindings.
func (s *Stage) SetKeyMap(keys KeyMap) *Stage {
	s.keys = keys
	return s
}

// SetDetailsFunc sets the function that builds the overlay shown by the
// Details binding. A nil result shows nothing.
func (s *Stage) SetDetailsFunc(details func() carousel.Primitive) *Stage {
	s.details = details
	return s
}

// SetBackgroundStyle sets the style applied behind a visible overlay.
func (s *Stage) SetBackgroundStyle(style tcell.Style) *Stage {
	s.backgroundStyle = style
	return s
}

// Footer returns the help footer.
func (s *Stage) Footer() *help.Help {
	return s.footer
}

// ShowOverlay draws p centered over the main view and routes input to it.
func (s *Stage) ShowOverlay(p carousel.Primitive) *Stage {
	hasFocus := s.HasFocus()
	s.overlay = p
	s.overlayVisible = p != nil
	s.MarkDirty()
	s.refocus(hasFocus)
	return s
}

// HideOverlay removes the overlay.
func (s *Stage) HideOverlay() *Stage {
	if s.overlayVisible {
		hasFocus := s.HasFocus()
		s.overlayVisible = false
		s.overlay = nil
		s.MarkDirty()
		s.refocus(hasFocus)
	}
	return s
}

// OverlayVisible reports whether an overlay is shown.
func (s *Stage) OverlayVisible() bool {
	return s.overlayVisible
}

// ShortHelp implements help.KeyMap.
func (s *Stage) ShortHelp() []keybind.Keybind {
	var keys []keybind.Keybind
	if s.overlayVisible {
		return append(keys, s.keys.Close, s.keys.Quit)
	}
	if s.mainKeys != nil {
		keys = append(keys, s.mainKeys.ShortHelp()...)
	}
	return append(keys, s.keys.Details, s.keys.Help, s.keys.Quit)
}

// FullHelp implements help.KeyMap.
func (s *Stage) FullHelp() [][]keybind.Keybind {
	var groups [][]keybind.Keybind
	if s.mainKeys != nil {
		groups = append(groups, s.mainKeys.FullHelp()...)
	}
	return append(groups, []keybind.Keybind{s.keys.Details, s.keys.Close}, []keybind.Keybind{s.keys.Help, s.keys.Quit})
}

func (s *Stage) front() carousel.Primitive {
	if s.overlayVisible {
		return s.overlay
	}
	return s.main
}

func (s *Stage) refocus(hasFocus bool) {
	if s.setFocus != nil && hasFocus {
		s.setFocus(s.front())
	}
}

// HasFocus reports whether the stage or one of its children has focus.
func (s *Stage) HasFocus() bool {
	if s.main != nil && s.main.HasFocus() {
		return true
	}
	if s.overlay != nil && s.overlay.HasFocus() {
		return true
	}
	return s.Box.HasFocus()
}

// Focus delegates focus to the front-most child.
func (s *Stage) Focus(delegate func(p carousel.Primitive)) {
	if delegate == nil {
		return
	}
	s.setFocus = delegate
	if front := s.front(); front != nil {
		delegate(front)
		return
	}
	s.Box.Focus(delegate)
}

// Animating implements carousel.Animator for an animating main view.
func (s *Stage) Animating() bool {
	a, ok := s.main.(carousel.Animator)
	return ok && a.Animating()
}

// Tick implements carousel.Animator.
func (s *Stage) Tick(now time.Time) carousel.Command {
	if a, ok := s.main.(carousel.Animator); ok {
		return a.Tick(now)
	}
	return nil
}

// Draw draws the main view, the footer and the overlay.
func (s *Stage) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, width, height := s.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	footerHeight := min(s.footer.Height(width), height)
	s.footer.SetRect(x, y+height-footerHeight, width, footerHeight)

	mainScreen := screen
	if s.overlayVisible {
		mainScreen = newOverlayScreen(screen, s.backgroundStyle)
	}
	if s.main != nil {
		s.main.SetRect(x, y, width, height-footerHeight)
		s.main.Draw(mainScreen)
	}
	s.footer.Draw(screen)

	if s.overlayVisible && s.overlay != nil {
		_, _, ow, oh := s.overlay.GetRect()
		ow, oh = min(ow, width), min(oh, height-footerHeight)
		s.overlay.SetRect(x+(width-ow)/2, y+(height-footerHeight-oh)/2, ow, oh)
		s.overlay.Draw(screen)
	}
}

// InputHandler handles the stage bindings and passes other keys to the
// front-most child.
func (s *Stage) InputHandler(event *tcell.EventKey) carousel.Command {
	switch {
	case keybind.Matches(event, s.keys.Quit):
		return carousel.QuitCommand{}
	case keybind.Matches(event, s.keys.Help):
		s.footer.SetShowAll(!s.footer.ShowAll())
		s.MarkDirty()
		return carousel.RedrawCommand{}
	case s.overlayVisible && keybind.Matches(event, s.keys.Close, s.keys.Details):
		s.HideOverlay()
		return carousel.RedrawCommand{}
	case !s.overlayVisible && keybind.Matches(event, s.keys.Details):
		if s.details == nil {
			return nil
		}
		if p := s.details(); p != nil {
			s.ShowOverlay(p)
			return carousel.RedrawCommand{}
		}
		return nil
	}

	if front := s.front(); front != nil {
		return front.InputHandler(event)
	}
	return nil
}

// PasteHandler passes pasted text to the front-most child.
func (s *Stage) PasteHandler(text string) carousel.Command {
	if front := s.front(); front != nil {
		return front.PasteHandler(text)
	}
	return nil
}

// MouseHandler passes mouse events to the front-most child. A visible
// overlay blocks events to the main view; a click outside it closes it.
func (s *Stage) MouseHandler(action carousel.MouseAction, event *tcell.EventMouse) (carousel.Primitive, carousel.Command) {
	if !s.InRect(event.Position()) {
		return nil, nil
	}

	if s.overlayVisible {
		x, y := event.Position()
		if !inRect(s.overlay, x, y) {
			if action == carousel.MouseLeftClick {
				s.HideOverlay()
				return nil, carousel.RedrawCommand{}
			}
			return nil, nil
		}
		return s.overlay.MouseHandler(action, event)
	}

	if s.main != nil {
		return s.main.MouseHandler(action, event)
	}
	return nil, nil
}

func inRect(p carousel.Primitive, x, y int) bool {
	if p == nil {
		return false
	}
	rx, ry, rw, rh := p.GetRect()
	return x >= rx && x < rx+rw && y >= ry && y < ry+rh
}

var (
	_ carousel.Primitive = &Stage{}
	_ carousel.Animator  = &Stage{}
	_ help.KeyMap        = &Stage{}
)
