package carousel

import "github.com/ayn2op/carousel/keybind"

// KeyMap holds the key bindings of a Carousel.
type KeyMap struct {
	Next      keybind.Keybind
	Prev      keybind.Keybind
	FlingDown keybind.Keybind
	FlingUp   keybind.Keybind
	First     keybind.Keybind
	Last      keybind.Keybind
}

// DefaultKeyMap binds arrows and vi keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: keybind.NewKeybind(
			keybind.WithKeys("down", "j"),
			keybind.WithHelp("↓/j", "next"),
		),
		Prev: keybind.NewKeybind(
			keybind.WithKeys("up", "k"),
			keybind.WithHelp("↑/k", "previous"),
		),
		FlingDown: keybind.NewKeybind(
			keybind.WithKeys("pgdn", "ctrl+d"),
			keybind.WithHelp("pgdn", "fling down"),
		),
		FlingUp: keybind.NewKeybind(
			keybind.WithKeys("pgup", "ctrl+u"),
			keybind.WithHelp("pgup", "fling up"),
		),
		First: keybind.NewKeybind(
			keybind.WithKeys("home", "g"),
			keybind.WithHelp("home/g", "first"),
		),
		Last: keybind.NewKeybind(
			keybind.WithKeys("end", "G"),
			keybind.WithHelp("end/G", "last"),
		),
	}
}

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Next, k.Prev, k.FlingDown, k.FlingUp}
}

// FullHelp returns the bindings grouped by column.
func (k KeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.Next, k.Prev},
		{k.FlingDown, k.FlingUp},
		{k.First, k.Last},
	}
}
