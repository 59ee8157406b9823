package carousel

// Box drawing glyphs used by the border sets.
const (
	boxLightHorizontal      = "\u2500" // ─
	boxLightVertical        = "\u2502" // │
	boxLightDownAndRight    = "\u250c" // ┌
	boxLightDownAndLeft     = "\u2510" // ┐
	boxLightUpAndRight      = "\u2514" // └
	boxLightUpAndLeft       = "\u2518" // ┘
	boxLightArcDownAndRight = "\u256d" // ╭
	boxLightArcDownAndLeft  = "\u256e" // ╮
	boxLightArcUpAndLeft    = "\u256f" // ╯
	boxLightArcUpAndRight   = "\u2570" // ╰
	boxHeavyHorizontal      = "\u2501" // ━
	boxHeavyVertical        = "\u2503" // ┃
	boxHeavyDownAndRight    = "\u250f" // ┏
	boxHeavyDownAndLeft     = "\u2513" // ┓
	boxHeavyUpAndRight      = "\u2517" // ┗
	boxHeavyUpAndLeft       = "\u251b" // ┛

	horizontalEllipsis = "\u2026" // …
)

// BorderSet defines the glyphs of a box frame.
type BorderSet struct {
	Top         string
	Bottom      string
	Left        string
	Right       string
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
}

func BorderSetPlain() BorderSet {
	return BorderSet{
		Top:         boxLightHorizontal,
		Bottom:      boxLightHorizontal,
		Left:        boxLightVertical,
		Right:       boxLightVertical,
		TopLeft:     boxLightDownAndRight,
		TopRight:    boxLightDownAndLeft,
		BottomLeft:  boxLightUpAndRight,
		BottomRight: boxLightUpAndLeft,
	}
}

func BorderSetRound() BorderSet {
	b := BorderSetPlain()
	b.TopLeft = boxLightArcDownAndRight
	b.TopRight = boxLightArcDownAndLeft
	b.BottomLeft = boxLightArcUpAndRight
	b.BottomRight = boxLightArcUpAndLeft
	return b
}

// BorderSetThick is used for the selected card.
func BorderSetThick() BorderSet {
	return BorderSet{
		Top:         boxHeavyHorizontal,
		Bottom:      boxHeavyHorizontal,
		Left:        boxHeavyVertical,
		Right:       boxHeavyVertical,
		TopLeft:     boxHeavyDownAndRight,
		TopRight:    boxHeavyDownAndLeft,
		BottomLeft:  boxHeavyUpAndRight,
		BottomRight: boxHeavyUpAndLeft,
	}
}

type Borders uint

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll  Borders = BordersTop | BordersBottom | BordersLeft | BordersRight
)

func (b Borders) Has(flag Borders) bool {
	return b&flag != 0
}
