package help

import (
	"github.com/ayn2op/carousel"
	"github.com/gdamore/tcell/v3"
)

type Styles struct {
	ShortKeyStyle       tcell.Style
	ShortDescStyle      tcell.Style
	ShortSeparatorStyle tcell.Style

	FullKeyStyle       tcell.Style
	FullDescStyle      tcell.Style
	FullSeparatorStyle tcell.Style

	EllipsisStyle tcell.Style
}

// DefaultStyles draws keys in the theme's secondary color and descriptions
// in its primary color.
func DefaultStyles() Styles {
	key := tcell.StyleDefault.Foreground(carousel.Styles.SecondaryTextColor).Bold(true)
	desc := tcell.StyleDefault.Foreground(carousel.Styles.PrimaryTextColor)
	dim := tcell.StyleDefault.Foreground(carousel.Styles.SecondaryTextColor).Dim(true)
	return Styles{
		ShortKeyStyle:       key,
		ShortDescStyle:      desc,
		ShortSeparatorStyle: dim,
		FullKeyStyle:        key,
		FullDescStyle:       desc,
		FullSeparatorStyle:  dim,
		EllipsisStyle:       dim,
	}
}
