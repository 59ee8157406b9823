package carousel

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	CardBackgroundColor      tcell.Color // Card faces.
	BorderColor              tcell.Color // Box borders.
	SelectedBorderColor      tcell.Color // Border of the selected card.
	TitleColor               tcell.Color // Box titles.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text (e.g. card captions).
	IndicatorColor           tcell.Color // Position indicator thumb.
}

// Styles defines the theme for applications.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	CardBackgroundColor:      color.Navy,
	BorderColor:              color.Silver,
	SelectedBorderColor:      color.Yellow,
	TitleColor:               color.White,
	PrimaryTextColor:         color.White,
	SecondaryTextColor:       color.Silver,
	IndicatorColor:           color.Yellow,
}
