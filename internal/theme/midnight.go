package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Fixed hex colors so the dashboard looks the same regardless of the
// terminal's own color scheme
var (
	InkBlack     = tcell.NewHexColor(0x10121C) // matches the canvas background
	InkDarkGray  = tcell.NewHexColor(0x3A3D4D)
	InkLightGray = tcell.NewHexColor(0xC0C4D0)
	InkWhite     = tcell.NewHexColor(0xF2F4FA)
	InkBlue      = tcell.NewHexColor(0x1B2440)
	InkLightBlue = tcell.NewHexColor(0x50B4FF) // matches the hover outline
	InkGreen     = tcell.NewHexColor(0x00C85A) // BUY
	InkGray      = tcell.NewHexColor(0x8C8C96) // HOLD
	InkRed       = tcell.NewHexColor(0xDC3C32) // AVOID
	InkYellow    = tcell.NewHexColor(0xE8C832)
)

// MidnightTheme is the dark dashboard theme, tuned so the terminal chrome
// blends into the pixel canvas behind it
type MidnightTheme struct{}

// NewMidnightTheme creates a new midnight theme instance
func NewMidnightTheme() *MidnightTheme {
	return &MidnightTheme{}
}

// Name returns the theme name
func (t *MidnightTheme) Name() string {
	return "midnight"
}

// DefaultColors returns the default color scheme
func (t *MidnightTheme) DefaultColors() DefaultColors {
	return DefaultColors{
		Background: InkBlack,
		Foreground: InkLightGray,
		Waiting:    InkDarkGray,
	}
}

// DialogColors returns the dialog color scheme
func (t *MidnightTheme) DialogColors() DialogColors {
	return DialogColors{
		Background: InkBlue,
		Foreground: InkWhite,
		Border:     InkLightBlue,
		Title:      InkWhite,
		SelectedBg: InkLightBlue,
		SelectedFg: InkBlack,
		ButtonBg:   InkLightGray,
		ButtonFg:   InkBlack,
		FieldBg:    InkBlack,
		FieldFg:    InkWhite,
	}
}

// StatusColors returns the status bar color scheme
func (t *MidnightTheme) StatusColors() StatusColors {
	return StatusColors{
		Background:  InkBlue,
		Foreground:  InkLightGray,
		HighlightBg: InkLightBlue,
		HighlightFg: InkBlack,
		ErrorBg:     InkRed,
		ErrorFg:     InkWhite,
	}
}

// PanelColors returns the panel color scheme
func (t *MidnightTheme) PanelColors() PanelColors {
	return PanelColors{
		Background: InkBlack,
		Foreground: InkLightGray,
		Border:     InkDarkGray,
		Title:      InkLightBlue,
		HeaderBg:   InkBlack,
		HeaderFg:   InkWhite,
	}
}

// AdviceColors returns the recommendation text colors
func (t *MidnightTheme) AdviceColors() AdviceColors {
	return AdviceColors{
		Buy:   InkGreen,
		Hold:  InkGray,
		Avoid: InkRed,
	}
}

// BorderStyle returns the border styling
func (t *MidnightTheme) BorderStyle() BorderStyle {
	return BorderStyle{
		Color:      InkDarkGray,
		TitleColor: InkLightBlue,
		Padding:    0,
	}
}
