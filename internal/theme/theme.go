package theme

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// DialogColors defines color scheme for dialogs and modals
type DialogColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Border     tcell.Color
	Title      tcell.Color
	SelectedBg tcell.Color
	SelectedFg tcell.Color
	ButtonBg   tcell.Color
	ButtonFg   tcell.Color
	FieldBg    tcell.Color // Input field background
	FieldFg    tcell.Color // Input field text
}

// DefaultColors defines default text colors for general use
type DefaultColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Waiting    tcell.Color // Color for "Loading..." messages
}

// StatusColors defines color scheme for the status bar
type StatusColors struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HighlightBg tcell.Color
	HighlightFg tcell.Color
	ErrorBg     tcell.Color
	ErrorFg     tcell.Color
}

// PanelColors defines color scheme for side panels
type PanelColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Border     tcell.Color
	Title      tcell.Color
	HeaderBg   tcell.Color
	HeaderFg   tcell.Color
}

// AdviceColors defines the cell colors used when a recommendation is
// rendered as terminal text rather than pixels
type AdviceColors struct {
	Buy   tcell.Color
	Hold  tcell.Color
	Avoid tcell.Color
}

// BorderStyle defines border styling options
type BorderStyle struct {
	Color      tcell.Color
	TitleColor tcell.Color
	Padding    int
}

// Theme interface defines all theming properties
type Theme interface {
	// Name returns the theme name
	Name() string

	// Color schemes for different components
	DefaultColors() DefaultColors
	DialogColors() DialogColors
	StatusColors() StatusColors
	PanelColors() PanelColors
	AdviceColors() AdviceColors

	// Border styling
	BorderStyle() BorderStyle
}

// ThemeManager manages theme selection and application
type ThemeManager struct {
	currentTheme Theme
	themes       map[string]Theme
}

// NewThemeManager creates a new theme manager
func NewThemeManager() *ThemeManager {
	tm := &ThemeManager{
		themes: make(map[string]Theme),
	}

	// Register built-in themes
	tm.RegisterTheme(NewMidnightTheme())

	// Set default theme
	tm.SetTheme("midnight")

	return tm
}

// RegisterTheme registers a new theme
func (tm *ThemeManager) RegisterTheme(theme Theme) {
	tm.themes[theme.Name()] = theme
}

// SetTheme sets the current theme by name
func (tm *ThemeManager) SetTheme(name string) error {
	if theme, exists := tm.themes[name]; exists {
		tm.currentTheme = theme
		return nil
	}
	return fmt.Errorf("theme '%s' not found", name)
}

// Current returns the current theme
func (tm *ThemeManager) Current() Theme {
	return tm.currentTheme
}

// Available returns list of available theme names
func (tm *ThemeManager) Available() []string {
	names := make([]string, 0, len(tm.themes))
	for name := range tm.themes {
		names = append(names, name)
	}
	return names
}

// Global theme manager instance
var defaultThemeManager = NewThemeManager()

// GetThemeManager returns the global theme manager
func GetThemeManager() *ThemeManager {
	return defaultThemeManager
}

// Current returns the current theme from the global manager
func Current() Theme {
	return defaultThemeManager.Current()
}
