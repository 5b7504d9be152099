package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kmoretti/marquee/internal/prefs"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	prefs.ThemeDark:  darkTheme(),
	prefs.ThemeLight: lightTheme(),
}

var themeOrder = []string{prefs.ThemeDark, prefs.ThemeLight}

// GetTheme returns a theme by name, falling back to dark.
func GetTheme(name string) Theme {
	if t, ok := themes[prefs.NormalizeTheme(name)]; ok {
		return t
	}
	return darkTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func darkTheme() Theme {
	return Theme{
		Name: prefs.ThemeDark,

		Background: "#15141b",
		Surface:    "#1f1d2a",

		SelectionBg:   "#3b3a52",
		SelectionText: "#edecee",

		Border:      "#3b3a52",
		BorderFocus: "#a277ff",

		Text:    "#edecee",
		Muted:   "#6d6d7d",
		Accent:  "#a277ff",
		Success: "#61ffca",
		Warning: "#ffca85",
		Danger:  "#ff6767",
	}
}

func lightTheme() Theme {
	return Theme{
		Name: prefs.ThemeLight,

		Background: "#fafafa",
		Surface:    "#ebebeb",

		SelectionBg:   "#d0d0e3",
		SelectionText: "#2a2a33",

		Border:      "#c5c5d2",
		BorderFocus: "#6b4fbb",

		Text:    "#2a2a33",
		Muted:   "#8a8a99",
		Accent:  "#6b4fbb",
		Success: "#1a7f5a",
		Warning: "#b06000",
		Danger:  "#c23b3b",
	}
}
