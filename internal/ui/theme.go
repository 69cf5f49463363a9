package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Unfocused panes
	FocusBg    string // Focused pane

	// Selection
	SelectionBg   string
	SelectionText string

	// Borders
	Border      string
	BorderFocus string

	// Text
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// CategoryColors tint catalog categories; unknown categories use Muted.
	CategoryColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		categoryColors: t.CategoryColors,
		background:     t.Background,
		muted:          t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	categoryColors map[string]string
	background     string
	muted          string
}

// CategoryBadge returns a badge style for a catalog category.
func (s Styles) CategoryBadge(category string) lipgloss.Style {
	color := s.categoryColors[strings.ToLower(strings.TrimSpace(category))]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with every text style painted on bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

var themes = map[string]Theme{
	"Negroni":  negroniTheme(),
	"Mojito":   mojitoTheme(),
	"Espresso": espressoTheme(),
}

var themeOrder = []string{"Negroni", "Mojito", "Espresso"}

// GetTheme returns a theme by name, matching case-insensitively.
func GetTheme(name string) Theme {
	for _, n := range themeOrder {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return themes[n]
		}
	}
	return negroniTheme()
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
	return append([]string(nil), themeOrder...)
}

func negroniTheme() Theme {
	// Deep bitter reds over a warm charcoal base.
	return Theme{
		Name: "Negroni",

		Background: "#141012",
		Surface:    "#1d1619",
		SurfaceAlt: "#261d21",
		FocusBg:    "#30242a",

		SelectionBg:   "#7a2434",
		SelectionText: "#f6e9e4",

		Border:      "#4a3940",
		BorderFocus: "#e2574c",

		Text:    "#f0e2dc",
		Muted:   "#a8958f",
		Faint:   "#7d6b66",
		Accent:  "#e2574c",
		Success: "#8fb573",
		Warning: "#f2a541",
		Danger:  "#ff5c70",
		Info:    "#f4a896",

		CategoryColors: map[string]string{
			"classic": "#f2a541",
			"citrus":  "#f7d154",
			"exotic":  "#c678dd",
		},
	}
}

func mojitoTheme() Theme {
	// Mint and lime on a dark green-gray base.
	return Theme{
		Name: "Mojito",

		Background: "#0e1512",
		Surface:    "#131d19",
		SurfaceAlt: "#1a2722",
		FocusBg:    "#21322b",

		SelectionBg:   "#2d6a4f",
		SelectionText: "#e9f5ee",

		Border:      "#35503f",
		BorderFocus: "#74c69d",

		Text:    "#e3f1e8",
		Muted:   "#95b2a1",
		Faint:   "#6a8576",
		Accent:  "#74c69d",
		Success: "#b7e4c7",
		Warning: "#e9d96b",
		Danger:  "#ef6f6c",
		Info:    "#52b69a",

		CategoryColors: map[string]string{
			"classic": "#e9d96b",
			"citrus":  "#c7f464",
			"exotic":  "#52b69a",
		},
	}
}

func espressoTheme() Theme {
	// Roasted browns with a crema accent.
	return Theme{
		Name: "Espresso",

		Background: "#120d0a",
		Surface:    "#1b1410",
		SurfaceAlt: "#241b15",
		FocusBg:    "#2e231b",

		SelectionBg:   "#6f4e37",
		SelectionText: "#f5ebe0",

		Border:      "#4b382b",
		BorderFocus: "#d4a373",

		Text:    "#ede0d4",
		Muted:   "#b09a86",
		Faint:   "#806b5a",
		Accent:  "#d4a373",
		Success: "#a3b18a",
		Warning: "#e9c46a",
		Danger:  "#e76f51",
		Info:    "#c8b6a6",

		CategoryColors: map[string]string{
			"classic": "#e9c46a",
			"citrus":  "#f4d58d",
			"exotic":  "#b5838d",
		},
	}
}
