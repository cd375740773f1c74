// Package style holds the color palettes and lipgloss styles used to draw
// the player chrome.
package style

import "github.com/charmbracelet/lipgloss"

// Palette defines the colors of one visual theme.
type Palette struct {
	Name string

	Background string // video surface
	Surface    string // header/footer bars
	SurfaceAlt string // More panel
	Border     string

	Text     string
	Muted    string
	Faint    string
	Accent   string // active controls
	Success  string
	Warning  string
	Danger   string
	Info     string
	Disabled string
}

// Styles are the pre-built lipgloss styles for a palette.
type Styles struct {
	Bar             lipgloss.Style
	Control         lipgloss.Style
	ControlActive   lipgloss.Style
	ControlDisabled lipgloss.Style
	Label           lipgloss.Style
	Panel           lipgloss.Style
	PanelTitle      lipgloss.Style
	Surface         lipgloss.Style
	SurfaceText     lipgloss.Style
	Message         lipgloss.Style
	MessageError    lipgloss.Style
	Help            lipgloss.Style

	Palette Palette
}

// Styles returns lipgloss styles for this palette.
func (p Palette) Styles() Styles {
	surface := lipgloss.Color(p.Surface)
	return Styles{
		Bar: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(p.Text)),

		Control: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(p.Text)).
			Padding(0, 1),

		ControlActive: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true).
			Padding(0, 1),

		ControlDisabled: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(p.Disabled)).
			Padding(0, 1),

		Label: lipgloss.NewStyle().
			Background(surface).
			Foreground(lipgloss.Color(p.Muted)).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Background(lipgloss.Color(p.SurfaceAlt)).
			Foreground(lipgloss.Color(p.Text)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Faint)).
			Bold(true),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Background)),

		SurfaceText: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Background)).
			Foreground(lipgloss.Color(p.Faint)),

		Message: lipgloss.NewStyle().
			Background(lipgloss.Color(p.SurfaceAlt)).
			Foreground(lipgloss.Color(p.Info)).
			Padding(0, 1),

		MessageError: lipgloss.NewStyle().
			Background(lipgloss.Color(p.SurfaceAlt)).
			Foreground(lipgloss.Color(p.Danger)).
			Bold(true).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Faint)),

		Palette: p,
	}
}

var palettes = map[string]Palette{
	"Nightfox": nightfox(),
	"Kanagawa": kanagawa(),
	"Slate":    slate(),
}

var paletteOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// DefaultPalette is used when no preference is stored.
const DefaultPalette = "Nightfox"

// Get returns a palette by name, falling back to the default.
func Get(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[DefaultPalette]
}

// Next returns the palette name following current in the cycle.
func Next(current string) string {
	for i, name := range paletteOrder {
		if name == current {
			return paletteOrder[(i+1)%len(paletteOrder)]
		}
	}
	return paletteOrder[0]
}

// Names returns the available palette names.
func Names() []string {
	return append([]string(nil), paletteOrder...)
}

func nightfox() Palette {
	// https://github.com/EdenEast/nightfox.nvim
	return Palette{
		Name:       "Nightfox",
		Background: "#131a24",
		Surface:    "#192330",
		SurfaceAlt: "#212e3f",
		Border:     "#39506d",
		Text:       "#cdcecf",
		Muted:      "#aeafb0",
		Faint:      "#71839b",
		Accent:     "#719cd6",
		Success:    "#81b29a",
		Warning:    "#dbc074",
		Danger:     "#c94f6d",
		Info:       "#63cdcf",
		Disabled:   "#4b5b70",
	}
}

func kanagawa() Palette {
	// https://github.com/rebelot/kanagawa.nvim
	return Palette{
		Name:       "Kanagawa",
		Background: "#16161D",
		Surface:    "#1F1F28",
		SurfaceAlt: "#2A2A37",
		Border:     "#54546D",
		Text:       "#DCD7BA",
		Muted:      "#C8C093",
		Faint:      "#727169",
		Accent:     "#7E9CD8",
		Success:    "#98BB6C",
		Warning:    "#E6C384",
		Danger:     "#E46876",
		Info:       "#7FB4CA",
		Disabled:   "#54546D",
	}
}

func slate() Palette {
	// Tailwind slate/sky
	return Palette{
		Name:       "Slate",
		Background: "#020617",
		Surface:    "#0f172a",
		SurfaceAlt: "#1e293b",
		Border:     "#334155",
		Text:       "#f1f5f9",
		Muted:      "#94a3b8",
		Faint:      "#64748b",
		Accent:     "#38bdf8",
		Success:    "#22c55e",
		Warning:    "#f59e0b",
		Danger:     "#ef4444",
		Info:       "#06b6d4",
		Disabled:   "#475569",
	}
}
