package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors one theme paints with.
type Palette struct {
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color
	// Glamour is the glamour standard style that matches the palette.
	Glamour string
}

var palettes = map[string]Palette{
	"default": {
		Base: "#1e1e2e", Mantle: "#181825", Surface0: "#313244", Surface1: "#45475a",
		Text: "#cdd6f4", Subtext0: "#a6adc8", Lavender: "#b4befe", Sapphire: "#74c7ec",
		Green: "#a6e3a1", Peach: "#fab387", Red: "#f38ba8", Glamour: "dark",
	},
	"light": {
		Base: "#eff1f5", Mantle: "#e6e9ef", Surface0: "#ccd0da", Surface1: "#bcc0cc",
		Text: "#4c4f69", Subtext0: "#6c6f85", Lavender: "#7287fd", Sapphire: "#209fb5",
		Green: "#40a02b", Peach: "#fe640b", Red: "#d20f39", Glamour: "light",
	},
	"midnight": {
		Base: "#0b0e1a", Mantle: "#070912", Surface0: "#1b2036", Surface1: "#2a3152",
		Text: "#d8def5", Subtext0: "#8a93b8", Lavender: "#8c9eff", Sapphire: "#4fc3f7",
		Green: "#69f0ae", Peach: "#ffab40", Red: "#ff5370", Glamour: "dark",
	},
	"forest": {
		Base: "#1b2418", Mantle: "#141b12", Surface0: "#2c3a27", Surface1: "#3d5036",
		Text: "#dfe8d5", Subtext0: "#a3b497", Lavender: "#b5d99c", Sapphire: "#7fbfa4",
		Green: "#8fd17a", Peach: "#e0b15e", Red: "#e07a5f", Glamour: "dark",
	},
	"sunset": {
		Base: "#2b1b24", Mantle: "#22141c", Surface0: "#432937", Surface1: "#5c3849",
		Text: "#fbe3d6", Subtext0: "#d1a8a0", Lavender: "#ff9e7d", Sapphire: "#ffcb6b",
		Green: "#c3e88d", Peach: "#ff7a59", Red: "#ff5c8a", Glamour: "dark",
	},
}

var (
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Heart      lipgloss.Style
	Star       lipgloss.Style
	Bar        lipgloss.Style

	active = "default"
)

func init() {
	Apply("default")
}

// Apply repaints every exported style with the named palette. Unknown names
// are ignored and reported as false. Styles are package state read during
// View, so Apply must run on the Bubble Tea update goroutine.
func Apply(name string) bool {
	p, ok := palettes[name]
	if !ok {
		return false
	}
	active = name

	Base, Mantle, Surface0, Surface1 = p.Base, p.Mantle, p.Surface0, p.Surface1
	Text, Subtext0 = p.Text, p.Subtext0
	Lavender, Sapphire, Green, Peach, Red = p.Lavender, p.Sapphire, p.Green, p.Peach, p.Red

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Heart = lipgloss.NewStyle().Foreground(Red)
	Star = lipgloss.NewStyle().Foreground(Peach)
	Bar = lipgloss.NewStyle().Background(Mantle)
	return true
}

// Active is the name of the palette last applied.
func Active() string { return active }

// GlamourStyle names the glamour style matching the active palette.
func GlamourStyle() string { return palettes[active].Glamour }

// Has reports whether a palette exists for name.
func Has(name string) bool {
	_, ok := palettes[name]
	return ok
}
