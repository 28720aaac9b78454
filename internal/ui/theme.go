package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	AccentAlt  lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	BarFill    lipgloss.Color
	BarEmpty   lipgloss.Color
}

const defaultTheme = "laag"

var palettes = map[string]palette{
	// Sea blue and sunset orange of the app icon.
	"laag": {
		Background: lipgloss.Color("#0b1d2a"),
		Surface:    lipgloss.Color("#13324a"),
		Text:       lipgloss.Color("#f2f6f9"),
		Muted:      lipgloss.Color("#8aa4b8"),
		Accent:     lipgloss.Color("#ff8c42"),
		AccentAlt:  lipgloss.Color("#2ec4b6"),
		Border:     lipgloss.Color("#2b5876"),
		Success:    lipgloss.Color("#7bd389"),
		Warning:    lipgloss.Color("#ffd166"),
		BarFill:    lipgloss.Color("#ff8c42"),
		BarEmpty:   lipgloss.Color("#13324a"),
	},
	"laag_light": {
		Background: lipgloss.Color("#fdfaf5"),
		Surface:    lipgloss.Color("#efe7da"),
		Text:       lipgloss.Color("#1b2b38"),
		Muted:      lipgloss.Color("#6b7b88"),
		Accent:     lipgloss.Color("#d9601c"),
		AccentAlt:  lipgloss.Color("#13807a"),
		Border:     lipgloss.Color("#c9b99f"),
		Success:    lipgloss.Color("#2f8f46"),
		Warning:    lipgloss.Color("#b7791f"),
		BarFill:    lipgloss.Color("#d9601c"),
		BarEmpty:   lipgloss.Color("#efe7da"),
	},
	"catppuccin": {
		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Text:       lipgloss.Color("#cdd6f4"),
		Muted:      lipgloss.Color("#a6adc8"),
		Accent:     lipgloss.Color("#cba6f7"),
		AccentAlt:  lipgloss.Color("#f38ba8"),
		Border:     lipgloss.Color("#585b70"),
		Success:    lipgloss.Color("#94e2d5"),
		Warning:    lipgloss.Color("#f9e2af"),
		BarFill:    lipgloss.Color("#94e2d5"),
		BarEmpty:   lipgloss.Color("#313244"),
	},
	"gruvbox": {
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Text:       lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#a89984"),
		Accent:     lipgloss.Color("#fabd2f"),
		AccentAlt:  lipgloss.Color("#d3869b"),
		Border:     lipgloss.Color("#665c54"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fe8019"),
		BarFill:    lipgloss.Color("#b8bb26"),
		BarEmpty:   lipgloss.Color("#3c3836"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[defaultTheme]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	muted    lipgloss.Style
	accent   lipgloss.Style
	success  lipgloss.Style
	warning  lipgloss.Style
	card     lipgloss.Style
	selected lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
	dialog   lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.AccentAlt),
		muted:    lipgloss.NewStyle().Foreground(p.Muted),
		accent:   lipgloss.NewStyle().Foreground(p.Accent),
		success:  lipgloss.NewStyle().Foreground(p.Success),
		warning:  lipgloss.NewStyle().Foreground(p.Warning),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		selected: lipgloss.NewStyle().Bold(true).Foreground(p.Background).Background(p.Accent),
		tab:      lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		tabOn:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Underline(true).Padding(0, 1),
		dialog:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.Warning).Padding(1, 2),
	}
}

// bar renders a fixed-width progress bar for v in [0, 100].
func bar(p palette, v, width int) string {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	filled := v * width / 100
	fill := lipgloss.NewStyle().Foreground(p.BarFill)
	empty := lipgloss.NewStyle().Foreground(p.BarEmpty)
	out := ""
	for i := 0; i < width; i++ {
		if i < filled {
			out += fill.Render("█")
		} else {
			out += empty.Render("░")
		}
	}
	return out
}
