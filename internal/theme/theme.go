// Package theme provides the colour palettes used for console output.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the colours the report uses.
type Theme struct {
	DangerFg lipgloss.Color // Header and flagged paths
	WarnFg   lipgloss.Color // Remediation hint
	MutedFg  lipgloss.Color // Secondary text (pattern listings)
	AccentFg lipgloss.Color // Headings outside the report
}

// Theme names.
const (
	ANSIName          = "ansi"
	DraculaName       = "dracula"
	NarnaName         = "narna"
	CleanLightName    = "clean-light"
	SolarizedDarkName = "solarized-dark"
	GruvboxDarkName   = "gruvbox-dark"
	NordName          = "nord"
)

// ANSI uses the terminal's own red and yellow, so output follows the user's
// terminal palette.
func ANSI() *Theme {
	return &Theme{
		DangerFg: lipgloss.Color("1"),
		WarnFg:   lipgloss.Color("3"),
		MutedFg:  lipgloss.Color("8"),
		AccentFg: lipgloss.Color("6"),
	}
}

// Dracula returns the Dracula palette.
func Dracula() *Theme {
	return &Theme{
		DangerFg: lipgloss.Color("#FF5555"), // Red
		WarnFg:   lipgloss.Color("#FFB86C"), // Orange
		MutedFg:  lipgloss.Color("#6272A4"), // Comment
		AccentFg: lipgloss.Color("#BD93F9"), // Purple
	}
}

// Narna returns a balanced dark palette with blue accents.
func Narna() *Theme {
	return &Theme{
		DangerFg: lipgloss.Color("#F47067"),
		WarnFg:   lipgloss.Color("#E3B341"),
		MutedFg:  lipgloss.Color("#8B949E"),
		AccentFg: lipgloss.Color("#41ADFF"),
	}
}

// CleanLight returns a palette for light terminal backgrounds.
func CleanLight() *Theme {
	return &Theme{
		DangerFg: lipgloss.Color("#CF222E"),
		WarnFg:   lipgloss.Color("#9A6700"),
		MutedFg:  lipgloss.Color("#6E7781"),
		AccentFg: lipgloss.Color("#0598BC"),
	}
}

// SolarizedDark returns the Solarized dark palette.
func SolarizedDark() *Theme {
	return &Theme{
		DangerFg: lipgloss.Color("#DC322F"),
		WarnFg:   lipgloss.Color("#B58900"),
		MutedFg:  lipgloss.Color("#586E75"),
		AccentFg: lipgloss.Color("#268BD2"),
	}
}

// GruvboxDark returns the Gruvbox dark palette.
func GruvboxDark() *Theme {
	return &Theme{
		DangerFg: lipgloss.Color("#FB4934"),
		WarnFg:   lipgloss.Color("#FABD2F"),
		MutedFg:  lipgloss.Color("#928374"),
		AccentFg: lipgloss.Color("#83A598"),
	}
}

// Nord returns the Nord palette.
func Nord() *Theme {
	return &Theme{
		DangerFg: lipgloss.Color("#BF616A"),
		WarnFg:   lipgloss.Color("#EBCB8B"),
		MutedFg:  lipgloss.Color("#4C566A"),
		AccentFg: lipgloss.Color("#88C0D0"),
	}
}

// GetTheme returns a theme by name, or ANSI if not found.
func GetTheme(name string) *Theme {
	switch name {
	case DraculaName:
		return Dracula()
	case NarnaName:
		return Narna()
	case CleanLightName:
		return CleanLight()
	case SolarizedDarkName:
		return SolarizedDark()
	case GruvboxDarkName:
		return GruvboxDark()
	case NordName:
		return Nord()
	default:
		return ANSI()
	}
}

// IsKnown reports whether name is one of AvailableThemes.
func IsKnown(name string) bool {
	for _, n := range AvailableThemes() {
		if n == name {
			return true
		}
	}
	return false
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		ANSIName,
		DraculaName,
		NarnaName,
		CleanLightName,
		SolarizedDarkName,
		GruvboxDarkName,
		NordName,
	}
}

// Styles are the lipgloss styles derived from a Theme for one renderer.
type Styles struct {
	Header lipgloss.Style
	Item   lipgloss.Style
	Hint   lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
}

// NewStyles binds t to renderer r, which decides whether colour is emitted.
func NewStyles(r *lipgloss.Renderer, t *Theme) Styles {
	return Styles{
		Header: r.NewStyle().Foreground(t.DangerFg).Bold(true),
		Item:   r.NewStyle().Foreground(t.DangerFg),
		Hint:   r.NewStyle().Foreground(t.WarnFg),
		Muted:  r.NewStyle().Foreground(t.MutedFg),
		Accent: r.NewStyle().Foreground(t.AccentFg).Bold(true),
	}
}
