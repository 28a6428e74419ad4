package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/laralog/laralog/internal/domain"
)

// Colors
var (
	// Severity colors, matched to the ANSI palette the tail command uses
	severityColorMap = map[domain.Severity]lipgloss.Color{
		domain.SeverityEmergency: lipgloss.Color("9"),  // Bright red
		domain.SeverityAlert:     lipgloss.Color("9"),  // Bright red
		domain.SeverityCritical:  lipgloss.Color("9"),  // Bright red
		domain.SeverityError:     lipgloss.Color("1"),  // Red
		domain.SeverityWarning:   lipgloss.Color("11"), // Yellow
		domain.SeverityNotice:    lipgloss.Color("14"), // Cyan
		domain.SeverityInfo:      lipgloss.Color("10"), // Green
		domain.SeverityDebug:     lipgloss.Color("8"),  // Gray
	}

	// UI colors
	headerBg     = lipgloss.Color("235")
	statusBg     = lipgloss.Color("236")
	helpBg       = lipgloss.Color("234")
	confirmBg    = lipgloss.Color("52")
	errorColor   = lipgloss.Color("9")
	dimColor     = lipgloss.Color("8")
	unknownColor = lipgloss.Color("13") // Magenta for unclassifiable entries
)

// Styles
var (
	// Header style for the severity panel
	headerStyle = lipgloss.NewStyle().
			Background(headerBg).
			Padding(0, 1).
			MarginBottom(1)

	// Status bar style
	statusStyle = lipgloss.NewStyle().
			Background(statusBg).
			Padding(0, 1)

	// Help overlay style
	helpStyle = lipgloss.NewStyle().
			Background(helpBg).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	// Confirmation prompt style for the destructive empty-file action
	confirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(confirmBg).
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(errorColor)

	// Error indicator style
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(errorColor).
			Bold(true)

	// Dim style for timestamps and body lines
	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Disabled severities in the header panel
	disabledStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Faint(true)

	unknownStyle = lipgloss.NewStyle().
			Foreground(unknownColor)

	defaultSeverityStyle = lipgloss.NewStyle()

	// Per-severity styles, built from severityColorMap
	severityStyles map[domain.Severity]lipgloss.Style
)

func init() {
	severityStyles = make(map[domain.Severity]lipgloss.Style, len(severityColorMap))
	for sev, color := range severityColorMap {
		style := lipgloss.NewStyle().Foreground(color)
		if sev == domain.SeverityEmergency || sev == domain.SeverityAlert || sev == domain.SeverityCritical {
			style = style.Bold(true)
		}
		severityStyles[sev] = style
	}
}

// severityStyle returns the style for a severity token
func severityStyle(sev domain.Severity) lipgloss.Style {
	if style, ok := severityStyles[sev]; ok {
		return style
	}
	if sev == domain.SeverityUnknown {
		return unknownStyle
	}
	return defaultSeverityStyle
}
