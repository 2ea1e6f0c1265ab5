package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/crisis-assistant/internal/models"
)

// Theme holds the color scheme for terminal output.
type Theme struct {
	Title    lipgloss.Color
	Critical lipgloss.Color
	High     lipgloss.Color
	Moderate lipgloss.Color
	Low      lipgloss.Color
	Heading  lipgloss.Color
	Hint     lipgloss.Color
	Success  lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Title:    lipgloss.Color("#FFFFFF"), // white
	Critical: lipgloss.Color("#FF005F"), // red
	High:     lipgloss.Color("#FF8700"), // orange
	Moderate: lipgloss.Color("#FFD700"), // yellow
	Low:      lipgloss.Color("#00D787"), // green
	Heading:  lipgloss.Color("#5FAFD7"), // light blue
	Hint:     lipgloss.Color("#6C6C6C"), // dim gray
	Success:  lipgloss.Color("#00D787"), // green
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true)
}

func (t Theme) headingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Heading).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success)
}

func (t Theme) urgencyStyle(u models.Urgency) lipgloss.Style {
	var c lipgloss.Color
	switch u {
	case models.UrgencyCritical:
		c = t.Critical
	case models.UrgencyHigh:
		c = t.High
	case models.UrgencyModerate:
		c = t.Moderate
	default:
		c = t.Low
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
