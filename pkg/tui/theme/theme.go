package theme

import (
	"image/color"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/streak/pkg/calendar"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer   FooterTheme
	Panel    PanelTheme
	Streak   StreakTheme
	Calendar calendar.Options
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
	// Keys overrides the key help styles; nil keeps the bubbles defaults.
	Keys *help.Styles
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// StreakTheme styles the streak counter.
type StreakTheme struct {
	Count  lipgloss.Style
	Broken lipgloss.Style
	Label  lipgloss.Style
	// Gradient tints Count by progress toward the next milestone.
	Gradient bool
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	count := lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true)

	return Theme{
		Footer: FooterTheme{
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Streak: StreakTheme{
			Count:    count,
			Broken:   count.Foreground(lipgloss.Color("203")),
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Gradient: true,
		},
		Calendar: calendar.DefaultOptions(),
	}
}

// Plain drops every color and border; used when rendering to a non-terminal.
func Plain() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Footer:   FooterTheme{Status: plain, Error: plain, Prompt: plain, Keys: &help.Styles{}},
		Panel:    PanelTheme{Frame: plain, Title: plain, Body: plain},
		Streak:   StreakTheme{Count: plain, Broken: plain, Label: plain},
		Calendar: calendar.PlainOptions(),
	}
}

var (
	milestoneFrom, _ = colorful.Hex("#87afff")
	milestoneTo, _   = colorful.Hex("#5fd75f")
)

// MilestoneColor blends from blue toward green as progress goes from 0 to 1.
func MilestoneColor(progress float64) color.Color {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return milestoneFrom.BlendLab(milestoneTo, progress).Clamped()
}
