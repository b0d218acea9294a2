package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gamelife/internal/engine"
)

// gamelife theme (CLI + TUI). The palette keeps the classic terminal
// green-on-black look of the desktop app.

const (
	IconTask    = "🗒️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconSkull   = "💀"
	IconClock   = "⏰"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconCrown   = "👑"
	IconFire    = "🔥"
)

var (
	cGreen  = lipgloss.Color("#2AF76F")
	cAccent = lipgloss.Color("#1E8B4D")
	cSubtle = lipgloss.Color("#3A3A3A")
	cWarn   = lipgloss.Color("214")
	cBad    = lipgloss.Color("196")
	cMuted  = lipgloss.Color("244")
	cGold   = lipgloss.Color("220")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cGreen)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGreen)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cSubtle).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cAccent)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeRankUp  = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("RANK UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status engine.Status) string {
	switch status {
	case engine.StatusCompleted:
		return Good.Render("completed")
	case engine.StatusFailed:
		return Bad.Render("failed")
	case engine.StatusOverdue:
		return Warn.Render("overdue")
	case engine.StatusInProgress:
		return H2.Render("in progress")
	case engine.StatusPending:
		return Muted.Render("pending")
	default:
		return Muted.Render(string(status))
	}
}

func PriorityText(p engine.Priority) string {
	switch p {
	case engine.PriorityCritical:
		return Bad.Render("CRITICAL")
	case engine.PriorityHigh:
		return Warn.Render("HIGH")
	case engine.PriorityMedium:
		return Good.Render("MEDIUM")
	default:
		return Muted.Render("LOW")
	}
}

// ProgressBar renders a fixed-width level progress bar for pct in [0,100).
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return Good.Render(strings.Repeat("█", filled)) +
		Muted.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3.0f%%", pct)
}
