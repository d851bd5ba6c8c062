package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindease/internal/board"
	"github.com/sadopc/mindease/internal/cognitive"
)

type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	err       lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
	highlight lipgloss.Color
}

var normalPalette = palette{
	primary:   lipgloss.Color("#6C63FF"),
	secondary: lipgloss.Color("#2EC4B6"),
	accent:    lipgloss.Color("#FF6B6B"),
	muted:     lipgloss.Color("#666666"),
	success:   lipgloss.Color("#2ECC71"),
	warning:   lipgloss.Color("#F39C12"),
	err:       lipgloss.Color("#E74C3C"),
	fg:        lipgloss.Color("#C0CAF5"),
	subtle:    lipgloss.Color("#414868"),
	highlight: lipgloss.Color("#7AA2F7"),
}

var highContrastPalette = palette{
	primary:   lipgloss.Color("#FFFF00"),
	secondary: lipgloss.Color("#00FFFF"),
	accent:    lipgloss.Color("#FF00FF"),
	muted:     lipgloss.Color("#D0D0D0"),
	success:   lipgloss.Color("#00FF00"),
	warning:   lipgloss.Color("#FFD700"),
	err:       lipgloss.Color("#FF5555"),
	fg:        lipgloss.Color("#FFFFFF"),
	subtle:    lipgloss.Color("#FFFFFF"),
	highlight: lipgloss.Color("#00FFFF"),
}

// Color palette
var (
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorMuted     lipgloss.Color
	colorSuccess   lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color
	colorFg        lipgloss.Color
	colorSubtle    lipgloss.Color
	colorHighlight lipgloss.Color
)

// Styles
var (
	activeTabStyle   lipgloss.Style
	inactiveTabStyle lipgloss.Style

	panelStyle       lipgloss.Style
	activePanelStyle lipgloss.Style
	alertStyle       lipgloss.Style

	timerStyle        lipgloss.Style
	timerRunningStyle lipgloss.Style
	timerPausedStyle  lipgloss.Style

	titleStyle     lipgloss.Style
	accentStyle    lipgloss.Style
	successStyle   lipgloss.Style
	warningStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	mutedStyle     lipgloss.Style
	highlightStyle lipgloss.Style

	headerStyle lipgloss.Style
	footerStyle lipgloss.Style

	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
)

// currentEffects is the layout the styles were last built for.
var currentEffects cognitive.Effects

func init() {
	applyTheme(cognitive.EffectsOf(cognitive.Defaults()))
}

// applyTheme rebuilds every style for the given effects. The card padding
// tokens set panel padding; high contrast switches the palette.
func applyTheme(e cognitive.Effects) {
	currentEffects = e

	p := normalPalette
	if e.HighContrast {
		p = highContrastPalette
	}
	colorPrimary, colorSecondary, colorAccent = p.primary, p.secondary, p.accent
	colorMuted, colorSuccess, colorWarning, colorError = p.muted, p.success, p.warning, p.err
	colorFg, colorSubtle, colorHighlight = p.fg, p.subtle, p.highlight

	padY := max(1, cognitive.Cells(e.CardPadding/1.5))
	padX := max(1, cognitive.Cells(e.CardPaddingWide))
	tabPad := max(1, cognitive.Cells(e.ButtonPadXPrimary))

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, tabPad)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, tabPad)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(padY, padX)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(padY, padX)

	alertStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorWarning).
		Foreground(colorWarning).
		Padding(0, padX)

	timerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Align(lipgloss.Center)

	timerRunningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSuccess).
		Align(lipgloss.Center)

	timerPausedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorWarning).
		Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorFg)

	accentStyle = lipgloss.NewStyle().Foreground(colorAccent)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().Foreground(colorFg)
}

// spacer returns the blank lines the current line height asks for between
// blocks of text.
func spacer() []string {
	return make([]string, currentEffects.BlankLines())
}

func priorityStyle(p board.Priority) lipgloss.Style {
	switch p {
	case board.PriorityHigh:
		return errorStyle
	case board.PriorityLow:
		return mutedStyle
	}
	return warningStyle
}
