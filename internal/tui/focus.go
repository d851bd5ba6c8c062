package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindease/internal/pomodoro"
	"github.com/sadopc/mindease/internal/workspace"
)

type focusModel struct {
	ws     *workspace.Workspace
	width  int
	height int

	// blink alternates every tick for the running indicator.
	blink bool

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	focusMinutes *string
	shortMinutes *string
	longMinutes  *string
	cycles       *string
}

func newFocusModel(ws *workspace.Workspace) focusModel {
	fm, sm, lm, c := "", "", "", ""
	return focusModel{
		ws:           ws,
		focusMinutes: &fm,
		shortMinutes: &sm,
		longMinutes:  &lm,
		cycles:       &c,
	}
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		f.blink = !f.blink
		return f, nil

	case tea.KeyMsg:
		d := f.ws.Driver()
		switch {
		case key.Matches(msg, keys.Toggle):
			d.Toggle()
		case key.Matches(msg, keys.Reset):
			d.Reset()
			return f, func() tea.Msg { return statusMsg{text: "Timer reset"} }
		case key.Matches(msg, keys.Skip):
			st := d.Skip()
			return f, func() tea.Msg { return statusMsg{text: "Skipped to " + strings.ToLower(st.Phase.Label())} }
		case key.Matches(msg, keys.Edit):
			return f.showForm()
		}
	}
	return f, nil
}

func formatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}

func positiveMinutes(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return errors.New("enter a number of minutes above zero")
	}
	return nil
}

func positiveCount(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return errors.New("enter a whole number, at least 1")
	}
	return nil
}

func (f focusModel) showForm() (focusModel, tea.Cmd) {
	cfg := f.ws.Driver().Config()
	*f.focusMinutes = formatMinutes(cfg.FocusMinutes)
	*f.shortMinutes = formatMinutes(cfg.ShortBreakMinutes)
	*f.longMinutes = formatMinutes(cfg.LongBreakMinutes)
	*f.cycles = strconv.Itoa(cfg.CyclesUntilLongBreak)

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Validate(positiveMinutes).Value(f.focusMinutes),
			huh.NewInput().Title("Short break (min)").Validate(positiveMinutes).Value(f.shortMinutes),
			huh.NewInput().Title("Long break (min)").Validate(positiveMinutes).Value(f.longMinutes),
			huh.NewInput().Title("Focus cycles before a long break").Validate(positiveCount).Value(f.cycles),
		).Title("Timer"),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f focusModel) updateForm(msg tea.Msg) (focusModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.formActive = false
			f.form = nil
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if fm, ok := form.(*huh.Form); ok {
		f.form = fm
	}

	if f.form.State == huh.StateCompleted {
		f.formActive = false
		f.form = nil
		return f, f.saveConfig(f.formConfig())
	}
	return f, cmd
}

// formConfig reads the form values. They were validated by the form.
func (f focusModel) formConfig() pomodoro.Config {
	parse := func(s string) float64 {
		v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return v
	}
	cycles, _ := strconv.Atoi(strings.TrimSpace(*f.cycles))
	return pomodoro.Config{
		FocusMinutes:         parse(*f.focusMinutes),
		ShortBreakMinutes:    parse(*f.shortMinutes),
		LongBreakMinutes:     parse(*f.longMinutes),
		CyclesUntilLongBreak: cycles,
	}
}

func (f focusModel) saveConfig(cfg pomodoro.Config) tea.Cmd {
	ws := f.ws
	return func() tea.Msg {
		if err := ws.SetTimerConfig(context.Background(), cfg); err != nil {
			return errStatus("Saving timer", err)
		}
		return timerSavedMsg{}
	}
}

// roundProgress returns how many focus cycles of the current round are done.
func roundProgress(s pomodoro.State, cfg pomodoro.Config) (done, total int) {
	total = max(1, cfg.CyclesUntilLongBreak)
	done = s.FocusCyclesCompleted % total
	if done == 0 && s.FocusCyclesCompleted > 0 && s.Phase == pomodoro.PhaseLongBreak {
		done = total
	}
	return done, total
}

func (f focusModel) view() string {
	w := f.width - 4

	if f.formActive && f.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Timer settings"), "", f.form.View()),
		)
	}

	d := f.ws.Driver()
	st, cfg := d.State(), d.Config()

	phaseStyle := accentStyle.Bold(true)
	if st.Phase == pomodoro.PhaseShortBreak {
		phaseStyle = successStyle.Bold(true)
	} else if st.Phase == pomodoro.PhaseLongBreak {
		phaseStyle = highlightStyle.Bold(true)
	}

	clock := formatClock(st.SecondsLeft)
	var timeDisplay, indicator string
	switch {
	case st.IsRunning:
		timeDisplay = timerRunningStyle.Width(w - 6).Render(clock)
		dot := "●"
		if currentEffects.Animations && f.blink {
			dot = "○"
		}
		indicator = successStyle.Render(dot + "  RUNNING")
	case st.SecondsLeft != pomodoro.DurationSeconds(cfg, st.Phase):
		timeDisplay = timerPausedStyle.Width(w - 6).Render(clock)
		indicator = warningStyle.Render("⏸  PAUSED")
	default:
		timeDisplay = timerStyle.Width(w - 6).Render(clock)
		indicator = mutedStyle.Render("Press space to begin")
	}

	rows := []string{
		titleStyle.Render("Focus"),
		"",
		timeDisplay,
		phaseStyle.Render(st.Phase.Label()),
	}
	rows = append(rows, spacer()...)
	rows = append(rows, indicator, "", f.renderProgress(st, cfg))
	if !currentEffects.Focus {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("%s focus · %s / %s break",
			formatMinutes(cfg.FocusMinutes)+"m",
			formatMinutes(cfg.ShortBreakMinutes)+"m",
			formatMinutes(cfg.LongBreakMinutes)+"m",
		)))
	}

	controls := mutedStyle.Render("space: start/pause  r: reset  x: skip  enter: settings")
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, append(rows, "", controls)...),
	)
}

func (f focusModel) renderProgress(st pomodoro.State, cfg pomodoro.Config) string {
	done, total := roundProgress(st, cfg)
	var parts []string
	for i := range total {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && st.Phase == pomodoro.PhaseFocus:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d completed", st.FocusCyclesCompleted))
	return strings.Join(parts, " ") + counter
}
