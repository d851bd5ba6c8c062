package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindease/internal/cognitive"
	"github.com/sadopc/mindease/internal/workspace"
)

type cognitiveModel struct {
	ws     *workspace.Workspace
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	complexity  *cognitive.Complexity
	detail      *cognitive.DetailMode
	focusMode   *bool
	fontSize    *string
	lineSpacing *string
	spacing     *string
	contrast    *cognitive.Contrast
	animations  *bool
	navigation  *cognitive.Navigation
	alerts      *bool
	threshold   *string
}

func newCognitiveModel(ws *workspace.Workspace) cognitiveModel {
	var (
		complexity cognitive.Complexity
		detail     cognitive.DetailMode
		contrast   cognitive.Contrast
		navigation cognitive.Navigation
		focus      bool
		animations bool
		alerts     bool
		font       string
		line       string
		spacing    string
		threshold  string
	)
	return cognitiveModel{
		ws:          ws,
		complexity:  &complexity,
		detail:      &detail,
		focusMode:   &focus,
		fontSize:    &font,
		lineSpacing: &line,
		spacing:     &spacing,
		contrast:    &contrast,
		animations:  &animations,
		navigation:  &navigation,
		alerts:      &alerts,
		threshold:   &threshold,
	}
}

func (c *cognitiveModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c cognitiveModel) update(msg tea.Msg) (cognitiveModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		panel := c.ws.Panel()
		switch {
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.New):
			return c.showForm()
		case key.Matches(msg, keys.Apply):
			if !panel.HasPendingChanges() {
				return c, func() tea.Msg { return statusMsg{text: "Nothing to apply"} }
			}
			return c, c.commit("Preferences applied", panel.ApplyDraft)
		case key.Matches(msg, keys.Discard):
			panel.ResetDraft()
			return c, func() tea.Msg { return statusMsg{text: "Draft discarded"} }
		case key.Matches(msg, keys.Defaults):
			return c, c.commit("Defaults restored", panel.ResetPreferences)
		}
	}
	return c, nil
}

func (c cognitiveModel) commit(done string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return errStatus("Saving preferences", err)
		}
		return prefsChangedMsg{status: done}
	}
}

func floatIn(lo, hi float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || v < lo || v > hi {
			return fmt.Errorf("enter a number from %s to %s", formatMinutes(lo), formatMinutes(hi))
		}
		return nil
	}
}

func intIn(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v < lo || v > hi {
			return fmt.Errorf("enter a whole number from %d to %d", lo, hi)
		}
		return nil
	}
}

func (c cognitiveModel) showForm() (cognitiveModel, tea.Cmd) {
	d := c.ws.Panel().Draft()
	*c.complexity = d.ComplexityLevel
	*c.detail = d.DetailMode
	*c.focusMode = d.FocusMode
	*c.fontSize = formatMinutes(d.FontSizeMultiplier)
	*c.lineSpacing = formatMinutes(d.LineSpacing)
	*c.spacing = formatMinutes(d.SpacingMultiplier)
	*c.contrast = d.ContrastLevel
	*c.animations = d.AnimationsEnabled
	*c.navigation = d.NavigationStyle
	*c.alerts = d.CognitiveAlertsEnabled
	*c.threshold = strconv.Itoa(d.AlertThresholdMinutes)

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[cognitive.Complexity]().Title("Interface complexity").
				Options(
					huh.NewOption("Simple", cognitive.ComplexitySimple),
					huh.NewOption("Medium", cognitive.ComplexityMedium),
					huh.NewOption("Detailed", cognitive.ComplexityDetailed),
				).Value(c.complexity),
			huh.NewSelect[cognitive.DetailMode]().Title("Detail").
				Options(
					huh.NewOption("Summary", cognitive.DetailSummary),
					huh.NewOption("Detailed", cognitive.DetailDetailed),
				).Value(c.detail),
			huh.NewConfirm().Title("Focus mode").Value(c.focusMode),
		).Title("Content"),
		huh.NewGroup(
			huh.NewInput().Title("Text size (0.8 to 1.5)").
				Validate(floatIn(cognitive.MinFontSize, cognitive.MaxFontSize)).Value(c.fontSize),
			huh.NewInput().Title("Line spacing (1.2 to 2)").
				Validate(floatIn(cognitive.MinLineSpacing, cognitive.MaxLineSpacing)).Value(c.lineSpacing),
			huh.NewInput().Title("Spacing (0.8 to 1.5)").
				Validate(floatIn(cognitive.MinSpacing, cognitive.MaxSpacing)).Value(c.spacing),
			huh.NewSelect[cognitive.Contrast]().Title("Contrast").
				Options(
					huh.NewOption("Normal", cognitive.ContrastNormal),
					huh.NewOption("High", cognitive.ContrastHigh),
				).Value(c.contrast),
			huh.NewConfirm().Title("Animations").Value(c.animations),
			huh.NewSelect[cognitive.Navigation]().Title("Navigation").
				Options(
					huh.NewOption("Sidebar", cognitive.NavigationSidebar),
					huh.NewOption("Bottom", cognitive.NavigationBottom),
				).Value(c.navigation),
		).Title("Layout"),
		huh.NewGroup(
			huh.NewConfirm().Title("Gentle reminders").Value(c.alerts),
			huh.NewInput().Title("Remind me after (minutes)").
				Validate(intIn(cognitive.MinAlertMinutes, cognitive.MaxAlertMinutes)).Value(c.threshold),
		).Title("Reminders"),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c cognitiveModel) updateForm(msg tea.Msg) (cognitiveModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		c.form = nil
		c.ws.Panel().UpdateDraft(c.formPatch())
		return c, func() tea.Msg { return statusMsg{text: "Draft updated. Press a to apply"} }
	}
	return c, cmd
}

// formPatch turns the validated form values into a draft patch.
func (c cognitiveModel) formPatch() cognitive.Patch {
	float := func(s string) *float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		return &v
	}
	p := cognitive.Patch{
		ComplexityLevel:        cognitive.Ptr(*c.complexity),
		FocusMode:              cognitive.Ptr(*c.focusMode),
		DetailMode:             cognitive.Ptr(*c.detail),
		FontSizeMultiplier:     float(*c.fontSize),
		LineSpacing:            float(*c.lineSpacing),
		SpacingMultiplier:      float(*c.spacing),
		ContrastLevel:          cognitive.Ptr(*c.contrast),
		AnimationsEnabled:      cognitive.Ptr(*c.animations),
		NavigationStyle:        cognitive.Ptr(*c.navigation),
		CognitiveAlertsEnabled: cognitive.Ptr(*c.alerts),
	}
	if v, err := strconv.Atoi(strings.TrimSpace(*c.threshold)); err == nil {
		p.AlertThresholdMinutes = &v
	}
	return p
}

type prefRow struct {
	label   string
	draft   string
	applied string
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func prefRows(draft, applied cognitive.Preferences) []prefRow {
	row := func(label string, f func(cognitive.Preferences) string) prefRow {
		return prefRow{label: label, draft: f(draft), applied: f(applied)}
	}
	return []prefRow{
		row("Complexity", func(p cognitive.Preferences) string { return string(p.ComplexityLevel) }),
		row("Detail", func(p cognitive.Preferences) string { return string(p.DetailMode) }),
		row("Focus mode", func(p cognitive.Preferences) string { return onOff(p.FocusMode) }),
		row("Text size", func(p cognitive.Preferences) string { return formatMinutes(p.FontSizeMultiplier) + "x" }),
		row("Line spacing", func(p cognitive.Preferences) string { return formatMinutes(p.LineSpacing) }),
		row("Spacing", func(p cognitive.Preferences) string { return formatMinutes(p.SpacingMultiplier) + "x" }),
		row("Contrast", func(p cognitive.Preferences) string { return string(p.ContrastLevel) }),
		row("Animations", func(p cognitive.Preferences) string { return onOff(p.AnimationsEnabled) }),
		row("Navigation", func(p cognitive.Preferences) string { return string(p.NavigationStyle) }),
		row("Reminders", func(p cognitive.Preferences) string { return onOff(p.CognitiveAlertsEnabled) }),
		row("Remind after", func(p cognitive.Preferences) string { return fmt.Sprintf("%d min", p.AlertThresholdMinutes) }),
	}
}

func (c cognitiveModel) view() string {
	w := c.width - 4
	if c.formActive && c.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Cognitive panel"), "", c.form.View()),
		)
	}

	panel := c.ws.Panel()
	title := titleStyle.Render("Cognitive panel")
	switch {
	case panel.HasPendingChanges():
		title += "  " + warningStyle.Render("unsaved changes")
	case !panel.HasStored():
		title += "  " + mutedStyle.Render("following your profile needs")
	}

	rows := []string{title, ""}
	for _, r := range prefRows(panel.Draft(), panel.Applied()) {
		label := lipgloss.NewStyle().Width(16).Render(r.label)
		value := highlightStyle.Render(r.draft)
		if r.draft != r.applied {
			value = warningStyle.Render(r.draft) + mutedStyle.Render(" (now "+r.applied+")")
		}
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit draft  a: apply  u: discard  R: restore defaults"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
