package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindease/internal/profile"
	"github.com/sadopc/mindease/internal/workspace"
)

const (
	needShortTexts   = "shortTexts"
	needReduce       = "reduceStimuli"
	needHighContrast = "highContrastPreferred"
	needReminders    = "gentleReminders"
)

type profileModel struct {
	ws     *workspace.Workspace
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	name       *string
	navigation *profile.NavigationProfile
	needs      *[]string
	workStudy  *string
	focusMins  *string
	goal       *string
	period     *profile.Period
}

func newProfileModel(ws *workspace.Workspace) profileModel {
	var (
		name, workStudy, focusMins, goal string
		navigation                       profile.NavigationProfile
		needs                            []string
		period                           profile.Period
	)
	return profileModel{
		ws:         ws,
		name:       &name,
		navigation: &navigation,
		needs:      &needs,
		workStudy:  &workStudy,
		focusMins:  &focusMins,
		goal:       &goal,
		period:     &period,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Edit) || key.Matches(msg, keys.New) {
			return p.showForm()
		}
	}
	return p, nil
}

func needsToKeys(n profile.Needs) []string {
	var out []string
	if n.ShortTexts {
		out = append(out, needShortTexts)
	}
	if n.ReduceStimuli {
		out = append(out, needReduce)
	}
	if n.HighContrastPreferred {
		out = append(out, needHighContrast)
	}
	if n.GentleReminders {
		out = append(out, needReminders)
	}
	return out
}

func keysToNeeds(selected []string) profile.Needs {
	return profile.Needs{
		ShortTexts:            slices.Contains(selected, needShortTexts),
		ReduceStimuli:         slices.Contains(selected, needReduce),
		HighContrastPreferred: slices.Contains(selected, needHighContrast),
		GentleReminders:       slices.Contains(selected, needReminders),
	}
}

func (p profileModel) showForm() (profileModel, tea.Cmd) {
	cur := p.ws.Profile()
	*p.name = cur.DisplayName
	*p.navigation = cur.NavigationProfile
	*p.needs = needsToKeys(cur.Needs)
	*p.workStudy = cur.Routine.WorkOrStudy
	*p.focusMins = strconv.Itoa(cur.Routine.PreferredFocusMinutes)
	*p.goal = strconv.Itoa(cur.Routine.SessionsPerDayGoal)
	*p.period = cur.Routine.PreferredPeriod

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").CharLimit(80).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}).Value(p.name),
			huh.NewSelect[profile.NavigationProfile]().Title("Navigation").
				Options(
					huh.NewOption("Simple", profile.NavigationSimple),
					huh.NewOption("Guided", profile.NavigationGuided),
					huh.NewOption("Power user", profile.NavigationPower),
				).Value(p.navigation),
			huh.NewMultiSelect[string]().Title("What helps you").
				Options(
					huh.NewOption("Short texts", needShortTexts),
					huh.NewOption("Fewer stimuli", needReduce),
					huh.NewOption("High contrast", needHighContrast),
					huh.NewOption("Gentle reminders", needReminders),
				).Value(p.needs),
		).Title("About you"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Mostly").
				Options(huh.NewOption("Work", "work"), huh.NewOption("Study", "study")).
				Value(p.workStudy),
			huh.NewInput().Title("Preferred focus length (min)").Validate(intIn(1, 180)).Value(p.focusMins),
			huh.NewInput().Title("Focus sessions per day").Validate(intIn(1, 24)).Value(p.goal),
			huh.NewSelect[profile.Period]().Title("Best time of day").
				Options(
					huh.NewOption("Morning", profile.PeriodMorning),
					huh.NewOption("Afternoon", profile.PeriodAfternoon),
					huh.NewOption("Night", profile.PeriodNight),
				).Value(p.period),
		).Title("Routine"),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		p.form = nil
		return p, p.save(p.formProfile())
	}
	return p, cmd
}

func (p profileModel) formProfile() profile.Profile {
	next := p.ws.Profile()
	next.DisplayName = *p.name
	next.NavigationProfile = *p.navigation
	next.Needs = keysToNeeds(*p.needs)
	next.Routine.WorkOrStudy = *p.workStudy
	next.Routine.PreferredFocusMinutes, _ = strconv.Atoi(strings.TrimSpace(*p.focusMins))
	next.Routine.SessionsPerDayGoal, _ = strconv.Atoi(strings.TrimSpace(*p.goal))
	next.Routine.PreferredPeriod = *p.period
	return next
}

func (p profileModel) save(next profile.Profile) tea.Cmd {
	ws := p.ws
	return func() tea.Msg {
		if _, err := ws.SaveProfile(context.Background(), next); err != nil {
			return errStatus("Saving profile", err)
		}
		return profileSavedMsg{}
	}
}

func (p profileModel) view() string {
	w := p.width - 4
	if p.formActive && p.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Profile"), "", p.form.View()),
		)
	}

	cur := p.ws.Profile()
	line := func(label, value string) string {
		return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(20).Render(label), highlightStyle.Render(value))
	}

	needs := needsToKeys(cur.Needs)
	needsText := "none"
	if len(needs) > 0 {
		needsText = strings.Join(needs, ", ")
	}

	rows := []string{
		titleStyle.Render(cur.DisplayName),
		"",
		line("Navigation", string(cur.NavigationProfile)),
		line("Needs", needsText),
		line("Mostly", cur.Routine.WorkOrStudy),
		line("Focus length", fmt.Sprintf("%d min", cur.Routine.PreferredFocusMinutes)),
		line("Sessions per day", strconv.Itoa(cur.Routine.SessionsPerDayGoal)),
		line("Best time", string(cur.Routine.PreferredPeriod)),
		"",
		mutedStyle.Render("  enter: edit profile"),
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
