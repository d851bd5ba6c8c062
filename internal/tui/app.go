// Package tui is the terminal interface: dashboard, Kanban board, focus
// timer, cognitive panel and profile, themed by the applied preferences.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/sadopc/mindease/internal/cognitive"
	"github.com/sadopc/mindease/internal/export"
	"github.com/sadopc/mindease/internal/workspace"
)

// Options tune the interface.
type Options struct {
	// AlertMessage is the text of the pause reminder.
	AlertMessage string
	Snooze       time.Duration
	// ExportDir receives exports. Defaults to the home directory.
	ExportDir string
	Fs        afero.Fs
	Clock     func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	ws     *workspace.Workspace
	opts   Options
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	alert     *cognitive.Alert
	lastPrefs cognitive.Preferences

	dashboard dashboardModel
	board     boardModel
	focus     focusModel
	cognitive cognitiveModel
	profile   profileModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(ws *workspace.Workspace, opts Options) App {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.ExportDir == "" {
		opts.ExportDir, _ = os.UserHomeDir()
	}
	if opts.AlertMessage == "" {
		opts.AlertMessage = "You have been at this for a while. How about a short pause?"
	}

	applied := ws.Panel().Applied()
	applyTheme(cognitive.EffectsOf(applied))

	h := help.New()
	h.ShowAll = false

	return App{
		ws:         ws,
		opts:       opts,
		activeView: viewDashboard,
		alert:      cognitive.NewAlert(viewKeys[viewDashboard], opts.AlertMessage, opts.Snooze, applied, opts.Clock()),
		lastPrefs:  applied,
		dashboard:  newDashboardModel(ws, opts.Clock),
		board:      newBoardModel(ws),
		focus:      newFocusModel(ws),
		cognitive:  newCognitiveModel(ws),
		profile:    newProfileModel(ws),
		help:       h,
	}
}

// Run starts the interface on the alternate screen and blocks until it quits.
func Run(ws *workspace.Workspace, opts Options) error {
	p := tea.NewProgram(NewApp(ws, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.board.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		a.cognitive.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A child form captures all input.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		if a.alert.Visible(a.opts.Clock()) {
			switch {
			case key.Matches(msg, keys.Snooze):
				a.alert.Snooze(a.opts.Clock())
				a.status = fmt.Sprintf("Reminder snoozed for %d min", int(a.alert.SnoozeDuration().Minutes()))
				return a, nil
			case key.Matches(msg, keys.Dismiss):
				a.alert.Dismiss()
				a.status = "Reminder dismissed"
				return a, nil
			}
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewBoard)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewFocus)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewCognitive)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewProfile)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if cmd := a.tickTimer(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		a.syncPrefs()
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status, a.statusErr = msg.text, msg.isError
		return a, nil

	case tasksChangedMsg:
		a.board, _ = a.board.update(msg)
		a.dashboard, _ = a.dashboard.update(msg)
		if msg.status != "" {
			a.status, a.statusErr = msg.status, false
		}
		return a, nil

	case focusDataMsg:
		a.dashboard, _ = a.dashboard.update(msg)
		return a, nil

	case prefsChangedMsg:
		a.syncPrefs()
		if msg.status != "" {
			a.status, a.statusErr = msg.status, false
		}
		return a, nil

	case profileSavedMsg:
		a.status, a.statusErr = "Profile saved", false
		return a, a.dashboard.loadData()

	case timerSavedMsg:
		a.status, a.statusErr = "Timer settings saved", false
		return a, nil

	case exportDoneMsg:
		a.status, a.statusErr = "Exported to "+msg.path, false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// tickTimer advances the countdown by one second and reports phase changes.
func (a *App) tickTimer() tea.Cmd {
	st, advanced := a.ws.Driver().Tick()
	if !advanced {
		return nil
	}

	text := "Break is over. Ready to focus?"
	if st.Phase.IsBreak() {
		text = fmt.Sprintf("Focus session done. Time for a %s", strings.ToLower(st.Phase.Label()))
	}
	if currentEffects.Animations {
		text += " \a"
	}
	a.status, a.statusErr = text, false
	return a.dashboard.loadData()
}

// syncPrefs rebuilds the theme and reminder when the applied preferences
// changed, by an apply in the panel or a profile update.
func (a *App) syncPrefs() {
	applied := a.ws.Panel().Applied()
	if applied == a.lastPrefs {
		return
	}
	a.lastPrefs = applied
	applyTheme(cognitive.EffectsOf(applied))
	a.alert.Configure(applied, a.opts.Clock())
	a.dashboard.buildChart()
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	if v != a.activeView {
		a.alert.Enter(viewKeys[v], a.opts.Clock())
	}
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewBoard:
		a.board, cmd = a.board.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewCognitive:
		a.cognitive, cmd = a.cognitive.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewBoard:
		return a.board.formActive
	case viewFocus:
		return a.focus.formActive
	case viewCognitive:
		return a.cognitive.formActive
	case viewProfile:
		return a.profile.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewBoard:
		return a.board.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewBoard:
		content = a.board.view()
	case viewFocus:
		content = a.focus.view()
	case viewCognitive:
		content = a.cognitive.view()
	case viewProfile:
		content = a.profile.view()
	}

	if a.alert.Visible(a.opts.Clock()) {
		banner := alertStyle.Width(a.width - 4).Render(
			a.alert.Message + mutedStyle.Render("   z: snooze  Z: dismiss"),
		)
		content = lipgloss.JoinVertical(lipgloss.Left, banner, content)
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderTabs() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

// tabsAtBottom reports whether navigation renders under the content.
func (a App) tabsAtBottom() bool {
	return a.lastPrefs.NavigationStyle == cognitive.NavigationBottom
}

func (a App) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("mindease")
	if a.tabsAtBottom() {
		return headerStyle.Render(title)
	}

	tabRow := a.renderTabs()
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + strings.TrimSuffix(a.status, " \a"))
	}

	timerInfo := ""
	st := a.ws.Driver().State()
	if st.IsRunning {
		timerInfo = successStyle.Render(" ● " + st.Phase.Label() + " " + formatClock(st.SecondsLeft))
	} else if workspace.Busy(st, a.ws.Driver().Config()) {
		timerInfo = warningStyle.Render(" ⏸ " + formatClock(st.SecondsLeft))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	line := lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
	if a.tabsAtBottom() {
		return lipgloss.JoinVertical(lipgloss.Left, a.renderTabs(), line)
	}
	return line
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export tasks"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	fs, dir, now := a.opts.Fs, a.opts.ExportDir, a.opts.Clock
	tasks := a.ws.Tasks()
	return func() tea.Msg {
		dateStr := now().Format("2006-01-02")
		if format == 0 {
			path := filepath.Join(dir, fmt.Sprintf("mindease-tasks-%s.csv", dateStr))
			if err := export.ToCSV(fs, path, tasks); err != nil {
				return errStatus("CSV error", err)
			}
			return exportDoneMsg{path: path}
		}
		path := filepath.Join(dir, fmt.Sprintf("mindease-tasks-%s.json", dateStr))
		if err := export.ToJSON(fs, path, tasks); err != nil {
			return errStatus("JSON error", err)
		}
		return exportDoneMsg{path: path}
	}
}
