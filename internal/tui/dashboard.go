package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindease/internal/board"
	"github.com/sadopc/mindease/internal/cognitive"
	"github.com/sadopc/mindease/internal/store"
	"github.com/sadopc/mindease/internal/workspace"
)

// chartDays is how many days of focus history the dashboard charts.
const chartDays = 7

type dashboardModel struct {
	ws     *workspace.Workspace
	width  int
	height int

	cols    board.Columns
	today   int
	summary []store.DailyFocus

	chart barchart.Model
	now   func() time.Time
}

func newDashboardModel(ws *workspace.Workspace, now func() time.Time) dashboardModel {
	return dashboardModel{
		ws:    ws,
		cols:  ws.Columns(),
		chart: barchart.New(60, 10),
		now:   now,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.buildChart()
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		today, err := d.ws.FocusCyclesToday(ctx)
		if err != nil {
			return errStatus("Loading focus log", err)
		}
		summary, err := d.ws.FocusSummary(ctx, chartDays)
		if err != nil {
			return errStatus("Loading focus log", err)
		}
		return focusDataMsg{today: today, summary: summary}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case focusDataMsg:
		d.today = msg.today
		d.summary = msg.summary
		d.buildChart()
	case tasksChangedMsg:
		d.cols = msg.cols
	}
	return d, nil
}

func (d *dashboardModel) buildChart() {
	chartWidth := max(20, d.width-8)
	chartHeight := 8
	if d.height > 30 {
		chartHeight = 12
	}
	d.chart = barchart.New(chartWidth, chartHeight)

	minutes := make(map[string]float64, len(d.summary))
	for _, s := range d.summary {
		minutes[s.Date] = float64(s.TotalSeconds) / 60
	}

	end := d.now().UTC().Truncate(24 * time.Hour)
	var bars []barchart.BarData
	for day := end.AddDate(0, 0, 1-chartDays); !day.After(end); day = day.AddDate(0, 0, 1) {
		bars = append(bars, barchart.BarData{
			Label: day.Format("Mon"),
			Values: []barchart.BarValue{{
				Name:  "focus",
				Value: minutes[day.Format("2006-01-02")],
				Style: lipgloss.NewStyle().Foreground(colorSecondary),
			}},
		})
	}
	d.chart.PushAll(bars)
	d.chart.Draw()
}

// nextStep picks what to work on: the first task in progress, else the first
// one to do, with its first open checklist item.
func nextStep(cols board.Columns) (board.Task, string, bool) {
	for _, s := range []board.Status{board.StatusDoing, board.StatusTodo} {
		if len(cols[s]) == 0 {
			continue
		}
		t := cols[s][0]
		step := ""
		if item, ok := board.NextChecklistItem(t.Checklist); ok {
			step = item.Text
		}
		return t, step, true
	}
	return board.Task{}, "", false
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4
	e := currentEffects

	panels := []string{d.renderFocusPanel(w), d.renderNextPanel(w)}
	if e.Complexity != cognitive.ComplexitySimple {
		panels = append(panels, d.renderBoardPanel(w))
	}
	if e.Complexity == cognitive.ComplexityDetailed || e.Detail == cognitive.DetailDetailed {
		panels = append(panels, d.renderChartPanel(w))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (d dashboardModel) renderFocusPanel(w int) string {
	prof := d.ws.Profile()
	goal := max(1, prof.Routine.SessionsPerDayGoal)

	title := titleStyle.Render("Hello, " + prof.DisplayName)

	var dots []string
	for i := range goal {
		if i < d.today {
			dots = append(dots, successStyle.Render("●"))
		} else {
			dots = append(dots, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(dots, " ") + mutedStyle.Render(fmt.Sprintf("  %d/%d focus sessions today", d.today, goal))

	st := d.ws.Driver().State()
	clock := formatClock(st.SecondsLeft)
	var timer string
	switch {
	case st.IsRunning:
		timer = successStyle.Render("● " + st.Phase.Label() + " " + clock)
	default:
		timer = mutedStyle.Render("■ " + st.Phase.Label() + " " + clock + "  (3: focus view)")
	}

	rows := []string{title}
	rows = append(rows, spacer()...)
	rows = append(rows, progress, timer)
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (d dashboardModel) renderNextPanel(w int) string {
	title := titleStyle.Render("Next step")
	t, step, ok := nextStep(d.cols)
	if !ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing planned. Press 2 and n to add a task."),
		))
	}

	line := highlightStyle.Render(truncate(t.Title, w-8))
	rows := []string{title, line}
	if step != "" {
		rows = append(rows, "  → "+step)
	}
	if currentEffects.Detail == cognitive.DetailDetailed && t.Description != "" {
		rows = append(rows, mutedStyle.Render("  "+truncate(t.Description, w-10)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderBoardPanel(w int) string {
	var parts []string
	for _, s := range board.Statuses {
		parts = append(parts, fmt.Sprintf("%s %s", columnTitle(s), highlightStyle.Render(fmt.Sprint(len(d.cols[s])))))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Board"),
		strings.Join(parts, "   "),
	))
}

func (d dashboardModel) renderChartPanel(w int) string {
	var total int64
	for _, s := range d.summary {
		total += s.TotalSeconds
	}
	header := fmt.Sprintf("%s  %s", titleStyle.Render("Focus, last 7 days"), highlightStyle.Render(formatSeconds(total)))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", d.chart.View(), mutedStyle.Render("minutes per day"),
	))
}
