package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sadopc/mindease/internal/board"
	"github.com/sadopc/mindease/internal/cognitive"
	"github.com/sadopc/mindease/internal/workspace"
)

var columnLabels = map[board.Status]string{
	board.StatusTodo:  "to do",
	board.StatusDoing: "in progress",
	board.StatusDone:  "done",
}

var titleCaser = cases.Title(language.English)

func columnTitle(s board.Status) string {
	return titleCaser.String(columnLabels[s])
}

type boardForm int

const (
	formNone boardForm = iota
	formCreate
	formEdit
	formDelete
)

type boardModel struct {
	ws     *workspace.Workspace
	width  int
	height int

	cols board.Columns
	col  int
	row  int

	formActive bool
	form       *huh.Form
	formType   boardForm
	editingID  string

	// Form field pointers (survive value copies)
	formTitle    *string
	formDesc     *string
	formPriority *board.Priority
	formStatus   *board.Status
	formSuggest  *bool
	formConfirm  *bool
}

func newBoardModel(ws *workspace.Workspace) boardModel {
	title, desc := "", ""
	priority, status := board.PriorityMedium, board.StatusTodo
	suggest, confirm := true, false
	return boardModel{
		ws:           ws,
		cols:         ws.Columns(),
		formTitle:    &title,
		formDesc:     &desc,
		formPriority: &priority,
		formStatus:   &status,
		formSuggest:  &suggest,
		formConfirm:  &confirm,
	}
}

func (b *boardModel) setSize(w, h int) {
	b.width = w
	b.height = h
}

func (b boardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return tasksChangedMsg{cols: b.ws.Columns()}
	}
}

// selected returns the task under the cursor.
func (b boardModel) selected() (board.Task, bool) {
	col := b.cols[board.Statuses[b.col]]
	if b.row < 0 || b.row >= len(col) {
		return board.Task{}, false
	}
	return col[b.row], true
}

func (b *boardModel) clampCursor() {
	b.col = max(0, min(b.col, len(board.Statuses)-1))
	n := len(b.cols[board.Statuses[b.col]])
	b.row = max(0, min(b.row, n-1))
}

func (b boardModel) update(msg tea.Msg) (boardModel, tea.Cmd) {
	if b.formActive && b.form != nil {
		return b.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksChangedMsg:
		b.cols = msg.cols
		b.clampCursor()
		return b, nil

	case tea.KeyMsg:
		return b.updateKeys(msg)
	}
	return b, nil
}

func (b boardModel) updateKeys(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.MoveLeft):
		return b.moveSelected(b.col-1, b.row)
	case key.Matches(msg, keys.MoveRight):
		return b.moveSelected(b.col+1, b.row)
	case key.Matches(msg, keys.MoveUp):
		return b.moveSelected(b.col, b.row-1)
	case key.Matches(msg, keys.MoveDown):
		return b.moveSelected(b.col, b.row+1)
	case key.Matches(msg, keys.Left):
		b.col--
		b.clampCursor()
	case key.Matches(msg, keys.Right):
		b.col++
		b.clampCursor()
	case key.Matches(msg, keys.Up):
		b.row--
		b.clampCursor()
	case key.Matches(msg, keys.Down):
		b.row++
		b.clampCursor()
	case key.Matches(msg, keys.New):
		return b.showCreateForm()
	case key.Matches(msg, keys.Edit):
		if t, ok := b.selected(); ok {
			return b.showEditForm(t)
		}
	case key.Matches(msg, keys.Delete):
		if t, ok := b.selected(); ok {
			return b.showDeleteForm(t)
		}
	case key.Matches(msg, keys.Check):
		if t, ok := b.selected(); ok {
			return b, b.checkNext(t)
		}
	}
	return b, nil
}

// moveSelected moves the task under the cursor to column col at index row.
// The cursor follows the task.
func (b boardModel) moveSelected(col, row int) (boardModel, tea.Cmd) {
	t, ok := b.selected()
	if !ok || col < 0 || col >= len(board.Statuses) {
		return b, nil
	}
	to := board.Statuses[col]
	if col == b.col && (row < 0 || row >= len(b.cols[to])) {
		return b, nil
	}
	row = max(0, row)

	b.col, b.row = col, row
	ws := b.ws
	return b, func() tea.Msg {
		if _, err := ws.MoveTask(context.Background(), t.ID, to, row); err != nil {
			return errStatus("Move failed", err)
		}
		return tasksChangedMsg{cols: ws.Columns()}
	}
}

func (b boardModel) checkNext(t board.Task) tea.Cmd {
	item, ok := board.NextChecklistItem(t.Checklist)
	if !ok {
		return func() tea.Msg { return statusMsg{text: "All steps done"} }
	}
	ws := b.ws
	return func() tea.Msg {
		if _, err := ws.ToggleChecklistItem(context.Background(), t.ID, item.ID); err != nil {
			return errStatus("Checklist update failed", err)
		}
		return tasksChangedMsg{cols: ws.Columns(), status: "Done: " + item.Text}
	}
}

func requiredTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}

func (b boardModel) taskFields(withSuggest bool) *huh.Group {
	priorities := make([]huh.Option[board.Priority], len(board.Priorities))
	for i, p := range board.Priorities {
		priorities[i] = huh.NewOption(titleCaser.String(string(p)), p)
	}
	statuses := make([]huh.Option[board.Status], len(board.Statuses))
	for i, s := range board.Statuses {
		statuses[i] = huh.NewOption(columnTitle(s), s)
	}

	fields := []huh.Field{
		huh.NewInput().Title("Title").CharLimit(200).Validate(requiredTitle).Value(b.formTitle),
		huh.NewText().Title("Description").CharLimit(2000).Value(b.formDesc),
		huh.NewSelect[board.Priority]().Title("Priority").Options(priorities...).Value(b.formPriority),
		huh.NewSelect[board.Status]().Title("Column").Options(statuses...).Value(b.formStatus),
	}
	if withSuggest {
		fields = append(fields, huh.NewConfirm().Title("Add suggested first steps?").Value(b.formSuggest))
	}
	return huh.NewGroup(fields...)
}

func (b boardModel) showCreateForm() (boardModel, tea.Cmd) {
	*b.formTitle = ""
	*b.formDesc = ""
	*b.formPriority = board.PriorityMedium
	*b.formStatus = board.Statuses[b.col]
	*b.formSuggest = true
	b.formType = formCreate

	b.form = huh.NewForm(b.taskFields(true)).WithShowHelp(true).WithShowErrors(true)
	b.formActive = true
	return b, b.form.Init()
}

func (b boardModel) showEditForm(t board.Task) (boardModel, tea.Cmd) {
	*b.formTitle = t.Title
	*b.formDesc = t.Description
	*b.formPriority = t.Priority
	*b.formStatus = t.Status
	b.formType = formEdit
	b.editingID = t.ID

	b.form = huh.NewForm(b.taskFields(false)).WithShowHelp(true).WithShowErrors(true)
	b.formActive = true
	return b, b.form.Init()
}

func (b boardModel) showDeleteForm(t board.Task) (boardModel, tea.Cmd) {
	*b.formConfirm = false
	b.formType = formDelete
	b.editingID = t.ID

	b.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", t.Title)).
				Affirmative("Delete").
				Negative("Keep").
				Value(b.formConfirm),
		),
	).WithShowHelp(true)
	b.formActive = true
	return b, b.form.Init()
}

func (b boardModel) updateForm(msg tea.Msg) (boardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			b.formActive = false
			b.form = nil
			return b, nil
		}
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	if b.form.State == huh.StateCompleted {
		b.formActive = false
		b.form = nil
		return b, b.submitForm()
	}
	return b, cmd
}

func (b boardModel) submitForm() tea.Cmd {
	ws := b.ws
	ctx := context.Background()
	switch b.formType {
	case formCreate:
		in := board.CreateInput{
			Title:       *b.formTitle,
			Description: *b.formDesc,
			Status:      *b.formStatus,
			Priority:    *b.formPriority,
		}
		if *b.formSuggest {
			in.Checklist = board.SuggestChecklist(in.Status)
		}
		return func() tea.Msg {
			t, err := ws.CreateTask(ctx, in)
			if err != nil {
				return errStatus("Create failed", err)
			}
			return tasksChangedMsg{cols: ws.Columns(), status: "Added " + t.Title}
		}

	case formEdit:
		id := b.editingID
		title, desc := *b.formTitle, *b.formDesc
		priority, status := *b.formPriority, *b.formStatus
		patch := board.Patch{Title: &title, Description: &desc, Priority: &priority, Status: &status}
		return func() tea.Msg {
			if _, err := ws.UpdateTask(ctx, id, patch); err != nil {
				return errStatus("Update failed", err)
			}
			return tasksChangedMsg{cols: ws.Columns(), status: "Saved"}
		}

	case formDelete:
		if !*b.formConfirm {
			return nil
		}
		id := b.editingID
		return func() tea.Msg {
			if _, err := ws.RemoveTask(ctx, id); err != nil {
				return errStatus("Delete failed", err)
			}
			return tasksChangedMsg{cols: ws.Columns(), status: "Deleted"}
		}
	}
	return nil
}

func (b boardModel) view() string {
	w := b.width - 4
	if b.formActive && b.form != nil {
		title := titleStyle.Render("New task")
		switch b.formType {
		case formEdit:
			title = titleStyle.Render("Edit task")
		case formDelete:
			title = titleStyle.Render("Delete task")
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", b.form.View()))
	}

	colWidth := max(16, (b.width-2)/len(board.Statuses)-2)
	var columns []string
	for i, s := range board.Statuses {
		columns = append(columns, b.renderColumn(i, s, colWidth))
	}

	hint := "  n: new  enter: edit  d: delete  c: check step  H/L: move  K/J: reorder"
	if currentEffects.Complexity == cognitive.ComplexitySimple {
		hint = "  n: new  enter: edit  H/L: move"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		mutedStyle.Render(hint),
	)
}

func (b boardModel) renderColumn(idx int, s board.Status, width int) string {
	active := idx == b.col
	tasks := b.cols[s]

	header := titleStyle.Render(columnTitle(s)) + mutedStyle.Render(fmt.Sprintf(" (%d)", len(tasks)))
	rows := []string{header, ""}

	// In focus mode the other columns fade back.
	dim := currentEffects.Focus && !active
	if len(tasks) == 0 {
		rows = append(rows, mutedStyle.Render("empty"))
	}
	for i, t := range tasks {
		rows = append(rows, b.renderCard(t, active && i == b.row, dim, width-4)...)
		rows = append(rows, spacer()...)
	}

	style := panelStyle
	if active {
		style = activePanelStyle
	}
	return style.Width(width).Render(strings.Join(rows, "\n"))
}

func (b boardModel) renderCard(t board.Task, selected, dim bool, width int) []string {
	cursor := "  "
	style := normalItemStyle
	switch {
	case selected:
		cursor = "> "
		style = selectedItemStyle
	case dim:
		style = mutedStyle
	}

	dot := priorityStyle(t.Priority).Render("●")
	if dim {
		dot = mutedStyle.Render("●")
	}
	line := fmt.Sprintf("%s%s %s", cursor, dot, style.Render(truncate(t.Title, width-4)))
	out := []string{line}

	if done, total := board.ChecklistProgress(t.Checklist); total > 0 {
		out = append(out, mutedStyle.Render(fmt.Sprintf("    %d/%d steps", done, total)))
	}
	if currentEffects.Detail == cognitive.DetailDetailed && t.Description != "" {
		out = append(out, mutedStyle.Render("    "+truncate(t.Description, width-4)))
	}
	return out
}
