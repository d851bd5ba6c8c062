package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/sadopc/mindease/internal/board"
	"github.com/sadopc/mindease/internal/cognitive"
	"github.com/sadopc/mindease/internal/pomodoro"
	"github.com/sadopc/mindease/internal/profile"
	"github.com/sadopc/mindease/internal/store"
	"github.com/sadopc/mindease/internal/workspace"
)

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	u, err := s.CreateUser(context.Background(), "tui@example.com", "Tui")
	if err != nil {
		t.Fatal(err)
	}
	ws, err := workspace.Open(context.Background(), workspace.Options{
		Store:  s,
		UserID: u.ID,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("open workspace: %v", err)
	}
	t.Cleanup(ws.Close)
	return ws
}

// testClock is a settable clock.
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestApp(t *testing.T) (App, *workspace.Workspace, *testClock, afero.Fs) {
	t.Helper()
	ws := newTestWorkspace(t)
	clock := &testClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	fs := afero.NewMemMapFs()
	a := NewApp(ws, Options{Fs: fs, ExportDir: "/exports", Clock: clock.Now})
	t.Cleanup(func() { applyTheme(cognitive.EffectsOf(cognitive.Defaults())) })
	a = send(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	return a, ws, clock, fs
}

func send(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return app
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Minute, "00:01:00"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := formatSeconds(3661); got != "01:01:01" {
		t.Fatalf("formatSeconds(3661) = %q", got)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{1, "00:01"},
		{60, "01:00"},
		{1500, "25:00"},
		{330, "05:30"},
		{-1, "00:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.secs); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"a longer title", 6, "a lon…"},
		{"çalışma", 4, "çal…"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 || len(viewKeys) != len(viewNames) {
		t.Fatalf("viewNames = %d, viewKeys = %d", len(viewNames), len(viewKeys))
	}
	if viewProfile != 4 {
		t.Fatalf("viewProfile = %d, want 4", viewProfile)
	}
}

func TestColumnTitle(t *testing.T) {
	want := map[board.Status]string{
		board.StatusTodo:  "To Do",
		board.StatusDoing: "In Progress",
		board.StatusDone:  "Done",
	}
	for s, w := range want {
		if got := columnTitle(s); got != w {
			t.Errorf("columnTitle(%s) = %q, want %q", s, got, w)
		}
	}
}

func TestNextStep(t *testing.T) {
	cols := board.Columns{
		board.StatusTodo: {{ID: "a", Title: "Plan"}},
		board.StatusDoing: {{
			ID:    "b",
			Title: "Write",
			Checklist: []board.ChecklistItem{
				{ID: "1", Text: "outline", Done: true},
				{ID: "2", Text: "draft"},
			},
		}},
	}
	task, step, ok := nextStep(cols)
	if !ok || task.ID != "b" || step != "draft" {
		t.Fatalf("nextStep = %s, %q, %v", task.ID, step, ok)
	}

	delete(cols, board.StatusDoing)
	task, step, ok = nextStep(cols)
	if !ok || task.ID != "a" || step != "" {
		t.Fatalf("nextStep = %s, %q, %v", task.ID, step, ok)
	}

	if _, _, ok := nextStep(board.Columns{}); ok {
		t.Fatal("empty board has no next step")
	}
}

func TestRoundProgress(t *testing.T) {
	cfg := pomodoro.DefaultConfig()
	tests := []struct {
		st   pomodoro.State
		want int
	}{
		{pomodoro.State{Phase: pomodoro.PhaseFocus}, 0},
		{pomodoro.State{Phase: pomodoro.PhaseShortBreak, FocusCyclesCompleted: 1}, 1},
		{pomodoro.State{Phase: pomodoro.PhaseLongBreak, FocusCyclesCompleted: 4}, 4},
		{pomodoro.State{Phase: pomodoro.PhaseFocus, FocusCyclesCompleted: 4}, 0},
		{pomodoro.State{Phase: pomodoro.PhaseShortBreak, FocusCyclesCompleted: 6}, 2},
	}
	for _, tt := range tests {
		done, total := roundProgress(tt.st, cfg)
		if done != tt.want || total != 4 {
			t.Errorf("roundProgress(%+v) = %d/%d, want %d/4", tt.st, done, total, tt.want)
		}
	}
}

func TestNeedsKeys(t *testing.T) {
	n := profile.Needs{ReduceStimuli: true, GentleReminders: true}
	selected := needsToKeys(n)
	if len(selected) != 2 {
		t.Fatalf("keys = %v", selected)
	}
	if got := keysToNeeds(selected); got != n {
		t.Fatalf("keysToNeeds = %+v, want %+v", got, n)
	}
}

func TestValidators(t *testing.T) {
	if positiveMinutes("0") == nil || positiveMinutes("abc") == nil || positiveMinutes("0.5") != nil {
		t.Fatal("positiveMinutes")
	}
	if positiveCount("0") == nil || positiveCount("2") != nil {
		t.Fatal("positiveCount")
	}
	in := floatIn(cognitive.MinFontSize, cognitive.MaxFontSize)
	if in("0.7") == nil || in("1.5") != nil {
		t.Fatal("floatIn")
	}
	if intIn(1, 120)("121") == nil || intIn(1, 120)(" 30 ") != nil {
		t.Fatal("intIn")
	}
}

// ============================================================
// Theme
// ============================================================

func TestApplyThemeHighContrast(t *testing.T) {
	t.Cleanup(func() { applyTheme(cognitive.EffectsOf(cognitive.Defaults())) })

	prefs := cognitive.Defaults()
	prefs.ContrastLevel = cognitive.ContrastHigh
	applyTheme(cognitive.EffectsOf(prefs))
	if colorFg != highContrastPalette.fg || colorPrimary != highContrastPalette.primary {
		t.Fatalf("colorFg = %v, want high contrast", colorFg)
	}

	applyTheme(cognitive.EffectsOf(cognitive.Defaults()))
	if colorFg != normalPalette.fg {
		t.Fatalf("colorFg = %v, want normal", colorFg)
	}
}

func TestSpacerFollowsLineHeight(t *testing.T) {
	t.Cleanup(func() { applyTheme(cognitive.EffectsOf(cognitive.Defaults())) })

	if n := len(spacer()); n != 0 {
		t.Fatalf("default spacer = %d lines, want 0", n)
	}
	prefs := cognitive.Defaults()
	prefs.LineSpacing = cognitive.MaxLineSpacing
	applyTheme(cognitive.EffectsOf(prefs))
	if n := len(spacer()); n != 1 {
		t.Fatalf("spacer = %d lines, want 1", n)
	}
}

// ============================================================
// App
// ============================================================

func TestAppLoadingState(t *testing.T) {
	ws := newTestWorkspace(t)
	a := NewApp(ws, Options{Fs: afero.NewMemMapFs()})
	if a.View() != "Loading..." {
		t.Fatal("expected loading before the first window size")
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	a, _, _, _ := newTestApp(t)
	header := a.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppTabsAtBottom(t *testing.T) {
	a, ws, _, _ := newTestApp(t)
	err := ws.Panel().ApplyPatch(context.Background(), cognitive.Patch{NavigationStyle: cognitive.Ptr(cognitive.NavigationBottom)})
	if err != nil {
		t.Fatal(err)
	}
	a = send(t, a, prefsChangedMsg{})
	if strings.Contains(a.renderHeader(), "Profile") {
		t.Fatal("tabs should leave the header")
	}
	if !strings.Contains(a.renderFooter(), "Profile") {
		t.Fatal("tabs should render in the footer")
	}
}

func TestAppSwitchViews(t *testing.T) {
	a, _, _, _ := newTestApp(t)
	tests := []struct {
		key  string
		want viewState
	}{
		{"2", viewBoard},
		{"3", viewFocus},
		{"4", viewCognitive},
		{"5", viewProfile},
		{"1", viewDashboard},
	}
	for _, tt := range tests {
		a = send(t, a, runes(tt.key))
		if a.activeView != tt.want {
			t.Fatalf("after %q activeView = %d, want %d", tt.key, a.activeView, tt.want)
		}
		if a.View() == "" {
			t.Fatalf("view %d rendered empty", tt.want)
		}
	}

	a = send(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeView != viewBoard {
		t.Fatalf("tab: activeView = %d, want board", a.activeView)
	}
}

func TestAppStatusMessage(t *testing.T) {
	a, _, _, _ := newTestApp(t)
	a = send(t, a, statusMsg{text: "Something failed", isError: true})
	if a.status != "Something failed" || !a.statusErr {
		t.Fatalf("status = %q, err = %v", a.status, a.statusErr)
	}
	if !strings.Contains(a.renderFooter(), "Something failed") {
		t.Fatal("footer should show the status")
	}
}

func TestAppTickDrivesCountdown(t *testing.T) {
	a, ws, _, _ := newTestApp(t)
	a = send(t, a, runes("3"))
	a = send(t, a, tea.KeyMsg{Type: tea.KeySpace})
	if !ws.Driver().State().IsRunning {
		t.Fatal("space should start the countdown")
	}

	before := ws.Driver().State().SecondsLeft
	a = send(t, a, tickMsg(time.Now()))
	if got := ws.Driver().State().SecondsLeft; got != before-1 {
		t.Fatalf("SecondsLeft = %d, want %d", got, before-1)
	}
	if !strings.Contains(a.renderFooter(), "FOCUS") {
		t.Fatal("footer should show the running timer")
	}

	// Ticks advance the countdown from any view.
	a = send(t, a, runes("1"))
	send(t, a, tickMsg(time.Now()))
	if got := ws.Driver().State().SecondsLeft; got != before-2 {
		t.Fatalf("SecondsLeft = %d, want %d", got, before-2)
	}
}

func TestAppTickReportsPhaseChange(t *testing.T) {
	a, ws, _, _ := newTestApp(t)
	cfg := pomodoro.Config{FocusMinutes: 1.0 / 60, ShortBreakMinutes: 1, LongBreakMinutes: 2, CyclesUntilLongBreak: 2}
	if err := ws.SetTimerConfig(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	ws.Driver().Start()

	a = send(t, a, tickMsg(time.Now()))
	st := ws.Driver().State()
	if st.Phase != pomodoro.PhaseShortBreak || st.FocusCyclesCompleted != 1 {
		t.Fatalf("state = %+v, want short break after one cycle", st)
	}
	if !strings.Contains(a.status, "short break") {
		t.Fatalf("status = %q", a.status)
	}

	n, err := ws.FocusCyclesToday(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("focus cycles today = %d, %v; want 1", n, err)
	}
}

func TestAppPrefsChangedRethemes(t *testing.T) {
	a, ws, _, _ := newTestApp(t)
	err := ws.Panel().ApplyPatch(context.Background(), cognitive.Patch{ContrastLevel: cognitive.Ptr(cognitive.ContrastHigh)})
	if err != nil {
		t.Fatal(err)
	}
	a = send(t, a, prefsChangedMsg{status: "Preferences applied"})
	if colorFg != highContrastPalette.fg {
		t.Fatal("theme should switch to high contrast")
	}
	if a.status != "Preferences applied" {
		t.Fatalf("status = %q", a.status)
	}
}

func TestAppAlertBannerSnoozeAndDismiss(t *testing.T) {
	a, _, clock, _ := newTestApp(t)
	msg := a.opts.AlertMessage

	// Default needs turn reminders on with a 30 minute threshold.
	if strings.Contains(a.View(), msg) {
		t.Fatal("reminder should not show yet")
	}
	clock.now = clock.now.Add(31 * time.Minute)
	if !strings.Contains(a.View(), msg) {
		t.Fatal("reminder should show after the threshold")
	}

	a = send(t, a, runes("z"))
	if strings.Contains(a.View(), msg) {
		t.Fatal("snooze should hide the reminder")
	}
	clock.now = clock.now.Add(6 * time.Minute)
	if !strings.Contains(a.View(), msg) {
		t.Fatal("reminder should return after the snooze")
	}

	a = send(t, a, runes("Z"))
	clock.now = clock.now.Add(time.Hour)
	if strings.Contains(a.View(), msg) {
		t.Fatal("dismissed reminder should stay hidden on this screen")
	}

	// Entering another screen starts its own reminder.
	a = send(t, a, runes("2"))
	if a.alert.Key != "board" || a.alert.Visible(clock.now) {
		t.Fatalf("alert = %+v", a.alert)
	}
}

func TestAppExport(t *testing.T) {
	a, ws, _, fs := newTestApp(t)
	if _, err := ws.CreateTask(context.Background(), board.CreateInput{Title: "Export me"}); err != nil {
		t.Fatal(err)
	}

	for i, ext := range []string{".csv", ".json"} {
		msg := a.doExport(i)()
		done, ok := msg.(exportDoneMsg)
		if !ok {
			t.Fatalf("export returned %#v", msg)
		}
		if !strings.HasSuffix(done.path, "mindease-tasks-2026-03-02"+ext) {
			t.Fatalf("path = %q", done.path)
		}
		data, err := afero.ReadFile(fs, done.path)
		if err != nil || !strings.Contains(string(data), "Export me") {
			t.Fatalf("export content = %q, %v", data, err)
		}
	}
}

func TestAppExportPicker(t *testing.T) {
	a, _, _, _ := newTestApp(t)
	a = send(t, a, runes("e"))
	if !a.exportPicking {
		t.Fatal("e should open the export picker")
	}
	a = send(t, a, tea.KeyMsg{Type: tea.KeyDown})
	if a.exportCursor != 1 {
		t.Fatalf("cursor = %d", a.exportCursor)
	}
	a = send(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// Board view
// ============================================================

func TestBoardCreateFromForm(t *testing.T) {
	ws := newTestWorkspace(t)
	b := newBoardModel(ws)
	b.formType = formCreate
	*b.formTitle = "Read chapter"
	*b.formDesc = "pages 10-20"
	*b.formPriority = board.PriorityHigh
	*b.formStatus = board.StatusTodo
	*b.formSuggest = true

	msg := b.submitForm()()
	changed, ok := msg.(tasksChangedMsg)
	if !ok {
		t.Fatalf("submit returned %#v", msg)
	}
	todo := changed.cols[board.StatusTodo]
	if len(todo) != 1 || todo[0].Title != "Read chapter" || len(todo[0].Checklist) != 3 {
		t.Fatalf("todo = %+v", todo)
	}
}

func TestBoardEditFromForm(t *testing.T) {
	ws := newTestWorkspace(t)
	task, _ := ws.CreateTask(context.Background(), board.CreateInput{Title: "Old"})
	b := newBoardModel(ws)
	b, _ = b.showEditForm(task)
	*b.formTitle = "New"
	*b.formStatus = board.StatusDone

	if _, ok := b.submitForm()().(tasksChangedMsg); !ok {
		t.Fatal("edit should succeed")
	}
	got, _ := ws.Task(task.ID)
	if got.Title != "New" || got.Status != board.StatusDone {
		t.Fatalf("task = %+v", got)
	}
}

func TestBoardDeleteNeedsConfirm(t *testing.T) {
	ws := newTestWorkspace(t)
	task, _ := ws.CreateTask(context.Background(), board.CreateInput{Title: "Keep me"})
	b := newBoardModel(ws)
	b, _ = b.showDeleteForm(task)

	if cmd := b.submitForm(); cmd != nil {
		t.Fatal("declined delete should do nothing")
	}
	*b.formConfirm = true
	b.submitForm()()
	if len(ws.Tasks()) != 0 {
		t.Fatal("confirmed delete should remove the task")
	}
}

func TestBoardMoveSelected(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()
	first, _ := ws.CreateTask(ctx, board.CreateInput{Title: "A"})
	ws.CreateTask(ctx, board.CreateInput{Title: "B"})

	b := newBoardModel(ws)
	// B was created last and sits on top; select A.
	b.row = 1
	if sel, _ := b.selected(); sel.ID != first.ID {
		t.Fatalf("selected = %s", sel.Title)
	}

	b, cmd := b.moveSelected(1, b.row)
	if b.col != 1 || b.row != 1 {
		t.Fatalf("cursor = %d,%d", b.col, b.row)
	}
	b, _ = b.update(cmd())
	if b.row != 0 {
		t.Fatalf("cursor should clamp to the column, row = %d", b.row)
	}

	cols := ws.Columns()
	if len(cols[board.StatusDoing]) != 1 || cols[board.StatusDoing][0].ID != first.ID {
		t.Fatalf("doing = %+v", cols[board.StatusDoing])
	}
	if len(cols[board.StatusTodo]) != 1 {
		t.Fatalf("todo = %+v", cols[board.StatusTodo])
	}

	// Out of range moves are ignored.
	if _, cmd := b.moveSelected(5, 0); cmd != nil {
		t.Fatal("move past the last column should be ignored")
	}
	if _, cmd := b.moveSelected(1, 3); cmd != nil {
		t.Fatal("reorder past the column end should be ignored")
	}
}

func TestBoardCheckNext(t *testing.T) {
	ws := newTestWorkspace(t)
	task, _ := ws.CreateTask(context.Background(), board.CreateInput{
		Title:     "Steps",
		Checklist: board.SuggestChecklist(board.StatusTodo),
	})
	b := newBoardModel(ws)

	msg := b.checkNext(task)()
	changed, ok := msg.(tasksChangedMsg)
	if !ok || !strings.HasPrefix(changed.status, "Done: ") {
		t.Fatalf("check returned %#v", msg)
	}
	got, _ := ws.Task(task.ID)
	if done, _ := board.ChecklistProgress(got.Checklist); done != 1 {
		t.Fatalf("done = %d, want 1", done)
	}

	if _, ok := b.checkNext(board.Task{ID: "x"})().(statusMsg); !ok {
		t.Fatal("a task without steps reports a status")
	}
}

func TestBoardViewRendersColumns(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.CreateTask(context.Background(), board.CreateInput{Title: "Visible task"})
	b := newBoardModel(ws)
	b.setSize(120, 30)

	out := b.view()
	for _, want := range []string{"To Do", "In Progress", "Done", "Visible task"} {
		if !strings.Contains(out, want) {
			t.Fatalf("board view missing %q", want)
		}
	}
}

// ============================================================
// Focus, cognitive and profile views
// ============================================================

func TestFocusFormSavesConfig(t *testing.T) {
	ws := newTestWorkspace(t)
	f := newFocusModel(ws)
	f, _ = f.showForm()
	if *f.focusMinutes != "25" || *f.cycles != "4" {
		t.Fatalf("form = %s / %s", *f.focusMinutes, *f.cycles)
	}
	*f.focusMinutes = "50"
	*f.shortMinutes = "10"
	*f.longMinutes = "30"
	*f.cycles = "3"

	cfg := f.formConfig()
	want := pomodoro.Config{FocusMinutes: 50, ShortBreakMinutes: 10, LongBreakMinutes: 30, CyclesUntilLongBreak: 3}
	if cfg != want {
		t.Fatalf("config = %+v", cfg)
	}
	if _, ok := f.saveConfig(cfg)().(timerSavedMsg); !ok {
		t.Fatal("save should succeed")
	}
	if !ws.HasTimerSettings() || ws.Driver().Config() != want {
		t.Fatal("driver should use the saved config")
	}
}

func TestFocusKeys(t *testing.T) {
	ws := newTestWorkspace(t)
	f := newFocusModel(ws)

	f, _ = f.update(runes("x"))
	if ws.Driver().State().Phase != pomodoro.PhaseShortBreak {
		t.Fatal("x should skip to the break")
	}
	f, _ = f.update(tea.KeyMsg{Type: tea.KeySpace})
	if !ws.Driver().State().IsRunning {
		t.Fatal("space should start")
	}
	f.update(runes("r"))
	if ws.Driver().State().IsRunning {
		t.Fatal("r should reset and stop")
	}
}

func TestCognitiveDraftAndApply(t *testing.T) {
	ws := newTestWorkspace(t)
	c := newCognitiveModel(ws)
	c, _ = c.showForm()
	*c.contrast = cognitive.ContrastHigh
	*c.threshold = "45"
	c.formActive = false

	ws.Panel().UpdateDraft(c.formPatch())
	if !ws.Panel().HasPendingChanges() {
		t.Fatal("draft should differ from applied")
	}
	if !strings.Contains(c.view(), "unsaved changes") {
		t.Fatal("view should flag the pending draft")
	}

	_, cmd := c.update(runes("a"))
	msg, ok := cmd().(prefsChangedMsg)
	if !ok || msg.status == "" {
		t.Fatalf("apply returned %#v", cmd())
	}
	applied := ws.Panel().Applied()
	if applied.ContrastLevel != cognitive.ContrastHigh || applied.AlertThresholdMinutes != 45 {
		t.Fatalf("applied = %+v", applied)
	}
	if !ws.Panel().HasStored() {
		t.Fatal("apply should persist")
	}
}

func TestCognitiveRestoreDefaults(t *testing.T) {
	ws := newTestWorkspace(t)
	c := newCognitiveModel(ws)

	_, cmd := c.update(runes("R"))
	if _, ok := cmd().(prefsChangedMsg); !ok {
		t.Fatal("restore should report a change")
	}
	if ws.Panel().Applied() != cognitive.Defaults() || !ws.Panel().HasStored() {
		t.Fatal("restore should save the defaults")
	}
}

func TestProfileFormSaves(t *testing.T) {
	ws := newTestWorkspace(t)
	p := newProfileModel(ws)
	p, _ = p.showForm()
	*p.name = "Ada"
	*p.needs = []string{needHighContrast}
	*p.focusMins = "40"

	if _, ok := p.save(p.formProfile())().(profileSavedMsg); !ok {
		t.Fatal("save should succeed")
	}
	got := ws.Profile()
	if got.DisplayName != "Ada" || !got.Needs.HighContrastPreferred || got.Needs.GentleReminders {
		t.Fatalf("profile = %+v", got)
	}
	if got.Routine.PreferredFocusMinutes != 40 {
		t.Fatalf("focus minutes = %d", got.Routine.PreferredFocusMinutes)
	}
}

func TestProfileSaveRejectsInvalid(t *testing.T) {
	ws := newTestWorkspace(t)
	p := newProfileModel(ws)
	next := ws.Profile()
	next.DisplayName = "  "
	if msg, ok := p.save(next)().(statusMsg); !ok || !msg.isError {
		t.Fatal("blank name should fail")
	}
}

func TestDashboardShowsNextStep(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.CreateTask(context.Background(), board.CreateInput{
		Title:     "Essay",
		Checklist: []board.ChecklistItem{board.NewChecklistItem("Find sources")},
	})
	d := newDashboardModel(ws, time.Now)
	d.setSize(100, 30)

	d, _ = d.update(d.loadData()())
	out := d.view()
	if !strings.Contains(out, "Essay") || !strings.Contains(out, "Find sources") {
		t.Fatal("dashboard should show the next step")
	}
	if !strings.Contains(out, "0/4") {
		t.Fatal("dashboard should show progress toward the daily goal")
	}
}

// ============================================================
// Keys and styles
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"alert", func() string { return alertStyle.Render("test") }},
		{"timer", func() string { return timerStyle.Render("test") }},
		{"timerRunning", func() string { return timerRunningStyle.Render("test") }},
		{"timerPaused", func() string { return timerPausedStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
