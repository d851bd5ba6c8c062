package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/mindease/internal/board"
	"github.com/sadopc/mindease/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewBoard
	viewFocus
	viewCognitive
	viewProfile
)

var viewNames = []string{"Dashboard", "Board", "Focus", "Cognitive", "Profile"}

// viewKeys name the screens for the reminder banner.
var viewKeys = []string{"dashboard", "board", "focus", "cognitive", "profile"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// tasksChangedMsg carries the board after a mutation, with an optional
// status line.
type tasksChangedMsg struct {
	cols   board.Columns
	status string
}

type focusDataMsg struct {
	today   int
	summary []store.DailyFocus
}

// prefsChangedMsg is sent after the applied preferences changed.
type prefsChangedMsg struct {
	status string
}

type profileSavedMsg struct{}

type timerSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

func errStatus(prefix string, err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

// formatClock renders a countdown as mm:ss.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
