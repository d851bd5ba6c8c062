package cognitive

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func alertPrefs(enabled bool, minutes int) Preferences {
	p := Defaults()
	p.CognitiveAlertsEnabled = enabled
	p.AlertThresholdMinutes = minutes
	return p
}

func TestAlertShowsAfterThreshold(t *testing.T) {
	a := NewAlert("tasks", "Time for a short pause?", 0, alertPrefs(true, 10), t0)

	if a.Visible(t0.Add(9 * time.Minute)) {
		t.Fatal("visible before threshold")
	}
	if !a.Visible(t0.Add(10 * time.Minute)) {
		t.Fatal("not visible at threshold")
	}
}

func TestAlertDisabled(t *testing.T) {
	a := NewAlert("tasks", "msg", 0, alertPrefs(false, 1), t0)
	if a.Visible(t0.Add(time.Hour)) {
		t.Fatal("disabled alert became visible")
	}
	if _, ok := a.DueAt(); ok {
		t.Fatal("disabled alert has a due time")
	}
}

func TestAlertSnooze(t *testing.T) {
	a := NewAlert("timer", "msg", 5*time.Minute, alertPrefs(true, 3), t0)
	shown := t0.Add(4 * time.Minute)
	if !a.Visible(shown) {
		t.Fatal("expected visible")
	}

	a.Snooze(shown)
	if a.Visible(shown.Add(4 * time.Minute)) {
		t.Fatal("visible during snooze")
	}
	if !a.Visible(shown.Add(5 * time.Minute)) {
		t.Fatal("not visible after snooze")
	}
}

func TestAlertDismissUntilEnter(t *testing.T) {
	a := NewAlert("tasks", "msg", 0, alertPrefs(true, 1), t0)
	a.Dismiss()
	if a.Visible(t0.Add(time.Hour)) {
		t.Fatal("dismissed alert came back")
	}

	later := t0.Add(time.Hour)
	a.Enter("dashboard", later)
	if a.Key != "dashboard" {
		t.Fatalf("key = %q", a.Key)
	}
	if a.Visible(later) || !a.Visible(later.Add(time.Minute)) {
		t.Fatal("entering a screen should restart the countdown")
	}
}

func TestAlertConfigure(t *testing.T) {
	a := NewAlert("tasks", "msg", 0, alertPrefs(true, 5), t0)

	// Unrelated preference changes keep the countdown.
	same := alertPrefs(true, 5)
	same.FocusMode = true
	a.Configure(same, t0.Add(4*time.Minute))
	if !a.Visible(t0.Add(5 * time.Minute)) {
		t.Fatal("unrelated change restarted the countdown")
	}

	a.Configure(alertPrefs(true, 30), t0.Add(6*time.Minute))
	if a.Visible(t0.Add(35 * time.Minute)) {
		t.Fatal("threshold change should restart from now")
	}
	if !a.Visible(t0.Add(36 * time.Minute)) {
		t.Fatal("not visible after new threshold")
	}
}

func TestAlertZeroThresholdUsesDefault(t *testing.T) {
	a := NewAlert("tasks", "msg", 0, alertPrefs(true, 0), t0)
	due, ok := a.DueAt()
	if !ok || !due.Equal(t0.Add(5*time.Minute)) {
		t.Fatalf("due = %v, %v", due, ok)
	}
	if a.SnoozeDuration() != DefaultSnooze {
		t.Fatalf("snooze = %v", a.SnoozeDuration())
	}
}
