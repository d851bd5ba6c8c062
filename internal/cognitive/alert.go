package cognitive

import "time"

// DefaultSnooze is how long Snooze hides a reminder.
const DefaultSnooze = 5 * time.Minute

// Alert is a gentle "time for a pause" reminder for one screen. It becomes
// visible once the screen has been open longer than the threshold from the
// applied preferences.
//
// Alert has no timers of its own; callers ask Visible on each tick.
type Alert struct {
	Key     string
	Message string

	snooze      time.Duration
	enabled     bool
	threshold   time.Duration
	start       time.Time
	snoozeUntil time.Time
	dismissed   bool
}

// NewAlert starts the reminder for screen key at now.
func NewAlert(key, message string, snooze time.Duration, prefs Preferences, now time.Time) *Alert {
	if snooze <= 0 {
		snooze = DefaultSnooze
	}
	a := &Alert{Key: key, Message: message, snooze: snooze}
	a.enabled, a.threshold = alertSettings(prefs)
	a.restart(now)
	return a
}

func alertSettings(prefs Preferences) (bool, time.Duration) {
	minutes := prefs.AlertThresholdMinutes
	if minutes <= 0 {
		minutes = Defaults().AlertThresholdMinutes
	}
	return prefs.CognitiveAlertsEnabled, time.Duration(minutes) * time.Minute
}

func (a *Alert) restart(now time.Time) {
	a.start = now
	a.snoozeUntil = time.Time{}
	a.dismissed = false
}

// Configure picks up new preferences. Changing whether alerts are enabled or
// the threshold restarts the countdown from now.
func (a *Alert) Configure(prefs Preferences, now time.Time) {
	enabled, threshold := alertSettings(prefs)
	if enabled == a.enabled && threshold == a.threshold {
		return
	}
	a.enabled, a.threshold = enabled, threshold
	a.restart(now)
}

// Enter switches the reminder to another screen and restarts it.
func (a *Alert) Enter(key string, now time.Time) {
	a.Key = key
	a.restart(now)
}

// DueAt returns when the reminder will show, or false if it never will.
func (a *Alert) DueAt() (time.Time, bool) {
	if !a.enabled || a.dismissed {
		return time.Time{}, false
	}
	due := a.start.Add(a.threshold)
	if a.snoozeUntil.After(due) {
		due = a.snoozeUntil
	}
	return due, true
}

func (a *Alert) Visible(now time.Time) bool {
	due, ok := a.DueAt()
	return ok && !now.Before(due)
}

// Dismiss hides the reminder until the screen is entered again.
func (a *Alert) Dismiss() {
	a.dismissed = true
}

// Snooze hides the reminder for the snooze duration.
func (a *Alert) Snooze(now time.Time) {
	a.snoozeUntil = now.Add(a.snooze)
}

func (a *Alert) SnoozeDuration() time.Duration { return a.snooze }
