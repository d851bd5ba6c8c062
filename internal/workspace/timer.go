package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/sadopc/mindease/internal/pomodoro"
	"github.com/sadopc/mindease/internal/profile"
	"github.com/sadopc/mindease/internal/store"
)

// profileTimer is the session config when no timer settings were saved: the
// configured defaults with the focus length from the routine.
func (w *Workspace) profileTimer(p profile.Profile) pomodoro.Config {
	cfg := w.timerDefaults
	if m := p.Routine.PreferredFocusMinutes; m > 0 {
		cfg.FocusMinutes = float64(m)
	}
	return cfg
}

// HasTimerSettings reports whether the user saved explicit timer settings.
func (w *Workspace) HasTimerSettings() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hasTimer
}

// SetTimerConfig validates, persists and applies cfg. The countdown resets.
func (w *Workspace) SetTimerConfig(ctx context.Context, cfg pomodoro.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := w.store.SaveTimerSettings(ctx, w.userID, cfg); err != nil {
		return fmt.Errorf("save timer settings: %w", err)
	}
	w.mu.Lock()
	w.hasTimer = true
	w.mu.Unlock()

	w.driver.SetConfig(cfg)
	w.log.Info("timer settings saved", "focus_minutes", cfg.FocusMinutes)
	return nil
}

// SetTimerDefaults replaces the fallback timer configuration, as on a config
// reload. It applies to the countdown only when the user has no saved
// settings and no session is in progress.
func (w *Workspace) SetTimerDefaults(cfg pomodoro.Config) bool {
	w.mu.Lock()
	w.timerDefaults = cfg
	hasTimer, prof := w.hasTimer, w.profile
	w.mu.Unlock()

	if hasTimer {
		return false
	}
	return w.applyIfIdle(w.profileTimer(prof))
}

func (w *Workspace) syncTimerFromProfile(p profile.Profile) {
	w.mu.Lock()
	hasTimer := w.hasTimer
	w.mu.Unlock()
	if hasTimer {
		return
	}
	w.applyIfIdle(w.profileTimer(p))
}

// applyIfIdle switches the driver to cfg unless a session is in progress.
func (w *Workspace) applyIfIdle(cfg pomodoro.Config) bool {
	if Busy(w.driver.State(), w.driver.Config()) {
		w.log.Debug("timer busy, keeping current config")
		return false
	}
	if cfg == w.driver.Config() {
		return false
	}
	w.driver.SetConfig(cfg)
	return true
}

// Busy reports whether a session is running or has time already counted off.
func Busy(s pomodoro.State, cfg pomodoro.Config) bool {
	return s.IsRunning || s.SecondsLeft != pomodoro.DurationSeconds(cfg, s.Phase)
}

// RunCountdown ticks the driver every second until ctx is canceled.
func (w *Workspace) RunCountdown(ctx context.Context) error {
	return w.driver.Run(ctx, time.Second)
}

// logFocusCycle records focus phases that ran to completion.
func (w *Workspace) logFocusCycle(tr pomodoro.Transition) {
	if tr.Reason != pomodoro.ReasonNatural || tr.From.Phase != pomodoro.PhaseFocus {
		return
	}
	cfg := w.driver.Config()
	_, err := w.store.RecordFocusCycle(context.Background(), store.FocusCycle{
		UserID:      w.userID,
		Seconds:     pomodoro.DurationSeconds(cfg, pomodoro.PhaseFocus),
		Cycle:       tr.To.FocusCyclesCompleted,
		CompletedAt: w.now(),
	})
	if err != nil {
		w.log.Warn("recording focus cycle failed", "error", err)
		return
	}
	w.log.Info("focus cycle completed", "cycle", tr.To.FocusCyclesCompleted, "phase", tr.To.Phase)
}

// FocusSummary returns completed focus per day for the last days days,
// today included.
func (w *Workspace) FocusSummary(ctx context.Context, days int) ([]store.DailyFocus, error) {
	if days < 1 {
		days = 1
	}
	end := w.now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 1)
	return w.store.DailyFocusSummary(ctx, w.userID, end.AddDate(0, 0, -days), end)
}

func (w *Workspace) FocusCyclesToday(ctx context.Context) (int, error) {
	return w.store.FocusCyclesToday(ctx, w.userID)
}
