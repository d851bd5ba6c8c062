package pomodoro

import (
	"context"
	"errors"
	"testing"
	"time"
)

// shortConfig gives a 3 second focus phase and 2 second breaks.
func shortConfig() Config {
	return Config{FocusMinutes: 0.05, ShortBreakMinutes: 2.0 / 60, LongBreakMinutes: 2.0 / 60, CyclesUntilLongBreak: 2}
}

func TestDriverTickWhilePaused(t *testing.T) {
	d := NewDriver(shortConfig())
	before := d.State()

	s, advanced := d.Tick()
	if advanced {
		t.Fatal("paused driver must not advance")
	}
	if s != before {
		t.Fatalf("paused tick changed state: %+v -> %+v", before, s)
	}
}

func TestDriverAdvancesOnceAtZero(t *testing.T) {
	d := NewDriver(shortConfig())
	var transitions []Transition
	d.OnAdvance(func(tr Transition) { transitions = append(transitions, tr) })

	d.Start()
	d.Tick() // 2
	d.Tick() // 1
	s, advanced := d.Tick()
	if !advanced {
		t.Fatal("expected phase advance at zero")
	}
	if s.Phase != PhaseShortBreak || s.FocusCyclesCompleted != 1 {
		t.Fatalf("unexpected state after advance: %+v", s)
	}
	if s.IsRunning {
		t.Fatal("break must not auto-start")
	}

	for i := 0; i < 5; i++ {
		if _, advanced := d.Tick(); advanced {
			t.Fatal("paused break advanced")
		}
	}
	if len(transitions) != 1 {
		t.Fatalf("observer called %d times, want 1", len(transitions))
	}
	if transitions[0].Reason != ReasonNatural || transitions[0].From.Phase != PhaseFocus {
		t.Fatalf("unexpected transition: %+v", transitions[0])
	}
}

func TestDriverPauseResume(t *testing.T) {
	d := NewDriver(DefaultConfig())
	d.Start()
	d.Tick()
	d.Pause()
	frozen := d.State().SecondsLeft
	d.Tick()
	d.Tick()
	if got := d.State().SecondsLeft; got != frozen {
		t.Fatalf("paused countdown moved: %d -> %d", frozen, got)
	}
	d.Resume()
	d.Tick()
	if got := d.State().SecondsLeft; got != frozen-1 {
		t.Fatalf("secondsLeft = %d, want %d", got, frozen-1)
	}
	d.Toggle()
	if d.State().IsRunning {
		t.Fatal("toggle should pause")
	}
}

func TestDriverSkip(t *testing.T) {
	d := NewDriver(shortConfig())
	var reasons []AdvanceReason
	d.OnAdvance(func(tr Transition) { reasons = append(reasons, tr.Reason) })

	d.Start()
	s := d.Skip()
	if s.Phase != PhaseShortBreak || s.IsRunning {
		t.Fatalf("unexpected state after skip: %+v", s)
	}
	s = d.Skip()
	if s.Phase != PhaseFocus || s.FocusCyclesCompleted != 1 {
		t.Fatalf("unexpected state after second skip: %+v", s)
	}
	if len(reasons) != 2 || reasons[0] != ReasonSkipped {
		t.Fatalf("reasons = %v", reasons)
	}
}

func TestDriverSetConfigResets(t *testing.T) {
	d := NewDriver(DefaultConfig())
	d.Start()
	d.Skip()

	cfg := Config{FocusMinutes: 10, ShortBreakMinutes: 1, LongBreakMinutes: 2, CyclesUntilLongBreak: 3}
	d.SetConfig(cfg)

	if d.State() != Initial(cfg) {
		t.Fatalf("state = %+v, want %+v", d.State(), Initial(cfg))
	}
	if d.Config() != cfg {
		t.Fatalf("config not replaced")
	}
}

func TestDriverReset(t *testing.T) {
	d := NewDriver(DefaultConfig())
	d.Start()
	d.Tick()
	d.Reset()
	if d.State() != Initial(DefaultConfig()) {
		t.Fatalf("reset state = %+v", d.State())
	}
}

func TestDriverRunStopsOnCancel(t *testing.T) {
	d := NewDriver(shortConfig())
	d.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, 5*time.Millisecond) }()

	deadline := time.After(2 * time.Second)
	for d.State().Phase == PhaseFocus {
		select {
		case <-deadline:
			t.Fatal("driver never advanced")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if s := d.State(); s.Phase != PhaseShortBreak || s.IsRunning {
		t.Fatalf("unexpected state: %+v", s)
	}
}
