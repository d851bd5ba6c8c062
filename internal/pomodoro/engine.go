// Package pomodoro implements the focus/break phase engine and the countdown
// driver that paces it in real time.
//
// The engine functions are pure: they take a State and a Config and return a
// new State. Nothing in this file reads a clock or touches shared state.
package pomodoro

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Phase is one segment of a focus/break cycle.
type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short-break"
	PhaseLongBreak  Phase = "long-break"
)

var phaseNames = map[Phase]string{
	PhaseFocus:      "FOCUS",
	PhaseShortBreak: "SHORT BREAK",
	PhaseLongBreak:  "LONG BREAK",
}

// Label returns the display name of the phase.
func (p Phase) Label() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return string(p)
}

func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// Config holds the durations of a session. Minutes may be fractional.
type Config struct {
	FocusMinutes         float64 `json:"focusMinutes" validate:"gt=0"`
	ShortBreakMinutes    float64 `json:"shortBreakMinutes" validate:"gt=0"`
	LongBreakMinutes     float64 `json:"longBreakMinutes" validate:"gt=0"`
	CyclesUntilLongBreak int     `json:"cyclesUntilLongBreak" validate:"gte=1"`
}

// DefaultConfig is the classic 25/5/15 rhythm with a long break every 4 cycles.
func DefaultConfig() Config {
	return Config{
		FocusMinutes:         25,
		ShortBreakMinutes:    5,
		LongBreakMinutes:     15,
		CyclesUntilLongBreak: 4,
	}
}

var validate = validator.New()

// Validate reports a malformed config. The engine never requires it: every
// operation clamps instead of failing.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid timer config: %w", err)
	}
	return nil
}

// State is the focus session state.
type State struct {
	Phase                Phase `json:"phase"`
	SecondsLeft          int   `json:"secondsLeft"`
	IsRunning            bool  `json:"isRunning"`
	FocusCyclesCompleted int   `json:"focusCyclesCompleted"`
}

// DurationSeconds returns the length of phase under cfg, rounded to whole
// seconds and never below 1.
func DurationSeconds(cfg Config, phase Phase) int {
	var minutes float64
	switch phase {
	case PhaseFocus:
		minutes = cfg.FocusMinutes
	case PhaseShortBreak:
		minutes = cfg.ShortBreakMinutes
	default:
		minutes = cfg.LongBreakMinutes
	}
	secs := math.Round(minutes * 60)
	if math.IsNaN(secs) || secs < 1 {
		return 1
	}
	if secs > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(secs)
}

// Initial returns a fresh, paused focus phase with zero completed cycles.
func Initial(cfg Config) State {
	return State{
		Phase:       PhaseFocus,
		SecondsLeft: DurationSeconds(cfg, PhaseFocus),
	}
}

// SetRunning replaces IsRunning and nothing else.
func SetRunning(s State, running bool) State {
	s.IsRunning = running
	return s
}

// Reset discards s entirely.
func Reset(_ State, cfg Config) State {
	return Initial(cfg)
}

// Tick decrements SecondsLeft by one while running, floored at zero.
// A paused state is returned unchanged.
func Tick(s State) State {
	if !s.IsRunning {
		return s
	}
	if s.SecondsLeft > 0 {
		s.SecondsLeft--
	}
	return s
}

// AdvancePhase moves focus -> break or break -> focus. The next phase never
// starts on its own.
func AdvancePhase(s State, cfg Config) State {
	if s.Phase == PhaseFocus {
		cycles := s.FocusCyclesCompleted + 1
		next := PhaseShortBreak
		if cycles%cyclesUntilLong(cfg) == 0 {
			next = PhaseLongBreak
		}
		return State{
			Phase:                next,
			SecondsLeft:          DurationSeconds(cfg, next),
			FocusCyclesCompleted: cycles,
		}
	}

	return State{
		Phase:                PhaseFocus,
		SecondsLeft:          DurationSeconds(cfg, PhaseFocus),
		FocusCyclesCompleted: s.FocusCyclesCompleted,
	}
}

func cyclesUntilLong(cfg Config) int {
	if cfg.CyclesUntilLongBreak < 1 {
		return 1
	}
	return cfg.CyclesUntilLongBreak
}
