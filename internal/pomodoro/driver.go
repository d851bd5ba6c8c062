package pomodoro

import (
	"context"
	"sync"
	"time"
)

// AdvanceReason tells an observer why a phase ended.
type AdvanceReason string

const (
	ReasonNatural AdvanceReason = "natural"
	ReasonSkipped AdvanceReason = "skipped"
)

// Transition describes one phase change.
type Transition struct {
	From   State
	To     State
	Reason AdvanceReason
}

// Driver owns one focus session and paces it in real time.
//
// The interval keeps running while the session is paused; Tick is a no-op in
// that case. Only canceling Run releases the interval.
type Driver struct {
	mu        sync.Mutex
	cfg       Config
	state     State
	observers []func(Transition)
}

// NewDriver returns a driver positioned at Initial(cfg).
func NewDriver(cfg Config) *Driver {
	return &Driver{cfg: cfg, state: Initial(cfg)}
}

// OnAdvance registers fn to be called after every phase transition. fn runs
// with the driver unlocked and may call State.
func (d *Driver) OnAdvance(fn func(Transition)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, fn)
}

func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) Config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// SetConfig replaces the configuration and resets the session.
func (d *Driver) SetConfig(cfg Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg = cfg
	d.state = Reset(d.state, cfg)
}

func (d *Driver) Start()  { d.setRunning(true) }
func (d *Driver) Pause()  { d.setRunning(false) }
func (d *Driver) Resume() { d.setRunning(true) }

// Toggle flips between running and paused.
func (d *Driver) Toggle() {
	d.mu.Lock()
	d.state = SetRunning(d.state, !d.state.IsRunning)
	d.mu.Unlock()
}

func (d *Driver) setRunning(running bool) {
	d.mu.Lock()
	d.state = SetRunning(d.state, running)
	d.mu.Unlock()
}

func (d *Driver) Reset() {
	d.mu.Lock()
	d.state = Reset(d.state, d.cfg)
	d.mu.Unlock()
}

// Skip ends the current phase immediately.
func (d *Driver) Skip() State {
	d.mu.Lock()
	from := d.state
	d.state = AdvancePhase(SetRunning(from, false), d.cfg)
	t := Transition{From: from, To: d.state, Reason: ReasonSkipped}
	observers := d.observers
	d.mu.Unlock()

	notify(observers, t)
	return t.To
}

// Tick advances the countdown by one second. When the countdown reaches zero
// on this tick the phase advances exactly once; ticking while already at zero
// does nothing further. It reports whether a transition happened.
func (d *Driver) Tick() (State, bool) {
	d.mu.Lock()
	prev := d.state
	next := Tick(prev)
	if next.SecondsLeft != 0 || prev.SecondsLeft == 0 {
		d.state = next
		d.mu.Unlock()
		return next, false
	}

	d.state = AdvancePhase(next, d.cfg)
	t := Transition{From: next, To: d.state, Reason: ReasonNatural}
	observers := d.observers
	d.mu.Unlock()

	notify(observers, t)
	return t.To, true
}

// Run calls Tick every interval until ctx is canceled.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Tick()
		}
	}
}

func notify(observers []func(Transition), t Transition) {
	for _, fn := range observers {
		fn(t)
	}
}
