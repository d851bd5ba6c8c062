package cognitive

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/sadopc/mindease/internal/profile"
)

// Store persists one user's preference document.
type Store interface {
	// LoadPreferences reports false when no preferences were ever saved.
	LoadPreferences(ctx context.Context) (Preferences, bool, error)
	SavePreferences(ctx context.Context, p Preferences) error
}

// Panel holds the applied preferences and the in-progress draft of the
// cognitive panel.
//
// Whether explicit preferences exist is decided by the store: the flag is set
// by the first successful save and is never cleared. Until then every
// SyncNeeds recomputes applied and draft from the profile needs.
type Panel struct {
	mu        sync.Mutex
	store     Store
	applied   Preferences
	draft     Preferences
	hasStored bool
	listeners []func(Preferences)
	log       *slog.Logger
}

// NewPanel returns a panel showing the defaults. Call Load to hydrate it.
func NewPanel(store Store, log *slog.Logger) *Panel {
	if log == nil {
		log = slog.Default()
	}
	d := Defaults()
	return &Panel{store: store, applied: d, draft: d, log: log}
}

// OnChange registers fn to be called with the new applied preferences.
func (p *Panel) OnChange(fn func(Preferences)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Load reads stored preferences and falls back to needs overrides when none
// exist.
func (p *Panel) Load(ctx context.Context, needs profile.Needs) error {
	stored, ok, err := p.store.LoadPreferences(ctx)
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}
	var sp *Preferences
	if ok {
		sp = &stored
	}
	p.Hydrate(sp, needs)
	return nil
}

// Hydrate sets the panel from already-loaded state.
func (p *Panel) Hydrate(stored *Preferences, needs profile.Needs) {
	p.mu.Lock()
	p.hasStored = stored != nil
	p.applied = Effective(stored, needs)
	p.draft = p.applied
	applied := p.applied
	p.mu.Unlock()
	p.notify(applied)
}

func (p *Panel) Applied() Preferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.applied
}

func (p *Panel) Draft() Preferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// HasStored reports whether explicit preferences were ever saved.
func (p *Panel) HasStored() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasStored
}

// HasPendingChanges reports whether the draft differs from applied.
func (p *Panel) HasPendingChanges() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft != p.applied
}

// UpdateDraft merges patch into the draft without persisting.
func (p *Panel) UpdateDraft(patch Patch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = patch.Apply(p.draft)
}

// ResetDraft discards unsaved edits.
func (p *Panel) ResetDraft() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = p.applied
}

// ApplyDraft promotes the draft to applied and persists it. On failure the
// previous state is restored, so the unsaved draft survives for another try.
func (p *Panel) ApplyDraft(ctx context.Context) error {
	p.mu.Lock()
	next := p.draft.Normalize()
	return p.commit(ctx, next)
}

// ApplyPatch applies patch on top of the applied preferences and persists
// the result.
func (p *Panel) ApplyPatch(ctx context.Context, patch Patch) error {
	p.mu.Lock()
	next := patch.Apply(p.applied).Normalize()
	return p.commit(ctx, next)
}

// ResetPreferences saves the defaults. This counts as an explicit choice.
func (p *Panel) ResetPreferences(ctx context.Context) error {
	p.mu.Lock()
	return p.commit(ctx, Defaults())
}

// commit must be called with p.mu held; it releases it.
func (p *Panel) commit(ctx context.Context, next Preferences) error {
	prevApplied, prevDraft, prevStored := p.applied, p.draft, p.hasStored
	p.applied, p.draft = next, next

	if err := p.store.SavePreferences(ctx, next); err != nil {
		p.applied, p.draft, p.hasStored = prevApplied, prevDraft, prevStored
		p.mu.Unlock()
		p.log.Warn("saving preferences failed, reverted", "error", err)
		return fmt.Errorf("saving preferences: %w", err)
	}
	p.hasStored = true
	p.mu.Unlock()
	p.notify(next)
	return nil
}

// SyncNeeds recomputes applied from needs unless explicit preferences
// exist. The draft follows only while it has no pending edits. It reports
// whether anything was applied.
func (p *Panel) SyncNeeds(needs profile.Needs) bool {
	p.mu.Lock()
	if p.hasStored {
		p.mu.Unlock()
		return false
	}
	editing := p.draft != p.applied
	p.applied = Effective(nil, needs)
	if !editing {
		p.draft = p.applied
	}
	applied := p.applied
	p.mu.Unlock()
	p.notify(applied)
	return true
}

// Watch applies SyncNeeds for every profile received until ctx is done or
// updates is closed.
func (p *Panel) Watch(ctx context.Context, updates <-chan profile.Profile) {
	for {
		select {
		case <-ctx.Done():
			return
		case prof, ok := <-updates:
			if !ok {
				return
			}
			if p.SyncNeeds(prof.Needs) {
				p.log.Debug("preferences follow profile needs", "needs", prof.Needs)
			}
		}
	}
}

func (p *Panel) notify(applied Preferences) {
	p.mu.Lock()
	fns := slices.Clone(p.listeners)
	p.mu.Unlock()
	for _, fn := range fns {
		fn(applied)
	}
}
