package workspace

import (
	"context"
	"fmt"

	"github.com/sadopc/mindease/internal/profile"
)

func (w *Workspace) Profile() profile.Profile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile
}

// SaveProfile validates and persists p, then lets the cognitive panel and the
// timer follow the new needs and routine.
func (w *Workspace) SaveProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if err := p.Validate(); err != nil {
		return profile.Profile{}, err
	}
	p.UpdatedAt = w.now()
	if err := w.store.SaveProfile(ctx, w.userID, p); err != nil {
		return profile.Profile{}, fmt.Errorf("save profile: %w", err)
	}

	w.mu.Lock()
	w.profile = p
	w.mu.Unlock()

	w.syncTimerFromProfile(p)
	w.notifier.Publish(p)
	w.log.Info("profile saved")
	return p, nil
}
