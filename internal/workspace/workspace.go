// Package workspace is the per-user state container. It preloads a user's
// tasks, profile, preferences and timer settings, and keeps the in-memory
// engines and the store in step.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sadopc/mindease/internal/board"
	"github.com/sadopc/mindease/internal/cognitive"
	"github.com/sadopc/mindease/internal/pomodoro"
	"github.com/sadopc/mindease/internal/profile"
	"github.com/sadopc/mindease/internal/store"
)

// Store is the persistence the workspace needs. *store.Store implements it.
type Store interface {
	ListTasks(ctx context.Context, userID string) ([]board.Task, error)
	SyncTasks(ctx context.Context, userID string, upserts []board.Task, deletes []string) error

	LoadPreferences(ctx context.Context, userID string) (cognitive.Preferences, bool, error)
	SavePreferences(ctx context.Context, userID string, p cognitive.Preferences) error

	LoadProfile(ctx context.Context, userID string) (profile.Profile, bool, error)
	SaveProfile(ctx context.Context, userID string, p profile.Profile) error

	LoadTimerSettings(ctx context.Context, userID string) (pomodoro.Config, bool, error)
	SaveTimerSettings(ctx context.Context, userID string, cfg pomodoro.Config) error

	RecordFocusCycle(ctx context.Context, c store.FocusCycle) (*store.FocusCycle, error)
	DailyFocusSummary(ctx context.Context, userID string, from, to time.Time) ([]store.DailyFocus, error)
	FocusCyclesToday(ctx context.Context, userID string) (int, error)
}

var _ Store = (*store.Store)(nil)

type Options struct {
	Store  Store
	UserID string
	// TimerDefaults apply when the user never saved timer settings.
	TimerDefaults pomodoro.Config
	Logger        *slog.Logger
	// Clock replaces the board's wall clock.
	Clock func() time.Time
}

type Workspace struct {
	store  Store
	userID string
	log    *slog.Logger
	now    func() time.Time

	mu            sync.Mutex
	board         *board.Board
	profile       profile.Profile
	hasTimer      bool
	timerDefaults pomodoro.Config

	panel    *cognitive.Panel
	driver   *pomodoro.Driver
	notifier *profile.Notifier

	stopWatch context.CancelFunc
	unsub     func()
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Open loads everything the user's session needs in parallel and returns a
// ready workspace. Call Close when done.
func Open(ctx context.Context, opts Options) (*Workspace, error) {
	if opts.Store == nil || opts.UserID == "" {
		return nil, errors.New("open workspace: store and user id are required")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("user", opts.UserID)
	now := opts.Clock
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	defaults := opts.TimerDefaults
	if defaults == (pomodoro.Config{}) {
		defaults = pomodoro.DefaultConfig()
	}

	var (
		tasks    []board.Task
		prof     profile.Profile
		hasProf  bool
		prefs    cognitive.Preferences
		hasPrefs bool
		timer    pomodoro.Config
		hasTimer bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tasks, err = opts.Store.ListTasks(gctx, opts.UserID)
		return err
	})
	g.Go(func() (err error) {
		prof, hasProf, err = opts.Store.LoadProfile(gctx, opts.UserID)
		return err
	})
	g.Go(func() (err error) {
		prefs, hasPrefs, err = opts.Store.LoadPreferences(gctx, opts.UserID)
		return err
	})
	g.Go(func() (err error) {
		timer, hasTimer, err = opts.Store.LoadTimerSettings(gctx, opts.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}
	if !hasProf {
		prof = profile.Default()
	}

	w := &Workspace{
		store:         opts.Store,
		userID:        opts.UserID,
		log:           log,
		now:           now,
		board:         board.New(tasks, board.WithClock(now)),
		profile:       prof,
		hasTimer:      hasTimer,
		timerDefaults: defaults,
		notifier:      profile.NewNotifier(),
	}

	w.panel = cognitive.NewPanel(userPrefs{store: opts.Store, userID: opts.UserID}, log)
	var stored *cognitive.Preferences
	if hasPrefs {
		stored = &prefs
	}
	w.panel.Hydrate(stored, prof.Needs)

	if !hasTimer {
		timer = w.profileTimer(prof)
	}
	w.driver = pomodoro.NewDriver(timer)
	w.driver.OnAdvance(w.logFocusCycle)

	watchCtx, stop := context.WithCancel(context.Background())
	updates, unsub := w.notifier.Subscribe()
	w.stopWatch, w.unsub = stop, unsub
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.panel.Watch(watchCtx, updates)
	}()

	log.Info("workspace opened", "tasks", len(tasks), "stored_prefs", hasPrefs, "timer_settings", hasTimer)
	return w, nil
}

// Close stops background work. It is safe to call more than once.
func (w *Workspace) Close() {
	w.closeOnce.Do(func() {
		w.stopWatch()
		w.unsub()
		w.wg.Wait()
	})
}

func (w *Workspace) UserID() string { return w.userID }
func (w *Workspace) Panel() *cognitive.Panel { return w.panel }
func (w *Workspace) Driver() *pomodoro.Driver { return w.driver }
func (w *Workspace) Notifier() *profile.Notifier { return w.notifier }

// userPrefs scopes the preference document to one user.
type userPrefs struct {
	store  Store
	userID string
}

func (u userPrefs) LoadPreferences(ctx context.Context) (cognitive.Preferences, bool, error) {
	return u.store.LoadPreferences(ctx, u.userID)
}

func (u userPrefs) SavePreferences(ctx context.Context, p cognitive.Preferences) error {
	return u.store.SavePreferences(ctx, u.userID, p)
}
