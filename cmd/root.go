// Package cmd is the mindease command line. Running it without a subcommand
// opens the terminal interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/mindease/internal/auth"
	"github.com/sadopc/mindease/internal/config"
	"github.com/sadopc/mindease/internal/logging"
	"github.com/sadopc/mindease/internal/store"
	"github.com/sadopc/mindease/internal/tui"
	"github.com/sadopc/mindease/internal/workspace"
)

const version = "0.1.0"

var (
	cfgFile string
	envFile string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mindease",
		Short:         "A calm task board and focus timer for the terminal",
		Long:          "mindease keeps a small Kanban board, a focus timer and presentation preferences tuned to how you work.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runTUI,
	}
	root.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ~/.config/mindease/config.yaml)")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newTaskCmd(),
		newFocusCmd(),
		newPrefsCmd(),
		newProfileCmd(),
		newExportCmd(),
		newConfigCmd(),
	)
	return root
}

// Execute runs the command line and exits 1 on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env is the process state shared by every command.
type env struct {
	cfg      *config.Manager
	log      *slog.Logger
	store    *store.Store
	auth     *auth.Service
	tokens   auth.TokenFile
	closeLog func() error
}

func bootstrap() (*env, error) {
	m, err := config.Load(config.Options{File: cfgFile, EnvFile: envFile})
	if err != nil {
		return nil, err
	}
	cfg := m.Config()

	log, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("started", "db", cfg.DBPath, "config", m.FileUsed())

	return &env{
		cfg:      m,
		log:      log,
		store:    s,
		auth:     auth.NewService(s, cfg.SessionTTL, log),
		tokens:   auth.TokenFile{Path: cfg.TokenFile},
		closeLog: closeLog,
	}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("closing database failed", "error", err)
	}
	e.closeLog()
}

// userID resolves the stored session to a user.
func (e *env) userID(ctx context.Context) (string, error) {
	token, err := e.tokens.Read()
	if err != nil {
		return "", e.signInHint(err)
	}
	id, err := e.auth.Verify(ctx, token)
	if err != nil {
		return "", e.signInHint(err)
	}
	return id, nil
}

func (e *env) signInHint(err error) error {
	if errors.Is(err, auth.ErrUnauthenticated) {
		return fmt.Errorf("%w; run `mindease login --email you@example.com`", err)
	}
	return err
}

// openWorkspace loads the signed-in user's workspace.
func (e *env) openWorkspace(ctx context.Context) (*workspace.Workspace, error) {
	id, err := e.userID(ctx)
	if err != nil {
		return nil, err
	}
	return workspace.Open(ctx, workspace.Options{
		Store:         e.store,
		UserID:        id,
		TimerDefaults: e.cfg.Config().Pomodoro(),
		Logger:        e.log,
	})
}

// withWorkspace bootstraps, opens the workspace and runs fn.
func withWorkspace(ctx context.Context, fn func(*env, *workspace.Workspace) error) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.Close()

	ws, err := e.openWorkspace(ctx)
	if err != nil {
		return err
	}
	defer ws.Close()
	return fn(e, ws)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	return withWorkspace(cmd.Context(), func(e *env, ws *workspace.Workspace) error {
		e.cfg.Watch(func(c config.Config) {
			if ws.SetTimerDefaults(c.Pomodoro()) {
				e.log.Info("timer defaults reloaded", "focus_minutes", c.Timer.FocusMinutes)
			}
		}, func(err error) {
			e.log.Warn("config reload rejected", "error", err)
		})

		cfg := e.cfg.Config()
		return tui.Run(ws, tui.Options{
			AlertMessage: cfg.Alerts.Message,
			Snooze:       cfg.SnoozeDuration(),
		})
	})
}
