package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sadopc/mindease/internal/export"
	"github.com/sadopc/mindease/internal/pomodoro"
	"github.com/sadopc/mindease/internal/workspace"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run and configure the focus timer",
	}
	cmd.AddCommand(newFocusRunCmd(), newFocusConfigCmd(), newFocusLogCmd())
	return cmd
}

func newFocusRunCmd() *cobra.Command {
	var phases int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Count down in the terminal",
		Long:  "Count down the current phase and the ones after it. Ctrl+C stops the timer.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if phases < 1 {
				return errors.New("--phases must be at least 1")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withWorkspace(ctx, func(_ *env, ws *workspace.Workspace) error {
				return runFocus(ctx, cmd.OutOrStdout(), ws, phases)
			})
		},
	}

	cmd.Flags().IntVarP(&phases, "phases", "n", 1, "number of phases to run")
	return cmd
}

// runFocus drives the countdown until phases transitions happened or ctx is
// canceled.
func runFocus(ctx context.Context, w io.Writer, ws *workspace.Workspace, phases int) error {
	d := ws.Driver()
	advanced := make(chan pomodoro.Transition, 1)
	d.OnAdvance(func(tr pomodoro.Transition) {
		select {
		case advanced <- tr:
		default:
		}
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ws.RunCountdown(gctx)
	})
	g.Go(func() error {
		defer cancel()
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		d.Start()
		done := 0
		for {
			st := d.State()
			fmt.Fprintf(w, "\r%-12s %s ", st.Phase.Label(), clock(st.SecondsLeft))
			select {
			case <-gctx.Done():
				d.Pause()
				fmt.Fprintln(w, "\nStopped")
				return nil
			case tr := <-advanced:
				fmt.Fprintf(w, "\r%s finished. Next: %s\n", tr.From.Phase.Label(), tr.To.Phase.Label())
				done++
				if done >= phases {
					return nil
				}
				d.Start()
			case <-ticker.C:
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	n, err := ws.FocusCyclesToday(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Focus sessions today: %d\n", n)
	return nil
}

func clock(secs int) string {
	secs = max(0, secs)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func newFocusConfigCmd() *cobra.Command {
	var cfg pomodoro.Config

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the timer lengths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				next := ws.Driver().Config()
				flags := cmd.Flags()
				changed := false
				if flags.Changed("focus") {
					next.FocusMinutes, changed = cfg.FocusMinutes, true
				}
				if flags.Changed("short") {
					next.ShortBreakMinutes, changed = cfg.ShortBreakMinutes, true
				}
				if flags.Changed("long") {
					next.LongBreakMinutes, changed = cfg.LongBreakMinutes, true
				}
				if flags.Changed("cycles") {
					next.CyclesUntilLongBreak, changed = cfg.CyclesUntilLongBreak, true
				}
				if changed {
					if err := ws.SetTimerConfig(cmd.Context(), next); err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "focus:       %s min\n", minutes(next.FocusMinutes))
				fmt.Fprintf(out, "short break: %s min\n", minutes(next.ShortBreakMinutes))
				fmt.Fprintf(out, "long break:  %s min\n", minutes(next.LongBreakMinutes))
				fmt.Fprintf(out, "long break every %d focus sessions\n", next.CyclesUntilLongBreak)
				if !ws.HasTimerSettings() {
					fmt.Fprintln(out, "(defaults from config and profile)")
				}
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&cfg.FocusMinutes, "focus", 0, "focus minutes")
	cmd.Flags().Float64Var(&cfg.ShortBreakMinutes, "short", 0, "short break minutes")
	cmd.Flags().Float64Var(&cfg.LongBreakMinutes, "long", 0, "long break minutes")
	cmd.Flags().IntVar(&cfg.CyclesUntilLongBreak, "cycles", 0, "focus sessions before a long break")
	return cmd
}

func minutes(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}

func newFocusLogCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show completed focus per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				summary, err := ws.FocusSummary(cmd.Context(), days)
				if err != nil {
					return err
				}
				if len(summary) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No focus sessions yet")
					return nil
				}
				rows := make([][]string, 0, len(summary))
				for _, d := range summary {
					rows = append(rows, []string{d.Date, strconv.Itoa(d.Cycles), export.FormatDuration(d.TotalSeconds)})
				}
				tbl := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("DATE", "SESSIONS", "FOCUS").
					Rows(rows...)
				fmt.Fprintln(cmd.OutOrStdout(), tbl)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "days to show, today included")
	return cmd
}
