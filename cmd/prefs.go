package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/mindease/internal/cognitive"
	"github.com/sadopc/mindease/internal/workspace"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		Aliases: []string{"preferences"},
		Short:   "Show or change presentation preferences",
	}
	cmd.AddCommand(newPrefsShowCmd(), newPrefsSetCmd(), newPrefsResetCmd())
	return cmd
}

func printPrefs(w io.Writer, p cognitive.Preferences, stored bool) {
	rows := [][2]string{
		{"complexity", string(p.ComplexityLevel)},
		{"focus mode", strconv.FormatBool(p.FocusMode)},
		{"detail", string(p.DetailMode)},
		{"font size", minutes(p.FontSizeMultiplier)},
		{"line spacing", minutes(p.LineSpacing)},
		{"spacing", minutes(p.SpacingMultiplier)},
		{"contrast", string(p.ContrastLevel)},
		{"animations", strconv.FormatBool(p.AnimationsEnabled)},
		{"navigation", string(p.NavigationStyle)},
		{"reminders", strconv.FormatBool(p.CognitiveAlertsEnabled)},
		{"remind after", fmt.Sprintf("%d min", p.AlertThresholdMinutes)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-13s %s\n", r[0]+":", r[1])
	}
	if !stored {
		fmt.Fprintln(w, "(following your profile needs)")
	}
}

func newPrefsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the applied preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				printPrefs(cmd.OutOrStdout(), ws.Panel().Applied(), ws.Panel().HasStored())
				return nil
			})
		},
	}
}

func newPrefsSetCmd() *cobra.Command {
	var (
		p          cognitive.Preferences
		complexity cognitive.Complexity
		detail     cognitive.DetailMode
		contrast   cognitive.Contrast
		navigation cognitive.Navigation
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences and save them",
		Long:  "Change the given preferences and save them. Saved preferences take precedence over profile needs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch cognitive.Patch
			flags := cmd.Flags()
			if flags.Changed("complexity") {
				patch.ComplexityLevel = &complexity
			}
			if flags.Changed("focus-mode") {
				patch.FocusMode = &p.FocusMode
			}
			if flags.Changed("detail") {
				patch.DetailMode = &detail
			}
			if flags.Changed("font-size") {
				patch.FontSizeMultiplier = &p.FontSizeMultiplier
			}
			if flags.Changed("line-spacing") {
				patch.LineSpacing = &p.LineSpacing
			}
			if flags.Changed("spacing") {
				patch.SpacingMultiplier = &p.SpacingMultiplier
			}
			if flags.Changed("contrast") {
				patch.ContrastLevel = &contrast
			}
			if flags.Changed("animations") {
				patch.AnimationsEnabled = &p.AnimationsEnabled
			}
			if flags.Changed("navigation") {
				patch.NavigationStyle = &navigation
			}
			if flags.Changed("reminders") {
				patch.CognitiveAlertsEnabled = &p.CognitiveAlertsEnabled
			}
			if flags.Changed("remind-after") {
				patch.AlertThresholdMinutes = &p.AlertThresholdMinutes
			}

			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				panel := ws.Panel()
				// Out-of-range input is rejected here; the panel itself clamps.
				if err := patch.Apply(panel.Applied()).Validate(); err != nil {
					return err
				}
				if err := panel.ApplyPatch(cmd.Context(), patch); err != nil {
					return err
				}
				printPrefs(cmd.OutOrStdout(), panel.Applied(), true)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.Var(complexityFlag(&complexity), "complexity", "simple|medium|detailed")
	f.BoolVar(&p.FocusMode, "focus-mode", false, "dim everything but the current column")
	f.Var(detailFlag(&detail), "detail", "summary|detailed")
	f.Float64Var(&p.FontSizeMultiplier, "font-size", 1, fmt.Sprintf("text scale, %v to %v", cognitive.MinFontSize, cognitive.MaxFontSize))
	f.Float64Var(&p.LineSpacing, "line-spacing", 1.5, fmt.Sprintf("line height, %v to %v", cognitive.MinLineSpacing, cognitive.MaxLineSpacing))
	f.Float64Var(&p.SpacingMultiplier, "spacing", 1, fmt.Sprintf("padding scale, %v to %v", cognitive.MinSpacing, cognitive.MaxSpacing))
	f.Var(contrastFlag(&contrast), "contrast", "normal|high")
	f.BoolVar(&p.AnimationsEnabled, "animations", true, "bell and blink effects")
	f.Var(navigationFlag(&navigation), "navigation", "sidebar|bottom")
	f.BoolVar(&p.CognitiveAlertsEnabled, "reminders", true, "show pause reminders")
	f.IntVar(&p.AlertThresholdMinutes, "remind-after", 5, "minutes on one screen before a reminder")
	return cmd
}

func newPrefsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Save the default preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				if err := ws.Panel().ResetPreferences(cmd.Context()); err != nil {
					return err
				}
				printPrefs(cmd.OutOrStdout(), ws.Panel().Applied(), true)
				return nil
			})
		},
	}
}
