package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/mindease/internal/profile"
	"github.com/sadopc/mindease/internal/workspace"
)

var needNames = []string{"short-texts", "reduce-stimuli", "high-contrast", "reminders"}

func parseNeeds(names []string) (profile.Needs, error) {
	var n profile.Needs
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case "", "none":
		case "short-texts":
			n.ShortTexts = true
		case "reduce-stimuli":
			n.ReduceStimuli = true
		case "high-contrast":
			n.HighContrastPreferred = true
		case "reminders":
			n.GentleReminders = true
		default:
			return profile.Needs{}, fmt.Errorf("unknown need %q, want one of %s", name, strings.Join(needNames, ", "))
		}
	}
	return n, nil
}

func needsList(n profile.Needs) string {
	on := []bool{n.ShortTexts, n.ReduceStimuli, n.HighContrastPreferred, n.GentleReminders}
	var names []string
	for i, v := range on {
		if v {
			names = append(names, needNames[i])
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func printProfile(w io.Writer, p profile.Profile) {
	fmt.Fprintf(w, "name:        %s\n", p.DisplayName)
	fmt.Fprintf(w, "navigation:  %s\n", p.NavigationProfile)
	fmt.Fprintf(w, "needs:       %s\n", needsList(p.Needs))
	fmt.Fprintf(w, "mostly:      %s\n", p.Routine.WorkOrStudy)
	fmt.Fprintf(w, "focus:       %d min\n", p.Routine.PreferredFocusMinutes)
	fmt.Fprintf(w, "daily goal:  %d sessions\n", p.Routine.SessionsPerDayGoal)
	fmt.Fprintf(w, "best time:   %s\n", p.Routine.PreferredPeriod)
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileSetCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				printProfile(cmd.OutOrStdout(), ws.Profile())
				return nil
			})
		},
	}
}

func newProfileSetCmd() *cobra.Command {
	var (
		name, workStudy string
		navigation      profile.NavigationProfile
		needs           []string
		focusMins, goal int
		period          profile.Period
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields",
		Long: `Change profile fields. --needs replaces the whole set; pass "none" to clear it.
Needs shape the presentation until preferences are saved explicitly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if workStudy != "" && !slices.Contains([]string{"work", "study"}, workStudy) {
				return fmt.Errorf("--mostly must be work or study")
			}
			parsed, err := parseNeeds(needs)
			if err != nil {
				return err
			}

			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				next := ws.Profile()
				if flags.Changed("name") {
					next.DisplayName = name
				}
				if flags.Changed("navigation") {
					next.NavigationProfile = navigation
				}
				if flags.Changed("needs") {
					next.Needs = parsed
				}
				if flags.Changed("mostly") {
					next.Routine.WorkOrStudy = workStudy
				}
				if flags.Changed("focus-minutes") {
					next.Routine.PreferredFocusMinutes = focusMins
				}
				if flags.Changed("goal") {
					next.Routine.SessionsPerDayGoal = goal
				}
				if flags.Changed("period") {
					next.Routine.PreferredPeriod = period
				}

				saved, err := ws.SaveProfile(cmd.Context(), next)
				if err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), saved)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "display name")
	f.Var(navProfileFlag(&navigation), "navigation", "simple|guided|power")
	f.StringSliceVar(&needs, "needs", nil, "comma separated: "+strings.Join(needNames, ","))
	f.StringVar(&workStudy, "mostly", "", "work|study")
	f.IntVar(&focusMins, "focus-minutes", 25, "preferred focus length")
	f.IntVar(&goal, "goal", 4, "focus sessions per day")
	f.Var(periodFlag(&period), "period", "morning|afternoon|night")
	return cmd
}
