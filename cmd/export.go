package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sadopc/mindease/internal/export"
	"github.com/sadopc/mindease/internal/workspace"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write tasks or the focus log to a file",
	}
	cmd.PersistentFlags().StringVarP(&out, "out", "o", "", "output file (default mindease-<kind>-<date>.<ext> in the current directory)")

	path := func(kind, ext string) string {
		if out != "" {
			return out
		}
		return fmt.Sprintf("mindease-%s-%s.%s", kind, time.Now().Format("2006-01-02"), ext)
	}

	fs := afero.NewOsFs()
	cmd.AddCommand(
		&cobra.Command{
			Use:   "csv",
			Short: "Export tasks as CSV",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
					p := path("tasks", "csv")
					if err := export.ToCSV(fs, p, ws.Columns().Flatten()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Exported to", p)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "json",
			Short: "Export tasks as JSON",
			Long:  "Export tasks as JSON. The file can be read back with \"task import\".",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
					p := path("tasks", "json")
					if err := export.ToJSON(fs, p, ws.Columns().Flatten()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Exported to", p)
					return nil
				})
			},
		},
		newExportFocusCmd(fs, path),
	)
	return cmd
}

func newExportFocusCmd(fs afero.Fs, path func(kind, ext string) string) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Export the daily focus log as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				summary, err := ws.FocusSummary(cmd.Context(), days)
				if err != nil {
					return err
				}
				p := path("focus", "csv")
				if err := export.FocusCSV(fs, p, summary); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Exported to", p)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "days to include, today included")
	return cmd
}
