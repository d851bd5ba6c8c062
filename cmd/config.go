package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/mindease/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := config.Load(config.Options{File: cfgFile, EnvFile: envFile})
			if err != nil {
				return err
			}
			path := cfgFile
			if path == "" {
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if err := config.WriteFile(path, m.Config(), force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := config.Load(config.Options{File: cfgFile, EnvFile: envFile})
			if err != nil {
				return err
			}
			data, err := m.Config().YAML()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if f := m.FileUsed(); f != "" {
				fmt.Fprintf(out, "# %s\n", f)
			} else {
				fmt.Fprintln(out, "# defaults, no config file")
			}
			_, err = out.Write(data)
			return err
		},
	}
}
