package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symcanon/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	var vars []string
	c := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		// The existing file may be the broken one being replaced.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(false)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			cfg.Variables = vars
			if err := config.Write(a.cfgFile, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", a.cfgFile)
			return nil
		},
	}
	c.Flags().StringSliceVar(&vars, "vars", nil, "default variable names to record")
	return c
}
