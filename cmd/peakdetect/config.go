package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spike/internal/config"
)

func newConfigCmd(load loadFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := load(cmd)
			if err != nil {
				return err
			}
			return config.Dump(cmd.OutOrStdout(), c)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}
