package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/trapmeta/internal/config"
	"github.com/five82/trapmeta/internal/logtail"
)

func newLogsCmd(global *globalOptions) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the trapmeta log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(global.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			entries, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range entries {
				fmt.Fprintln(out, logtail.Format(line))
			}
			return nil
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show")
	return cmd
}
