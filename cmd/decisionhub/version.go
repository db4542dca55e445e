package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/decisionhub/internal/dmp"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "decisionhub %s\ncommit: %s\nbuilt: %s\npackage format: v%s\n", version, commit, date, dmp.Version)
			return nil
		},
	}

	return cmd
}
