package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/decisionhub/internal/runner"
)

type runAllOptions struct {
	PackageDir   string
	InstancesDir string
	OutputDir    string
}

func newRunAllCmd(root *rootFlags) *cobra.Command {
	opts := runAllOptions{}

	cmd := &cobra.Command{
		Use:   "run-all <package-dir>",
		Short: "Run a Decision Model Package against every instance in a directory",
		Long: `Run-all runs each matching instance in name order and writes one result file
per instance, named like the instance, into the output directory.
It stops at the first result whose status is error and exits 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.PackageDir = args[0]
			return runRunAll(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.InstancesDir, "instances", "", "Directory of instance JSON documents")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory for result JSON files")
	_ = cmd.MarkFlagRequired("instances")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runRunAll(cmd *cobra.Command, root *rootFlags, opts runAllOptions) error {
	if err := dependencyGate("run-all"); err != nil {
		return err
	}
	app, err := root.setup(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bar := newBatchProgress(cmd.ErrOrStderr())
	r := runner.New(runner.Options{Logger: app.log})
	summary, err := r.RunAll(cmd.Context(), runner.BatchRequest{
		PackageRoot:  opts.PackageDir,
		InstancesDir: opts.InstancesDir,
		OutputDir:    opts.OutputDir,
		Pattern:      app.settings.InstancePattern,
		Indent:       app.settings.Indent,
		OnResult: func(entry runner.BatchEntry) {
			bar.Update(entry.Position, entry.Total)
			fmt.Fprintf(out, "%s: %s -> %s\n", filepath.Base(entry.Instance), entry.Result.Status, entry.Output)
		},
	})
	bar.Finish()
	if err != nil {
		return err
	}

	if failed := summary.Failed(); failed != nil {
		fmt.Fprintf(out, "Stopped at %s; %d of %d instances not run.\n",
			filepath.Base(failed.Instance), summary.Total-len(summary.Entries), summary.Total)
	}
	return exitWith(summary.ExitCode())
}
