package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/decisionhub/internal/runner"
)

type runOptions struct {
	PackageDir   string
	InstancePath string
	OutputPath   string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run <package-dir>",
		Short: "Run a Decision Model Package against one instance",
		Long: `Run validates the package and the instance, then calls the package's
solver and evaluator and prints the result envelope as JSON.
Exits 1 when the result status is error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.PackageDir = args[0]
			return runRun(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.InstancePath, "instance", "", "Path to the instance JSON document")
	cmd.Flags().StringVar(&opts.OutputPath, "output", "", "Write the result to this file instead of stdout")
	_ = cmd.MarkFlagRequired("instance")

	return cmd
}

func runRun(cmd *cobra.Command, root *rootFlags, opts runOptions) error {
	if err := dependencyGate("run"); err != nil {
		return err
	}
	app, err := root.setup(cmd)
	if err != nil {
		return err
	}

	r := runner.New(runner.Options{Logger: app.log})
	result := r.Run(cmd.Context(), opts.PackageDir, opts.InstancePath)

	if opts.OutputPath != "" {
		if err := result.WriteFile(opts.OutputPath, app.settings.Indent); err != nil {
			return newCommandError("run", "writing result", err, "Check that the output path is writable.")
		}
	} else {
		payload, err := result.Encode(app.settings.Indent)
		if err != nil {
			return newCommandError("run", "encoding result", err, "Report this as a bug with the package that produced it.")
		}
		if _, err := cmd.OutOrStdout().Write(payload); err != nil {
			return err
		}
	}

	return exitWith(result.ExitCode())
}
