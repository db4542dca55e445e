package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/decisionhub/internal/model"
	"github.com/alexisbeaulieu97/decisionhub/pkg/diff"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <expected-result> <actual-result>",
		Short: "Compare two result files, ignoring timings and metadata",
		Long: `Compare checks that two result envelopes agree on status, feasibility,
objective, violations, solution and solver configuration. Differences are
printed as a line diff and the command exits 1.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1])
		},
	}

	return cmd
}

func runCompare(cmd *cobra.Command, expectedPath, actualPath string) error {
	expected, err := outcomeJSON(expectedPath)
	if err != nil {
		return newCommandError("compare", "reading "+expectedPath, err, "Pass a file written by `decisionhub run --output`.")
	}
	actual, err := outcomeJSON(actualPath)
	if err != nil {
		return newCommandError("compare", "reading "+actualPath, err, "Pass a file written by `decisionhub run --output`.")
	}

	out := cmd.OutOrStdout()
	delta := diff.Unified(expected, actual, expectedPath, actualPath)
	if delta == "" {
		fmt.Fprintln(out, "Results match.")
		return nil
	}

	fmt.Fprint(out, delta)
	return exitWith(1)
}

// outcomeJSON renders the stable part of a result with sorted keys so equal
// outcomes produce identical bytes.
func outcomeJSON(path string) ([]byte, error) {
	result, err := model.ReadRunResult(path)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(result.Outcome(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
