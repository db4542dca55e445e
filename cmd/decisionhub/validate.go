package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/decisionhub/internal/dmp"
	"github.com/alexisbeaulieu97/decisionhub/internal/watch"
)

const (
	formatText = "text"
	formatJSON = "json"
)

const passMessage = "Decision Model Package v0.1 validation passed."

type validateOptions struct {
	PackageDir string
	Format     string
	Watch      bool
}

// watchRunner is replaced in tests.
var watchRunner = func(ctx context.Context, app *appContext, dir string, onChange func()) error {
	return watch.New(app.log).Run(ctx, dir, onChange)
}

func newValidateCmd(root *rootFlags) *cobra.Command {
	opts := validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <package-dir>",
		Short: "Check a Decision Model Package without running it",
		Long: `Validate checks required files, plugin entry points, the instance schema,
the solver configuration and the decision card. Plugin code is parsed, never run.
Exits 1 when any problem is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.PackageDir = args[0]
			return runValidate(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", formatText, "Output format: text or json")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-validate whenever a package file changes")

	return cmd
}

func runValidate(cmd *cobra.Command, root *rootFlags, opts validateOptions) error {
	if opts.Format != formatText && opts.Format != formatJSON {
		return fmt.Errorf("unsupported format %q (expected %s or %s)", opts.Format, formatText, formatJSON)
	}
	app, err := root.setup(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	validator := dmp.NewValidator(app.log)
	check := func() []string {
		problems := validator.Validate(opts.PackageDir)
		if err := renderValidation(out, opts.Format, problems); err != nil {
			app.log.Error(err, "write validation output")
		}
		return problems
	}

	problems := check()
	if !opts.Watch {
		if len(problems) > 0 {
			return exitWith(1)
		}
		return nil
	}

	styles := stylesFor(out)
	return watchRunner(cmd.Context(), app, opts.PackageDir, func() {
		if opts.Format == formatText {
			fmt.Fprintln(out, styles.dim(fmt.Sprintf("--- re-validated at %s ---", time.Now().Format(time.TimeOnly))))
		}
		check()
	})
}

type validationPayload struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors"`
}

func renderValidation(w io.Writer, format string, problems []string) error {
	if format == formatJSON {
		if problems == nil {
			problems = []string{}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(validationPayload{OK: len(problems) == 0, Errors: problems})
	}

	styles := stylesFor(w)
	if len(problems) == 0 {
		_, err := fmt.Fprintln(w, styles.success(passMessage))
		return err
	}
	for _, problem := range problems {
		if _, err := fmt.Fprintf(w, "%s %s\n", styles.failure("ERROR:"), problem); err != nil {
			return err
		}
	}
	return nil
}
