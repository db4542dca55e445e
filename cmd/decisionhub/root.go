package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/decisionhub/internal/config"
	"github.com/alexisbeaulieu97/decisionhub/internal/logger"
)

type rootFlags struct {
	verbose    bool
	configPath string
	logFormat  string
}

// appContext is what every subcommand needs once flags are parsed.
type appContext struct {
	settings *config.Settings
	log      *logger.Logger
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "decisionhub",
		Short:         "decisionhub validates and runs Decision Model Packages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Settings file (default $"+config.EnvConfigPath+")")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: human or json (overrides settings)")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newRunAllCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newCompareCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup loads settings and builds the logger. Logs always go to stderr.
func (f *rootFlags) setup(cmd *cobra.Command) (*appContext, error) {
	path := config.ResolvePath(f.configPath)
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, newCommandError(cmd.Name(), "loading settings from "+path, err, "Fix the settings file or pass --config with a valid file.")
	}

	if f.verbose {
		settings.LogLevel = "debug"
	}
	if f.logFormat != "" {
		settings.LogFormat = f.logFormat
	}

	log, err := logger.New(logger.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, newCommandError(cmd.Name(), "creating logger", err, "Use --log-format human or --log-format json.")
	}

	return &appContext{settings: settings, log: log}, nil
}
