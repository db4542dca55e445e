package config

// EnvConfigPath names the environment variable consulted when no --config flag is given.
const EnvConfigPath = "DECISIONHUB_CONFIG"

// Settings holds the CLI's own preferences. Package behaviour never depends on them.
type Settings struct {
	LogLevel  string `yaml:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"required,oneof=human json"`
	// InstancePattern selects instance files in run-all.
	InstancePattern string `yaml:"instance_pattern" validate:"required,glob"`
	// Indent is the JSON indentation of written results.
	Indent int `yaml:"indent" validate:"min=1,max=8"`
}

// DefaultSettings returns the settings used when no file is supplied.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:        "info",
		LogFormat:       "human",
		InstancePattern: "*.json",
		Indent:          2,
	}
}
