package main

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/decisionhub/internal/schema"
)

// dependencyCheck is replaced in tests.
var dependencyCheck = checkDependencies

// checkDependencies confirms the embedded meta-schemas compile and YAML
// decoding works before any package is touched.
func checkDependencies() error {
	if err := schema.SelfCheck(); err != nil {
		return err
	}

	var probe map[string]any
	if err := yaml.Unmarshal([]byte("ok: true\n"), &probe); err != nil {
		return fmt.Errorf("yaml decoding unavailable: %w", err)
	}
	if probe["ok"] != true {
		return errors.New("yaml decoding unavailable: probe document decoded incorrectly")
	}
	return nil
}

func dependencyGate(operation string) error {
	if err := dependencyCheck(); err != nil {
		return newCommandError(operation, "checking required components", err,
			"Reinstall with `go install github.com/alexisbeaulieu97/decisionhub/cmd/decisionhub@latest` to restore the embedded meta-schemas.")
	}
	return nil
}
