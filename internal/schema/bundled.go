package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed metaschemas/instance_schema.schema.json metaschemas/solver.schema.yaml
var metaschemas embed.FS

const (
	instanceMetaSchemaFile = "metaschemas/instance_schema.schema.json"
	solverMetaSchemaFile   = "metaschemas/solver.schema.yaml"
)

var (
	bundledOnce     sync.Once
	instanceMeta    *Validator
	solverMeta      *Validator
	errBundledSetup error
)

func loadBundled() {
	bundledOnce.Do(func() {
		instanceDoc, err := readEmbeddedJSON(instanceMetaSchemaFile)
		if err != nil {
			errBundledSetup = err
			return
		}
		if instanceMeta, err = Compile("instance_schema.schema.json", instanceDoc); err != nil {
			errBundledSetup = err
			return
		}

		solverDoc, err := readEmbeddedYAML(solverMetaSchemaFile)
		if err != nil {
			errBundledSetup = err
			return
		}
		if solverMeta, err = Compile("solver.schema.yaml", solverDoc); err != nil {
			errBundledSetup = err
		}
	})
}

// InstanceMetaSchema returns the bundled rules for a package's instance_schema.json.
func InstanceMetaSchema() (*Validator, error) {
	loadBundled()
	return instanceMeta, errBundledSetup
}

// SolverMetaSchema returns the bundled rules for a package's solver configuration.
func SolverMetaSchema() (*Validator, error) {
	loadBundled()
	return solverMeta, errBundledSetup
}

// SelfCheck verifies that the bundled meta-schemas decode and compile. The
// CLI calls it before running any package.
func SelfCheck() error {
	loadBundled()
	if errBundledSetup != nil {
		return fmt.Errorf("bundled meta-schemas unavailable: %w", errBundledSetup)
	}
	return nil
}

func readEmbeddedJSON(name string) (any, error) {
	data, err := metaschemas.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return doc, nil
}

func readEmbeddedYAML(name string) (any, error) {
	data, err := metaschemas.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return doc, nil
}
