package dmp

import (
	"fmt"
	"os"
	"path/filepath"
)

// Fixed artifact names directly under a package root.
const (
	ModelFile          = "model.go"
	InstanceSchemaFile = "instance_schema.json"
	SolverYAMLFile     = "solver.yaml"
	SolverTOMLFile     = "solver.toml"
	EvaluatorFile      = "evaluate.go"
	DecisionCardFile   = "decision_card.md"
)

// Version is the only package format version this module understands.
const Version = "0.1"

// RequiredFiles lists the package artifacts in check order. The solver
// configuration slot is satisfied by either SolverYAMLFile or SolverTOMLFile.
var RequiredFiles = []string{
	ModelFile,
	InstanceSchemaFile,
	SolverYAMLFile,
	EvaluatorFile,
	DecisionCardFile,
}

// Layout resolves artifact paths for one package root.
type Layout struct {
	Root string
}

// NewLayout returns the layout of the package at root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

func (l Layout) path(name string) string {
	return filepath.Join(l.Root, name)
}

func (l Layout) Model() string          { return l.path(ModelFile) }
func (l Layout) InstanceSchema() string { return l.path(InstanceSchemaFile) }
func (l Layout) Evaluator() string      { return l.path(EvaluatorFile) }
func (l Layout) DecisionCard() string   { return l.path(DecisionCardFile) }

// SolverConfig returns the path of the package's solver configuration. YAML
// is preferred; TOML is used when it is the only one present. Having both is
// ambiguous and reported as an error.
func (l Layout) SolverConfig() (string, error) {
	yamlPresent := isRegularFile(l.path(SolverYAMLFile))
	tomlPresent := isRegularFile(l.path(SolverTOMLFile))

	switch {
	case yamlPresent && tomlPresent:
		return "", fmt.Errorf("%s and %s are both present; keep exactly one solver configuration", SolverYAMLFile, SolverTOMLFile)
	case tomlPresent:
		return l.path(SolverTOMLFile), nil
	default:
		return l.path(SolverYAMLFile), nil
	}
}

// MissingFiles returns the required artifacts that are not regular files, in
// RequiredFiles order.
func (l Layout) MissingFiles() []string {
	var missing []string
	for _, name := range RequiredFiles {
		if name == SolverYAMLFile {
			if isRegularFile(l.path(SolverYAMLFile)) || isRegularFile(l.path(SolverTOMLFile)) {
				continue
			}
			missing = append(missing, name)
			continue
		}
		if !isRegularFile(l.path(name)) {
			missing = append(missing, name)
		}
	}
	return missing
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
