package dmp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/decisionhub/internal/logger"
	"github.com/alexisbeaulieu97/decisionhub/internal/plugin"
	"github.com/alexisbeaulieu97/decisionhub/internal/schema"
	apperrors "github.com/alexisbeaulieu97/decisionhub/pkg/errors"
)

// Validator checks package structure without executing plugin code.
type Validator struct {
	log *logger.Logger
}

// NewValidator creates a Validator. A nil logger disables logging.
func NewValidator(log *logger.Logger) *Validator {
	return &Validator{log: log}
}

// Validate returns every problem with the package at root. An empty result
// means the package is structurally and semantically valid.
func (v *Validator) Validate(root string) []string {
	return v.Check(root).Errors()
}

// Check runs every check in order and returns the full report. Missing
// required files end the pass early since nothing else can be checked.
func (v *Validator) Check(root string) *Report {
	report := &Report{Root: root}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		report.add(apperrors.KindStructural, "", fmt.Sprintf("Package directory not found: %s", root))
		return report
	}

	layout := NewLayout(root)
	if missing := layout.MissingFiles(); len(missing) > 0 {
		report.add(apperrors.KindStructural, "", fmt.Sprintf("Missing required files: %s", strings.Join(missing, ", ")))
		v.logReport(report)
		return report
	}

	v.checkFunctions(report, layout.Model(), plugin.ModelEntryPoints)
	v.checkFunctions(report, layout.Evaluator(), plugin.EvaluatorEntryPoints)
	v.checkInstanceSchema(report, layout.InstanceSchema())
	v.checkSolverConfig(report, root)
	v.checkDecisionCard(report, layout.DecisionCard())

	v.logReport(report)
	return report
}

func (v *Validator) checkFunctions(report *Report, path string, required []string) {
	name := filepath.Base(path)

	source, err := plugin.Inspect(path)
	if err != nil {
		report.add(apperrors.KindStructural, name, err.Error())
		return
	}

	for _, fn := range source.Missing(required) {
		report.add(apperrors.KindContract, name, fmt.Sprintf("%s must define top-level function: %s()", name, fn))
	}
}

func (v *Validator) checkInstanceSchema(report *Report, path string) {
	name := filepath.Base(path)

	doc, err := ReadJSON(path)
	if err != nil {
		report.add(apperrors.KindSchema, name, fmt.Sprintf("%s: invalid JSON: %s", name, parseMessage(err)))
		return
	}
	if _, ok := doc.(map[string]any); !ok {
		report.add(apperrors.KindSchema, name, fmt.Sprintf("%s: must be a JSON object", name))
		return
	}

	meta, err := schema.InstanceMetaSchema()
	if err != nil {
		report.add(apperrors.KindSchema, name, fmt.Sprintf("%s: %v", name, err))
		return
	}
	if violations := meta.Validate(doc); len(violations) > 0 {
		report.add(apperrors.KindSchema, name, schema.Format(name, violations)...)
		return
	}

	if _, err := schema.Compile(name, doc); err != nil {
		var invalid *schema.InvalidSchemaError
		if errors.As(err, &invalid) && len(invalid.Violations) > 0 {
			report.add(apperrors.KindSchema, name, schema.Format(name, invalid.Violations)...)
			return
		}
		report.add(apperrors.KindSchema, name, err.Error())
	}
}

func (v *Validator) checkSolverConfig(report *Report, root string) {
	path, err := NewLayout(root).SolverConfig()
	if err != nil {
		report.add(apperrors.KindStructural, SolverYAMLFile, err.Error())
		return
	}
	name := filepath.Base(path)

	config, err := LoadSolverConfig(root)
	if err != nil {
		var parseErr *apperrors.ParseError
		if errors.As(err, &parseErr) {
			report.add(apperrors.KindSchema, name, fmt.Sprintf("%s: invalid document: %s", name, parseMessage(err)))
			return
		}
		report.add(apperrors.KindSchema, name, err.Error())
		return
	}

	meta, err := schema.SolverMetaSchema()
	if err != nil {
		report.add(apperrors.KindSchema, name, fmt.Sprintf("%s: %v", name, err))
		return
	}
	report.add(apperrors.KindSchema, name, schema.Format(name, meta.Validate(config))...)
}

func (v *Validator) checkDecisionCard(report *Report, path string) {
	data, err := readDocument(path)
	if err != nil {
		report.add(apperrors.KindStructural, DecisionCardFile, cardMessage(err.Error()))
		return
	}

	card, problems := ParseCard(string(data))
	report.Card = card
	report.add(apperrors.KindStructural, DecisionCardFile, problems...)
}

func (v *Validator) logReport(report *Report) {
	log := v.log.WithFields(map[string]any{
		"package": report.Root,
		"issues":  len(report.Issues),
	})
	if report.OK() {
		log.Debug("package validation passed")
		return
	}
	log.Debug("package validation failed")
}

// parseMessage renders a decode error as "message (line N)".
func parseMessage(err error) string {
	var parseErr *apperrors.ParseError
	if !errors.As(err, &parseErr) {
		return err.Error()
	}
	if parseErr.Line > 0 {
		return fmt.Sprintf("%s (line %d)", parseErr.Message, parseErr.Line)
	}
	return parseErr.Message
}
