package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/alexisbeaulieu97/decisionhub/pkg/errors"
)

// Status is the normalized outcome of a run.
type Status string

const (
	// StatusFeasible marks a solution the evaluator accepted.
	StatusFeasible Status = "feasible"
	// StatusOptimal marks a feasible solution the solver proved optimal.
	StatusOptimal Status = "optimal"
	// StatusInfeasible marks a solution that violates the instance constraints.
	StatusInfeasible Status = "infeasible"
	// StatusError marks a run that could not produce a trustworthy outcome.
	StatusError Status = "error"
)

// IsValid reports whether the status is one of the four recognised values.
func (s Status) IsValid() bool {
	switch s {
	case StatusFeasible, StatusOptimal, StatusInfeasible, StatusError:
		return true
	default:
		return false
	}
}

// IsFeasible reports whether the status implies a feasible solution.
func (s Status) IsFeasible() bool {
	return s == StatusFeasible || s == StatusOptimal
}

// ParseStatus converts a plugin-reported value into a Status when it is a recognised string.
func ParseStatus(value any) (Status, bool) {
	str, ok := value.(string)
	if !ok {
		return "", false
	}
	status := Status(str)
	return status, status.IsValid()
}

// Well-known metadata keys.
const (
	MetaErrorType = "error_type"
	MetaErrorKind = "error_kind"
	MetaMessage   = "message"
	MetaTraceback = "traceback"
	MetaRunID     = "run_id"
)

// RunResult is the canonical envelope produced by every run, success or failure.
type RunResult struct {
	Status         Status         `json:"status"`
	Feasible       bool           `json:"feasible"`
	Objective      *float64       `json:"objective"`
	RuntimeSeconds float64        `json:"runtime_seconds"`
	Violations     []string       `json:"violations"`
	Solution       map[string]any `json:"solution"`
	Solver         map[string]any `json:"solver"`
	Metadata       map[string]any `json:"metadata"`
}

// NewErrorResult builds an error envelope carrying the supplied violations.
func NewErrorResult(violations []string, runtimeSeconds float64, solver, metadata map[string]any) *RunResult {
	result := &RunResult{
		Status:         StatusError,
		Feasible:       false,
		Objective:      nil,
		RuntimeSeconds: runtimeSeconds,
		Violations:     append([]string(nil), violations...),
		Solution:       map[string]any{},
		Solver:         solver,
		Metadata:       metadata,
	}
	result.EnsureShape()
	return result
}

// NewErrorResultFor builds an error envelope classified by kind and marker.
func NewErrorResultFor(kind apperrors.Kind, errorType string, violations []string, runtimeSeconds float64, solver map[string]any) *RunResult {
	metadata := map[string]any{MetaErrorKind: string(kind)}
	if errorType != "" {
		metadata[MetaErrorType] = errorType
	}
	return NewErrorResult(violations, runtimeSeconds, solver, metadata)
}

// EnsureShape replaces nil collections so the envelope always serializes
// every key with a concrete value.
func (r *RunResult) EnsureShape() {
	if r == nil {
		return
	}
	if r.Violations == nil {
		r.Violations = []string{}
	}
	if r.Solution == nil {
		r.Solution = map[string]any{}
	}
	if r.Solver == nil {
		r.Solver = map[string]any{}
	}
	if r.Metadata == nil {
		r.Metadata = map[string]any{}
	}
}

// IsError reports whether the run ended in the error status.
func (r *RunResult) IsError() bool {
	return r == nil || r.Status == StatusError
}

// ErrorKind returns the taxonomy kind recorded in metadata, if any.
func (r *RunResult) ErrorKind() apperrors.Kind {
	if r == nil {
		return ""
	}
	kind, _ := r.Metadata[MetaErrorKind].(string)
	return apperrors.Kind(kind)
}

// Outcome projects the fields that are stable across repeated runs of the
// same package and instance. Timings, run ids and metadata are left out.
func (r *RunResult) Outcome() map[string]any {
	if r == nil {
		return nil
	}
	r.EnsureShape()
	var objective any
	if r.Objective != nil {
		objective = *r.Objective
	}
	return map[string]any{
		"status":     string(r.Status),
		"feasible":   r.Feasible,
		"objective":  objective,
		"violations": r.Violations,
		"solution":   r.Solution,
		"solver":     r.Solver,
	}
}

// ExitCode mirrors the CLI contract: 1 when the run failed, 0 otherwise.
func (r *RunResult) ExitCode() int {
	if r.IsError() {
		return 1
	}
	return 0
}

// Encode renders the envelope as indented JSON followed by a newline.
func (r *RunResult) Encode(indent int) ([]byte, error) {
	r.EnsureShape()

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if indent > 0 {
		encoder.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := encoder.Encode(r); err != nil {
		return nil, fmt.Errorf("encode run result: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the envelope to path, creating parent directories as needed.
func (r *RunResult) WriteFile(path string, indent int) error {
	payload, err := r.Encode(indent)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write run result: %w", err)
	}
	return nil
}

// ReadRunResult loads an envelope previously written with WriteFile.
func ReadRunResult(path string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var result RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}
	result.EnsureShape()
	return &result, nil
}
