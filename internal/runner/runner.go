package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/decisionhub/internal/dmp"
	"github.com/alexisbeaulieu97/decisionhub/internal/logger"
	"github.com/alexisbeaulieu97/decisionhub/internal/model"
	"github.com/alexisbeaulieu97/decisionhub/internal/plugin"
	"github.com/alexisbeaulieu97/decisionhub/internal/schema"
	apperrors "github.com/alexisbeaulieu97/decisionhub/pkg/errors"
)

// Machine-classifiable markers recorded as metadata.error_type or used as
// violation prefixes.
const (
	ErrCodePackageInvalid  = "DMP_PACKAGE_INVALID"
	ErrCodeInputInvalid    = "DMP_INPUT_INVALID"
	ErrCodeSolveInvalid    = "DMP_SOLVE_INVALID"
	ErrCodeEvaluateInvalid = "DMP_EVALUATE_INVALID"
	ErrCodeRuntime         = "DMP_RUNTIME_ERROR"
)

// RuntimeFaultViolation is the single violation reported for any fault caught
// by the runner's boundary.
const RuntimeFaultViolation = ErrCodeRuntime + ": unexpected failure during execution"

// LoadFunc loads the plugin units of the package at root.
type LoadFunc func(root string) (plugin.Contract, error)

// Options configures a Runner. Zero values select the defaults.
type Options struct {
	Logger *logger.Logger
	// Load replaces the interpreter-backed plugin loader.
	Load LoadFunc
	// NewRunID generates the identifier stamped on every result.
	NewRunID func() string
}

// Runner executes decision model packages against instance documents.
type Runner struct {
	log       *logger.Logger
	validator *dmp.Validator
	load      LoadFunc
	newRunID  func() string
}

// New creates a Runner.
func New(opts Options) *Runner {
	r := &Runner{
		log:       opts.Logger,
		validator: dmp.NewValidator(opts.Logger),
		load:      opts.Load,
		newRunID:  opts.NewRunID,
	}
	if r.load == nil {
		loader := plugin.NewLoader(opts.Logger)
		r.load = func(root string) (plugin.Contract, error) {
			return loader.LoadPackage(root, dmp.ModelFile, dmp.EvaluatorFile)
		}
	}
	if r.newRunID == nil {
		r.newRunID = uuid.NewString
	}
	return r
}

// execution carries the state of one run across stages.
type execution struct {
	id           string
	root         string
	instancePath string
	start        time.Time
	solverConfig map[string]any
	card         *dmp.Card
	log          *logger.Logger
}

func (e *execution) elapsed() float64 {
	return time.Since(e.start).Seconds()
}

// Run executes the package at root against one instance document. It never
// panics and never returns nil: every failure, including a panic inside
// plugin code, becomes an error-status result.
func (r *Runner) Run(ctx context.Context, root, instancePath string) (result *model.RunResult) {
	exec := &execution{
		id:           r.newRunID(),
		root:         root,
		instancePath: instancePath,
		start:        time.Now(),
	}
	exec.log = r.log.WithFields(map[string]any{
		"run_id":   exec.id,
		"package":  root,
		"instance": instancePath,
	})

	defer func() {
		if recovered := recover(); recovered != nil {
			result = faultResult(exec, &apperrors.PanicError{Value: recovered, Stack: debug.Stack()})
		}
		result.EnsureShape()
		result.Metadata[model.MetaRunID] = exec.id
		r.logOutcome(exec, result)
	}()

	result, err := r.execute(ctx, exec)
	if err != nil {
		return r.failure(exec, err)
	}
	return result
}

func (r *Runner) execute(ctx context.Context, exec *execution) (*model.RunResult, error) {
	exec.log.Debug("validating package")
	report := r.validator.Check(exec.root)
	if !report.OK() {
		return model.NewErrorResultFor(report.Kind(), ErrCodePackageInvalid, report.Errors(), exec.elapsed(), nil), nil
	}
	exec.card = report.Card

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exec.log.Debug("loading solver configuration and instance")
	solverConfig, err := dmp.LoadSolverConfig(exec.root)
	if err != nil {
		return nil, err
	}
	exec.solverConfig = solverConfig

	instanceDoc, err := dmp.ReadJSON(exec.instancePath)
	if err != nil {
		return nil, err
	}

	violations, err := validateInstance(exec.root, instanceDoc)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return model.NewErrorResultFor(
			apperrors.KindInputInvalid,
			ErrCodeInputInvalid,
			schema.Format(filepath.Base(exec.instancePath), violations),
			exec.elapsed(),
			exec.solverConfig,
		), nil
	}
	instance, ok := instanceDoc.(map[string]any)
	if !ok {
		return model.NewErrorResultFor(
			apperrors.KindInputInvalid,
			ErrCodeInputInvalid,
			[]string{fmt.Sprintf("%s: instance must be a JSON object", filepath.Base(exec.instancePath))},
			exec.elapsed(),
			exec.solverConfig,
		), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exec.log.Debug("loading plugins")
	contract, err := r.load(exec.root)
	if err != nil {
		return nil, err
	}

	exec.log.Debug("creating model")
	built, err := contract.CreateModel(instance, exec.solverConfig)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exec.log.Debug("solving")
	solveStart := time.Now()
	rawSolve, err := contract.Solve(built, instance, exec.solverConfig)
	solveSeconds := time.Since(solveStart).Seconds()
	if err != nil {
		return nil, err
	}
	solve, ok := asResult(rawSolve)
	if !ok {
		return contractResult(exec, ErrCodeSolveInvalid, "solve() must return a JSON-serializable object"), nil
	}
	solveResult := model.SolveResult(solve)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exec.log.Debug("evaluating")
	payload := solveResult.Solution()
	evaluateStart := time.Now()
	rawEvaluation, err := contract.Evaluate(payload, instance, solveSeconds)
	evaluateSeconds := time.Since(evaluateStart).Seconds()
	if err != nil {
		return nil, err
	}
	evaluated, ok := asResult(rawEvaluation)
	if !ok {
		return contractResult(exec, ErrCodeEvaluateInvalid, "evaluate() must return a JSON-serializable object"), nil
	}
	evaluation := model.EvaluationResult(evaluated)

	return assemble(exec, solveResult, evaluation, payload, solveSeconds, evaluateSeconds), nil
}

// assemble builds the success envelope from the solver's and the evaluator's results.
func assemble(exec *execution, solve model.SolveResult, evaluation model.EvaluationResult, payload any, solveSeconds, evaluateSeconds float64) *model.RunResult {
	status := NormalizeStatus(solve.Status(), evaluation["feasible"])

	feasible, known := evaluation.Feasible()
	if !known {
		feasible = status.IsFeasible()
	}

	objectiveValue, fromEvaluator := evaluation.Objective()
	code := ErrCodeEvaluateInvalid
	if !fromEvaluator {
		objectiveValue, _ = solve.Objective()
		code = ErrCodeSolveInvalid
	}
	objective, err := model.ToObjective(objectiveValue)
	if err != nil {
		return contractResult(exec, code, err.Error())
	}

	violations, err := evaluation.Violations()
	if err != nil {
		return contractResult(exec, ErrCodeEvaluateInvalid, err.Error())
	}

	solverObjective, _ := solve.Objective()
	metadata := map[string]any{
		"runner": map[string]any{
			"solve_seconds":    solveSeconds,
			"evaluate_seconds": evaluateSeconds,
		},
		"solve": map[string]any{
			"status":          solve.Status(),
			"objective":       solverObjective,
			"metrics":         solve.Metrics(),
			"runtime_seconds": solve.RuntimeSeconds(),
		},
		"evaluation": map[string]any{
			"runtime": evaluation.Runtime(),
			"metrics": evaluation.Metrics(),
		},
	}
	if exec.card != nil {
		metadata["package"] = map[string]any{
			"name":    exec.card.Name,
			"version": exec.card.Version,
		}
	}

	return &model.RunResult{
		Status:         status,
		Feasible:       feasible,
		Objective:      objective,
		RuntimeSeconds: exec.elapsed(),
		Violations:     violations,
		Solution:       model.SolutionMapping(payload),
		Solver:         exec.solverConfig,
		Metadata:       metadata,
	}
}

// validateInstance checks the instance document against the package's own schema.
func validateInstance(root string, instance any) ([]schema.Violation, error) {
	doc, err := dmp.ReadJSON(dmp.NewLayout(root).InstanceSchema())
	if err != nil {
		return nil, err
	}
	validator, err := schema.Compile(dmp.InstanceSchemaFile, doc)
	if err != nil {
		return nil, err
	}
	return validator.Validate(instance), nil
}

// asResult accepts a mapping whose contents survive a JSON round trip.
func asResult(value any) (map[string]any, bool) {
	mapping, ok := model.AsMapping(value)
	if !ok {
		return nil, false
	}
	normalized, err := model.NormalizeMap(mapping)
	if err != nil {
		return nil, false
	}
	return normalized, true
}

// failure converts an error returned by a stage into an error result.
// Contract violations keep their own code; everything else is a runtime fault.
func (r *Runner) failure(exec *execution, err error) *model.RunResult {
	var contractErr *apperrors.ContractError
	if errors.As(err, &contractErr) {
		result := model.NewErrorResultFor(apperrors.KindContract, contractErr.Code, []string{contractErr.Error()}, exec.elapsed(), exec.solverConfig)
		result.Metadata[model.MetaMessage] = contractErr.Message
		return result
	}
	return faultResult(exec, err)
}

func contractResult(exec *execution, code, message string) *model.RunResult {
	return model.NewErrorResultFor(apperrors.KindContract, code, []string{code + ": " + message}, exec.elapsed(), exec.solverConfig)
}

func faultResult(exec *execution, err error) *model.RunResult {
	return model.NewErrorResult(
		[]string{RuntimeFaultViolation},
		exec.elapsed(),
		exec.solverConfig,
		map[string]any{
			model.MetaErrorType: apperrors.TypeName(err),
			model.MetaErrorKind: string(apperrors.KindRuntimeFault),
			model.MetaMessage:   faultMessage(err),
			model.MetaTraceback: traceback(err),
		},
	)
}

func faultMessage(err error) string {
	var panicErr *apperrors.PanicError
	if errors.As(err, &panicErr) {
		if inner, ok := panicErr.Value.(error); ok {
			return inner.Error()
		}
		return fmt.Sprint(panicErr.Value)
	}
	return err.Error()
}

// traceback renders the panic-site stack when there is one, otherwise the
// chain of wrapped errors followed by the stack of the failing run.
func traceback(err error) string {
	var panicErr *apperrors.PanicError
	if errors.As(err, &panicErr) && len(panicErr.Stack) > 0 {
		return string(panicErr.Stack)
	}

	var b strings.Builder
	for current := err; current != nil; current = errors.Unwrap(current) {
		fmt.Fprintf(&b, "%T: %s\n", current, current.Error())
	}
	b.WriteString("\n")
	b.Write(debug.Stack())
	return b.String()
}

func (r *Runner) logOutcome(exec *execution, result *model.RunResult) {
	log := exec.log.WithFields(map[string]any{
		"status":      string(result.Status),
		"duration_ms": time.Since(exec.start).Milliseconds(),
	})
	if result.IsError() {
		log.WithFields(map[string]any{
			"error_kind": string(result.ErrorKind()),
			"violations": len(result.Violations),
		}).Warn("run failed")
		return
	}
	log.Info("run completed")
}
