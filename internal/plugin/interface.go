package plugin

// Entry point names, as declared in plugin source.
const (
	EntryCreateModel      = "CreateModel"
	EntrySolve            = "Solve"
	EntryEvaluate         = "Evaluate"
	EntryCheckFeasibility = "CheckFeasibility"
)

// ModelEntryPoints are the functions model.go must declare.
var ModelEntryPoints = []string{EntryCreateModel, EntrySolve}

// EvaluatorEntryPoints are the functions evaluate.go must declare.
var EvaluatorEntryPoints = []string{EntryEvaluate, EntryCheckFeasibility}

// Contract is the capability set a decision model package exposes to the runner.
//
// Implementations may return any value; the runner decides what counts as a
// valid result. Plugin panics surface as *errors.PanicError.
type Contract interface {
	// CreateModel builds the problem representation from an instance.
	CreateModel(instance, solverConfig map[string]any) (any, error)

	// Solve produces a solution payload for a model built by CreateModel.
	Solve(model any, instance, solverConfig map[string]any) (any, error)

	// Evaluate scores a solution independently of the solver.
	Evaluate(solution any, instance map[string]any, runtimeSeconds float64) (any, error)

	// CheckFeasibility reports whether a solution satisfies the instance's constraints.
	CheckFeasibility(solution any, instance map[string]any) (any, error)
}

// Package binds the model and evaluator units of one package into a Contract.
type Package struct {
	Model     *Unit
	Evaluator *Unit
}

var _ Contract = (*Package)(nil)

func (p *Package) CreateModel(instance, solverConfig map[string]any) (any, error) {
	return p.Model.Call(EntryCreateModel, Args{
		ArgInstance:     instance,
		ArgSolverConfig: solverConfig,
	})
}

func (p *Package) Solve(model any, instance, solverConfig map[string]any) (any, error) {
	return p.Model.Call(EntrySolve, Args{
		ArgModel:        model,
		ArgInstance:     instance,
		ArgSolverConfig: solverConfig,
	})
}

func (p *Package) Evaluate(solution any, instance map[string]any, runtimeSeconds float64) (any, error) {
	return p.Evaluator.Call(EntryEvaluate, Args{
		ArgSolution: solution,
		ArgInstance: instance,
		ArgRuntime:  runtimeSeconds,
	})
}

func (p *Package) CheckFeasibility(solution any, instance map[string]any) (any, error) {
	return p.Evaluator.Call(EntryCheckFeasibility, Args{
		ArgSolution: solution,
		ArgInstance: instance,
	})
}
