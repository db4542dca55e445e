package model

// SolveResult is the mapping returned by a model plugin's Solve entry point.
// Recognised keys are status, solution, objective, metrics and runtime_seconds;
// everything else is carried along untouched.
type SolveResult map[string]any

// Status returns the solver's self-reported status exactly as returned.
func (s SolveResult) Status() any {
	return s["status"]
}

// Solution returns the solution payload, falling back to the whole result
// when the solver did not nest one.
func (s SolveResult) Solution() any {
	if solution, ok := s["solution"]; ok {
		return solution
	}
	return map[string]any(s)
}

// Objective returns the solver's objective and whether the key was present.
func (s SolveResult) Objective() (any, bool) {
	objective, ok := s["objective"]
	return objective, ok
}

// Metrics returns the solver's self-reported metrics.
func (s SolveResult) Metrics() any {
	return s["metrics"]
}

// RuntimeSeconds returns the solver's self-reported runtime.
func (s SolveResult) RuntimeSeconds() any {
	return s["runtime_seconds"]
}

// SolutionMapping wraps a non-mapping solution payload so the envelope's
// solution is always a mapping.
func SolutionMapping(payload any) map[string]any {
	if mapping, ok := AsMapping(payload); ok {
		return mapping
	}
	return map[string]any{"value": payload}
}
