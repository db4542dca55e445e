package model

import "fmt"

// EvaluationResult is the mapping returned by an evaluator plugin's Evaluate
// entry point. Recognised keys are feasible, objective, violations, metrics
// and runtime.
type EvaluationResult map[string]any

// Feasible returns the evaluator's verdict. known is false when the key is
// absent or does not hold a boolean.
func (e EvaluationResult) Feasible() (feasible bool, known bool) {
	value, ok := e["feasible"].(bool)
	return value, ok
}

// Objective returns the evaluator's objective and whether the key was present.
// A present null objective still overrides the solver's value.
func (e EvaluationResult) Objective() (any, bool) {
	objective, ok := e["objective"]
	return objective, ok
}

// Violations returns the evaluator's violations as strings. A missing or null
// value yields an empty list; a value that is not a list is an error.
func (e EvaluationResult) Violations() ([]string, error) {
	raw, ok := e["violations"]
	if !ok || raw == nil {
		return []string{}, nil
	}

	switch typed := raw.(type) {
	case []string:
		return append([]string{}, typed...), nil
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if str, ok := item.(string); ok {
				out = append(out, str)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("violations must be a list of strings, got %T", raw)
	}
}

// Metrics returns the evaluator's self-reported metrics.
func (e EvaluationResult) Metrics() any {
	return e["metrics"]
}

// Runtime returns the runtime value the evaluator echoed back.
func (e EvaluationResult) Runtime() any {
	return e["runtime"]
}
