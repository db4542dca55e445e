package model

// CreateModel forwards the input value.
func CreateModel(instance map[string]any, solverConfig map[string]any) map[string]any {
	return map[string]any{"value": instance["value"]}
}

// Solve echoes the model's value as the solution.
func Solve(model map[string]any, instance map[string]any, solverConfig map[string]any) map[string]any {
	return map[string]any{
		"status":    "feasible",
		"solution":  map[string]any{"value": model["value"]},
		"objective": model["value"],
	}
}
