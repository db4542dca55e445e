package evaluate

func Evaluate(solution map[string]any, instance map[string]any, runtime float64) map[string]any {
	violations := CheckFeasibility(solution, instance)
	return map[string]any{
		"feasible":   len(violations) == 0,
		"objective":  solution["value"],
		"violations": violations,
		"runtime":    runtime,
	}
}

func CheckFeasibility(solution map[string]any, instance map[string]any) []string {
	if solution["value"] != instance["value"] {
		return []string{"solution.value must equal instance.value"}
	}
	return []string{}
}
