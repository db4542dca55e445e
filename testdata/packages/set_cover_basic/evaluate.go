package evaluate

import "fmt"

func Evaluate(solution, instance map[string]any, runtime float64) map[string]any {
	result := CheckFeasibility(solution, instance)
	feasible := result["feasible"].(bool)

	var objective any
	if feasible {
		objective = result["metrics"].(map[string]any)["total_cost"]
	}
	result["objective"] = objective
	result["runtime"] = runtime
	return result
}

func CheckFeasibility(solution, instance map[string]any) map[string]any {
	available := map[string]map[string]any{}
	for _, entry := range instance["sets"].([]any) {
		set := entry.(map[string]any)
		available[set["id"].(string)] = set
	}

	violations := []string{}
	covered := map[string]bool{}
	total := 0.0
	ids, _ := solution["selected_set_ids"].([]any)
	for _, raw := range ids {
		id := fmt.Sprint(raw)
		set, ok := available[id]
		if !ok {
			violations = append(violations, fmt.Sprintf("Unknown set id selected: %s", id))
			continue
		}
		total += set["cost"].(float64)
		for _, element := range set["elements"].([]any) {
			covered[fmt.Sprint(element)] = true
		}
	}

	missing := 0
	for _, element := range instance["universe"].([]any) {
		if !covered[fmt.Sprint(element)] {
			missing++
		}
	}
	if missing > 0 {
		violations = append(violations, fmt.Sprintf("Not all universe elements are covered (%d missing)", missing))
	}

	return map[string]any{
		"feasible":   len(violations) == 0,
		"violations": violations,
		"metrics": map[string]any{
			"covered_count":  len(covered),
			"selected_count": len(ids),
			"total_cost":     total,
		},
	}
}
