package evaluate

import "fmt"

// Evaluate scores a selection independently of the solver.
func Evaluate(solution map[string]any, instance map[string]any, runtime float64) map[string]any {
	report := CheckFeasibility(solution, instance)
	feasible := report["feasible"].(bool)

	var objective any
	if feasible {
		objective = report["value"]
	}

	return map[string]any{
		"feasible":   feasible,
		"objective":  objective,
		"violations": report["violations"],
		"runtime":    runtime,
		"metrics": map[string]any{
			"total_weight": report["weight"],
			"total_value":  report["value"],
		},
	}
}

// CheckFeasibility verifies that every selected item exists, is selected at
// most once, and that the selection fits the capacity.
func CheckFeasibility(solution map[string]any, instance map[string]any) map[string]any {
	capacity, _ := instance["capacity"].(float64)
	catalog := map[string]map[string]any{}
	if items, ok := instance["items"].([]any); ok {
		for _, entry := range items {
			if item, ok := entry.(map[string]any); ok {
				if id, ok := item["id"].(string); ok {
					catalog[id] = item
				}
			}
		}
	}

	violations := []string{}
	seen := map[string]bool{}
	weight, value := 0.0, 0.0

	selected, _ := solution["selected"].([]any)
	for _, entry := range selected {
		id := fmt.Sprint(entry)
		item, ok := catalog[id]
		if !ok {
			violations = append(violations, fmt.Sprintf("Unknown item selected: %s", id))
			continue
		}
		if seen[id] {
			violations = append(violations, fmt.Sprintf("Duplicate item selected: %s", id))
			continue
		}
		seen[id] = true
		weight += item["weight"].(float64)
		value += item["value"].(float64)
	}

	if weight > capacity {
		violations = append(violations, fmt.Sprintf("Capacity exceeded: %g > %g", weight, capacity))
	}

	return map[string]any{
		"feasible":   len(violations) == 0,
		"violations": violations,
		"weight":     weight,
		"value":      value,
	}
}
