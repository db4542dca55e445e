package evaluate

import (
	"fmt"
	"sort"
)

type slot struct {
	job, op    int
	start, end float64
}

func Evaluate(solution map[string]any, instance map[string]any) map[string]any {
	violations := CheckFeasibility(solution, instance)
	makespan := 0.0
	routes, _ := solution["routes"].([]any)
	for _, route := range routes {
		for _, raw := range route.([]any) {
			if end := raw.(map[string]any)["end"].(float64); end > makespan {
				makespan = end
			}
		}
	}
	return map[string]any{
		"feasible":   len(violations) == 0,
		"objective":  makespan,
		"violations": violations,
	}
}

// CheckFeasibility returns the precedence, duration and machine-overlap violations of a schedule.
func CheckFeasibility(solution map[string]any, instance map[string]any) []string {
	violations := []string{}
	jobs := instance["jobs"].([]any)
	routes, _ := solution["routes"].([]any)
	if len(routes) != len(jobs) {
		return append(violations, fmt.Sprintf("Expected %d job routes, got %d", len(jobs), len(routes)))
	}

	byMachine := map[string][]slot{}
	for j, route := range routes {
		ops := jobs[j].(map[string]any)["operations"].([]any)
		scheduled := route.([]any)
		if len(scheduled) != len(ops) {
			violations = append(violations, fmt.Sprintf("Job %d: expected %d operations, got %d", j, len(ops), len(scheduled)))
			continue
		}
		previousEnd := 0.0
		for o, raw := range scheduled {
			entry := raw.(map[string]any)
			op := ops[o].(map[string]any)
			start, end := entry["start"].(float64), entry["end"].(float64)
			if end-start != op["duration"].(float64) {
				violations = append(violations, fmt.Sprintf("Job %d operation %d: wrong duration", j, o))
			}
			if start < previousEnd {
				violations = append(violations, fmt.Sprintf("Job %d operation %d: starts before its predecessor ends", j, o))
			}
			previousEnd = end
			machine := op["machine"].(string)
			byMachine[machine] = append(byMachine[machine], slot{job: j, op: o, start: start, end: end})
		}
	}

	machines := make([]string, 0, len(byMachine))
	for machine := range byMachine {
		machines = append(machines, machine)
	}
	sort.Strings(machines)
	for _, machine := range machines {
		slots := byMachine[machine]
		sort.Slice(slots, func(a, b int) bool { return slots[a].start < slots[b].start })
		for i := 1; i < len(slots); i++ {
			if slots[i].start < slots[i-1].end {
				violations = append(violations, fmt.Sprintf("Machine %s: overlapping operations", machine))
			}
		}
	}
	return violations
}
