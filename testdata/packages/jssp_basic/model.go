package model

func CreateModel(instance map[string]any) map[string]any {
	return instance
}

// Solve schedules every job's operations in order, starting each as soon as
// both its job and its machine are free.
func Solve(model map[string]any) map[string]any {
	machineFree := map[string]float64{}
	jobs := model["jobs"].([]any)
	routes := make([]any, len(jobs))
	makespan := 0.0

	for j, rawJob := range jobs {
		job := rawJob.(map[string]any)
		jobFree := 0.0
		route := []any{}
		for o, rawOp := range job["operations"].([]any) {
			op := rawOp.(map[string]any)
			machine := op["machine"].(string)
			duration := op["duration"].(float64)

			start := jobFree
			if machineFree[machine] > start {
				start = machineFree[machine]
			}
			end := start + duration
			route = append(route, map[string]any{
				"job": j, "operation": o, "machine": machine,
				"start": start, "end": end, "duration": duration,
			})
			jobFree = end
			machineFree[machine] = end
		}
		if jobFree > makespan {
			makespan = jobFree
		}
		routes[j] = route
	}

	return map[string]any{
		"status":          "feasible",
		"solution":        map[string]any{"routes": routes},
		"objective":       makespan,
		"metrics":         map[string]any{"jobs": len(routes)},
		"runtime_seconds": 0.0,
	}
}
