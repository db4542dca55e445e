package model

import (
	"fmt"
	"math"
	"sort"
)

// CreateModel normalises the instance into the shape Solve works on.
func CreateModel(instance map[string]any, solverConfig map[string]any) (map[string]any, error) {
	capacity, ok := instance["capacity"].(float64)
	if !ok {
		return nil, fmt.Errorf("capacity must be a number")
	}

	raw, _ := instance["items"].([]any)
	items := make([]map[string]any, 0, len(raw))
	for i, entry := range raw {
		item, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("items[%d] must be an object", i)
		}
		items = append(items, item)
	}

	strategy := "density"
	if params, ok := solverConfig["parameters"].(map[string]any); ok {
		if s, ok := params["strategy"].(string); ok && s != "" {
			strategy = s
		}
	}

	return map[string]any{"capacity": capacity, "items": items, "strategy": strategy}, nil
}

// Solve selects items with the configured strategy: "density" (greedy by
// value per unit weight) or "dp" (exact dynamic programming over integer weights).
func Solve(model map[string]any) (map[string]any, error) {
	capacity := model["capacity"].(float64)
	items := model["items"].([]map[string]any)
	strategy := model["strategy"].(string)

	var selected []string
	status := "feasible"
	switch strategy {
	case "density":
		selected = density(capacity, items)
	case "dp":
		selected = dynamic(capacity, items)
		status = "optimal"
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}

	total := 0.0
	weight := 0.0
	chosen := map[string]bool{}
	for _, id := range selected {
		chosen[id] = true
	}
	for _, item := range items {
		if chosen[item["id"].(string)] {
			total += item["value"].(float64)
			weight += item["weight"].(float64)
		}
	}

	return map[string]any{
		"status":    status,
		"solution":  map[string]any{"selected": selected},
		"objective": total,
		"metrics":   map[string]any{"strategy": strategy, "weight": weight, "considered": len(items)},
	}, nil
}

func density(capacity float64, items []map[string]any) []string {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	ratio := func(i int) float64 {
		w := items[i]["weight"].(float64)
		if w == 0 {
			return math.Inf(1)
		}
		return items[i]["value"].(float64) / w
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ratio(order[a]) > ratio(order[b])
	})

	selected := []string{}
	remaining := capacity
	for _, i := range order {
		w := items[i]["weight"].(float64)
		if w <= remaining {
			selected = append(selected, items[i]["id"].(string))
			remaining -= w
		}
	}
	return selected
}

func dynamic(capacity float64, items []map[string]any) []string {
	limit := int(capacity)
	n := len(items)
	table := make([][]float64, n+1)
	for i := range table {
		table[i] = make([]float64, limit+1)
	}
	for i := 1; i <= n; i++ {
		w := int(items[i-1]["weight"].(float64))
		v := items[i-1]["value"].(float64)
		for c := 0; c <= limit; c++ {
			table[i][c] = table[i-1][c]
			if w <= c && table[i-1][c-w]+v > table[i][c] {
				table[i][c] = table[i-1][c-w] + v
			}
		}
	}

	selected := []string{}
	c := limit
	for i := n; i > 0; i-- {
		if table[i][c] != table[i-1][c] {
			selected = append([]string{items[i-1]["id"].(string)}, selected...)
			c -= int(items[i-1]["weight"].(float64))
		}
	}
	return selected
}
