package model

import (
	"fmt"
	"sort"
)

type candidate struct {
	id       string
	cost     float64
	elements []string
}

func CreateModel(instance map[string]any) (map[string]any, error) {
	universe := []string{}
	for _, element := range instance["universe"].([]any) {
		universe = append(universe, fmt.Sprint(element))
	}
	return map[string]any{"universe": universe, "sets": instance["sets"]}, nil
}

// Solve picks, until everything is covered, the set with the lowest cost per
// newly covered element. Ties break on cost, then on id.
func Solve(model map[string]any) map[string]any {
	universe := model["universe"].([]string)
	var sets []candidate
	for _, entry := range model["sets"].([]any) {
		raw := entry.(map[string]any)
		c := candidate{id: raw["id"].(string), cost: raw["cost"].(float64)}
		for _, element := range raw["elements"].([]any) {
			c.elements = append(c.elements, fmt.Sprint(element))
		}
		sets = append(sets, c)
	}
	sort.SliceStable(sets, func(i, j int) bool { return sets[i].id < sets[j].id })

	uncovered := map[string]bool{}
	for _, element := range universe {
		uncovered[element] = true
	}

	selected := []string{}
	total := 0.0
	for len(uncovered) > 0 {
		best := -1
		bestRatio := 0.0
		for i, c := range sets {
			gain := 0
			for _, element := range c.elements {
				if uncovered[element] {
					gain++
				}
			}
			if gain == 0 {
				continue
			}
			ratio := c.cost / float64(gain)
			if best < 0 || ratio < bestRatio || (ratio == bestRatio && c.cost < sets[best].cost) {
				best, bestRatio = i, ratio
			}
		}
		if best < 0 {
			break
		}
		selected = append(selected, sets[best].id)
		total += sets[best].cost
		for _, element := range sets[best].elements {
			delete(uncovered, element)
		}
	}

	if len(uncovered) > 0 {
		return map[string]any{
			"status":   "infeasible",
			"solution": map[string]any{"selected_set_ids": selected},
		}
	}
	return map[string]any{
		"status":    "feasible",
		"solution":  map[string]any{"selected_set_ids": selected},
		"objective": total,
	}
}
