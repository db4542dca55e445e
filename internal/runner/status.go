package runner

import "github.com/alexisbeaulieu97/decisionhub/internal/model"

// NormalizeStatus reconciles the solver's self-reported status with the
// evaluator's feasibility verdict. Only a boolean verdict counts; anything
// else is treated as no verdict.
//
// The evaluator can veto a feasible or optimal claim, but a solver-reported
// infeasible or error is never upgraded.
func NormalizeStatus(reported any, verdict any) model.Status {
	feasible, known := verdict.(bool)

	if status, ok := model.ParseStatus(reported); ok {
		if known && !feasible && status.IsFeasible() {
			return model.StatusInfeasible
		}
		return status
	}

	switch {
	case known && feasible:
		return model.StatusFeasible
	case known:
		return model.StatusInfeasible
	default:
		return model.StatusError
	}
}
