package runner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/decisionhub/internal/model"
)

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		reported any
		verdict  any
		want     model.Status
	}{
		{"evaluator vetoes feasible", "feasible", false, model.StatusInfeasible},
		{"evaluator vetoes optimal", "optimal", false, model.StatusInfeasible},
		{"optimal confirmed", "optimal", true, model.StatusOptimal},
		{"optimal without verdict", "optimal", nil, model.StatusOptimal},
		{"infeasible never upgraded", "infeasible", true, model.StatusInfeasible},
		{"error never upgraded", "error", true, model.StatusError},
		{"error kept on negative verdict", "error", false, model.StatusError},
		{"unknown status, feasible verdict", "solved", true, model.StatusFeasible},
		{"unknown status, infeasible verdict", "solved", false, model.StatusInfeasible},
		{"missing status, feasible verdict", nil, true, model.StatusFeasible},
		{"no signal", nil, nil, model.StatusError},
		{"non-bool verdict is no signal", 42, "true", model.StatusError},
		{"non-bool verdict does not veto", "feasible", 0, model.StatusFeasible},
		{"case matters", "Optimal", nil, model.StatusError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, NormalizeStatus(tt.reported, tt.verdict))
		})
	}
}
