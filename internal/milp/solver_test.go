package milp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveExactlyOnePicksCheapest(t *testing.T) {
	m := NewModel(3)
	m.AddExactlyOne("pick", []int{0, 1, 2})
	m.AddObjectiveTerm(0, 5)
	m.AddObjectiveTerm(1, 1)
	m.AddObjectiveTerm(2, 3)

	result, err := Solve(context.Background(), m, SolveOptions{})
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, result.Status)
	assert.True(t, result.Value(1))
	assert.False(t, result.Value(0))
	assert.False(t, result.Value(2))
	assert.InDelta(t, 1.0, result.Objective, 1e-9)
}

func TestSolveAtMostOneRejectsConflictingForcedVars(t *testing.T) {
	// Two singleton exactly-one groups each force their own variable to 1;
	// the guard row then makes that combination infeasible, the same shape
	// H3/H4 put on two classes that want the same lecturer or room.
	m := NewModel(2)
	m.AddExactlyOne("force-0", []int{0})
	m.AddExactlyOne("force-1", []int{1})
	m.AddAtMostOne("guard", []int{0, 1})

	result, err := Solve(context.Background(), m, SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, result.Status)
}

func TestSolveAtMostOneAdmitsOneOfTwo(t *testing.T) {
	m := NewModel(2)
	m.AddExactlyOne("force-0", []int{0})
	m.AddAtMostOne("guard", []int{0, 1})

	result, err := Solve(context.Background(), m, SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, result.Status)
	assert.True(t, result.Value(0))
	assert.False(t, result.Value(1))
}

func TestSolveInfeasibleConflictingRows(t *testing.T) {
	m := NewModel(1)
	m.AddRow(Row{Name: "want-one", Terms: map[int]float64{0: 1}, Sense: EQ, RHS: 1})
	m.AddRow(Row{Name: "want-zero", Terms: map[int]float64{0: 1}, Sense: EQ, RHS: 0})

	result, err := Solve(context.Background(), m, SolveOptions{})
	require.NoError(t, err)

	assert.Equal(t, StatusInfeasible, result.Status)
	assert.False(t, result.Status.HasIncumbent())
}

func TestSolveCouplingRowTiesVariablesTogether(t *testing.T) {
	// x can only be 1 if y is also 1: x - y <= 0.
	m := NewModel(2)
	m.AddRow(Row{Name: "couple", Terms: map[int]float64{0: 1, 1: -1}, Sense: LE, RHS: 0})
	m.AddExactlyOne("pick-x", []int{0})
	m.AddObjectiveTerm(1, 1)

	result, err := Solve(context.Background(), m, SolveOptions{})
	require.NoError(t, err)

	assert.True(t, result.Value(0))
	assert.True(t, result.Value(1), "y must follow x under the coupling row")
}

func TestSolveRespectsNodeBudget(t *testing.T) {
	// A large exactly-one group with a non-trivial objective forces branching;
	// a node budget of 1 must not be able to prove optimality.
	const n = 40
	m := NewModel(n)
	vars := make([]int, n)
	for i := 0; i < n; i++ {
		vars[i] = i
		m.AddObjectiveTerm(i, float64(n-i))
	}
	m.AddExactlyOne("pick", vars)

	result, err := Solve(context.Background(), m, SolveOptions{MaxNodes: 1})
	require.NoError(t, err)
	assert.NotEqual(t, StatusOptimal, result.Status)
}

func TestSolveRespectsContextCancellation(t *testing.T) {
	const n = 60
	m := NewModel(n)
	vars := make([]int, n)
	for i := 0; i < n; i++ {
		vars[i] = i
		m.AddObjectiveTerm(i, float64(i%7))
	}
	m.AddExactlyOne("pick", vars)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Solve(ctx, m, SolveOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, StatusOptimal, result.Status)
}

func TestSolveHonoursTimeLimit(t *testing.T) {
	m := NewModel(1)
	m.AddExactlyOne("pick", []int{0})

	result, err := Solve(context.Background(), m, SolveOptions{TimeLimit: 50 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, result.Status)
}

func TestModelAddObjectiveTermDropsZero(t *testing.T) {
	m := NewModel(1)
	m.AddObjectiveTerm(0, 3)
	m.AddObjectiveTerm(0, -3)
	_, present := m.Objective[0]
	assert.False(t, present, "a coefficient that nets to zero must not linger in the sparse objective")
}

func TestResultValueOutOfRangeIsFalse(t *testing.T) {
	r := Result{Values: []float64{1, 0}}
	assert.True(t, r.Value(0))
	assert.False(t, r.Value(1))
	assert.False(t, r.Value(5))
	assert.False(t, r.Value(-1))
}
