// Package milp is a from-scratch 0/1 integer linear program: binary
// variables, linear constraint rows, a sparse linear objective, and a
// branch-and-bound Solve. No MILP/LP library is used anywhere in this
// module; see DESIGN.md for why this package exists instead of a
// third-party solver binding.
package milp

import "fmt"

// Sense is the comparison a Row's linear expression makes against its RHS.
type Sense int

const (
	LE Sense = iota // sum(coeff*var) <= rhs
	GE              // sum(coeff*var) >= rhs
	EQ              // sum(coeff*var) == rhs
)

// Row is one linear constraint over a sparse set of binary variables.
type Row struct {
	Name  string
	Terms map[int]float64
	Sense Sense
	RHS   float64
}

// Model is a generic 0/1 integer linear program: Minimize Σ Objective[i]*x_i
// subject to Rows, with every x_i ∈ {0,1}.
type Model struct {
	NumVars   int
	Objective map[int]float64
	Rows      []Row

	// VarLabels is optional and names each variable (e.g. "w[1,2,3]") for
	// diagnostics; Solve does not read it.
	VarLabels []string
}

// NewModel allocates a model for numVars binary decision variables.
func NewModel(numVars int) *Model {
	return &Model{
		NumVars:   numVars,
		Objective: make(map[int]float64),
		VarLabels: make([]string, numVars),
	}
}

// AddObjectiveTerm adds coeff to variable varIdx's objective coefficient.
// Zero coefficients are never stored, keeping the objective sparse per the
// model builder's requirement that untouched variables cost nothing.
func (m *Model) AddObjectiveTerm(varIdx int, coeff float64) {
	if coeff == 0 {
		return
	}
	m.Objective[varIdx] += coeff
	if m.Objective[varIdx] == 0 {
		delete(m.Objective, varIdx)
	}
}

// AddRow appends a constraint row to the model.
func (m *Model) AddRow(row Row) {
	m.Rows = append(m.Rows, row)
}

// AddExactlyOne adds an EQ row requiring exactly one of vars to be 1.
func (m *Model) AddExactlyOne(name string, vars []int) {
	terms := make(map[int]float64, len(vars))
	for _, v := range vars {
		terms[v] = 1
	}
	m.AddRow(Row{Name: name, Terms: terms, Sense: EQ, RHS: 1})
}

// AddAtMostOne adds a LE row requiring at most one of vars to be 1.
func (m *Model) AddAtMostOne(name string, vars []int) {
	terms := make(map[int]float64, len(vars))
	for _, v := range vars {
		terms[v] = 1
	}
	m.AddRow(Row{Name: name, Terms: terms, Sense: LE, RHS: 1})
}

func (r Row) String() string {
	sense := map[Sense]string{LE: "<=", GE: ">=", EQ: "="}[r.Sense]
	return fmt.Sprintf("%s: %d terms %s %.4f", r.Name, len(r.Terms), sense, r.RHS)
}
