package dto

// Assignment is one solved (lecturer, room, timeslot) triple for a class,
// projected back from the MILP solution by the solution projector (C5).
type Assignment struct {
	ClassID      int64              `json:"class_id"`
	CourseCode   string             `json:"course_code"`
	CourseName   string             `json:"course_name"`
	CohortID     string             `json:"cohort_id"`
	Lecturer     string             `json:"lecturer"`
	LecturerCode string             `json:"lecturer_code"`
	RoomCode     string             `json:"room_code"`
	Building     string             `json:"building"`
	Day          int                `json:"day"`
	StartTime    string             `json:"start_time"`
	EndTime      string             `json:"end_time"`
	Penalty      float64            `json:"penalty"`
	Breakdown    map[string]float64 `json:"penalty_breakdown"`
}

// SolveOverrides lets a caller narrow the solver's default time/node budget
// for a single run_bwm_ilp invocation.
type SolveOverrides struct {
	TimeLimitSeconds *int `form:"time_limit_seconds" validate:"omitempty,gt=0,lte=300"`
	MaxNodes         *int `form:"max_nodes" validate:"omitempty,gt=0"`
}

// LoadWarning flags a lecturer whose assigned course credits fall short of
// their declared MinLoadCredits. Advisory only — see H5 in DESIGN.md — and
// never blocks a solve.
type LoadWarning struct {
	LecturerID      int64  `json:"lecturer_id"`
	LecturerCode    string `json:"lecturer_code"`
	AssignedCredits int    `json:"assigned_credits"`
	MinLoadCredits  int    `json:"min_load_credits"`
}

// BwmIlpResult is the run_bwm_ilp contract: dataset identity, the
// recomputed objective and its soft-constraint decomposition, one
// Assignment per class, and the solver's status pair.
//
// ObjectiveValue is derived from the assignments' own penalty breakdowns,
// not read back from the solver's internal objective: both drop
// zero-valued soft-constraint terms (spec §4.5), so this figure can differ
// slightly from the solver's internal objective by those dropped terms.
// Treat it as reproducible from the input data, not as bit-identical to
// the solver's bookkeeping.
type BwmIlpResult struct {
	DatasetID            int64              `json:"dataset_id"`
	DatasetName          string             `json:"dataset_name"`
	ObjectiveValue       float64            `json:"objective_value"`
	SoftConstraintTotals map[string]float64 `json:"soft_constraint_totals"`
	Assignments          []Assignment       `json:"assignments"`
	SolverStatus         string             `json:"solver_status"`
	Status               string             `json:"status"`
	ExecutionTimeSeconds float64            `json:"execution_time"`
	LoadWarnings         []LoadWarning      `json:"load_warnings,omitempty"`
}
