package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/edu-sched/bwm-ilp-api/internal/dto"
	"github.com/edu-sched/bwm-ilp-api/internal/milp"
	"github.com/edu-sched/bwm-ilp-api/internal/models"
	"github.com/edu-sched/bwm-ilp-api/pkg/metrics"
	"github.com/edu-sched/bwm-ilp-api/pkg/workpool"
)

// DatasetLoader is C1: fetch every entity scoped to one dataset into a
// read-only in-memory bundle.
type DatasetLoader interface {
	Load(ctx context.Context, datasetID int64) (models.DatasetBundle, error)
}

// ScheduleEntryWriter is C6: atomically replace a dataset's prior schedule
// rows with the freshly solved ones.
type ScheduleEntryWriter interface {
	ReplaceForDataset(ctx context.Context, datasetID int64, entries []models.ScheduleEntry) error
}

// Offloader hands a CPU-bound task to a bounded worker pool and blocks the
// caller until it completes.
type Offloader interface {
	Submit(ctx context.Context, task workpool.Task) (interface{}, error)
}

// Config tunes the solver C4 invokes.
type Config struct {
	TimeLimit time.Duration
	MaxNodes  int
}

// Overrides lets a single request narrow the solver's default budget (e.g.
// a tighter client-requested time limit). Zero values mean "use the
// service's configured default".
type Overrides struct {
	TimeLimit time.Duration
	MaxNodes  int
}

func (s *Service) effectiveOptions(o Overrides) milp.SolveOptions {
	opts := milp.SolveOptions{TimeLimit: s.cfg.TimeLimit, MaxNodes: s.cfg.MaxNodes}
	if o.TimeLimit > 0 && o.TimeLimit < opts.TimeLimit {
		opts.TimeLimit = o.TimeLimit
	}
	if o.MaxNodes > 0 && (opts.MaxNodes <= 0 || o.MaxNodes < opts.MaxNodes) {
		opts.MaxNodes = o.MaxNodes
	}
	return opts
}

// Service wires C1 through C6 into the single run_bwm_ilp entry point.
type Service struct {
	loader  DatasetLoader
	entries ScheduleEntryWriter
	offload Offloader
	metrics *metrics.Registry
	logger  *zap.Logger
	cfg     Config
}

// NewService constructs the pipeline orchestrator. offload may be nil, in
// which case the build+solve step runs inline on the caller's goroutine
// (for callers that already run off the request path).
func NewService(loader DatasetLoader, entries ScheduleEntryWriter, offload Offloader, registry *metrics.Registry, logger *zap.Logger, cfg Config) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = 30 * time.Second
	}
	return &Service{loader: loader, entries: entries, offload: offload, metrics: registry, logger: logger, cfg: cfg}
}

type solveOutcome struct {
	built  *BuiltModel
	result milp.Result
}

// Run executes C1 through C6 strictly in order for one dataset. It is the
// run_bwm_ilp entry point: load, derive candidates, build and solve the
// ILP, project the solution, persist it, and report it.
func (s *Service) Run(ctx context.Context, datasetID int64, overrides Overrides) (dto.BwmIlpResult, error) {
	bundle, err := s.loader.Load(ctx, datasetID)
	if err != nil {
		return dto.BwmIlpResult{}, err
	}

	cand, err := BuildCandidates(bundle)
	if err != nil {
		return dto.BwmIlpResult{}, err
	}

	outcome, err := s.solve(ctx, bundle, cand, overrides)
	if err != nil {
		return dto.BwmIlpResult{}, err
	}

	if !outcome.result.Status.HasIncumbent() {
		s.observeSolve(outcome.result)
		return dto.BwmIlpResult{}, errNoFeasibleSchedule()
	}

	projection, err := Project(bundle, cand, outcome.built, outcome.result)
	if err != nil {
		return dto.BwmIlpResult{}, err
	}

	if err := s.entries.ReplaceForDataset(ctx, datasetID, projection.Entries); err != nil {
		return dto.BwmIlpResult{}, err
	}

	s.observeSolve(outcome.result)

	result := dto.BwmIlpResult{
		DatasetID:            bundle.Dataset.ID,
		DatasetName:          bundle.Dataset.Name,
		ObjectiveValue:       projection.ObjectiveValue,
		SoftConstraintTotals: projection.SoftConstraintTotals,
		Assignments:          projection.Assignments,
		SolverStatus:         solverStatusLabel(outcome.result.Status),
		Status:               solutionStatusLabel(outcome.result.Status),
		ExecutionTimeSeconds: outcome.result.Duration.Seconds(),
		LoadWarnings:         projection.LoadWarnings,
	}

	s.logger.Info("bwm_ilp_solve",
		zap.Int64("dataset_id", datasetID),
		zap.String("status", result.Status),
		zap.String("solver_status", result.SolverStatus),
		zap.Float64("execution_time", result.ExecutionTimeSeconds),
		zap.Float64("objective_value", result.ObjectiveValue),
		zap.Int("assignments", len(result.Assignments)),
	)

	return result, nil
}

func (s *Service) solve(ctx context.Context, bundle models.DatasetBundle, cand Candidates, overrides Overrides) (solveOutcome, error) {
	opts := s.effectiveOptions(overrides)
	task := func(ctx context.Context) (interface{}, error) {
		built := BuildModel(bundle, cand)
		result, err := milp.Solve(ctx, built.Model, opts)
		if err != nil {
			return nil, err
		}
		return solveOutcome{built: built, result: result}, nil
	}

	if s.offload == nil {
		v, err := task(ctx)
		if err != nil {
			return solveOutcome{}, err
		}
		return v.(solveOutcome), nil
	}

	v, err := s.offload.Submit(ctx, task)
	if err != nil {
		return solveOutcome{}, err
	}
	outcome, ok := v.(solveOutcome)
	if !ok {
		return solveOutcome{}, errSolverUnavailable()
	}
	return outcome, nil
}

func (s *Service) observeSolve(result milp.Result) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveSolve(result.Duration, result.Status.String())
}

// solverStatusLabel maps the backend's internal status enum onto the two
// values spec.md §4.4 exposes externally: FEASIBLE when an integer-feasible
// incumbent exists (OPTIMAL or FEASIBLE internally), NOT FEASIBLE otherwise.
// Its only caller builds BwmIlpResult after HasIncumbent() is true, so there
// it always resolves to "FEASIBLE"; metrics record the raw Status.String()
// instead.
func solverStatusLabel(status milp.Status) string {
	if status.HasIncumbent() {
		return "FEASIBLE"
	}
	return "NOT FEASIBLE"
}

// solutionStatusLabel maps onto spec.md §4.4's other externally-visible
// enum: OPTIMAL only when the backend proved optimality, NOT OPTIMAL for
// every other case (including a merely-feasible incumbent).
func solutionStatusLabel(status milp.Status) string {
	if status == milp.StatusOptimal {
		return "OPTIMAL"
	}
	return "NOT OPTIMAL"
}
