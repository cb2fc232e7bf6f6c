package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edu-sched/bwm-ilp-api/internal/models"
)

// ScheduleEntryRepository is C6, the result persister: it replaces a
// dataset's entire solved schedule atomically.
type ScheduleEntryRepository struct {
	db *sqlx.DB
}

// NewScheduleEntryRepository constructs the repository.
func NewScheduleEntryRepository(db *sqlx.DB) *ScheduleEntryRepository {
	return &ScheduleEntryRepository{db: db}
}

// ReplaceForDataset deletes every prior ScheduleEntry for datasetID and
// inserts entries in its place, inside one transaction so a reader only
// ever observes the fully-replaced schedule or the prior one, never a
// partial state (deletion strictly ordered before insertion).
//
// A Postgres transaction-scoped advisory lock keyed on datasetID serialises
// two concurrent solves against the same dataset; the last to commit wins,
// matching the model's explicit last-write-wins allowance.
func (r *ScheduleEntryRepository) ReplaceForDataset(ctx context.Context, datasetID int64, entries []models.ScheduleEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace schedule: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, datasetID); err != nil {
		return fmt.Errorf("lock dataset %d schedule: %w", datasetID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_entries WHERE dataset_id = $1`, datasetID); err != nil {
		return fmt.Errorf("delete prior schedule entries: %w", err)
	}

	if err := r.bulkInsert(ctx, tx, entries); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace schedule: %w", err)
	}
	return nil
}

func (r *ScheduleEntryRepository) bulkInsert(ctx context.Context, exec sqlx.ExtContext, entries []models.ScheduleEntry) error {
	const query = `INSERT INTO schedule_entries (dataset_id, class_id, lecturer_id, room_id, timeslot_id, status, penalty)
VALUES (:dataset_id, :class_id, :lecturer_id, :room_id, :timeslot_id, :status, :penalty)`
	for i := range entries {
		if _, err := sqlx.NamedExecContext(ctx, exec, query, &entries[i]); err != nil {
			return fmt.Errorf("insert schedule entry for class %d: %w", entries[i].ClassID, err)
		}
	}
	return nil
}

// ListByDataset returns the currently persisted schedule for a dataset,
// ordered by class id, for read-only verification/debugging paths.
func (r *ScheduleEntryRepository) ListByDataset(ctx context.Context, datasetID int64) ([]models.ScheduleEntry, error) {
	const query = `SELECT id, dataset_id, class_id, lecturer_id, room_id, timeslot_id, status, penalty FROM schedule_entries WHERE dataset_id = $1 ORDER BY class_id`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, datasetID); err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	return entries, nil
}
