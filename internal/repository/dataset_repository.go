package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edu-sched/bwm-ilp-api/internal/models"
)

// DatasetRepository is C1, the dataset loader: it materialises every entity
// scoped to one dataset id into a single in-memory DatasetBundle, inside one
// read-only transaction so the view can never be torn by a concurrent
// write.
type DatasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository constructs the repository.
func NewDatasetRepository(db *sqlx.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Load fetches dataset datasetID and every entity that belongs to it, and
// assembles the index maps the preprocessor and model builder rely on.
func (r *DatasetRepository) Load(ctx context.Context, datasetID int64) (models.DatasetBundle, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return models.DatasetBundle{}, fmt.Errorf("begin dataset load: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var dataset models.Dataset
	if err := tx.GetContext(ctx, &dataset, `SELECT id, name, created_at, updated_at FROM datasets WHERE id = $1`, datasetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DatasetBundle{}, errDatasetNotFoundRepo()
		}
		return models.DatasetBundle{}, fmt.Errorf("load dataset: %w", err)
	}

	bundle := models.DatasetBundle{Dataset: dataset}

	if err := tx.SelectContext(ctx, &bundle.Courses, `SELECT id, dataset_id, code, name, credits, requires_lab, default_session_profile FROM courses WHERE dataset_id = $1 ORDER BY id`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load courses: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.Classes, `SELECT id, dataset_id, course_id, cohort_label, class_capacity, session_type, needs_back_to_back, same_room_preferred, parity_rule, group_no FROM classes WHERE dataset_id = $1 ORDER BY id`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load classes: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.Lecturers, `SELECT id, dataset_id, code, name, home_building, max_load_credits, min_load_credits FROM lecturers WHERE dataset_id = $1 ORDER BY id`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load lecturers: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.Rooms, `SELECT id, dataset_id, code, capacity, room_type, building, equipment_json FROM rooms WHERE dataset_id = $1 ORDER BY id`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load rooms: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.Timeslots, `SELECT id, dataset_id, day_of_week, start_time, end_time, block_minutes, is_peak FROM timeslots WHERE dataset_id = $1 ORDER BY id`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load timeslots: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.Availabilities, `SELECT id, dataset_id, lecturer_id, timeslot_id, status FROM availabilities WHERE dataset_id = $1`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load availabilities: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.Preferences, `SELECT id, dataset_id, lecturer_id, timeslot_id, score FROM preferences WHERE dataset_id = $1`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load preferences: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.Enrollments, `SELECT id, dataset_id, class_id, student_count FROM enrollments WHERE dataset_id = $1`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load enrollments: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.EquipmentReqs, `SELECT id, dataset_id, course_id, session_type, equipment_key, min_quantity, required_flag, preferred_flag FROM course_equipment_requirements WHERE dataset_id = $1`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load course equipment requirements: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.PenaltyWeights, `SELECT id, dataset_id, soft_constraint_name, weight FROM penalty_weights WHERE dataset_id = $1`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load penalty weights: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.BuildingDistances, `SELECT distance_id, dataset_id, building_origin, building_destination, walking_minutes FROM building_distances WHERE dataset_id = $1`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load building distances: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.SoftwareLicenses, `SELECT license_id, dataset_id, room_id, package, licensed_seats, status FROM software_licenses WHERE dataset_id = $1`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load software licenses: %w", err)
	}
	if err := tx.SelectContext(ctx, &bundle.AssignmentPolicy, `SELECT policy_id, dataset_id, rule_name, threshold, priority FROM assignment_policies WHERE dataset_id = $1`, datasetID); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("load assignment policies: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.DatasetBundle{}, fmt.Errorf("commit dataset load: %w", err)
	}

	if len(bundle.Classes) == 0 {
		return models.DatasetBundle{}, errEmptyDatasetRepo()
	}

	if err := parseJSONColumns(&bundle); err != nil {
		return models.DatasetBundle{}, err
	}

	bundle.Index()

	for _, class := range bundle.Classes {
		if _, ok := bundle.CourseByID[class.CourseID]; !ok {
			return models.DatasetBundle{}, errDanglingReferenceRepo(class.ID)
		}
	}

	return bundle, nil
}

func parseJSONColumns(bundle *models.DatasetBundle) error {
	for i := range bundle.Courses {
		course := &bundle.Courses[i]
		if len(course.ProfileJSON) == 0 {
			continue
		}
		if err := json.Unmarshal(course.ProfileJSON, &course.Profile); err != nil {
			return fmt.Errorf("parse course %d session profile: %w", course.ID, err)
		}
	}
	for i := range bundle.Rooms {
		room := &bundle.Rooms[i]
		room.Equipment = make(map[string]int)
		if len(room.EquipmentJSON) == 0 {
			continue
		}
		if err := json.Unmarshal(room.EquipmentJSON, &room.Equipment); err != nil {
			return fmt.Errorf("parse room %d equipment: %w", room.ID, err)
		}
	}
	return nil
}

