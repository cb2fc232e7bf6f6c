package scheduler

import (
	"sort"

	"github.com/edu-sched/bwm-ilp-api/internal/models"
)

// sortedClasses returns classes ordered by id so downstream components
// build variables and assignments in a deterministic order, independent of
// the loader's row order.
func sortedClasses(classes []models.Class) []models.Class {
	out := append([]models.Class(nil), classes...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedTL(tl []TimeslotLecturer) []TimeslotLecturer {
	out := append([]TimeslotLecturer(nil), tl...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].TimeslotID != out[j].TimeslotID {
			return out[i].TimeslotID < out[j].TimeslotID
		}
		return out[i].LecturerID < out[j].LecturerID
	})
	return out
}

func enrollmentFor(bundle models.DatasetBundle, classID int64) *models.Enrollment {
	if e, ok := bundle.EnrollmentByClass[classID]; ok {
		return &e
	}
	return nil
}
