package scheduler

import appErrors "github.com/edu-sched/bwm-ilp-api/pkg/errors"

// These wrap the shared *appErrors.Error taxonomy so every component of the
// pipeline raises the same vocabulary with a class id attached where the
// spec calls for one.

func errDatasetNotFound() error { return appErrors.ErrDatasetNotFound }
func errEmptyDataset() error    { return appErrors.ErrEmptyDataset }
func errDanglingReference(classID int64) error {
	return appErrors.WithClassID(appErrors.ErrDanglingReference, classID)
}
func errNoCompatibleRoom(classID int64) error {
	return appErrors.WithClassID(appErrors.ErrNoCompatibleRoom, classID)
}
func errNoLecturerAvailability(classID int64) error {
	return appErrors.WithClassID(appErrors.ErrNoLecturerAvailability, classID)
}
func errSolverUnavailable() error { return appErrors.ErrSolverUnavailable }
func errNoFeasibleSchedule() error { return appErrors.ErrNoFeasibleSchedule }
func errIncompleteAssignment(classID int64) error {
	return appErrors.WithClassID(appErrors.ErrIncompleteAssignment, classID)
}
