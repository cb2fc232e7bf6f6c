package repository

import appErrors "github.com/edu-sched/bwm-ilp-api/pkg/errors"

// Mirrors internal/scheduler's error vocabulary for the three taxonomy
// entries the loader itself is positioned to detect.

func errDatasetNotFoundRepo() error { return appErrors.ErrDatasetNotFound }
func errEmptyDatasetRepo() error    { return appErrors.ErrEmptyDataset }
func errDanglingReferenceRepo(classID int64) error {
	return appErrors.WithClassID(appErrors.ErrDanglingReference, classID)
}
