package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-sched/bwm-ilp-api/internal/models"
)

// TestProjectReportsMinLoadAdvisory covers the MinLoadCredits advisory:
// a lecturer assigned fewer credits than declared shows up as a
// LoadWarning, but the solve still succeeds (it is never a feasibility
// rule).
func TestProjectReportsMinLoadAdvisory(t *testing.T) {
	bundle := models.DatasetBundle{
		Dataset:   models.Dataset{ID: 1},
		Courses:   []models.Course{{ID: 1, Code: "CS101", Credits: 3}},
		Classes:   []models.Class{{ID: 1, CourseID: 1, ClassCapacity: 10, SessionType: models.SessionTypeLecture}},
		Lecturers: []models.Lecturer{{ID: 1, Code: "L1", MinLoadCredits: 12}},
		Rooms:     []models.Room{{ID: 1, Capacity: 20, RoomType: models.RoomTypeLecture}},
		Timeslots: []models.Timeslot{{ID: 1}},
		Availabilities: []models.Availability{
			{LecturerID: 1, TimeslotID: 1, Status: "available"},
		},
		PenaltyWeights: weights(0.45, 0.35, 0.20),
	}

	projection, result := solveBundle(t, bundle)
	require.True(t, result.Status.HasIncumbent())
	require.Len(t, projection.Assignments, 1)

	require.Len(t, projection.LoadWarnings, 1)
	assert.Equal(t, int64(1), projection.LoadWarnings[0].LecturerID)
	assert.Equal(t, 3, projection.LoadWarnings[0].AssignedCredits)
	assert.Equal(t, 12, projection.LoadWarnings[0].MinLoadCredits)
}

// TestProjectNoAdvisoryWhenLoadMet confirms no warning is reported once a
// lecturer's assigned credits reach their declared minimum.
func TestProjectNoAdvisoryWhenLoadMet(t *testing.T) {
	bundle := models.DatasetBundle{
		Dataset:   models.Dataset{ID: 1},
		Courses:   []models.Course{{ID: 1, Code: "CS101", Credits: 3}},
		Classes:   []models.Class{{ID: 1, CourseID: 1, ClassCapacity: 10, SessionType: models.SessionTypeLecture}},
		Lecturers: []models.Lecturer{{ID: 1, Code: "L1", MinLoadCredits: 3}},
		Rooms:     []models.Room{{ID: 1, Capacity: 20, RoomType: models.RoomTypeLecture}},
		Timeslots: []models.Timeslot{{ID: 1}},
		Availabilities: []models.Availability{
			{LecturerID: 1, TimeslotID: 1, Status: "available"},
		},
		PenaltyWeights: weights(0.45, 0.35, 0.20),
	}

	projection, result := solveBundle(t, bundle)
	require.True(t, result.Status.HasIncumbent())
	assert.Empty(t, projection.LoadWarnings)
}
