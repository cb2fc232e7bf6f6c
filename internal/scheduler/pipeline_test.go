package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-sched/bwm-ilp-api/internal/milp"
	"github.com/edu-sched/bwm-ilp-api/internal/models"
)

// solveBundle runs C2-C5 in-process against a hand-built bundle, the way
// Service.Run does internally, without any repository or HTTP plumbing.
func solveBundle(t *testing.T, bundle models.DatasetBundle) (Projection, milp.Result) {
	t.Helper()
	bundle.Index()

	cand, err := BuildCandidates(bundle)
	require.NoError(t, err)

	built := BuildModel(bundle, cand)
	result, err := milp.Solve(context.Background(), built.Model, milp.SolveOptions{TimeLimit: 0, MaxNodes: 0})
	require.NoError(t, err)

	if !result.Status.HasIncumbent() {
		return Projection{}, result
	}

	projection, err := Project(bundle, cand, built, result)
	require.NoError(t, err)
	return projection, result
}

func weights(lecturerPref, roomUtil, peak float64) []models.PenaltyWeight {
	return []models.PenaltyWeight{
		{ID: 1, SoftConstraintName: models.SoftConstraintLecturerPreference, Weight: lecturerPref},
		{ID: 2, SoftConstraintName: models.SoftConstraintRoomUtilization, Weight: roomUtil},
		{ID: 3, SoftConstraintName: models.SoftConstraintPeakTimeAvoidance, Weight: peak},
	}
}

// TestPipelineS1Trivial is spec scenario S1: one class, one room, one
// lecturer, one non-peak available timeslot.
func TestPipelineS1Trivial(t *testing.T) {
	bundle := models.DatasetBundle{
		Dataset:   models.Dataset{ID: 1, Name: "s1"},
		Courses:   []models.Course{{ID: 1, Code: "CS101", Name: "Intro", Credits: 3}},
		Classes:   []models.Class{{ID: 1, CourseID: 1, ClassCapacity: 30, SessionType: models.SessionTypeLecture}},
		Lecturers: []models.Lecturer{{ID: 1, Code: "L1"}},
		Rooms:     []models.Room{{ID: 1, Capacity: 40, RoomType: models.RoomTypeLecture}},
		Timeslots: []models.Timeslot{{ID: 1, IsPeak: false}},
		Availabilities: []models.Availability{
			{LecturerID: 1, TimeslotID: 1, Status: "available"},
		},
		Preferences: []models.Preference{
			{LecturerID: 1, TimeslotID: 1, Score: 1.0},
		},
		PenaltyWeights: weights(0.45, 0.35, 0.20),
	}

	projection, result := solveBundle(t, bundle)
	assert.Equal(t, milp.StatusOptimal, result.Status)
	require.Len(t, projection.Assignments, 1)

	a := projection.Assignments[0]
	assert.InDelta(t, 0.0875, a.Penalty, 1e-9)
	assert.InDelta(t, 0.0875, a.Breakdown[models.SoftConstraintRoomUtilization], 1e-9)
	_, hasLecturerPref := a.Breakdown[models.SoftConstraintLecturerPreference]
	assert.False(t, hasLecturerPref, "zero-valued soft constraint terms are dropped")
	assert.InDelta(t, 0.0875, projection.ObjectiveValue, 1e-9)
}

// TestPipelineS2PeakPenalty is spec scenario S2: identical to S1 but the
// only timeslot is a peak one.
func TestPipelineS2PeakPenalty(t *testing.T) {
	bundle := models.DatasetBundle{
		Dataset:   models.Dataset{ID: 1, Name: "s2"},
		Courses:   []models.Course{{ID: 1, Code: "CS101", Name: "Intro", Credits: 3}},
		Classes:   []models.Class{{ID: 1, CourseID: 1, ClassCapacity: 30, SessionType: models.SessionTypeLecture}},
		Lecturers: []models.Lecturer{{ID: 1, Code: "L1"}},
		Rooms:     []models.Room{{ID: 1, Capacity: 40, RoomType: models.RoomTypeLecture}},
		Timeslots: []models.Timeslot{{ID: 1, IsPeak: true}},
		Availabilities: []models.Availability{
			{LecturerID: 1, TimeslotID: 1, Status: "available"},
		},
		Preferences: []models.Preference{
			{LecturerID: 1, TimeslotID: 1, Score: 1.0},
		},
		PenaltyWeights: weights(0.45, 0.35, 0.20),
	}

	projection, result := solveBundle(t, bundle)
	assert.Equal(t, milp.StatusOptimal, result.Status)
	require.Len(t, projection.Assignments, 1)

	a := projection.Assignments[0]
	assert.InDelta(t, 0.2875, a.Penalty, 1e-9)
	assert.InDelta(t, 0.20, a.Breakdown[models.SoftConstraintPeakTimeAvoidance], 1e-9)
	assert.InDelta(t, 0.0875, a.Breakdown[models.SoftConstraintRoomUtilization], 1e-9)
}

// TestPipelineS3PreferenceTieBreak is spec scenario S3: the optimum favours
// the peak timeslot once lecturer-preference weighting is taken into
// account, locking down the weight arithmetic as a regression guard.
func TestPipelineS3PreferenceTieBreak(t *testing.T) {
	bundle := models.DatasetBundle{
		Dataset:   models.Dataset{ID: 1, Name: "s3"},
		Courses:   []models.Course{{ID: 1, Code: "CS101", Name: "Intro", Credits: 3}},
		Classes:   []models.Class{{ID: 1, CourseID: 1, ClassCapacity: 20, SessionType: models.SessionTypeLecture}},
		Lecturers: []models.Lecturer{{ID: 1, Code: "L1"}},
		Rooms:     []models.Room{{ID: 1, Capacity: 20, RoomType: models.RoomTypeLecture}},
		Timeslots: []models.Timeslot{
			{ID: 1, IsPeak: true, StartTime: "08:00"},
			{ID: 2, IsPeak: false, StartTime: "14:00"},
		},
		Availabilities: []models.Availability{
			{LecturerID: 1, TimeslotID: 1, Status: "available"},
			{LecturerID: 1, TimeslotID: 2, Status: "available"},
		},
		Preferences: []models.Preference{
			{LecturerID: 1, TimeslotID: 1, Score: 1.0},
			{LecturerID: 1, TimeslotID: 2, Score: 0.5},
		},
		PenaltyWeights: weights(0.45, 0.0, 0.20),
	}

	projection, result := solveBundle(t, bundle)
	assert.Equal(t, milp.StatusOptimal, result.Status)
	require.Len(t, projection.Assignments, 1)

	a := projection.Assignments[0]
	assert.Equal(t, "08:00", a.StartTime, "the peak slot costs less once preference weighting is included")
	assert.InDelta(t, 0.20, a.Penalty, 1e-9)
}

// TestPipelineS4Conflict is spec scenario S4: two classes contend for the
// only (room, timeslot) pair; H4 makes the dataset infeasible.
func TestPipelineS4Conflict(t *testing.T) {
	bundle := models.DatasetBundle{
		Dataset: models.Dataset{ID: 1, Name: "s4"},
		Courses: []models.Course{{ID: 1, Code: "CS101", Credits: 3}, {ID: 2, Code: "CS102", Credits: 3}},
		Classes: []models.Class{
			{ID: 1, CourseID: 1, ClassCapacity: 10, SessionType: models.SessionTypeLecture},
			{ID: 2, CourseID: 2, ClassCapacity: 10, SessionType: models.SessionTypeLecture},
		},
		Lecturers: []models.Lecturer{{ID: 1, Code: "L1"}, {ID: 2, Code: "L2"}},
		Rooms:     []models.Room{{ID: 1, Capacity: 40, RoomType: models.RoomTypeLecture}},
		Timeslots: []models.Timeslot{{ID: 1}},
		Availabilities: []models.Availability{
			{LecturerID: 1, TimeslotID: 1, Status: "available"},
			{LecturerID: 2, TimeslotID: 1, Status: "available"},
		},
		PenaltyWeights: weights(0.45, 0.35, 0.20),
	}
	bundle.Index()

	cand, err := BuildCandidates(bundle)
	require.NoError(t, err)

	built := BuildModel(bundle, cand)
	result, err := milp.Solve(context.Background(), built.Model, milp.SolveOptions{})
	require.NoError(t, err)
	assert.False(t, result.Status.HasIncumbent())
}

// TestPipelineS5LabRouting is spec scenario S5: the lab class and the
// lecture class settle on the lab room and the lecture room respectively,
// the only assignment the single shared timeslot admits.
func TestPipelineS5LabRouting(t *testing.T) {
	bundle := models.DatasetBundle{
		Dataset: models.Dataset{ID: 1, Name: "s5"},
		Courses: []models.Course{{ID: 1, Code: "CS101", Credits: 3}, {ID: 2, Code: "CS102", Credits: 3}},
		Classes: []models.Class{
			{ID: 1, CourseID: 1, ClassCapacity: 10, SessionType: models.SessionTypeLab},
			{ID: 2, CourseID: 2, ClassCapacity: 10, SessionType: models.SessionTypeLecture},
		},
		Lecturers: []models.Lecturer{{ID: 1, Code: "L1"}, {ID: 2, Code: "L2"}},
		Rooms: []models.Room{
			{ID: 1, Capacity: 20, RoomType: models.RoomTypeLab},
			{ID: 2, Capacity: 20, RoomType: models.RoomTypeLecture},
		},
		Timeslots: []models.Timeslot{{ID: 1}},
		Availabilities: []models.Availability{
			{LecturerID: 1, TimeslotID: 1, Status: "available"},
			{LecturerID: 2, TimeslotID: 1, Status: "available"},
		},
		PenaltyWeights: weights(0.45, 0.35, 0.20),
	}

	projection, result := solveBundle(t, bundle)
	require.True(t, result.Status.HasIncumbent())
	require.Len(t, projection.Assignments, 2)

	// solveBundle indexes its own copy; index this one for RoomByID.
	bundle.Index()
	byClass := make(map[int64]string)
	for _, e := range projection.Entries {
		room := bundle.RoomByID[e.RoomID]
		byClass[e.ClassID] = string(room.RoomType)
	}
	assert.Equal(t, string(models.RoomTypeLab), byClass[1])
	assert.Equal(t, string(models.RoomTypeLecture), byClass[2])
}

// TestPipelineS6PreprocessRejection is spec scenario S6: no room can
// accommodate the class's effective capacity, so C2 rejects before any
// solve attempt.
func TestPipelineS6PreprocessRejection(t *testing.T) {
	bundle := models.DatasetBundle{
		Dataset:   models.Dataset{ID: 1, Name: "s6"},
		Courses:   []models.Course{{ID: 1, Code: "CS101", Credits: 3}},
		Classes:   []models.Class{{ID: 1, CourseID: 1, ClassCapacity: 50, SessionType: models.SessionTypeLecture}},
		Lecturers: []models.Lecturer{{ID: 1, Code: "L1"}},
		Rooms:     []models.Room{{ID: 1, Capacity: 30, RoomType: models.RoomTypeLecture}},
		Timeslots: []models.Timeslot{{ID: 1}},
		Availabilities: []models.Availability{
			{LecturerID: 1, TimeslotID: 1, Status: "available"},
		},
		PenaltyWeights: weights(0.45, 0.35, 0.20),
	}
	bundle.Index()

	_, err := BuildCandidates(bundle)
	require.Error(t, err)
}
