package scheduler

import (
	"sort"

	"github.com/edu-sched/bwm-ilp-api/internal/dto"
	"github.com/edu-sched/bwm-ilp-api/internal/milp"
	"github.com/edu-sched/bwm-ilp-api/internal/models"
)

// Projection is the solution projector's (C5) output: one Assignment per
// class for reporting, the matching ScheduleEntry rows for persistence, the
// soft-constraint totals and objective recomputed from bundle data, and any
// H5 minimum-load advisories.
type Projection struct {
	Assignments          []dto.Assignment
	Entries              []models.ScheduleEntry
	SoftConstraintTotals map[string]float64
	ObjectiveValue       float64
	LoadWarnings         []dto.LoadWarning
}

// Project reconstructs each class's chosen (lecturer, room, timeslot)
// triple from a solved model and recomputes its penalty breakdown
// independently of the solver's own objective bookkeeping, per the
// ObjectiveValue caveat documented on dto.BwmIlpResult.
func Project(bundle models.DatasetBundle, cand Candidates, built *BuiltModel, result milp.Result) (Projection, error) {
	classes := sortedClasses(bundle.Classes)

	totals := map[string]float64{
		models.SoftConstraintLecturerPreference: 0,
		models.SoftConstraintRoomUtilization:    0,
		models.SoftConstraintPeakTimeAvoidance:  0,
	}

	assignments := make([]dto.Assignment, 0, len(classes))
	entries := make([]models.ScheduleEntry, 0, len(classes))
	loadByLecturer := make(map[int64]int)

	for _, class := range classes {
		timeslotID, roomID, ok := chooseRoomTimeslot(cand, built, result, class.ID)
		if !ok {
			return Projection{}, errIncompleteAssignment(class.ID)
		}
		lecturerID, ok := chooseLecturer(built, result, class.ID, timeslotID)
		if !ok {
			return Projection{}, errIncompleteAssignment(class.ID)
		}

		course := bundle.CourseByID[class.CourseID]
		room := bundle.RoomByID[roomID]
		timeslot := bundle.TimeslotByID[timeslotID]
		lecturer := bundle.LecturerByID[lecturerID]
		effCap := models.EffectiveCapacity(class, enrollmentFor(bundle, class.ID))

		breakdown := make(map[string]float64, 3)
		mergeBreakdowns(breakdown, wPenaltyBreakdown(bundle, lecturerID, timeslotID, timeslot))
		mergeBreakdowns(breakdown, xPenaltyBreakdown(bundle, room, effCap))
		for k, v := range breakdown {
			totals[k] += v
		}
		penalty := sumBreakdown(breakdown)

		assignments = append(assignments, dto.Assignment{
			ClassID:      class.ID,
			CourseCode:   course.Code,
			CourseName:   course.Name,
			CohortID:     class.CohortLabel,
			Lecturer:     lecturer.Name,
			LecturerCode: lecturer.Code,
			RoomCode:     room.Code,
			Building:     room.Building,
			Day:          timeslot.DayOfWeek,
			StartTime:    timeslot.StartTime,
			EndTime:      timeslot.EndTime,
			Penalty:      penalty,
			Breakdown:    breakdown,
		})

		entries = append(entries, models.ScheduleEntry{
			DatasetID:  bundle.Dataset.ID,
			ClassID:    class.ID,
			LecturerID: lecturerID,
			RoomID:     roomID,
			TimeslotID: timeslotID,
			Status:     models.ScheduleEntryStatusSimulated,
			Penalty:    penalty,
		})

		loadByLecturer[lecturerID] += course.Credits
	}

	objective := totals[models.SoftConstraintLecturerPreference] +
		totals[models.SoftConstraintRoomUtilization] +
		totals[models.SoftConstraintPeakTimeAvoidance]

	return Projection{
		Assignments:          assignments,
		Entries:              entries,
		SoftConstraintTotals: totals,
		ObjectiveValue:       objective,
		LoadWarnings:         loadWarnings(bundle, loadByLecturer),
	}, nil
}

// chooseRoomTimeslot finds the single (timeslot, room) pair a class's
// x-variables settled on. Anything other than exactly one active variable
// is an incomplete-assignment violation.
func chooseRoomTimeslot(cand Candidates, built *BuiltModel, result milp.Result, classID int64) (timeslotID, roomID int64, ok bool) {
	found := 0
	for _, t := range cand.Timeslots[classID] {
		for _, r := range cand.Rooms[classID] {
			idx, present := built.XIndex[xKey{classID, t, r}]
			if !present || !result.Value(idx) {
				continue
			}
			timeslotID, roomID = t, r
			found++
		}
	}
	if found != 1 {
		return 0, 0, false
	}
	return timeslotID, roomID, true
}

// chooseLecturer finds the single lecturer a class's w-variables settled on
// for a given timeslot.
func chooseLecturer(built *BuiltModel, result milp.Result, classID, timeslotID int64) (lecturerID int64, ok bool) {
	found := 0
	for k, idx := range built.WIndex {
		if k.ClassID != classID || k.TimeslotID != timeslotID || !result.Value(idx) {
			continue
		}
		lecturerID = k.LecturerID
		found++
	}
	if found != 1 {
		return 0, false
	}
	return lecturerID, true
}

// loadWarnings flags lecturers whose assigned course credits fall short of
// their declared MinLoadCredits. Advisory only: it never blocks a solve.
func loadWarnings(bundle models.DatasetBundle, loadByLecturer map[int64]int) []dto.LoadWarning {
	var warnings []dto.LoadWarning
	for _, lecturer := range bundle.Lecturers {
		if lecturer.MinLoadCredits <= 0 {
			continue
		}
		assigned := loadByLecturer[lecturer.ID]
		if assigned >= lecturer.MinLoadCredits {
			continue
		}
		warnings = append(warnings, dto.LoadWarning{
			LecturerID:      lecturer.ID,
			LecturerCode:    lecturer.Code,
			AssignedCredits: assigned,
			MinLoadCredits:  lecturer.MinLoadCredits,
		})
	}
	sort.Slice(warnings, func(i, j int) bool { return warnings[i].LecturerID < warnings[j].LecturerID })
	return warnings
}
