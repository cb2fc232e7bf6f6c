package scheduler

import (
	"fmt"

	"github.com/edu-sched/bwm-ilp-api/internal/milp"
	"github.com/edu-sched/bwm-ilp-api/internal/models"
)

// wKey identifies a w[c,t,ℓ] decision variable: class c meets lecturer ℓ at
// timeslot t.
type wKey struct {
	ClassID    int64
	TimeslotID int64
	LecturerID int64
}

// xKey identifies an x[c,t,r] decision variable: class c occupies room r at
// timeslot t.
type xKey struct {
	ClassID    int64
	TimeslotID int64
	RoomID     int64
}

// BuiltModel is the generic ILP produced from one dataset, plus the
// variable-index lookups the projector needs to map solved values back onto
// (class, timeslot, lecturer/room) triples.
type BuiltModel struct {
	Model  *milp.Model
	WIndex map[wKey]int
	XIndex map[xKey]int
}

// BuildModel assembles decision variables, hard constraints H1-H4 (plus the
// supplemental lecturer load cap H5), and the weighted objective from a
// dataset and its precomputed candidates.
func BuildModel(bundle models.DatasetBundle, cand Candidates) *BuiltModel {
	classes := sortedClasses(bundle.Classes)
	classByID := make(map[int64]models.Class, len(classes))
	for _, c := range classes {
		classByID[c.ID] = c
	}

	wIndex := make(map[wKey]int)
	xIndex := make(map[xKey]int)
	var labels []string
	addVar := func(label string) int {
		idx := len(labels)
		labels = append(labels, label)
		return idx
	}

	for _, class := range classes {
		for _, tl := range sortedTL(cand.TL[class.ID]) {
			k := wKey{class.ID, tl.TimeslotID, tl.LecturerID}
			wIndex[k] = addVar(fmt.Sprintf("w[%d,%d,%d]", class.ID, tl.TimeslotID, tl.LecturerID))
		}
		for _, t := range cand.Timeslots[class.ID] {
			for _, r := range cand.Rooms[class.ID] {
				k := xKey{class.ID, t, r}
				xIndex[k] = addVar(fmt.Sprintf("x[%d,%d,%d]", class.ID, t, r))
			}
		}
	}

	model := milp.NewModel(len(labels))
	model.VarLabels = labels

	// H1: each class meets exactly once, across every admitted
	// (timeslot, lecturer) pair.
	for _, class := range classes {
		vars := make([]int, 0, len(cand.TL[class.ID]))
		for _, tl := range cand.TL[class.ID] {
			vars = append(vars, wIndex[wKey{class.ID, tl.TimeslotID, tl.LecturerID}])
		}
		model.AddExactlyOne(fmt.Sprintf("H1[class=%d]", class.ID), vars)
	}

	// H2: a class's room choice at a timeslot is active iff its
	// lecturer/time choice is active at that same timeslot.
	for _, class := range classes {
		for _, t := range cand.Timeslots[class.ID] {
			terms := make(map[int]float64)
			for _, tl := range cand.TL[class.ID] {
				if tl.TimeslotID != t {
					continue
				}
				terms[wIndex[wKey{class.ID, t, tl.LecturerID}]] += 1
			}
			for _, r := range cand.Rooms[class.ID] {
				terms[xIndex[xKey{class.ID, t, r}]] -= 1
			}
			model.AddRow(milp.Row{
				Name:  fmt.Sprintf("H2[class=%d,ts=%d]", class.ID, t),
				Terms: terms,
				Sense: milp.EQ,
				RHS:   0,
			})
		}
	}

	// H3: a lecturer teaches at most one class per timeslot.
	lecturerTimeslot := make(map[[2]int64][]int)
	for k, idx := range wIndex {
		key := [2]int64{k.LecturerID, k.TimeslotID}
		lecturerTimeslot[key] = append(lecturerTimeslot[key], idx)
	}
	for key, vars := range lecturerTimeslot {
		model.AddAtMostOne(fmt.Sprintf("H3[lec=%d,ts=%d]", key[0], key[1]), vars)
	}

	// H4: a room hosts at most one class per timeslot.
	roomTimeslot := make(map[[2]int64][]int)
	for k, idx := range xIndex {
		key := [2]int64{k.RoomID, k.TimeslotID}
		roomTimeslot[key] = append(roomTimeslot[key], idx)
	}
	for key, vars := range roomTimeslot {
		model.AddAtMostOne(fmt.Sprintf("H4[room=%d,ts=%d]", key[0], key[1]), vars)
	}

	// H5 (supplement, see DESIGN.md): a lecturer's assigned course credits
	// may not exceed their declared MaxLoadCredits, when one is set.
	for _, lecturer := range bundle.Lecturers {
		if lecturer.MaxLoadCredits <= 0 {
			continue
		}
		terms := make(map[int]float64)
		for k, idx := range wIndex {
			if k.LecturerID != lecturer.ID {
				continue
			}
			course := bundle.CourseByID[classByID[k.ClassID].CourseID]
			terms[idx] += float64(course.Credits)
		}
		if len(terms) == 0 {
			continue
		}
		model.AddRow(milp.Row{
			Name:  fmt.Sprintf("H5[lec=%d]", lecturer.ID),
			Terms: terms,
			Sense: milp.LE,
			RHS:   float64(lecturer.MaxLoadCredits),
		})
	}

	// Objective: the three recognised soft constraints, assembled from the
	// same penalty formulas the projector uses to recompute them.
	for k, idx := range wIndex {
		timeslot := bundle.TimeslotByID[k.TimeslotID]
		if w := bundle.Weight(models.SoftConstraintLecturerPreference); w != 0 {
			model.AddObjectiveTerm(idx, lecturerPreferencePenalty(w, bundle.PreferenceScore(k.LecturerID, k.TimeslotID)))
		}
		if w := bundle.Weight(models.SoftConstraintPeakTimeAvoidance); w != 0 {
			model.AddObjectiveTerm(idx, peakTimeAvoidancePenalty(w, timeslot.IsPeak))
		}
	}
	for k, idx := range xIndex {
		class := classByID[k.ClassID]
		room := bundle.RoomByID[k.RoomID]
		effCap := models.EffectiveCapacity(class, enrollmentFor(bundle, class.ID))
		if w := bundle.Weight(models.SoftConstraintRoomUtilization); w != 0 {
			model.AddObjectiveTerm(idx, roomUtilizationPenalty(w, room.Capacity, effCap))
		}
	}

	return &BuiltModel{Model: model, WIndex: wIndex, XIndex: xIndex}
}
