package scheduler

import (
	"sort"
	"strings"

	"github.com/edu-sched/bwm-ilp-api/internal/models"
)

// TimeslotLecturer is one admitted (timeslot, lecturer) pair for a class —
// TL(c) in the model builder's notation.
type TimeslotLecturer struct {
	TimeslotID int64
	LecturerID int64
}

// Candidates is the per-class feasibility output of the preprocessor: the
// rooms a class may use (R(c)), the (timeslot, lecturer) pairs it may meet
// in (TL(c)), and the timeslots that appear in at least one such pair
// (T(c)).
type Candidates struct {
	Rooms     map[int64][]int64
	TL        map[int64][]TimeslotLecturer
	Timeslots map[int64][]int64
}

// BuildCandidates derives R(c) and TL(c)/T(c) for every class in bundle. It
// fails the first time a class ends up with no compatible room or no
// available (timeslot, lecturer) pair at all, naming the offending class.
func BuildCandidates(bundle models.DatasetBundle) (Candidates, error) {
	cand := Candidates{
		Rooms:     make(map[int64][]int64, len(bundle.Classes)),
		TL:        make(map[int64][]TimeslotLecturer, len(bundle.Classes)),
		Timeslots: make(map[int64][]int64, len(bundle.Classes)),
	}

	for _, class := range bundle.Classes {
		course, ok := bundle.CourseByID[class.CourseID]
		if !ok {
			return Candidates{}, errDanglingReference(class.ID)
		}

		rooms := roomCandidates(bundle, class, course)
		if len(rooms) == 0 {
			return Candidates{}, errNoCompatibleRoom(class.ID)
		}
		cand.Rooms[class.ID] = rooms

		tl, timeslots := timeslotLecturerCandidates(bundle, class, course)
		if len(timeslots) == 0 {
			return Candidates{}, errNoLecturerAvailability(class.ID)
		}
		cand.TL[class.ID] = tl
		cand.Timeslots[class.ID] = timeslots
	}

	return cand, nil
}

// roomCandidates computes R(c): every room whose capacity covers the
// class's effective headcount and whose type/equipment is compatible with
// the class's session type.
//
// A non-lab class landing in a lab room short-circuits past the equipment
// check entirely — that permissive reading of room compatibility is
// preserved from the original scoring rule rather than tightened; see
// DESIGN.md.
func roomCandidates(bundle models.DatasetBundle, class models.Class, course models.Course) []int64 {
	effCap := models.EffectiveCapacity(class, enrollmentFor(bundle, class.ID))
	reqs := bundle.EquipmentReqsByCourse[course.ID]

	var out []int64
	for _, room := range bundle.Rooms {
		if room.Capacity < effCap {
			continue
		}

		isLabRoom := strings.EqualFold(string(room.RoomType), string(models.RoomTypeLab))
		isHybridRoom := strings.EqualFold(string(room.RoomType), string(models.RoomTypeHybrid))

		if class.RequiresLab() && !isLabRoom && !isHybridRoom {
			continue
		}

		if !class.RequiresLab() && isLabRoom {
			out = append(out, room.ID)
			continue
		}

		if !equipmentSatisfied(room, reqs, class.SessionType) {
			continue
		}
		out = append(out, room.ID)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equipmentSatisfied(room models.Room, reqs []models.CourseEquipmentRequirement, sessionType models.SessionType) bool {
	for _, req := range reqs {
		if !req.RequiredFlag {
			continue
		}
		if !req.Matches(string(sessionType)) {
			continue
		}
		min := req.MinQuantity
		if min < 1 {
			min = 1
		}
		if room.Equipment[req.EquipmentKey] < min {
			return false
		}
	}
	return true
}

// timeslotLecturerCandidates computes TL(c) and its projection T(c): every
// (timeslot, lecturer) pair where a candidate lecturer for the class's
// course has declared availability at that timeslot.
func timeslotLecturerCandidates(bundle models.DatasetBundle, class models.Class, course models.Course) ([]TimeslotLecturer, []int64) {
	_ = class
	lecturers := bundle.CandidateLecturers(course)

	seenTimeslots := make(map[int64]struct{})
	var tl []TimeslotLecturer
	for _, lecturer := range lecturers {
		for _, ts := range bundle.Timeslots {
			avail, ok := bundle.Availability(lecturer.ID, ts.ID)
			if !ok || !avail.IsAvailable() {
				continue
			}
			tl = append(tl, TimeslotLecturer{TimeslotID: ts.ID, LecturerID: lecturer.ID})
			seenTimeslots[ts.ID] = struct{}{}
		}
	}

	timeslots := make([]int64, 0, len(seenTimeslots))
	for id := range seenTimeslots {
		timeslots = append(timeslots, id)
	}
	sort.Slice(timeslots, func(i, j int) bool { return timeslots[i] < timeslots[j] })

	return tl, timeslots
}
