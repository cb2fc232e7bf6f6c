package models

// DatasetBundle is the fully-materialised view of one dataset that C1 hands
// to the preprocessor and model builder. Every slice is loaded filtered on
// the same dataset id, and the loader rejects a class whose course is not
// among the loaded courses. Other references (the lecturer, timeslot or
// class ids named by availability, preference and enrollment rows) are not
// checked against the loaded entities.
type DatasetBundle struct {
	Dataset Dataset

	Courses   []Course
	Classes   []Class
	Lecturers []Lecturer
	Rooms     []Room
	Timeslots []Timeslot

	Availabilities []Availability
	Preferences    []Preference
	Enrollments    []Enrollment
	EquipmentReqs  []CourseEquipmentRequirement
	PenaltyWeights []PenaltyWeight

	// Supplemental, read-only, not consumed by the objective or hard
	// constraints. See supplemental.go.
	BuildingDistances []BuildingDistance
	SoftwareLicenses  []SoftwareLicense
	AssignmentPolicy  []AssignmentPolicy

	// Index maps built by the loader so downstream components never
	// re-scan the slices above.
	CourseByID     map[int64]Course
	LecturerByID   map[int64]Lecturer
	LecturerByCode map[string]Lecturer
	EnrollmentByClass map[int64]Enrollment
	RoomByID       map[int64]Room
	TimeslotByID   map[int64]Timeslot

	// AvailabilityByLecturerTimeslot and PreferenceByLecturerTimeslot are
	// keyed on the (lecturer id, timeslot id) pair for O(1) candidate checks.
	AvailabilityByLecturerTimeslot map[lecturerTimeslotKey]Availability
	PreferenceByLecturerTimeslot   map[lecturerTimeslotKey]Preference

	// EquipmentReqsByCourse groups requirement rows by course id.
	EquipmentReqsByCourse map[int64][]CourseEquipmentRequirement

	// WeightByConstraint is PenaltyWeights keyed by SoftConstraintName,
	// restricted to the three recognised identifiers.
	WeightByConstraint map[string]float64
}

type lecturerTimeslotKey struct {
	LecturerID int64
	TimeslotID int64
}

// LecturerTimeslotKey builds the index key used by the availability and
// preference lookup maps.
func LecturerTimeslotKey(lecturerID, timeslotID int64) lecturerTimeslotKey {
	return lecturerTimeslotKey{LecturerID: lecturerID, TimeslotID: timeslotID}
}

// Availability looks up the availability row for a (lecturer, timeslot)
// pair, if any.
func (b DatasetBundle) Availability(lecturerID, timeslotID int64) (Availability, bool) {
	a, ok := b.AvailabilityByLecturerTimeslot[LecturerTimeslotKey(lecturerID, timeslotID)]
	return a, ok
}

// PreferenceScore returns the preference score for a (lecturer, timeslot)
// pair, defaulting to 0 when absent.
func (b DatasetBundle) PreferenceScore(lecturerID, timeslotID int64) float64 {
	p, ok := b.PreferenceByLecturerTimeslot[LecturerTimeslotKey(lecturerID, timeslotID)]
	if !ok {
		return 0
	}
	return p.Score
}

// Weight returns the BWM weight for a recognised soft constraint,
// defaulting to 0 when unknown or missing.
func (b DatasetBundle) Weight(constraint string) float64 {
	return b.WeightByConstraint[constraint]
}

// Index (re)builds every lookup map on the bundle from its already-populated
// entity slices. The loader calls this once per Load after parsing any
// JSON-encoded columns; nothing outside this package needs to know the key
// types involved.
func (b *DatasetBundle) Index() {
	b.CourseByID = make(map[int64]Course, len(b.Courses))
	for _, c := range b.Courses {
		b.CourseByID[c.ID] = c
	}

	b.LecturerByID = make(map[int64]Lecturer, len(b.Lecturers))
	b.LecturerByCode = make(map[string]Lecturer, len(b.Lecturers))
	for _, l := range b.Lecturers {
		b.LecturerByID[l.ID] = l
		b.LecturerByCode[l.Code] = l
	}

	b.RoomByID = make(map[int64]Room, len(b.Rooms))
	for _, rm := range b.Rooms {
		b.RoomByID[rm.ID] = rm
	}

	b.TimeslotByID = make(map[int64]Timeslot, len(b.Timeslots))
	for _, ts := range b.Timeslots {
		b.TimeslotByID[ts.ID] = ts
	}

	b.EnrollmentByClass = make(map[int64]Enrollment, len(b.Enrollments))
	for _, e := range b.Enrollments {
		b.EnrollmentByClass[e.ClassID] = e
	}

	b.AvailabilityByLecturerTimeslot = make(map[lecturerTimeslotKey]Availability, len(b.Availabilities))
	for _, a := range b.Availabilities {
		b.AvailabilityByLecturerTimeslot[LecturerTimeslotKey(a.LecturerID, a.TimeslotID)] = a
	}

	b.PreferenceByLecturerTimeslot = make(map[lecturerTimeslotKey]Preference, len(b.Preferences))
	for _, p := range b.Preferences {
		b.PreferenceByLecturerTimeslot[LecturerTimeslotKey(p.LecturerID, p.TimeslotID)] = p
	}

	b.EquipmentReqsByCourse = make(map[int64][]CourseEquipmentRequirement, len(b.Courses))
	for _, req := range b.EquipmentReqs {
		b.EquipmentReqsByCourse[req.CourseID] = append(b.EquipmentReqsByCourse[req.CourseID], req)
	}

	b.WeightByConstraint = make(map[string]float64, len(b.PenaltyWeights))
	for _, w := range b.PenaltyWeights {
		switch w.SoftConstraintName {
		case SoftConstraintLecturerPreference, SoftConstraintRoomUtilization, SoftConstraintPeakTimeAvoidance:
			b.WeightByConstraint[w.SoftConstraintName] = w.Weight
		}
	}
}

// CandidateLecturers resolves a course's session profile into concrete
// Lecturer rows. If every candidate code resolves, that list is used; if
// any code is unknown (or the profile names none), the candidate list
// falls back to every lecturer in the dataset, per the loader invariant in
// §3: "every Course's candidate lecturer codes resolve to existing
// Lecturer entities, else the candidate list is replaced by all lecturers
// of the dataset".
func (b DatasetBundle) CandidateLecturers(course Course) []Lecturer {
	codes := course.Profile.CandidateLecturerCodes
	if len(codes) > 0 {
		resolved := make([]Lecturer, 0, len(codes))
		ok := true
		for _, code := range codes {
			l, found := b.LecturerByCode[code]
			if !found {
				ok = false
				break
			}
			resolved = append(resolved, l)
		}
		if ok {
			return resolved
		}
	}
	return b.Lecturers
}
