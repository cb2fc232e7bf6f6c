package models

// Recognised soft-constraint identifiers. PenaltyWeight rows naming anything
// outside this closed set are ignored by the model builder.
const (
	SoftConstraintLecturerPreference = "LECTURER_PREFERENCE"
	SoftConstraintRoomUtilization    = "ROOM_UTILIZATION"
	SoftConstraintPeakTimeAvoidance  = "PEAK_TIME_AVOIDANCE"
)

// PenaltyWeight is a BWM-derived weight for one soft constraint within a
// dataset. Missing weights default to 0 wherever consulted.
type PenaltyWeight struct {
	ID                 int64   `db:"id" json:"id"`
	DatasetID          int64   `db:"dataset_id" json:"dataset_id"`
	SoftConstraintName string  `db:"soft_constraint_name" json:"soft_constraint_name"`
	Weight             float64 `db:"weight" json:"weight"`
}
