package models

// SessionType is the closed set of class session kinds.
type SessionType string

// Recognised session types.
const (
	SessionTypeLecture SessionType = "lecture"
	SessionTypeLab     SessionType = "lab"
	SessionTypeSeminar SessionType = "seminar"
)

// Class is one scheduled section of a Course taken by one cohort.
type Class struct {
	ID                int64       `db:"id" json:"id"`
	DatasetID         int64       `db:"dataset_id" json:"dataset_id"`
	CourseID          int64       `db:"course_id" json:"course_id"`
	CohortLabel       string      `db:"cohort_label" json:"cohort_label"`
	ClassCapacity     int         `db:"class_capacity" json:"class_capacity"`
	SessionType       SessionType `db:"session_type" json:"session_type"`
	NeedsBackToBack   bool        `db:"needs_back_to_back" json:"needs_back_to_back"`
	SameRoomPreferred bool        `db:"same_room_preferred" json:"same_room_preferred"`

	// ParityRule and GroupNo are carried for row-shape parity with the
	// original schema only; never read by the preprocessor, model builder,
	// or projector.
	ParityRule *string `db:"parity_rule" json:"parity_rule,omitempty"`
	GroupNo    *int    `db:"group_no" json:"group_no,omitempty"`
}

// RequiresLab derives the lab requirement from the session type.
func (c Class) RequiresLab() bool {
	return c.SessionType == SessionTypeLab
}
