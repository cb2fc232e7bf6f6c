package models

// ScheduleEntry is the single output entity the core creates or destroys.
// Uniqueness key is (dataset_id, class_id, timeslot_id).
type ScheduleEntry struct {
	ID         int64   `db:"id" json:"id"`
	DatasetID  int64   `db:"dataset_id" json:"dataset_id"`
	ClassID    int64   `db:"class_id" json:"class_id"`
	LecturerID int64   `db:"lecturer_id" json:"lecturer_id"`
	RoomID     int64   `db:"room_id" json:"room_id"`
	TimeslotID int64   `db:"timeslot_id" json:"timeslot_id"`
	Status     string  `db:"status" json:"status"`
	Penalty    float64 `db:"penalty" json:"penalty"`
}

// ScheduleEntryStatusSimulated is the only status C6 writes.
const ScheduleEntryStatusSimulated = "simulated"
