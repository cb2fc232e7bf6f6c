package models

// Enrollment carries the actual headcount for a class, overriding its
// declared ClassCapacity when present.
type Enrollment struct {
	ID           int64 `db:"id" json:"id"`
	DatasetID    int64 `db:"dataset_id" json:"dataset_id"`
	ClassID      int64 `db:"class_id" json:"class_id"`
	StudentCount int   `db:"student_count" json:"student_count"`
}

// EffectiveCapacity returns the enrollment student count when present,
// otherwise the class's declared capacity.
func EffectiveCapacity(class Class, enrollment *Enrollment) int {
	if enrollment != nil {
		return enrollment.StudentCount
	}
	return class.ClassCapacity
}
