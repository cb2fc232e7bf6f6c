package models

// SoftwareLicense, BuildingDistance, and AssignmentPolicy are loaded by C1
// for schema parity and forward BWM-criteria extensibility. None of the
// three feed the objective or the hard constraints: §4.3 recognises a
// closed set of three soft constraints and none of these tables back them.
// They live on DatasetBundle so a future criterion can consume them
// without a loader change.

// SoftwareLicense records per-room software seat counts.
type SoftwareLicense struct {
	ID            int64  `db:"license_id" json:"license_id"`
	DatasetID     int64  `db:"dataset_id" json:"dataset_id"`
	RoomID        int64  `db:"room_id" json:"room_id"`
	Package       string `db:"package" json:"package"`
	LicensedSeats *int   `db:"licensed_seats" json:"licensed_seats,omitempty"`
	Status        *string `db:"status" json:"status,omitempty"`
}

// BuildingDistance records inter-building walking time.
type BuildingDistance struct {
	ID                   int64   `db:"distance_id" json:"distance_id"`
	DatasetID            int64   `db:"dataset_id" json:"dataset_id"`
	BuildingOrigin       string  `db:"building_origin" json:"building_origin"`
	BuildingDestination  string  `db:"building_destination" json:"building_destination"`
	WalkingMinutes       float64 `db:"walking_minutes" json:"walking_minutes"`
}

// AssignmentPolicy is a named rule/threshold/priority row.
type AssignmentPolicy struct {
	ID        int64    `db:"policy_id" json:"policy_id"`
	DatasetID int64    `db:"dataset_id" json:"dataset_id"`
	RuleName  string   `db:"rule_name" json:"rule_name"`
	Threshold *float64 `db:"threshold" json:"threshold,omitempty"`
	Priority  *int     `db:"priority" json:"priority,omitempty"`
}
