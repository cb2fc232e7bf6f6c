package models

import "github.com/jmoiron/sqlx/types"

// RoomType is the closed set of room kinds recognised by the preprocessor.
type RoomType string

// Recognised room types. The loader stores room_type as read; the
// preprocessor compares it against these case-insensitively.
const (
	RoomTypeLecture RoomType = "lecture"
	RoomTypeLab     RoomType = "lab"
	RoomTypeHybrid  RoomType = "hybrid"
	RoomTypeSeminar RoomType = "seminar"
)

// SessionProfile replaces the loose default_session_profile payload with a
// typed record, parsed once at the loader boundary.
type SessionProfile struct {
	CandidateLecturerCodes []string  `json:"candidate_lecturer_codes"`
	SessionsPerWeek        int       `json:"sessions_per_week"`
	PreferredRoomType      *RoomType `json:"preferred_room_type,omitempty"`
}

// Course is a stable, codeable catalog entry classes belong to.
type Course struct {
	ID          int64          `db:"id" json:"id"`
	DatasetID   int64          `db:"dataset_id" json:"dataset_id"`
	Code        string         `db:"code" json:"code"`
	Name        string         `db:"name" json:"name"`
	Credits     int            `db:"credits" json:"credits"`
	RequiresLab bool           `db:"requires_lab" json:"requires_lab"`
	ProfileJSON types.JSONText `db:"default_session_profile" json:"-"`

	// Profile is ProfileJSON parsed into a typed SessionProfile by the loader.
	Profile SessionProfile `db:"-" json:"default_session_profile"`
}
