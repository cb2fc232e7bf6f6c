package models

import "github.com/jmoiron/sqlx/types"

// Room is a bookable physical space.
type Room struct {
	ID            int64          `db:"id" json:"id"`
	DatasetID     int64          `db:"dataset_id" json:"dataset_id"`
	Code          string         `db:"code" json:"code"`
	Capacity      int            `db:"capacity" json:"capacity"`
	RoomType      RoomType       `db:"room_type" json:"room_type"`
	Building      string         `db:"building" json:"building"`
	EquipmentJSON types.JSONText `db:"equipment_json" json:"-"`

	// Equipment is EquipmentJSON parsed into equipment_key -> quantity by
	// the loader.
	Equipment map[string]int `db:"-" json:"equipment"`
}
