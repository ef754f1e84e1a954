package model

import (
	"time"

	"gorm.io/datatypes"
)

// SavedView a named filter set saved by a signed-in user
type SavedView struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	ViewUUID  string         `gorm:"column:view_uuid;type:varchar(64);uniqueIndex;not null"`
	UserEmail string         `gorm:"column:user_email;type:varchar(256);index;not null"`
	Name      string         `gorm:"column:name;type:varchar(64);not null"`
	Params    datatypes.JSON `gorm:"column:params;type:jsonb;not null"` // ViewParams
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;default:now()"`
	UpdatedAt time.Time      `gorm:"column:updated_at;type:timestamp;default:now()"`
}

func (SavedView) TableName() string { return "saved_views" }

// ViewParams the query parameters a saved view restores
type ViewParams struct {
	PlayerID int        `json:"player_id,omitempty"`
	Season   int        `json:"season,omitempty"`
	Stat     StatKey    `json:"stat,omitempty"`
	Filters  FilterSpec `json:"filters"`
	Edge     EdgeInputs `json:"edge"`
}
