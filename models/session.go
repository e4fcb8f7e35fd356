package models

import "time"

// WorkshopSessionID is the fixed key of the singleton session row. The
// manufacturer "login" is nothing more than this row existing: whoever wrote
// a workshop name last is the active workshop.
const WorkshopSessionID = "00000000-0000-0000-0000-000000000001"

// WorkshopSession is the singleton record holding the active workshop name
// for the manufacturer dashboard. It is upserted on login and deleted on
// logout; there is at most one row in the table.
type WorkshopSession struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	WorkshopName string    `gorm:"not null" json:"workshop_name"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the WorkshopSession model
func (WorkshopSession) TableName() string {
	return "manufacturer_session"
}
