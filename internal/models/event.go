package models

import "time"

// Event is the root of a compliance framework, e.g. one accreditation cycle.
type Event struct {
	EventID     uint      `gorm:"column:EventID;primaryKey;autoIncrement" json:"EventID"`
	EventCode   string    `gorm:"column:EventCode;size:50;not null" json:"EventCode"`
	EventName   string    `gorm:"column:EventName;size:200;not null" json:"EventName"`
	Description string    `gorm:"column:Description;type:text" json:"Description"`
	CreatedAt   time.Time `gorm:"column:CreatedAt;autoCreateTime" json:"CreatedAt"`

	// Relations
	Areas    []Area     `gorm:"foreignKey:EventID" json:"areas,omitempty"`
	Criteria []Criteria `gorm:"foreignKey:EventID" json:"criteria,omitempty"`
}

func (Event) TableName() string {
	return "events"
}
