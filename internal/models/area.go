package models

// Area is a named subdivision of an Event, ordered for display.
// IsActive is a soft-delete flag: listings only return active areas.
type Area struct {
	AreaID      uint   `gorm:"column:AreaID;primaryKey;autoIncrement" json:"AreaID"`
	AreaCode    string `gorm:"column:AreaCode;size:50;not null" json:"AreaCode"`
	AreaName    string `gorm:"column:AreaName;size:200;not null" json:"AreaName"`
	EventID     uint   `gorm:"column:EventID;not null;index" json:"EventID"`
	Description string `gorm:"column:Description;type:text" json:"Description"`
	SortOrder   int    `gorm:"column:SortOrder;not null;default:1" json:"SortOrder"`
	IsActive    bool   `gorm:"column:IsActive;not null;default:true" json:"IsActive"`

	// Relations
	Event    Event      `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Criteria []Criteria `gorm:"foreignKey:AreaID" json:"criteria,omitempty"`
}

func (Area) TableName() string {
	return "areas"
}
