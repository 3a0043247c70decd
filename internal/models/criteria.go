package models

// Criteria is a node in a tree of evaluation standards, scoped to an Event,
// optionally to an Area, and optionally nested under a parent Criteria.
type Criteria struct {
	CriteriaID       uint   `gorm:"column:CriteriaID;primaryKey;autoIncrement" json:"CriteriaID"`
	CriteriaCode     string `gorm:"column:CriteriaCode;size:100;not null" json:"CriteriaCode"`
	CriteriaName     string `gorm:"column:CriteriaName;size:200;not null" json:"CriteriaName"`
	EventID          uint   `gorm:"column:EventID;not null;index" json:"EventID"`
	AreaID           *uint  `gorm:"column:AreaID;index" json:"AreaID"`
	ParentCriteriaID *uint  `gorm:"column:ParentCriteriaID;index" json:"ParentCriteriaID"`
	Description      string `gorm:"column:Description;type:text" json:"Description"`
	IsActive         bool   `gorm:"column:IsActive;not null;default:true" json:"IsActive"`

	// Joined display fields, populated by event-scoped reads
	EventName string `gorm:"->;-:migration" json:"EventName,omitempty"`
	EventCode string `gorm:"->;-:migration" json:"EventCode,omitempty"`

	// Relations
	SubCriteria  []Criteria    `gorm:"foreignKey:ParentCriteriaID" json:"sub_criteria,omitempty"`
	Requirements []Requirement `gorm:"foreignKey:CriteriaID" json:"requirements,omitempty"`
}

func (Criteria) TableName() string {
	return "criteria"
}
