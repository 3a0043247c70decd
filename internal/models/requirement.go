package models

// Requirement is a leaf-level compliance item under a Criteria, optionally
// nested under a parent Requirement. The parent link is authoritative by ID;
// ParentRequirementCode is denormalized so the API keeps speaking codes.
//
// The unique (CriteriaID, RequirementCode) index closes the race where two
// concurrent adds under the same parent derive the same sibling suffix.
type Requirement struct {
	RequirementID         uint    `gorm:"column:RequirementID;primaryKey;autoIncrement" json:"RequirementID"`
	RequirementCode       string  `gorm:"column:RequirementCode;size:100;not null;uniqueIndex:idx_criteria_code" json:"RequirementCode"`
	Description           string  `gorm:"column:Description;type:text;not null" json:"Description"`
	CriteriaID            uint    `gorm:"column:CriteriaID;not null;index;uniqueIndex:idx_criteria_code" json:"CriteriaID"`
	ParentRequirementID   *uint   `gorm:"column:ParentRequirementID;index" json:"ParentRequirementID"`
	ParentRequirementCode *string `gorm:"column:ParentRequirementCode;size:100" json:"ParentRequirementCode"`

	// Relations
	Criteria        Criteria      `gorm:"foreignKey:CriteriaID" json:"criteria,omitempty"`
	SubRequirements []Requirement `gorm:"foreignKey:ParentRequirementID" json:"sub_requirements,omitempty"`
}

func (Requirement) TableName() string {
	return "requirements"
}

// RequirementView is the flattened row returned by event-scoped requirement
// reads: Requirement joined through Criteria and Area up to Event. Rows whose
// Criteria has no Area keep null Area fields.
type RequirementView struct {
	RequirementID         uint    `json:"RequirementID"`
	RequirementCode       string  `json:"RequirementCode"`
	Description           string  `json:"Description"`
	CriteriaID            uint    `json:"CriteriaID"`
	ParentRequirementCode *string `json:"ParentRequirementCode"`
	CriteriaCode          string  `json:"CriteriaCode"`
	CriteriaName          string  `json:"CriteriaName"`
	AreaID                *uint   `json:"AreaID"`
	AreaCode              *string `json:"AreaCode"`
	AreaName              *string `json:"AreaName"`
	SortOrder             *int    `json:"SortOrder"`
	EventID               uint    `json:"EventID"`
	EventCode             string  `json:"EventCode"`
	EventName             string  `json:"EventName"`
}
