package models

type OfficeType struct {
	OfficeTypeID uint   `gorm:"column:OfficeTypeID;primaryKey;autoIncrement" json:"OfficeTypeID"`
	TypeName     string `gorm:"column:TypeName;size:100;not null;uniqueIndex" json:"TypeName"`
	Description  string `gorm:"column:Description;type:text" json:"Description"`

	Offices []Office `gorm:"foreignKey:OfficeTypeID" json:"offices,omitempty"`
}

func (OfficeType) TableName() string {
	return "office_types"
}

type Office struct {
	OfficeID     uint   `gorm:"column:OfficeID;primaryKey;autoIncrement" json:"OfficeID"`
	OfficeName   string `gorm:"column:OfficeName;size:200;not null" json:"OfficeName"`
	OfficeTypeID uint   `gorm:"column:OfficeTypeID;not null;index" json:"OfficeTypeID"`
	Description  string `gorm:"column:Description;type:text" json:"Description"`
	IsActive     bool   `gorm:"column:IsActive;not null;default:true" json:"IsActive"`

	OfficeType OfficeType     `gorm:"foreignKey:OfficeTypeID" json:"office_type,omitempty"`
	Heads      []HeadOfOffice `gorm:"foreignKey:OfficeID" json:"heads,omitempty"`
}

func (Office) TableName() string {
	return "offices"
}

type HeadOfOffice struct {
	HeadOfOfficeID uint   `gorm:"column:HeadOfOfficeID;primaryKey;autoIncrement" json:"HeadOfOfficeID"`
	HeadName       string `gorm:"column:HeadName;size:200;not null" json:"HeadName"`
	Email          string `gorm:"column:Email;size:255;not null;uniqueIndex" json:"Email"`
	Position       string `gorm:"column:Position;size:100" json:"Position"`
	OfficeID       uint   `gorm:"column:OfficeID;not null;index" json:"OfficeID"`

	Office Office `gorm:"foreignKey:OfficeID" json:"office,omitempty"`
}

func (HeadOfOffice) TableName() string {
	return "head_of_offices"
}
