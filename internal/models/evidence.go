package models

import "time"

// Evidence is a compliance document attached to a Requirement. The file body
// lives in object storage under ObjectKey; this row is the metadata.
type Evidence struct {
	EvidenceID    uint      `gorm:"column:EvidenceID;primaryKey;autoIncrement" json:"EvidenceID"`
	RequirementID uint      `gorm:"column:RequirementID;not null;index" json:"RequirementID"`
	FileName      string    `gorm:"column:FileName;size:255;not null" json:"FileName"`
	ObjectKey     string    `gorm:"column:ObjectKey;size:255;not null;uniqueIndex" json:"-"`
	ContentType   string    `gorm:"column:ContentType;size:100" json:"ContentType"`
	FileSize      int64     `gorm:"column:FileSize;not null" json:"FileSize"`
	UploadedBy    uint      `gorm:"column:UploadedBy;not null" json:"UploadedBy"`
	UploadedAt    time.Time `gorm:"column:UploadedAt;autoCreateTime" json:"UploadedAt"`

	Requirement Requirement `gorm:"foreignKey:RequirementID" json:"requirement,omitempty"`
}

func (Evidence) TableName() string {
	return "evidence"
}
