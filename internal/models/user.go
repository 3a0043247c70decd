package models

import "time"

type UserRole string

const (
	RoleStaff UserRole = "staff"
	RoleAdmin UserRole = "admin"
)

type User struct {
	UserID       uint      `gorm:"column:UserID;primaryKey;autoIncrement" json:"UserID"`
	Email        string    `gorm:"column:Email;size:255;not null;uniqueIndex" json:"Email"`
	PasswordHash string    `gorm:"column:PasswordHash;size:255;not null" json:"-"`
	Role         UserRole  `gorm:"column:Role;type:varchar(20);default:'staff'" json:"Role"`
	DisplayName  string    `gorm:"column:DisplayName;size:100" json:"DisplayName"`
	CreatedAt    time.Time `gorm:"column:CreatedAt;autoCreateTime" json:"CreatedAt"`
	UpdatedAt    time.Time `gorm:"column:UpdatedAt;autoUpdateTime" json:"UpdatedAt"`
}

func (User) TableName() string {
	return "users"
}
