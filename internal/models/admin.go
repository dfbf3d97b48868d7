package models

import (
	"time"
)

type Admin struct {
	ID           uint      `gorm:"column:adminId;primaryKey;autoIncrement" json:"adminId"`
	Firstname    string    `gorm:"column:admin_firstname" json:"firstname"`
	Lastname     string    `gorm:"column:admin_lastname" json:"lastname"`
	Email        string    `gorm:"column:admin_email;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:admin_password;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Admin) TableName() string { return "admin" }
