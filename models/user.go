package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleProfessor UserRole = "professor"
	RoleStaff     UserRole = "staff"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) CanModerate() bool {
	return r == RoleStaff || r == RoleAdmin
}

type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"`
	Role      UserRole       `json:"role" gorm:"default:'professor'"`
	PersonID  *uint          `json:"person_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
