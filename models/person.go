package models

import "time"

type PersonType string

const (
	PersonInstructor PersonType = "INSTRUCTOR"
	PersonStudent    PersonType = "STUDENT"
	PersonExternal   PersonType = "EXTERNAL"
)

type Person struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	FullName    string     `json:"full_name" gorm:"type:varchar(255);not null;index"`
	Email       *string    `json:"email,omitempty" gorm:"type:varchar(255);index"`
	Affiliation *string    `json:"affiliation,omitempty" gorm:"type:varchar(255)"`
	PersonType  PersonType `json:"person_type" gorm:"type:varchar(20);default:'EXTERNAL'"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Person) TableName() string { return "persons" }
