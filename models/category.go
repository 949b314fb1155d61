package models

import "time"

type CategoryStatus string

const (
	CategoryActive   CategoryStatus = "ACTIVE"
	CategoryInactive CategoryStatus = "INACTIVE"
)

type Category struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Status    CategoryStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type PublicationCategory struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	PublicationID uint      `json:"publication_id" gorm:"not null;index"`
	CategoryID    uint      `json:"category_id" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at"`
}

func (PublicationCategory) TableName() string { return "publication_categories" }
