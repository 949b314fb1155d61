package models

import (
	"time"
)

type PublicationLevel string

const (
	LevelNational      PublicationLevel = "NATIONAL"
	LevelInternational PublicationLevel = "INTERNATIONAL"
)

type Publication struct {
	ID        uint              `json:"id" gorm:"primarykey"`
	OwnerID   uint              `json:"owner_id" gorm:"not null;index"`
	Owner     *User             `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Title     *string           `json:"title" gorm:"type:varchar(500)"`
	VenueID   *uint             `json:"venue_id"`
	Venue     *Venue            `json:"venue,omitempty" gorm:"foreignKey:VenueID"`
	VenueName *string           `json:"venue_name" gorm:"type:varchar(255)"`
	Level     PublicationLevel  `json:"level" gorm:"type:varchar(20);default:'NATIONAL'"`
	Year      *int              `json:"year" gorm:"index"`
	Abstract  *string           `json:"abstract,omitempty" gorm:"type:text"`
	LinkURL   *string           `json:"link_url" gorm:"type:varchar(512)"`
	HasFile   bool              `json:"has_file"`
	FilePath  *string           `json:"file_path,omitempty" gorm:"type:varchar(512)"`
	Status    PublicationStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
