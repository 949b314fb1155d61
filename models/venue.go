package models

import "time"

type VenueType string

const (
	VenueJournal    VenueType = "JOURNAL"
	VenueConference VenueType = "CONFERENCE"
	VenueBook       VenueType = "BOOK"
	VenueOther      VenueType = "OTHER"
)

type Venue struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Type      VenueType `json:"type" gorm:"type:varchar(20);default:'OTHER';index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
