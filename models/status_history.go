package models

import "time"

// StatusHistory is an append-only ledger of lifecycle transitions. Rows are
// never updated or deleted; it is the source of truth for "when did this
// become published". The note carries the rejection reason on
// needs_revision and feeds professor-facing notifications.
type StatusHistory struct {
	ID            uint              `json:"id" gorm:"primarykey"`
	PublicationID uint              `json:"publication_id" gorm:"not null;index"`
	Status        PublicationStatus `json:"status" gorm:"type:varchar(20);not null"`
	ActorID       uint              `json:"actor_id" gorm:"not null"`
	Note          *string           `json:"note,omitempty" gorm:"type:text"`
	CreatedAt     time.Time         `json:"created_at"`
}

func (StatusHistory) TableName() string { return "status_history" }
