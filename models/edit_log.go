package models

import "time"

// EditLog is an append-only ledger: one row per changed field per update.
// Values are stringified with nil normalized to the empty string.
type EditLog struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	PublicationID uint      `json:"publication_id" gorm:"not null;index"`
	Field         string    `json:"field" gorm:"type:varchar(50);not null"`
	OldValue      string    `json:"old_value" gorm:"type:text"`
	NewValue      string    `json:"new_value" gorm:"type:text"`
	ActorID       uint      `json:"actor_id" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}

func (EditLog) TableName() string { return "edit_logs" }
