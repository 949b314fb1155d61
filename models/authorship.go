package models

import "time"

type AuthorRole string

const (
	RoleLead          AuthorRole = "LEAD"
	RoleCoauthor      AuthorRole = "COAUTHOR"
	RoleCorresponding AuthorRole = "CORRESPONDING"
)

// PublicationAuthor links a publication to a person. AuthorOrder defines the
// display/citation order and is unique per publication.
type PublicationAuthor struct {
	ID            uint       `json:"id" gorm:"primarykey"`
	PublicationID uint       `json:"publication_id" gorm:"not null;index"`
	PersonID      uint       `json:"person_id" gorm:"not null;index"`
	Person        *Person    `json:"person,omitempty" gorm:"foreignKey:PersonID"`
	AuthorOrder   int        `json:"author_order" gorm:"not null"`
	Role          AuthorRole `json:"role" gorm:"type:varchar(20);default:'COAUTHOR'"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (PublicationAuthor) TableName() string { return "publication_authors" }
