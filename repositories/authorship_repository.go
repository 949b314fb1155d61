package repositories

import (
	"strings"

	"pubregistry/models"

	"gorm.io/gorm"
)

type AuthorshipRepository interface {
	Replace(publicationID uint, authors []models.PublicationAuthor) error
	GetByPublicationID(publicationID uint) ([]models.PublicationAuthor, error)
	OrderedNamesByPublicationIDs(ids []uint) (map[uint][]string, error)
	PublicationIDsByAuthorTerm(term string) ([]uint, error)
	PublicationIDsByLead(personID uint) ([]uint, error)
	TopAuthors(ids []uint, limit int) ([]models.AuthorCount, error)
}

type authorshipRepository struct {
	db *gorm.DB
}

func NewAuthorshipRepository(db *gorm.DB) AuthorshipRepository {
	return &authorshipRepository{db: db}
}

// Replace swaps the full author list in one transaction so readers never see
// a publication with zero authors mid-operation.
func (r *authorshipRepository) Replace(publicationID uint, authors []models.PublicationAuthor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("publication_id = ?", publicationID).
			Delete(&models.PublicationAuthor{}).Error; err != nil {
			return err
		}
		for i := range authors {
			authors[i].PublicationID = publicationID
		}
		if len(authors) == 0 {
			return nil
		}
		return tx.Create(&authors).Error
	})
}

func (r *authorshipRepository) GetByPublicationID(publicationID uint) ([]models.PublicationAuthor, error) {
	var authors []models.PublicationAuthor
	err := r.db.Where("publication_id = ?", publicationID).
		Preload("Person").
		Order("author_order asc").
		Find(&authors).Error
	return authors, err
}

// OrderedNamesByPublicationIDs batch-fetches the author name lists for the
// given page of ids, keyed on exactly that id set to bound cost to page size.
func (r *authorshipRepository) OrderedNamesByPublicationIDs(ids []uint) (map[uint][]string, error) {
	names := make(map[uint][]string)
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		PublicationID uint
		FullName      string
	}
	err := r.db.Model(&models.PublicationAuthor{}).
		Select("publication_authors.publication_id, persons.full_name").
		Joins("JOIN persons ON persons.id = publication_authors.person_id").
		Where("publication_authors.publication_id IN ?", ids).
		Order("publication_authors.publication_id, publication_authors.author_order").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.PublicationID] = append(names[row.PublicationID], row.FullName)
	}
	return names, nil
}

// PublicationIDsByAuthorTerm resolves a single author search term to the set
// of publication ids with at least one author whose name matches the term,
// substring and case-insensitive.
func (r *authorshipRepository) PublicationIDsByAuthorTerm(term string) ([]uint, error) {
	var ids []uint
	like := "%" + strings.ToLower(term) + "%"
	err := r.db.Model(&models.PublicationAuthor{}).
		Distinct().
		Joins("JOIN persons ON persons.id = publication_authors.person_id").
		Where("LOWER(persons.full_name) LIKE ?", like).
		Pluck("publication_authors.publication_id", &ids).Error
	return ids, err
}

func (r *authorshipRepository) PublicationIDsByLead(personID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.PublicationAuthor{}).
		Where("person_id = ? AND role = ?", personID, models.RoleLead).
		Pluck("publication_id", &ids).Error
	return ids, err
}

// TopAuthors ranks persons by matched publications, each publication counted
// at most once per person regardless of role or duplicate rows.
func (r *authorshipRepository) TopAuthors(ids []uint, limit int) ([]models.AuthorCount, error) {
	var results []models.AuthorCount
	if len(ids) == 0 {
		return results, nil
	}
	err := r.db.Model(&models.PublicationAuthor{}).
		Select("publication_authors.person_id, persons.full_name AS name, COUNT(DISTINCT publication_authors.publication_id) AS count").
		Joins("JOIN persons ON persons.id = publication_authors.person_id").
		Where("publication_authors.publication_id IN ?", ids).
		Group("publication_authors.person_id, persons.full_name").
		Order("count DESC, name ASC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
