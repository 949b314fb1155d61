package repositories

import (
	"errors"
	"strings"

	"pubregistry/models"

	"gorm.io/gorm"
)

// ScalarFilter holds the simple publication filter dimensions. Each slice is
// OR within itself; dimensions combine with AND. Query is a case-insensitive
// substring match across title, venue name and link.
type ScalarFilter struct {
	Statuses   []models.PublicationStatus
	Levels     []models.PublicationLevel
	YearFrom   *int
	YearTo     *int
	HasFile    *bool
	VenueTypes []models.VenueType
	Query      string
	OwnerID    uint
}

type PublicationRepository interface {
	Create(pub *models.Publication) error
	GetByID(id uint) (*models.Publication, error)
	Update(pub *models.Publication) error
	UpdateFields(id uint, fields map[string]interface{}) error
	UpdateStatus(id uint, status models.PublicationStatus, actorID uint, note *string) error
	FindDuplicate(linkURL, title string, year *int) (*models.Publication, error)
	FilterIDs(f ScalarFilter) ([]uint, error)
	GetPage(ids []uint, offset, limit int) ([]models.Publication, error)
	CountByStatus(ids []uint) (map[models.PublicationStatus]int64, error)
	CountByYear(ids []uint) ([]models.YearCount, error)
	DeleteCascade(id uint) error
}

type publicationRepository struct {
	db *gorm.DB
}

func NewPublicationRepository(db *gorm.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

func (r *publicationRepository) Create(pub *models.Publication) error {
	return r.db.Create(pub).Error
}

func (r *publicationRepository) GetByID(id uint) (*models.Publication, error) {
	var pub models.Publication
	err := r.db.Preload("Venue").First(&pub, id).Error
	return &pub, err
}

func (r *publicationRepository) Update(pub *models.Publication) error {
	return r.db.Save(pub).Error
}

func (r *publicationRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Publication{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateStatus writes the new status and its history row in one transaction.
// The ledger must never drift from the stored status.
func (r *publicationRepository) UpdateStatus(id uint, status models.PublicationStatus, actorID uint, note *string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Publication{}).Where("id = ?", id).
			Update("status", status).Error; err != nil {
			return err
		}
		return tx.Create(&models.StatusHistory{
			PublicationID: id,
			Status:        status,
			ActorID:       actorID,
			Note:          note,
		}).Error
	})
}

// FindDuplicate returns an existing publication sharing the same non-empty
// link URL, or the same (title, year) pair case-insensitively. Returns
// (nil, nil) when no duplicate exists.
func (r *publicationRepository) FindDuplicate(linkURL, title string, year *int) (*models.Publication, error) {
	var pub models.Publication

	if linkURL != "" {
		err := r.db.Where("link_url = ?", linkURL).First(&pub).Error
		if err == nil {
			return &pub, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if title != "" && year != nil {
		err := r.db.Where("LOWER(title) = ? AND year = ?", strings.ToLower(title), *year).
			First(&pub).Error
		if err == nil {
			return &pub, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, nil
}

func (r *publicationRepository) FilterIDs(f ScalarFilter) ([]uint, error) {
	query := r.db.Model(&models.Publication{})

	if len(f.Statuses) > 0 {
		query = query.Where("publications.status IN ?", f.Statuses)
	}
	if len(f.Levels) > 0 {
		query = query.Where("publications.level IN ?", f.Levels)
	}
	if f.YearFrom != nil {
		query = query.Where("publications.year >= ?", *f.YearFrom)
	}
	if f.YearTo != nil {
		query = query.Where("publications.year <= ?", *f.YearTo)
	}
	if f.HasFile != nil {
		query = query.Where("publications.has_file = ?", *f.HasFile)
	}
	if len(f.VenueTypes) > 0 {
		query = query.Joins("JOIN venues ON venues.id = publications.venue_id").
			Where("venues.type IN ?", f.VenueTypes)
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		query = query.Where(
			"LOWER(COALESCE(publications.title, '')) LIKE ? OR LOWER(COALESCE(publications.venue_name, '')) LIKE ? OR LOWER(COALESCE(publications.link_url, '')) LIKE ?",
			like, like, like)
	}
	if f.OwnerID > 0 {
		query = query.Where("publications.owner_id = ?", f.OwnerID)
	}

	var ids []uint
	err := query.Pluck("publications.id", &ids).Error
	return ids, err
}

// GetPage fetches the given ids in deterministic order: year descending with
// missing years last, ties broken by id descending.
func (r *publicationRepository) GetPage(ids []uint, offset, limit int) ([]models.Publication, error) {
	var pubs []models.Publication
	if len(ids) == 0 {
		return pubs, nil
	}
	err := r.db.Where("id IN ?", ids).
		Order("COALESCE(year, 0) DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&pubs).Error
	return pubs, err
}

func (r *publicationRepository) CountByStatus(ids []uint) (map[models.PublicationStatus]int64, error) {
	counts := make(map[models.PublicationStatus]int64)
	if len(ids) == 0 {
		return counts, nil
	}

	var results []struct {
		Status models.PublicationStatus
		Count  int64
	}
	err := r.db.Model(&models.Publication{}).
		Select("status, COUNT(*) as count").
		Where("id IN ?", ids).
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		counts[res.Status] = res.Count
	}
	return counts, nil
}

// CountByYear returns the count-by-year series ascending. Rows without a
// year are left out of the series; they still count in the totals.
func (r *publicationRepository) CountByYear(ids []uint) ([]models.YearCount, error) {
	var results []models.YearCount
	if len(ids) == 0 {
		return results, nil
	}
	err := r.db.Model(&models.Publication{}).
		Select("year, COUNT(*) as count").
		Where("id IN ? AND year IS NOT NULL", ids).
		Group("year").
		Order("year ASC").
		Scan(&results).Error
	return results, err
}

// DeleteCascade removes the publication and every dependent row. The status
// guard (no deletion once published) is enforced by the service.
func (r *publicationRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("publication_id = ?", id).Delete(&models.PublicationAuthor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("publication_id = ?", id).Delete(&models.PublicationCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("publication_id = ?", id).Delete(&models.EditLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("publication_id = ?", id).Delete(&models.StatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Publication{}, id).Error
	})
}
