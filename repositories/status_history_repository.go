package repositories

import (
	"pubregistry/models"

	"gorm.io/gorm"
)

// StatusHistoryRepository reads the transition ledger. Writes happen only
// through PublicationRepository.UpdateStatus, inside the same transaction as
// the status column update.
type StatusHistoryRepository interface {
	ListByPublication(publicationID uint) ([]models.StatusHistory, error)
}

type statusHistoryRepository struct {
	db *gorm.DB
}

func NewStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

func (r *statusHistoryRepository) ListByPublication(publicationID uint) ([]models.StatusHistory, error) {
	var entries []models.StatusHistory
	err := r.db.Where("publication_id = ?", publicationID).
		Order("created_at asc, id asc").
		Find(&entries).Error
	return entries, err
}
