package repositories

import (
	"pubregistry/models"

	"gorm.io/gorm"
)

type EditLogRepository interface {
	AppendAll(entries []models.EditLog) error
	ListByPublication(publicationID uint, limit int) ([]models.EditLog, error)
}

type editLogRepository struct {
	db *gorm.DB
}

func NewEditLogRepository(db *gorm.DB) EditLogRepository {
	return &editLogRepository{db: db}
}

func (r *editLogRepository) AppendAll(entries []models.EditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

func (r *editLogRepository) ListByPublication(publicationID uint, limit int) ([]models.EditLog, error) {
	var entries []models.EditLog
	query := r.db.Where("publication_id = ?", publicationID).
		Order("created_at desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}
