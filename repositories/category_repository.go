package repositories

import (
	"errors"
	"strings"

	"pubregistry/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	Resolve(name string) (*models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetAll() ([]models.Category, error)
	Replace(publicationID uint, categoryIDs []uint) error
	NamesByPublicationIDs(ids []uint) (map[uint][]string, error)
	PublicationIDsByCategoryTerm(term string) ([]uint, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Resolve looks a category up by exact name, creating it if missing. Same
// idempotent pattern as person resolution.
func (r *categoryRepository) Resolve(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category = models.Category{Name: name, Status: models.CategoryActive}
	if err := r.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	return &category, err
}

func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Replace(publicationID uint, categoryIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("publication_id = ?", publicationID).
			Delete(&models.PublicationCategory{}).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		rows := make([]models.PublicationCategory, 0, len(categoryIDs))
		for _, categoryID := range categoryIDs {
			rows = append(rows, models.PublicationCategory{
				PublicationID: publicationID,
				CategoryID:    categoryID,
			})
		}
		return tx.Create(&rows).Error
	})
}

func (r *categoryRepository) NamesByPublicationIDs(ids []uint) (map[uint][]string, error) {
	names := make(map[uint][]string)
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		PublicationID uint
		Name          string
	}
	err := r.db.Model(&models.PublicationCategory{}).
		Select("publication_categories.publication_id, categories.name").
		Joins("JOIN categories ON categories.id = publication_categories.category_id").
		Where("publication_categories.publication_id IN ?", ids).
		Order("publication_categories.publication_id, categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.PublicationID] = append(names[row.PublicationID], row.Name)
	}
	return names, nil
}

func (r *categoryRepository) PublicationIDsByCategoryTerm(term string) ([]uint, error) {
	var ids []uint
	like := "%" + strings.ToLower(term) + "%"
	err := r.db.Model(&models.PublicationCategory{}).
		Distinct().
		Joins("JOIN categories ON categories.id = publication_categories.category_id").
		Where("LOWER(categories.name) LIKE ?", like).
		Pluck("publication_categories.publication_id", &ids).Error
	return ids, err
}
