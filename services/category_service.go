package services

import (
	"pubregistry/models"
	"pubregistry/repositories"
)

type CategoryService interface {
	CreateCategory(req models.CreateCategoryRequest) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetCategory(id uint) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// CreateCategory is idempotent: creating an existing name returns the
// existing row, mirroring how category names are resolved on submission.
func (s *categoryService) CreateCategory(req models.CreateCategoryRequest) (*models.Category, error) {
	return s.categoryRepo.Resolve(req.Name)
}

func (s *categoryService) GetCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *categoryService) GetCategory(id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}
