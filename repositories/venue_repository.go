package repositories

import (
	"pubregistry/models"

	"gorm.io/gorm"
)

type VenueRepository interface {
	Create(venue *models.Venue) error
	GetByID(id uint) (*models.Venue, error)
	GetAll() ([]models.Venue, error)
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(venue *models.Venue) error {
	return r.db.Create(venue).Error
}

func (r *venueRepository) GetByID(id uint) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.First(&venue, id).Error
	return &venue, err
}

func (r *venueRepository) GetAll() ([]models.Venue, error) {
	var venues []models.Venue
	err := r.db.Order("name asc").Find(&venues).Error
	return venues, err
}
