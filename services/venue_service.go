package services

import (
	"pubregistry/models"
	"pubregistry/repositories"
)

type VenueService interface {
	CreateVenue(req models.CreateVenueRequest) (*models.Venue, error)
	GetVenues() ([]models.Venue, error)
	GetVenue(id uint) (*models.Venue, error)
}

type venueService struct {
	venueRepo repositories.VenueRepository
}

func NewVenueService(venueRepo repositories.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

func (s *venueService) CreateVenue(req models.CreateVenueRequest) (*models.Venue, error) {
	venue := &models.Venue{Name: req.Name, Type: req.Type}
	if err := s.venueRepo.Create(venue); err != nil {
		return nil, err
	}
	return venue, nil
}

func (s *venueService) GetVenues() ([]models.Venue, error) {
	return s.venueRepo.GetAll()
}

func (s *venueService) GetVenue(id uint) (*models.Venue, error) {
	return s.venueRepo.GetByID(id)
}
