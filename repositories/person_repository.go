package repositories

import (
	"errors"

	"pubregistry/models"

	"gorm.io/gorm"
)

type PersonRepository interface {
	Resolve(name, email string, personType models.PersonType) (*models.Person, error)
	GetByID(id uint) (*models.Person, error)
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db: db}
}

// Resolve returns an existing person matched by email (case-sensitive) or by
// exact full name narrowed by person type, inserting a new row only when no
// match exists. Calling it twice for the same logical person yields the same
// row.
func (r *personRepository) Resolve(name, email string, personType models.PersonType) (*models.Person, error) {
	var person models.Person

	if email != "" {
		err := r.db.Where("email = ?", email).First(&person).Error
		if err == nil {
			return &person, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	query := r.db.Where("full_name = ?", name)
	if personType != "" {
		query = query.Where("person_type = ?", personType)
	}
	err := query.First(&person).Error
	if err == nil {
		return &person, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if personType == "" {
		personType = models.PersonExternal
	}
	person = models.Person{
		FullName:   name,
		PersonType: personType,
	}
	if email != "" {
		person.Email = &email
	}
	if err := r.db.Create(&person).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) GetByID(id uint) (*models.Person, error) {
	var person models.Person
	err := r.db.First(&person, id).Error
	return &person, err
}
