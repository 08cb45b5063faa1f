package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/hearthplan/backend/internal/models"
)

// PersonService handles household member operations
type PersonService struct {
	db *gorm.DB
}

func NewPersonService(db *gorm.DB) *PersonService {
	return &PersonService{db: db}
}

// ListPeople returns all household members ordered by name.
func (s *PersonService) ListPeople(ctx context.Context) ([]models.Person, error) {
	var people []models.Person
	if err := s.db.WithContext(ctx).Order("name").Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

// CreatePerson adds a household member.
func (s *PersonService) CreatePerson(ctx context.Context, person *models.Person) (*models.Person, error) {
	if err := s.db.WithContext(ctx).Create(person).Error; err != nil {
		return nil, err
	}
	return person, nil
}
