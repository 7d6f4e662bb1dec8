package services

import (
	"fmt"
	"time"

	"github.com/dagmara-szproch/animal-farm/internal/models"
	repo "github.com/dagmara-szproch/animal-farm/internal/repository"
)

// PublicMessage is an approved donor message as shown on an animal's
// page. Only the resolved display name leaks out, never the account.
type PublicMessage struct {
	DisplayName string     `json:"display_name"`
	Message     string     `json:"message"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

type AnimalService struct {
	animals repo.Animals
	don     repo.Donations
}

func NewAnimalService(animals repo.Animals, don repo.Donations) *AnimalService {
	return &AnimalService{animals: animals, don: don}
}

func (s *AnimalService) List() ([]models.Animal, error) { return s.animals.List() }

func (s *AnimalService) ListByCategory(categorySlug string) ([]models.Animal, error) {
	return s.animals.ListByCategory(categorySlug)
}

func (s *AnimalService) GetBySlug(slug string) (models.Animal, error) {
	return s.animals.GetBySlug(slug)
}

// Messages returns the publicly displayable donor messages for an
// animal, newest approval first.
func (s *AnimalService) Messages(slug string) ([]PublicMessage, error) {
	animal, err := s.animals.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	donations, err := s.don.ListApprovedMessages(animal.ID)
	if err != nil {
		return nil, err
	}
	out := make([]PublicMessage, 0, len(donations))
	for i := range donations {
		d := &donations[i]
		if !d.HasApprovedMessage() {
			continue
		}
		out = append(out, PublicMessage{
			DisplayName: d.DisplayName(),
			Message:     d.Message,
			ApprovedAt:  d.MessageApprovedAt,
		})
	}
	return out, nil
}

// Create stores a new animal with a unique slug derived from its name:
// the plain slug if free, else slug-1, slug-2, ... by linear probe.
func (s *AnimalService) Create(a models.Animal) (models.Animal, error) {
	if a.Slug == "" {
		slug, err := s.uniqueSlug(a.Name)
		if err != nil {
			return models.Animal{}, err
		}
		a.Slug = slug
	}
	a.IsActive = true
	return s.animals.Create(a)
}

func (s *AnimalService) uniqueSlug(name string) (string, error) {
	base := models.Slugify(name)
	if base == "" {
		base = "animal"
	}
	slug := base
	for counter := 1; ; counter++ {
		exists, err := s.animals.SlugExists(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
