package repository

import (
	"github.com/dagmara-szproch/animal-farm/internal/models"
)

type Users interface {
	Create(username, email, fullName, passwordHash, role string) (models.User, error)
	GetByID(id string) (models.User, error)
	GetByEmail(email string) (models.User, error)
	Update(u models.User) error
	SoftDelete(id string) error
}

type Animals interface {
	List() ([]models.Animal, error)
	ListByCategory(categorySlug string) ([]models.Animal, error)
	GetBySlug(slug string) (models.Animal, error)
	SlugExists(slug string) (bool, error)
	Create(a models.Animal) (models.Animal, error)
}

type Donations interface {
	// Create inserts the donation, or returns the existing row when a
	// donation with the same payment intent id already exists.
	Create(d models.Donation) (models.Donation, error)
	GetByID(id int64) (models.Donation, error)
	GetByIntentID(intentID string) (models.Donation, bool, error)
	ListByUser(userID string, status models.DonationStatus) ([]models.Donation, error)
	ListApprovedMessages(animalID string) ([]models.Donation, error)
	ListPendingMessages() ([]models.Donation, error)
	UpdateMessageStatus(d models.Donation) error
}

type DeletionRequests interface {
	Create(userID, notes string) (models.UserDeletionRequest, error)
	GetByID(id string) (models.UserDeletionRequest, error)
	GetPendingByUser(userID string) (models.UserDeletionRequest, bool, error)
	ListPending() ([]models.UserDeletionRequest, error)
	Update(r models.UserDeletionRequest) error
}

type AuditLogs interface {
	Create(l models.AuditLog) error
}
