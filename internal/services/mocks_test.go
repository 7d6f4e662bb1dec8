package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dagmara-szproch/animal-farm/internal/gateway"
	"github.com/dagmara-szproch/animal-farm/internal/models"
	repo "github.com/dagmara-szproch/animal-farm/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ---------- donations ----------

type fakeDonations struct {
	mu     sync.Mutex
	rows   []models.Donation
	nextID int64
}

var _ repo.Donations = (*fakeDonations)(nil)

func (f *fakeDonations) Create(d models.Donation) (models.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.PaymentIntentID == d.PaymentIntentID {
			return r, nil
		}
	}
	f.nextID++
	d.ID = f.nextID
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	f.rows = append(f.rows, d)
	return d, nil
}

func (f *fakeDonations) GetByID(id int64) (models.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Donation{}, pgx.ErrNoRows
}

func (f *fakeDonations) GetByIntentID(intentID string) (models.Donation, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.PaymentIntentID == intentID {
			return r, true, nil
		}
	}
	return models.Donation{}, false, nil
}

func (f *fakeDonations) ListByUser(userID string, status models.DonationStatus) ([]models.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Donation
	for _, r := range f.rows {
		if r.UserID != nil && *r.UserID == userID && r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDonations) ListApprovedMessages(animalID string) ([]models.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Donation
	for i := range f.rows {
		r := f.rows[i]
		if r.AnimalID != nil && *r.AnimalID == animalID && r.HasApprovedMessage() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDonations) ListPendingMessages() ([]models.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Donation
	for _, r := range f.rows {
		if r.MessageStatus == models.MessagePending && r.Message != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDonations) UpdateMessageStatus(d models.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == d.ID {
			f.rows[i].MessageStatus = d.MessageStatus
			f.rows[i].MessageApprovedAt = d.MessageApprovedAt
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeDonations) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// ---------- animals ----------

type fakeAnimals struct {
	bySlug map[string]models.Animal
}

var _ repo.Animals = (*fakeAnimals)(nil)

func newFakeAnimals(animals ...models.Animal) *fakeAnimals {
	f := &fakeAnimals{bySlug: map[string]models.Animal{}}
	for _, a := range animals {
		f.bySlug[a.Slug] = a
	}
	return f
}

func (f *fakeAnimals) List() ([]models.Animal, error) {
	var out []models.Animal
	for _, a := range f.bySlug {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAnimals) ListByCategory(string) ([]models.Animal, error) { return f.List() }

func (f *fakeAnimals) GetBySlug(slug string) (models.Animal, error) {
	a, ok := f.bySlug[slug]
	if !ok {
		return models.Animal{}, pgx.ErrNoRows
	}
	return a, nil
}

func (f *fakeAnimals) SlugExists(slug string) (bool, error) {
	_, ok := f.bySlug[slug]
	return ok, nil
}

func (f *fakeAnimals) Create(a models.Animal) (models.Animal, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	f.bySlug[a.Slug] = a
	return a, nil
}

// ---------- users ----------

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]models.User
}

var _ repo.Users = (*fakeUsers)(nil)

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(username, email, fullName, passwordHash, role string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := models.User{
		ID: uuid.NewString(), Username: username, Email: email,
		FullName: fullName, PasswordHash: passwordHash, Role: role,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, pgx.ErrNoRows
}

func (f *fakeUsers) Update(u models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) SoftDelete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	u.DeletedAt = &now
	f.byID[id] = u
	return nil
}

// ---------- deletion requests ----------

type fakeDeletionRequests struct {
	mu   sync.Mutex
	byID map[string]models.UserDeletionRequest
}

var _ repo.DeletionRequests = (*fakeDeletionRequests)(nil)

func newFakeDeletionRequests() *fakeDeletionRequests {
	return &fakeDeletionRequests{byID: map[string]models.UserDeletionRequest{}}
}

func (f *fakeDeletionRequests) Create(userID, notes string) (models.UserDeletionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := models.UserDeletionRequest{
		ID: uuid.NewString(), UserID: userID, Status: models.DeletionPending,
		RequestedAt: time.Now(), Notes: notes,
	}
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeDeletionRequests) GetByID(id string) (models.UserDeletionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return models.UserDeletionRequest{}, pgx.ErrNoRows
	}
	return r, nil
}

func (f *fakeDeletionRequests) GetPendingByUser(userID string) (models.UserDeletionRequest, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.byID {
		if r.UserID == userID && r.Status == models.DeletionPending {
			return r, true, nil
		}
	}
	return models.UserDeletionRequest{}, false, nil
}

func (f *fakeDeletionRequests) ListPending() ([]models.UserDeletionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UserDeletionRequest
	for _, r := range f.byID {
		if r.Status == models.DeletionPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDeletionRequests) Update(r models.UserDeletionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[r.ID] = r
	return nil
}

// ---------- audit logs ----------

type fakeAuditLogs struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

var _ repo.AuditLogs = (*fakeAuditLogs)(nil)

func (f *fakeAuditLogs) Create(l models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, l)
	return nil
}

func (f *fakeAuditLogs) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// ---------- gateway ----------

type fakeGateway struct {
	CreateFn   func(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (gateway.Intent, error)
	RetrieveFn func(ctx context.Context, id string) (gateway.Intent, error)
}

var _ gateway.PaymentGateway = (*fakeGateway)(nil)

func (f *fakeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (gateway.Intent, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, amountMinor, currency, metadata)
	}
	return gateway.Intent{}, errors.New("not stubbed")
}

func (f *fakeGateway) RetrieveIntent(ctx context.Context, id string) (gateway.Intent, error) {
	if f.RetrieveFn != nil {
		return f.RetrieveFn(ctx, id)
	}
	return gateway.Intent{}, errors.New("not stubbed")
}

// ---------- mailer ----------

type fakeMailer struct {
	mu    sync.Mutex
	sends []string // "to|reference"
}

func (f *fakeMailer) SendReceipt(_ context.Context, to, reference string, _ int64, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, to+"|"+reference)
	return nil
}

func (f *fakeMailer) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sends))
	copy(out, f.sends)
	return out
}
