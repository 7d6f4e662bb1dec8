package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dagmara-szproch/animal-farm/internal/auth"
	"github.com/dagmara-szproch/animal-farm/internal/config"
	"github.com/dagmara-szproch/animal-farm/internal/middleware"
	"github.com/dagmara-szproch/animal-farm/internal/models"
	repo "github.com/dagmara-szproch/animal-farm/internal/repository"
	"github.com/dagmara-szproch/animal-farm/internal/services"
)

type stubAnimals struct{ animals []models.Animal }

var _ repo.Animals = (*stubAnimals)(nil)

func (s *stubAnimals) List() ([]models.Animal, error)                 { return s.animals, nil }
func (s *stubAnimals) ListByCategory(string) ([]models.Animal, error) { return s.animals, nil }
func (s *stubAnimals) GetBySlug(slug string) (models.Animal, error) {
	for _, a := range s.animals {
		if a.Slug == slug {
			return a, nil
		}
	}
	return models.Animal{}, assert.AnError
}
func (s *stubAnimals) SlugExists(string) (bool, error)               { return false, nil }
func (s *stubAnimals) Create(a models.Animal) (models.Animal, error) { return a, nil }

type stubDonations struct{ pending []models.Donation }

var _ repo.Donations = (*stubDonations)(nil)

func (s *stubDonations) Create(d models.Donation) (models.Donation, error) { return d, nil }
func (s *stubDonations) GetByID(int64) (models.Donation, error)            { return models.Donation{}, assert.AnError }
func (s *stubDonations) GetByIntentID(string) (models.Donation, bool, error) {
	return models.Donation{}, false, nil
}
func (s *stubDonations) ListByUser(string, models.DonationStatus) ([]models.Donation, error) {
	return nil, nil
}
func (s *stubDonations) ListApprovedMessages(string) ([]models.Donation, error) { return nil, nil }
func (s *stubDonations) ListPendingMessages() ([]models.Donation, error)        { return s.pending, nil }
func (s *stubDonations) UpdateMessageStatus(models.Donation) error              { return nil }

type stubAuditLogs struct{}

func (stubAuditLogs) Create(models.AuditLog) error { return nil }

func newTestServer(t *testing.T, tm *auth.TokenManager) *httptest.Server {
	t.Helper()

	animals := &stubAnimals{animals: []models.Animal{
		{ID: "a1", Name: "Bella", Slug: "bella", Species: "Horse", IsActive: true},
	}}
	don := &stubDonations{}

	r := NewRouter(Deps{
		Cfg:        config.Config{Env: "dev"},
		Animals:    services.NewAnimalService(animals, don),
		Dashboard:  services.NewDashboardService(don),
		Moderation: services.NewModerationService(don, stubAuditLogs{}),
		AuthMW:     middleware.NewAuthMiddleware(tm, "dev"),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func testTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("access-secret", "refresh-secret", "animal-farm-test",
		15*time.Minute, time.Hour)
}

func get(t *testing.T, url, bearer string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	assert.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, testTokenManager())
	resp := get(t, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicAnimalListing(t *testing.T) {
	srv := newTestServer(t, testTokenManager())
	resp := get(t, srv.URL+"/api/v1/animals", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}

func TestDonorSurfaceRequiresToken(t *testing.T) {
	srv := newTestServer(t, testTokenManager())
	resp := get(t, srv.URL+"/api/v1/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminSurfaceRejectsDonors(t *testing.T) {
	tm := testTokenManager()
	srv := newTestServer(t, tm)

	// the dev shortcut token carries the donor role
	resp := get(t, srv.URL+"/api/v1/admin/messages/pending", "dev-u1")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminSurfaceAllowsVolunteers(t *testing.T) {
	tm := testTokenManager()
	srv := newTestServer(t, tm)

	access, _, _, err := tm.GeneratePair("v1", models.RoleVolunteer)
	assert.NoError(t, err)

	resp := get(t, srv.URL+"/api/v1/admin/messages/pending", access)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	tm := testTokenManager()
	srv := newTestServer(t, tm)

	_, refresh, _, err := tm.GeneratePair("u1", models.RoleDonor)
	assert.NoError(t, err)

	resp := get(t, srv.URL+"/api/v1/dashboard", refresh)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
