package services

import (
	"errors"
	"strings"
	"time"

	"github.com/dagmara-szproch/animal-farm/internal/auth"
	"github.com/dagmara-szproch/animal-farm/internal/models"
	repo "github.com/dagmara-szproch/animal-farm/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeleted     = errors.New("account has been deleted")
	ErrNoPendingRequest   = errors.New("no pending deletion request")
)

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserService struct {
	users   repo.Users
	delreqs repo.DeletionRequests
	logs    repo.AuditLogs
	tm      *auth.TokenManager
}

func NewUserService(users repo.Users, delreqs repo.DeletionRequests, logs repo.AuditLogs, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, delreqs: delreqs, logs: logs, tm: tm}
}

func (s *UserService) audit(entityType, entityID, action string) {
	_ = s.logs.Create(models.AuditLog{
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
	})
}

func (s *UserService) Register(username, email, fullName, password string) (models.User, error) {
	u := models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		FullName: strings.TrimSpace(fullName),
		Role:     models.RoleDonor,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if len(password) < 8 {
		return models.User{}, errors.New("password too short")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return s.users.Create(u.Username, u.Email, u.FullName, hash, u.Role)
}

// Login verifies the password and issues a token pair. Approved
// volunteers get the volunteer role claim and with it the admin
// surface; soft-deleted accounts are refused.
func (s *UserService) Login(email, password string) (models.User, TokenPair, error) {
	u, err := s.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if u.IsDeleted() {
		return models.User{}, TokenPair{}, ErrAccountDeleted
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	role := models.RoleDonor
	if u.IsVolunteer() {
		role = models.RoleVolunteer
	}
	access, refresh, exp, err := s.tm.GeneratePair(u.ID, role)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	return u, TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

func (s *UserService) Refresh(refreshToken string) (TokenPair, error) {
	claims, isRefresh, err := s.tm.ParseAny(refreshToken)
	if err != nil || !isRefresh {
		return TokenPair{}, ErrInvalidCredentials
	}
	access, refresh, exp, err := s.tm.GeneratePair(claims.UserID, claims.Role)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

func (s *UserService) GetByID(id string) (models.User, error) {
	return s.users.GetByID(id)
}

// RequestDeletion records a soft-deletion request. At most one pending
// request exists per user; asking again returns the existing one.
func (s *UserService) RequestDeletion(userID, notes string) (models.UserDeletionRequest, error) {
	if existing, ok, err := s.delreqs.GetPendingByUser(userID); err != nil {
		return models.UserDeletionRequest{}, err
	} else if ok {
		return existing, nil
	}
	req, err := s.delreqs.Create(userID, notes)
	if err != nil {
		return models.UserDeletionRequest{}, err
	}
	s.audit("deletion_request", req.ID, "created")
	return req, nil
}

func (s *UserService) CancelDeletion(userID string) (models.UserDeletionRequest, error) {
	req, ok, err := s.delreqs.GetPendingByUser(userID)
	if err != nil {
		return models.UserDeletionRequest{}, err
	}
	if !ok {
		return models.UserDeletionRequest{}, ErrNoPendingRequest
	}
	if err := req.Transition(models.DeletionCancelled, time.Now()); err != nil {
		return models.UserDeletionRequest{}, err
	}
	if err := s.delreqs.Update(req); err != nil {
		return models.UserDeletionRequest{}, err
	}
	s.audit("deletion_request", req.ID, "cancelled")
	return req, nil
}

func (s *UserService) PendingDeletions() ([]models.UserDeletionRequest, error) {
	return s.delreqs.ListPending()
}

// ProcessDeletion marks the request processed and soft-deletes the
// account. Donations keep their donor reference; the account simply
// stops authenticating.
func (s *UserService) ProcessDeletion(requestID string) (models.UserDeletionRequest, error) {
	req, err := s.delreqs.GetByID(requestID)
	if err != nil {
		return models.UserDeletionRequest{}, err
	}
	if err := req.Transition(models.DeletionProcessed, time.Now()); err != nil {
		return models.UserDeletionRequest{}, err
	}
	if err := s.delreqs.Update(req); err != nil {
		return models.UserDeletionRequest{}, err
	}
	if err := s.users.SoftDelete(req.UserID); err != nil {
		return models.UserDeletionRequest{}, err
	}
	s.audit("user", req.UserID, "soft_deleted")
	s.audit("deletion_request", req.ID, "processed")
	return req, nil
}
