package services

import (
	"fmt"
	"time"

	"github.com/dagmara-szproch/animal-farm/internal/metrics"
	"github.com/dagmara-szproch/animal-farm/internal/models"
	repo "github.com/dagmara-szproch/animal-farm/internal/repository"
)

// ModerationService gates donor messages: pending messages can be
// approved (stamped and publicly visible) or rejected (terminal).
type ModerationService struct {
	don  repo.Donations
	logs repo.AuditLogs
}

func NewModerationService(don repo.Donations, logs repo.AuditLogs) *ModerationService {
	return &ModerationService{don: don, logs: logs}
}

func (s *ModerationService) audit(donationID int64, action string) {
	id := fmt.Sprintf("%d", donationID)
	_ = s.logs.Create(models.AuditLog{
		EntityType: "message",
		EntityID:   &id,
		Action:     action,
	})
}

func (s *ModerationService) Pending() ([]models.Donation, error) {
	return s.don.ListPendingMessages()
}

func (s *ModerationService) Approve(donationID int64) (models.Donation, error) {
	d, err := s.don.GetByID(donationID)
	if err != nil {
		return models.Donation{}, err
	}
	if err := d.ApproveMessage(time.Now()); err != nil {
		return models.Donation{}, err
	}
	if err := s.don.UpdateMessageStatus(d); err != nil {
		return models.Donation{}, err
	}
	s.audit(donationID, "message_approved")
	metrics.ModerationActions.WithLabelValues("approve").Inc()
	return d, nil
}

func (s *ModerationService) Reject(donationID int64) (models.Donation, error) {
	d, err := s.don.GetByID(donationID)
	if err != nil {
		return models.Donation{}, err
	}
	if err := d.RejectMessage(); err != nil {
		return models.Donation{}, err
	}
	if err := s.don.UpdateMessageStatus(d); err != nil {
		return models.Donation{}, err
	}
	s.audit(donationID, "message_rejected")
	metrics.ModerationActions.WithLabelValues("reject").Inc()
	return d, nil
}
