package models

import (
	"fmt"
	"time"
)

type DeletionRequestStatus string

const (
	DeletionPending   DeletionRequestStatus = "pending"
	DeletionProcessed DeletionRequestStatus = "processed"
	DeletionCancelled DeletionRequestStatus = "cancelled"
)

// processed and cancelled are terminal.
var deletionTransitions = map[DeletionRequestStatus][]DeletionRequestStatus{
	DeletionPending: {DeletionProcessed, DeletionCancelled},
}

func (s DeletionRequestStatus) CanTransition(to DeletionRequestStatus) bool {
	for _, t := range deletionTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// UserDeletionRequest tracks a donor asking for their account to be
// soft-deleted. The account itself is only touched when an admin
// processes the request.
type UserDeletionRequest struct {
	ID          string                `json:"id"`
	UserID      string                `json:"user_id"`
	Status      DeletionRequestStatus `json:"status"`
	RequestedAt time.Time             `json:"requested_at"`
	ProcessedAt *time.Time            `json:"processed_at,omitempty"`
	Notes       string                `json:"notes,omitempty"`
}

func (r *UserDeletionRequest) Transition(to DeletionRequestStatus, now time.Time) error {
	if !r.Status.CanTransition(to) {
		return fmt.Errorf("%w: deletion request %s -> %s", ErrInvalidTransition, r.Status, to)
	}
	r.Status = to
	if to == DeletionProcessed {
		r.ProcessedAt = &now
	}
	return nil
}
