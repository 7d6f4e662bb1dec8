package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTransition wraps every rejected status-table transition.
var ErrInvalidTransition = errors.New("invalid status transition")

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationSucceeded DonationStatus = "succeeded"
	DonationFailed    DonationStatus = "failed"
)

type MessageStatus string

const (
	MessagePending  MessageStatus = "pending"
	MessageApproved MessageStatus = "approved"
	MessageRejected MessageStatus = "rejected"
)

// Allowed transitions per status enum. Anything not listed is rejected,
// including self-transitions; succeeded/failed and approved/rejected are
// terminal.
var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationPending: {DonationSucceeded, DonationFailed},
}

var messageTransitions = map[MessageStatus][]MessageStatus{
	MessagePending: {MessageApproved, MessageRejected},
}

func (s DonationStatus) CanTransition(to DonationStatus) bool {
	for _, t := range donationTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

func (s MessageStatus) CanTransition(to MessageStatus) bool {
	for _, t := range messageTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// MaxMessageLen caps donor messages at write time.
const MaxMessageLen = 500

// Donation is a single ledger record for a card donation. Amounts are
// stored in pence; card details never touch this system. The gateway's
// payment intent id is stored verbatim for reconciliation and is unique
// across the ledger.
type Donation struct {
	ID          int64          `json:"id"`
	UserID      *string        `json:"user_id,omitempty"`
	AnimalID    *string        `json:"animal_id,omitempty"`
	AmountPence int64          `json:"amount_pence"`
	Email       string         `json:"email"`
	Status      DonationStatus `json:"status"`

	DonorName         string        `json:"donor_name"`
	Message           string        `json:"message"`
	MessageStatus     MessageStatus `json:"message_status"`
	MessageApprovedAt *time.Time    `json:"message_approved_at,omitempty"`

	PaymentIntentID string `json:"payment_intent_id"`
	CustomerID      string `json:"customer_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Read-side joins, not columns of the donations table.
	UserFullName string `json:"-"`
	AnimalName   string `json:"animal_name,omitempty"`
}

// DisplayName resolves the public donor name: the account's full name,
// else the free-text donor name, else "Anonymous".
func (d *Donation) DisplayName() string {
	if d.UserID != nil && strings.TrimSpace(d.UserFullName) != "" {
		return d.UserFullName
	}
	if d.DonorName != "" {
		return d.DonorName
	}
	return "Anonymous"
}

// HasApprovedMessage reports whether the donor message may be shown
// publicly. An approved but blank message is not displayable.
func (d *Donation) HasApprovedMessage() bool {
	return d.MessageStatus == MessageApproved && strings.TrimSpace(d.Message) != ""
}

// ReceiptReference reconstructs the donor-facing payment reference.
func (d *Donation) ReceiptReference() string {
	return fmt.Sprintf("DON-%06d", d.ID)
}

func (d *Donation) TransitionStatus(to DonationStatus) error {
	if !d.Status.CanTransition(to) {
		return fmt.Errorf("%w: donation status %s -> %s", ErrInvalidTransition, d.Status, to)
	}
	d.Status = to
	return nil
}

// ApproveMessage moves the message to approved and stamps the approval
// time. Only pending messages can be approved.
func (d *Donation) ApproveMessage(now time.Time) error {
	if !d.MessageStatus.CanTransition(MessageApproved) {
		return fmt.Errorf("%w: message status %s -> %s", ErrInvalidTransition, d.MessageStatus, MessageApproved)
	}
	d.MessageStatus = MessageApproved
	d.MessageApprovedAt = &now
	return nil
}

func (d *Donation) RejectMessage() error {
	if !d.MessageStatus.CanTransition(MessageRejected) {
		return fmt.Errorf("%w: message status %s -> %s", ErrInvalidTransition, d.MessageStatus, MessageRejected)
	}
	d.MessageStatus = MessageRejected
	return nil
}

// TruncateMessage enforces the 500-character cap at write time.
func TruncateMessage(msg string) string {
	r := []rune(msg)
	if len(r) > MaxMessageLen {
		return string(r[:MaxMessageLen])
	}
	return msg
}
