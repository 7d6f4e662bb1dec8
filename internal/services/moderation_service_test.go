package services

import (
	"testing"

	"github.com/dagmara-szproch/animal-farm/internal/models"
	"github.com/stretchr/testify/assert"
)

func seedPendingMessage(t *testing.T, don *fakeDonations, msg string) models.Donation {
	t.Helper()
	animal := "a1"
	d, err := don.Create(models.Donation{
		AnimalID:        &animal,
		AmountPence:     1000,
		Status:          models.DonationSucceeded,
		Message:         msg,
		MessageStatus:   models.MessagePending,
		PaymentIntentID: "pi_" + msg,
	})
	assert.NoError(t, err)
	return d
}

func TestApproveMessage(t *testing.T) {
	don := &fakeDonations{}
	audit := &fakeAuditLogs{}
	svc := NewModerationService(don, audit)
	d := seedPendingMessage(t, don, "Thank you!")

	approved, err := svc.Approve(d.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.MessageApproved, approved.MessageStatus)
	assert.NotNil(t, approved.MessageApprovedAt)
	assert.True(t, approved.HasApprovedMessage())
	assert.Equal(t, 1, audit.count())

	// approved messages show up on the animal page
	msgs, err := don.ListApprovedMessages("a1")
	assert.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestRejectMessage(t *testing.T) {
	don := &fakeDonations{}
	svc := NewModerationService(don, &fakeAuditLogs{})
	d := seedPendingMessage(t, don, "spam spam spam")

	rejected, err := svc.Reject(d.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.MessageRejected, rejected.MessageStatus)
	assert.Nil(t, rejected.MessageApprovedAt)

	msgs, err := don.ListApprovedMessages("a1")
	assert.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestModerationIsTerminal(t *testing.T) {
	don := &fakeDonations{}
	svc := NewModerationService(don, &fakeAuditLogs{})

	d := seedPendingMessage(t, don, "once")
	_, err := svc.Approve(d.ID)
	assert.NoError(t, err)

	_, err = svc.Approve(d.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	_, err = svc.Reject(d.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	d2 := seedPendingMessage(t, don, "twice")
	_, err = svc.Reject(d2.ID)
	assert.NoError(t, err)
	_, err = svc.Approve(d2.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestApprovedBlankMessageNotVisible(t *testing.T) {
	don := &fakeDonations{}
	svc := NewModerationService(don, &fakeAuditLogs{})
	d := seedPendingMessage(t, don, "   ")

	approved, err := svc.Approve(d.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.MessageApproved, approved.MessageStatus)
	assert.False(t, approved.HasApprovedMessage())
}

func TestPendingListing(t *testing.T) {
	don := &fakeDonations{}
	svc := NewModerationService(don, &fakeAuditLogs{})
	seedPendingMessage(t, don, "first")
	d := seedPendingMessage(t, don, "second")

	pending, err := svc.Pending()
	assert.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = svc.Approve(d.ID)
	assert.NoError(t, err)

	pending, err = svc.Pending()
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
}
