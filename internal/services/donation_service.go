package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dagmara-szproch/animal-farm/internal/gateway"
	"github.com/dagmara-szproch/animal-farm/internal/mailer"
	"github.com/dagmara-szproch/animal-farm/internal/metrics"
	"github.com/dagmara-szproch/animal-farm/internal/models"
	"github.com/dagmara-szproch/animal-farm/internal/receipts"
	repo "github.com/dagmara-szproch/animal-farm/internal/repository"
	"github.com/dagmara-szproch/animal-farm/internal/worker"
)

var (
	ErrInvalidAmount        = errors.New("please enter a valid donation amount")
	ErrPaymentInfoMissing   = errors.New("payment information missing, please try again")
	ErrPaymentNotSuccessful = errors.New("payment was not successful")
	ErrAmountMismatch       = errors.New("submitted amount does not match the authorized payment")
	ErrAnimalNotFound       = errors.New("animal not found")
	ErrGateway              = errors.New("payment service unavailable")
)

// StartResult is everything the browser needs to confirm the payment
// client-side.
type StartResult struct {
	IntentID     string        `json:"intent_id"`
	ClientSecret string        `json:"client_secret"`
	PublicKey    string        `json:"public_key"`
	AmountPence  int64         `json:"amount_pence"`
	Animal       models.Animal `json:"animal"`
}

// DonationService drives a donation from amount selection to a verified
// ledger record. The ledger is never written before the gateway has
// confirmed the intent succeeded.
type DonationService struct {
	don      repo.Donations
	animals  repo.Animals
	users    repo.Users
	logs     repo.AuditLogs
	gw       gateway.PaymentGateway
	receipts *receipts.Store
	mail     mailer.Mailer
	wp       *worker.Pool
	currency string
	pubKey   string
}

func NewDonationService(
	don repo.Donations,
	animals repo.Animals,
	users repo.Users,
	logs repo.AuditLogs,
	gw gateway.PaymentGateway,
	rs *receipts.Store,
	mail mailer.Mailer,
	wp *worker.Pool,
	currency, publicKey string,
) *DonationService {
	return &DonationService{
		don: don, animals: animals, users: users, logs: logs,
		gw: gw, receipts: rs, mail: mail, wp: wp,
		currency: currency, pubKey: publicKey,
	}
}

func (s *DonationService) audit(entityID, action, details string) {
	var det map[string]any
	if details != "" {
		det = map[string]any{"message": details}
	}
	_ = s.logs.Create(models.AuditLog{
		EntityType: "donation",
		EntityID:   &entityID,
		Action:     action,
		Details:    det,
	})
}

// Start creates a payment intent for the chosen animal and amount.
// Nothing is persisted here: the intent lives at the gateway, the
// client secret goes to the browser, and the flow suspends until the
// confirmation request arrives.
func (s *DonationService) Start(ctx context.Context, userID, animalSlug string, amountPence int64) (StartResult, error) {
	if amountPence <= 0 {
		return StartResult{}, ErrInvalidAmount
	}
	animal, err := s.animals.GetBySlug(animalSlug)
	if err != nil {
		return StartResult{}, ErrAnimalNotFound
	}

	in, err := s.gw.CreateIntent(ctx, amountPence, s.currency, map[string]string{
		"animal_id": animal.ID,
		"user_id":   userID,
	})
	if err != nil {
		slog.Error("create intent", "animal", animalSlug, "err", err)
		return StartResult{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	metrics.IntentsCreated.Inc()

	return StartResult{
		IntentID:     in.ID,
		ClientSecret: in.ClientSecret,
		PublicKey:    s.pubKey,
		AmountPence:  amountPence,
		Animal:       animal,
	}, nil
}

// Confirm verifies the intent with the gateway and writes exactly one
// ledger record. The client-supplied status is never trusted; the
// stored amount is the amount the gateway actually authorized, and the
// resubmitted form amount must agree with it. Re-confirming the same
// intent id returns the existing row.
func (s *DonationService) Confirm(ctx context.Context, userID, animalSlug, intentID string, amountPence int64, donorName, message string) (models.Donation, error) {
	if strings.TrimSpace(intentID) == "" {
		return models.Donation{}, ErrPaymentInfoMissing
	}

	animal, err := s.animals.GetBySlug(animalSlug)
	if err != nil {
		return models.Donation{}, ErrAnimalNotFound
	}

	if existing, ok, err := s.don.GetByIntentID(intentID); err != nil {
		return models.Donation{}, err
	} else if ok {
		return existing, nil
	}

	in, err := s.gw.RetrieveIntent(ctx, intentID)
	if err != nil {
		slog.Error("retrieve intent", "intent", intentID, "err", err)
		return models.Donation{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if in.Status != gateway.IntentSucceeded {
		metrics.DonationsFailed.Inc()
		return models.Donation{}, ErrPaymentNotSuccessful
	}
	if amountPence != in.AmountMinor {
		metrics.DonationsFailed.Inc()
		return models.Donation{}, ErrAmountMismatch
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return models.Donation{}, err
	}
	if strings.TrimSpace(donorName) == "" {
		donorName = user.FullName
		if strings.TrimSpace(donorName) == "" {
			donorName = user.Username
		}
	}

	d := models.Donation{
		UserID:          &user.ID,
		AnimalID:        &animal.ID,
		AmountPence:     in.AmountMinor,
		Email:           user.Email,
		Status:          models.DonationSucceeded,
		DonorName:       donorName,
		Message:         models.TruncateMessage(message),
		MessageStatus:   models.MessagePending,
		PaymentIntentID: in.ID,
		CustomerID:      in.CustomerID,
	}
	d, err = s.don.Create(d)
	if err != nil {
		return models.Donation{}, err
	}

	ref := d.ReceiptReference()
	s.receipts.Put(userID, ref)
	metrics.DonationsSucceeded.Inc()

	animalName := animal.Name
	email := user.Email
	amount := d.AmountPence
	s.wp.Submit(func() {
		s.audit(ref, "confirmed", "intent "+intentID)
		if err := s.mail.SendReceipt(context.Background(), email, ref, amount, animalName); err != nil {
			slog.Error("receipt email", "ref", ref, "err", err)
		}
	})

	return d, nil
}

// Receipt consumes the one-shot payment reference for the user, if one
// is pending. A second call after a successful read finds nothing.
func (s *DonationService) Receipt(userID string) (string, bool) {
	return s.receipts.Consume(userID)
}
