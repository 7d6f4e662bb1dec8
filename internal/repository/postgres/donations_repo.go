package postgres

import (
	"context"
	"errors"

	"github.com/dagmara-szproch/animal-farm/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type donationsRepo struct{ pool *pgxpool.Pool }

const donationCols = `d.id, d.user_id, d.animal_id, d.amount_pence, d.email, d.status,
       d.donor_name, d.message, d.message_status, d.message_approved_at,
       d.payment_intent_id, d.customer_id, d.created_at, d.updated_at`

func scanDonation(row pgx.Row) (models.Donation, error) {
	var d models.Donation
	err := row.Scan(
		&d.ID, &d.UserID, &d.AnimalID, &d.AmountPence, &d.Email, &d.Status,
		&d.DonorName, &d.Message, &d.MessageStatus, &d.MessageApprovedAt,
		&d.PaymentIntentID, &d.CustomerID, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// Create is safe against duplicate confirmations: payment_intent_id is
// unique, and the ON CONFLICT no-op update lets RETURNING hand back the
// row that already exists.
func (r *donationsRepo) Create(d models.Donation) (models.Donation, error) {
	const q = `
INSERT INTO donations (
  user_id, animal_id, amount_pence, email, status,
  donor_name, message, message_status, payment_intent_id, customer_id
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (payment_intent_id) DO UPDATE
SET payment_intent_id = EXCLUDED.payment_intent_id
RETURNING id, user_id, animal_id, amount_pence, email, status,
          donor_name, message, message_status, message_approved_at,
          payment_intent_id, customer_id, created_at, updated_at;
`
	row := r.pool.QueryRow(
		context.Background(), q,
		d.UserID, d.AnimalID, d.AmountPence, d.Email, d.Status,
		d.DonorName, d.Message, d.MessageStatus, d.PaymentIntentID, d.CustomerID,
	)
	return scanDonation(row)
}

func (r *donationsRepo) GetByID(id int64) (models.Donation, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+donationCols+` FROM donations d WHERE d.id=$1`, id)
	return scanDonation(row)
}

func (r *donationsRepo) GetByIntentID(intentID string) (models.Donation, bool, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+donationCols+` FROM donations d WHERE d.payment_intent_id=$1`, intentID)
	d, err := scanDonation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Donation{}, false, nil
	}
	if err != nil {
		return models.Donation{}, false, err
	}
	return d, true, nil
}

func (r *donationsRepo) ListByUser(userID string, status models.DonationStatus) ([]models.Donation, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+donationCols+`, COALESCE(a.name, '')
		   FROM donations d
		   LEFT JOIN animals a ON a.id = d.animal_id
		  WHERE d.user_id=$1 AND d.status=$2
		  ORDER BY d.created_at DESC`,
		userID, status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.AnimalID, &d.AmountPence, &d.Email, &d.Status,
			&d.DonorName, &d.Message, &d.MessageStatus, &d.MessageApprovedAt,
			&d.PaymentIntentID, &d.CustomerID, &d.CreatedAt, &d.UpdatedAt,
			&d.AnimalName,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListApprovedMessages returns publicly displayable messages for an
// animal: approved and non-blank, newest first. The blank check is
// repeated in SQL so the page never depends on callers applying
// HasApprovedMessage.
func (r *donationsRepo) ListApprovedMessages(animalID string) ([]models.Donation, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+donationCols+`, COALESCE(u.full_name, '')
		   FROM donations d
		   LEFT JOIN users u ON u.id = d.user_id
		  WHERE d.animal_id=$1
		    AND d.message_status='approved'
		    AND btrim(d.message) <> ''
		  ORDER BY d.message_approved_at DESC`,
		animalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWithFullName(rows)
}

func (r *donationsRepo) ListPendingMessages() ([]models.Donation, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+donationCols+`, COALESCE(u.full_name, '')
		   FROM donations d
		   LEFT JOIN users u ON u.id = d.user_id
		  WHERE d.message_status='pending'
		    AND btrim(d.message) <> ''
		    AND d.status='succeeded'
		  ORDER BY d.created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWithFullName(rows)
}

func collectWithFullName(rows pgx.Rows) ([]models.Donation, error) {
	var out []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.AnimalID, &d.AmountPence, &d.Email, &d.Status,
			&d.DonorName, &d.Message, &d.MessageStatus, &d.MessageApprovedAt,
			&d.PaymentIntentID, &d.CustomerID, &d.CreatedAt, &d.UpdatedAt,
			&d.UserFullName,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *donationsRepo) UpdateMessageStatus(d models.Donation) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE donations
		    SET message_status=$2, message_approved_at=$3, updated_at=now()
		  WHERE id=$1`,
		d.ID, d.MessageStatus, d.MessageApprovedAt,
	)
	return err
}
