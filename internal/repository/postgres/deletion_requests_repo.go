package postgres

import (
	"context"
	"errors"

	"github.com/dagmara-szproch/animal-farm/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type deletionRequestsRepo struct{ pool *pgxpool.Pool }

const deletionCols = `id, user_id, status, requested_at, processed_at, notes`

func scanDeletionRequest(row pgx.Row) (models.UserDeletionRequest, error) {
	var r models.UserDeletionRequest
	var notes *string
	err := row.Scan(&r.ID, &r.UserID, &r.Status, &r.RequestedAt, &r.ProcessedAt, &notes)
	if notes != nil {
		r.Notes = *notes
	}
	return r, err
}

func (r *deletionRequestsRepo) Create(userID, notes string) (models.UserDeletionRequest, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO user_deletion_requests(id, user_id, notes) VALUES($1,$2,$3)`,
		id, userID, notes,
	)
	if err != nil {
		return models.UserDeletionRequest{}, err
	}
	return r.GetByID(id)
}

func (r *deletionRequestsRepo) GetByID(id string) (models.UserDeletionRequest, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+deletionCols+` FROM user_deletion_requests WHERE id=$1`, id)
	return scanDeletionRequest(row)
}

func (r *deletionRequestsRepo) GetPendingByUser(userID string) (models.UserDeletionRequest, bool, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+deletionCols+`
		   FROM user_deletion_requests
		  WHERE user_id=$1 AND status='pending'
		  ORDER BY requested_at DESC LIMIT 1`,
		userID,
	)
	req, err := scanDeletionRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserDeletionRequest{}, false, nil
	}
	if err != nil {
		return models.UserDeletionRequest{}, false, err
	}
	return req, true, nil
}

func (r *deletionRequestsRepo) ListPending() ([]models.UserDeletionRequest, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+deletionCols+`
		   FROM user_deletion_requests
		  WHERE status='pending'
		  ORDER BY requested_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserDeletionRequest
	for rows.Next() {
		req, err := scanDeletionRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *deletionRequestsRepo) Update(req models.UserDeletionRequest) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE user_deletion_requests
		    SET status=$2, processed_at=$3, notes=$4
		  WHERE id=$1`,
		req.ID, req.Status, req.ProcessedAt, req.Notes,
	)
	return err
}
