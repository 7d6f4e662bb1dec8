package postgres

import (
	"context"

	"github.com/dagmara-szproch/animal-farm/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userCols = `id, username, email, full_name, password_hash, role, is_approved,
       phone, receive_updates, deleted_at, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	var phone *string
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.Role, &u.IsApproved,
		&phone, &u.ReceiveUpdates, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if phone != nil {
		u.Phone = *phone
	}
	return u, err
}

func (r *usersRepo) Create(username, email, fullName, passwordHash, role string) (models.User, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO users(id, username, email, full_name, password_hash, role)
		 VALUES($1,$2,$3,$4,$5,$6)`,
		id, username, email, fullName, passwordHash, role,
	)
	if err != nil {
		return models.User{}, err
	}
	return r.GetByID(id)
}

func (r *usersRepo) GetByID(id string) (models.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userCols+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (r *usersRepo) GetByEmail(email string) (models.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userCols+` FROM users WHERE email=$1`, email)
	return scanUser(row)
}

func (r *usersRepo) Update(u models.User) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE users
		    SET username=$2, email=$3, full_name=$4, role=$5, is_approved=$6,
		        phone=$7, receive_updates=$8, updated_at=now()
		  WHERE id=$1`,
		u.ID, u.Username, u.Email, u.FullName, u.Role, u.IsApproved,
		u.Phone, u.ReceiveUpdates,
	)
	return err
}

// SoftDelete marks the account deleted without removing the row, so
// existing donations keep their donor reference.
func (r *usersRepo) SoftDelete(id string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE users SET deleted_at=now(), updated_at=now() WHERE id=$1 AND deleted_at IS NULL`,
		id,
	)
	return err
}
