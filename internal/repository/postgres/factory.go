package postgres

import (
	repo "github.com/dagmara-szproch/animal-farm/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users            repo.Users
	Animals          repo.Animals
	Donations        repo.Donations
	DeletionRequests repo.DeletionRequests
	AuditLogs        repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:            &usersRepo{pool},
		Animals:          &animalsRepo{pool},
		Donations:        &donationsRepo{pool},
		DeletionRequests: &deletionRequestsRepo{pool},
		AuditLogs:        &auditLogsRepo{pool},
	}
}
