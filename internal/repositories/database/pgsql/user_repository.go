package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	"github.com/SscSPs/shopdesk_backend/internal/models"
	"github.com/SscSPs/shopdesk_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.ProfileDirectory
var _ portsrepo.ProfileDirectory = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) FindProfilesByIDs(ctx context.Context, userIDs []string) (map[string]domain.UserProfile, error) {
	if len(userIDs) == 0 {
		return map[string]domain.UserProfile{}, nil
	}

	query := `
		SELECT user_id, name, email, created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM users
		WHERE user_id = ANY($1) AND deleted_at IS NULL;
	`
	rows, err := r.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by IDs: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, fmt.Errorf("failed to scan user rows: %w", err)
	}
	return mapping.ToDomainUserProfileMap(users), nil
}
