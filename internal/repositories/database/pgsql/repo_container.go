package pgsql

import (
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL repositories. seed supplies the tenant
// configuration until one has been saved to the database.
func NewRepositoryProvider(dbPool *pgxpool.Pool, tenantID string, seed portsrepo.ConfigSource) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ConfigSource: newPgxTenantConfigRepository(dbPool, tenantID, seed),
		ApprovalRepo: newPgxApprovalRepository(dbPool),
		ChangeFeed:   newPgxChangeFeed(dbPool),
		Profiles:     newPgxUserRepository(dbPool),
	}
}
