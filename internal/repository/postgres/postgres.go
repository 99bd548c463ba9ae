package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgExecutor abstracts the pgx surface the repositories need so a pool, a
// transaction, or a pgxmock stand-in can back them interchangeably.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolationCode = "23505"

// Repositories groups the concrete PostgreSQL repository implementations.
type Repositories struct {
	Identities *IdentityRepository
	Audit      *LoginAuditRepository
	Equipment  *EquipmentRepository
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Identities: NewIdentityRepository(pool),
		Audit:      NewLoginAuditRepository(pool),
		Equipment:  NewEquipmentRepository(pool),
	}
}
